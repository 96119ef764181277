package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"vlinky_backend/internal/email"
	"vlinky_backend/internal/models"
	"vlinky_backend/internal/repositories"
)

// In-memory repository fakes. They implement the repository interfaces over
// plain maps so service behavior can be tested without a database.

func newID(prefix string, n int) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}

// ---------------- users ----------------

type memUserRepo struct {
	mu     sync.Mutex
	users  map[string]*models.User
	tokens map[string]*models.RefreshToken
	seq    int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:  make(map[string]*models.User),
		tokens: make(map[string]*models.RefreshToken),
	}
}

func (r *memUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) FindByEmail(emailAddr string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == emailAddr {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		r.seq++
		user.ID = newID("user", r.seq)
	}
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) UpdateRole(userID string, role models.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *memUserRepo) Delete(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
	return nil
}

func (r *memUserRepo) CountByRole(role models.UserRole) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *memUserRepo) CreateRefreshToken(token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *token
	r.tokens[token.Token] = &copied
	return nil
}

func (r *memUserRepo) FindRefreshToken(token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[token]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, repositories.ErrTokenNotFound
}

func (r *memUserRepo) DeleteRefreshToken(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

func (r *memUserRepo) DeleteUserRefreshTokens(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}

func (r *memUserRepo) CleanExpiredRefreshTokens() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for k, t := range r.tokens {
		if t.ExpiresAt.Before(now) {
			delete(r.tokens, k)
		}
	}
	return nil
}

// ---------------- creator applications ----------------

type memCreatorRepo struct {
	mu   sync.Mutex
	apps map[string]*models.CreatorApplication
	seq  int
}

func newMemCreatorRepo() *memCreatorRepo {
	return &memCreatorRepo{apps: make(map[string]*models.CreatorApplication)}
}

func (r *memCreatorRepo) Create(app *models.CreatorApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app.ID == "" {
		r.seq++
		app.ID = newID("app", r.seq)
	}
	app.CreatedAt = time.Now()
	copied := *app
	r.apps[app.ID] = &copied
	return nil
}

func (r *memCreatorRepo) FindByID(id string) (*models.CreatorApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app, ok := r.apps[id]; ok {
		copied := *app
		return &copied, nil
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *memCreatorRepo) FindByUserID(userID string) (*models.CreatorApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.UserID != nil && *app.UserID == userID {
			copied := *app
			return &copied, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *memCreatorRepo) FindGuestsByEmail(emailAddr string) ([]models.CreatorApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CreatorApplication
	for _, app := range r.apps {
		if app.UserID == nil && app.Email == emailAddr {
			out = append(out, *app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memCreatorRepo) Update(app *models.CreatorApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[app.ID]; !ok {
		return repositories.ErrApplicationNotFound
	}
	copied := *app
	r.apps[app.ID] = &copied
	return nil
}

func (r *memCreatorRepo) UpdateStatus(id string, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	app.Status = status
	return nil
}

func (r *memCreatorRepo) AssignUser(applicationID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[applicationID]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	if app.UserID != nil {
		return nil // guarded update: linked rows are untouched
	}
	uid := userID
	app.UserID = &uid
	return nil
}

func (r *memCreatorRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.apps, id)
	return nil
}

func (r *memCreatorRepo) FindApproved(filter repositories.CreatorFilter, limit, offset int) ([]models.CreatorApplication, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.CreatorApplication
	for _, app := range r.apps {
		if app.Status != models.ApplicationStatusApproved {
			continue
		}
		if filter.Country != "" && app.Country != filter.Country {
			continue
		}
		if filter.Language != "" && !containsLanguage(app, filter.Language) {
			continue
		}
		if filter.AvailableOnly && !app.Available {
			continue
		}
		matched = append(matched, *app)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginate(matched, limit, offset), int64(len(matched)), nil
}

func containsLanguage(app *models.CreatorApplication, language string) bool {
	for _, l := range fromJSONList(app.Languages) {
		if l == language {
			return true
		}
	}
	return false
}

func (r *memCreatorRepo) FindAll(status models.ApplicationStatus, limit, offset int) ([]models.CreatorApplication, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.CreatorApplication
	for _, app := range r.apps {
		if status != "" && app.Status != status {
			continue
		}
		matched = append(matched, *app)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginate(matched, limit, offset), int64(len(matched)), nil
}

func (r *memCreatorRepo) CountByStatus(status models.ApplicationStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, app := range r.apps {
		if app.Status == status {
			count++
		}
	}
	return count, nil
}

// ---------------- video requests ----------------

type memRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*models.VideoRequest
	seq      int
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{requests: make(map[string]*models.VideoRequest)}
}

func (r *memRequestRepo) Create(request *models.VideoRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if request.ID == "" {
		r.seq++
		request.ID = newID("req", r.seq)
	}
	request.CreatedAt = time.Now()
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

func (r *memRequestRepo) FindByID(id string) (*models.VideoRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req, ok := r.requests[id]; ok {
		copied := *req
		return &copied, nil
	}
	return nil, repositories.ErrRequestNotFound
}

func (r *memRequestRepo) Update(request *models.VideoRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[request.ID]; !ok {
		return repositories.ErrRequestNotFound
	}
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

func (r *memRequestRepo) FindByCreator(creatorID string, status models.RequestStatus, limit, offset int) ([]models.VideoRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.VideoRequest
	for _, req := range r.requests {
		if req.CreatorID != creatorID {
			continue
		}
		if status != "" && req.Status != status {
			continue
		}
		matched = append(matched, *req)
	}
	return paginate(matched, limit, offset), int64(len(matched)), nil
}

func (r *memRequestRepo) FindByFan(fanID string, limit, offset int) ([]models.VideoRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.VideoRequest
	for _, req := range r.requests {
		if req.FanID != nil && *req.FanID == fanID {
			matched = append(matched, *req)
		}
	}
	return paginate(matched, limit, offset), int64(len(matched)), nil
}

func (r *memRequestRepo) FindAllByCreator(creatorID string) ([]models.VideoRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.VideoRequest
	for _, req := range r.requests {
		if req.CreatorID == creatorID {
			matched = append(matched, *req)
		}
	}
	return matched, nil
}

func (r *memRequestRepo) FindAll(status models.RequestStatus, limit, offset int) ([]models.VideoRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.VideoRequest
	for _, req := range r.requests {
		if status != "" && req.Status != status {
			continue
		}
		matched = append(matched, *req)
	}
	return paginate(matched, limit, offset), int64(len(matched)), nil
}

func (r *memRequestRepo) CountByStatus(status models.RequestStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, req := range r.requests {
		if req.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *memRequestRepo) SumCompletedPrices() (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, req := range r.requests {
		if req.Status == models.RequestStatusCompleted {
			sum += req.TotalPrice
		}
	}
	return sum, nil
}

func (r *memRequestRepo) SumCompletedPricesByCreator(creatorID string, since time.Time) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, req := range r.requests {
		if req.CreatorID != creatorID || req.Status != models.RequestStatusCompleted {
			continue
		}
		if !since.IsZero() && req.UpdatedAt.Before(since) {
			continue
		}
		sum += req.TotalPrice
	}
	return sum, nil
}

func (r *memRequestRepo) CompletedCreatorIDs() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	var ids []string
	for _, req := range r.requests {
		if req.Status == models.RequestStatusCompleted && !seen[req.CreatorID] {
			seen[req.CreatorID] = true
			ids = append(ids, req.CreatorID)
		}
	}
	return ids, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// ---------------- earnings ----------------

type memEarningsRepo struct {
	mu   sync.Mutex
	rows map[string]*models.CreatorEarnings
}

func newMemEarningsRepo() *memEarningsRepo {
	return &memEarningsRepo{rows: make(map[string]*models.CreatorEarnings)}
}

func (r *memEarningsRepo) Upsert(earnings *models.CreatorEarnings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *earnings
	r.rows[earnings.CreatorID] = &copied
	return nil
}

func (r *memEarningsRepo) FindByCreator(creatorID string) (*models.CreatorEarnings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[creatorID]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, repositories.ErrEarningsNotFound
}

func (r *memEarningsRepo) FindAll(limit, offset int) ([]models.CreatorEarnings, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []models.CreatorEarnings
	for _, row := range r.rows {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TotalEarnings > rows[j].TotalEarnings })
	return paginate(rows, limit, offset), int64(len(rows)), nil
}

// ---------------- activity log ----------------

type memActivityRepo struct {
	mu      sync.Mutex
	entries []models.ActivityLog
	seq     int
}

func newMemActivityRepo() *memActivityRepo {
	return &memActivityRepo{}
}

func (r *memActivityRepo) Create(entry *models.ActivityLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	entry.ID = newID("act", r.seq)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memActivityRepo) FindRecent(limit, offset int) ([]models.ActivityLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reversed := make([]models.ActivityLog, len(r.entries))
	for i, e := range r.entries {
		reversed[len(r.entries)-1-i] = e
	}
	return paginate(reversed, limit, offset), int64(len(r.entries)), nil
}

func (r *memActivityRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

// ---------------- email ----------------

type fakeEmailProvider struct {
	mu   sync.Mutex
	sent []sentEmail
	fail error
}

type sentEmail struct {
	Template string
	To       []string
}

func (p *fakeEmailProvider) Send(msg *email.Email) error {
	return p.record("", msg)
}

func (p *fakeEmailProvider) SendWithTemplate(templateName string, _ email.TemplateData, msg *email.Email) error {
	return p.record(templateName, msg)
}

func (p *fakeEmailProvider) Validate() error { return nil }

func (p *fakeEmailProvider) record(template string, msg *email.Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return p.fail
	}
	p.sent = append(p.sent, sentEmail{Template: template, To: msg.To})
	return nil
}

// ---------------- storage ----------------

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	saveErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Save(_ context.Context, path string, reader io.Reader, _ string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = data
	return nil
}

func (s *fakeStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[path]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (s *fakeStorage) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	return nil
}

func (s *fakeStorage) Exists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[path]
	return ok, nil
}

func (s *fakeStorage) GetURL(_ context.Context, path string) (string, error) {
	return "https://cdn.test/" + path, nil
}

func (s *fakeStorage) GetSignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "https://cdn.test/" + path + "?signature=test", nil
}

func (s *fakeStorage) GetSize(_ context.Context, path string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.objects[path])), nil
}

// ---------------- change feed ----------------

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(collection, action, id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, collection+"/"+action+"/"+id)
}

func (p *recordingPublisher) all() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}
