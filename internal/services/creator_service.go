package services

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"

	"vlinky_backend/internal/algorithms"
	"vlinky_backend/internal/email"
	"vlinky_backend/internal/logger"
	"vlinky_backend/internal/models"
	"vlinky_backend/internal/repositories"
	"vlinky_backend/internal/services/dto"
	"vlinky_backend/pkg/apperrors"
)

// CreatorService owns the creator application lifecycle: submission, the
// admin-only pending -> approved/rejected workflow, approved-only discovery,
// and approved-only profile edits.
type CreatorService interface {
	// Submission (fan-facing registration flow, guest or authenticated)
	Apply(userID *string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error)

	// Discovery (fan-facing; approved applications only)
	ListApproved(filter repositories.CreatorFilter, page, pageSize int) (*dto.CreatorListResponse, error)
	GetCreatorCard(creatorID string) (*dto.CreatorCard, error)

	// Creator dashboard
	GetOwnApplication(userID string) (*dto.ApplicationResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.ApplicationResponse, error)
	GetOwnEarnings(userID string) (*dto.EarningsResponse, error)

	// Admin workflow
	ListApplications(status models.ApplicationStatus, page, pageSize int) (*dto.ApplicationListResponse, error)
	Approve(adminID, applicationID string) error
	Reject(adminID, applicationID string) error
	ReconcileGuestApplications(adminID, userID string) ([]dto.ApplicationResponse, error)
	DeleteApplication(adminID, applicationID string) error
}

type creatorService struct {
	creatorRepo  repositories.CreatorRepository
	userRepo     repositories.UserRepository
	requestRepo  repositories.RequestRepository
	earningsRepo repositories.EarningsRepository
	activityRepo repositories.ActivityRepository
	emailer      email.Provider
	publisher    ChangePublisher
}

func NewCreatorService(
	creatorRepo repositories.CreatorRepository,
	userRepo repositories.UserRepository,
	requestRepo repositories.RequestRepository,
	earningsRepo repositories.EarningsRepository,
	activityRepo repositories.ActivityRepository,
	emailer email.Provider,
	publisher ChangePublisher,
) CreatorService {
	return &creatorService{
		creatorRepo:  creatorRepo,
		userRepo:     userRepo,
		requestRepo:  requestRepo,
		earningsRepo: earningsRepo,
		activityRepo: activityRepo,
		emailer:      emailer,
		publisher:    publisher,
	}
}

// ---------------- Submission ----------------

func (s *creatorService) Apply(userID *string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	if !req.TermsAgreed {
		return nil, apperrors.NewBadRequestError("Terms must be agreed")
	}
	if len(req.Platforms) == 0 {
		return nil, apperrors.NewBadRequestError("At least one platform is required")
	}

	contentRights := models.ContentRights(req.ContentRights)
	if req.ContentRights == "" {
		contentRights = models.ContentRightsSelf
	}

	// Insert-vs-update by identity: an authenticated creator has at most one
	// application. Guest submissions always insert.
	if userID != nil {
		if existing, err := s.creatorRepo.FindByUserID(*userID); err == nil {
			if existing.Status != models.ApplicationStatusPending {
				return nil, apperrors.ErrConflict(repositories.ErrApplicationExists,
					"creator", "An application already exists for this account")
			}
			s.fillApplication(existing, req, contentRights)
			if err := s.creatorRepo.Update(existing); err != nil {
				return nil, apperrors.InternalError(err)
			}
			s.publisher.Publish("creator_applications", "updated", existing.ID)
			return applicationToDTO(existing), nil
		}
	}

	app := &models.CreatorApplication{UserID: userID}
	s.fillApplication(app, req, contentRights)
	app.Status = models.ApplicationStatusPending

	if err := s.creatorRepo.Create(app); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.publisher.Publish("creator_applications", "created", app.ID)
	return applicationToDTO(app), nil
}

func (s *creatorService) fillApplication(app *models.CreatorApplication, req *dto.CreateApplicationRequest, rights models.ContentRights) {
	app.DisplayName = req.DisplayName
	app.Email = req.Email
	app.Country = req.Country
	app.Languages = toJSONList(req.Languages)
	app.Platforms = toJSONList(req.Platforms)
	app.FollowerBucket = req.FollowerBucket
	app.BasePrice = req.BasePrice
	app.TurnaroundDays = req.TurnaroundDays
	app.Available = req.Available
	app.ProfileImageURL = req.ProfileImageURL
	app.IntroVideoURL = req.IntroVideoURL
	app.AgencyAffiliate = req.AgencyAffiliate
	app.ContentRights = rights
	app.TermsAgreed = req.TermsAgreed
}

// ---------------- Discovery ----------------

func (s *creatorService) ListApproved(filter repositories.CreatorFilter, page, pageSize int) (*dto.CreatorListResponse, error) {
	offset := (page - 1) * pageSize
	apps, total, err := s.creatorRepo.FindApproved(filter, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cards := make([]dto.CreatorCard, 0, len(apps))
	for i := range apps {
		card, err := s.buildCard(&apps[i])
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}

	return &dto.CreatorListResponse{
		Creators:   cards,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// GetCreatorCard returns the public view of an approved creator. Applications
// in any other status are invisible here, indistinguishable from absent.
func (s *creatorService) GetCreatorCard(creatorID string) (*dto.CreatorCard, error) {
	app, err := s.creatorRepo.FindByID(creatorID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if !app.IsApproved() {
		return nil, apperrors.ErrNotFound(repositories.ErrApplicationNotFound)
	}
	return s.buildCard(app)
}

func (s *creatorService) buildCard(app *models.CreatorApplication) (*dto.CreatorCard, error) {
	requests, err := s.requestRepo.FindAllByCreator(app.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	summary := algorithms.AggregateRatings(requests)

	return &dto.CreatorCard{
		ID:              app.ID,
		DisplayName:     app.DisplayName,
		Country:         app.Country,
		Languages:       fromJSONList(app.Languages),
		Platforms:       fromJSONList(app.Platforms),
		BasePrice:       app.BasePrice,
		TurnaroundDays:  app.TurnaroundDays,
		Available:       app.Available,
		ProfileImageURL: app.ProfileImageURL,
		IntroVideoURL:   app.IntroVideoURL,
		AverageRating:   summary.AverageRating,
		CompletedOrders: summary.CompletedOrders,
	}, nil
}

// ---------------- Creator dashboard ----------------

func (s *creatorService) GetOwnApplication(userID string) (*dto.ApplicationResponse, error) {
	app, err := s.creatorRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return applicationToDTO(app), nil
}

func (s *creatorService) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.ApplicationResponse, error) {
	app, err := s.creatorRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if !app.IsApproved() {
		return nil, apperrors.ErrInvalidOperation("creator", "Profile can only be edited after approval")
	}

	if req.DisplayName != nil {
		app.DisplayName = *req.DisplayName
	}
	if req.Country != nil {
		app.Country = *req.Country
	}
	if req.Languages != nil {
		app.Languages = toJSONList(req.Languages)
	}
	if req.Platforms != nil {
		app.Platforms = toJSONList(req.Platforms)
	}
	if req.FollowerBucket != nil {
		app.FollowerBucket = *req.FollowerBucket
	}
	if req.BasePrice != nil {
		app.BasePrice = *req.BasePrice
	}
	if req.TurnaroundDays != nil {
		app.TurnaroundDays = *req.TurnaroundDays
	}
	if req.Available != nil {
		app.Available = *req.Available
	}
	if req.ProfileImageURL != nil {
		app.ProfileImageURL = *req.ProfileImageURL
	}
	if req.IntroVideoURL != nil {
		app.IntroVideoURL = *req.IntroVideoURL
	}

	if err := s.creatorRepo.Update(app); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.publisher.Publish("creator_applications", "updated", app.ID)
	return applicationToDTO(app), nil
}

// GetOwnEarnings returns the creator's stored earnings aggregate. A creator
// the worker has not reached yet sees zeros, not an error.
func (s *creatorService) GetOwnEarnings(userID string) (*dto.EarningsResponse, error) {
	app, err := s.creatorRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	row, err := s.earningsRepo.FindByCreator(app.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrEarningsNotFound) {
			return &dto.EarningsResponse{CreatorID: app.ID}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.EarningsResponse{
		CreatorID:      row.CreatorID,
		TotalEarnings:  row.TotalEarnings,
		PendingPayout:  row.PendingPayout,
		MonthEarnings:  row.MonthEarnings,
		NextPayoutDate: row.NextPayoutDate,
	}, nil
}

// ---------------- Admin workflow ----------------

func (s *creatorService) ListApplications(status models.ApplicationStatus, page, pageSize int) (*dto.ApplicationListResponse, error) {
	offset := (page - 1) * pageSize
	apps, total, err := s.creatorRepo.FindAll(status, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, *applicationToDTO(&apps[i]))
	}

	return &dto.ApplicationListResponse{
		Applications: responses,
		Total:        total,
		TotalPages:   totalPages(total, pageSize),
	}, nil
}

func (s *creatorService) Approve(adminID, applicationID string) error {
	return s.decide(adminID, applicationID, models.ApplicationStatusApproved)
}

func (s *creatorService) Reject(adminID, applicationID string) error {
	return s.decide(adminID, applicationID, models.ApplicationStatusRejected)
}

func (s *creatorService) decide(adminID, applicationID string, decision models.ApplicationStatus) error {
	app, err := s.creatorRepo.FindByID(applicationID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if app.Status != models.ApplicationStatusPending {
		return apperrors.ErrInvalidTransition("creator",
			"Application has already been decided")
	}

	if err := s.creatorRepo.UpdateStatus(applicationID, decision); err != nil {
		return apperrors.InternalError(err)
	}

	// Approval grants creator-dashboard access to the linked account.
	if decision == models.ApplicationStatusApproved && app.UserID != nil {
		if err := s.userRepo.UpdateRole(*app.UserID, models.UserRoleCreator); err != nil {
			logger.WithError(err).Warn("failed to promote user to creator role", "user_id", *app.UserID)
		}
	}

	s.logAdminAction(adminID, "application_"+string(decision), applicationID, map[string]string{
		"display_name": app.DisplayName,
	})
	s.notifyDecision(app, decision)
	s.publisher.Publish("creator_applications", "updated", applicationID)
	return nil
}

// ReconcileGuestApplications links unclaimed guest applications that share the
// user's email to that account. This is an explicit admin action and every
// link is activity-logged; nothing is merged silently on lookup.
func (s *creatorService) ReconcileGuestApplications(adminID, userID string) ([]dto.ApplicationResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	guests, err := s.creatorRepo.FindGuestsByEmail(user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	linked := make([]dto.ApplicationResponse, 0, len(guests))
	for i := range guests {
		guest := &guests[i]

		// An account keeps at most one application; skip the rest.
		if _, err := s.creatorRepo.FindByUserID(userID); err == nil {
			logger.Info("guest application left unlinked, account already has one",
				"application_id", guest.ID, "user_id", userID)
			continue
		}

		if err := s.creatorRepo.AssignUser(guest.ID, userID); err != nil {
			return nil, apperrors.InternalError(err)
		}
		guest.UserID = &userID

		s.logAdminAction(adminID, "guest_application_linked", guest.ID, map[string]string{
			"user_id": userID,
			"email":   user.Email,
		})
		linked = append(linked, *applicationToDTO(guest))
	}

	return linked, nil
}

func (s *creatorService) DeleteApplication(adminID, applicationID string) error {
	if _, err := s.creatorRepo.FindByID(applicationID); err != nil {
		return apperrors.ErrNotFound(err)
	}
	if err := s.creatorRepo.Delete(applicationID); err != nil {
		return apperrors.InternalError(err)
	}
	s.logAdminAction(adminID, "application_deleted", applicationID, nil)
	s.publisher.Publish("creator_applications", "updated", applicationID)
	return nil
}

// ---------------- Internals ----------------

func (s *creatorService) logAdminAction(adminID, action, target string, data map[string]string) {
	var raw datatypes.JSON
	if data != nil {
		encoded, _ := json.Marshal(data)
		raw = datatypes.JSON(encoded)
	}
	entry := &models.ActivityLog{
		AdminID: adminID,
		Action:  action,
		Target:  target,
		Data:    raw,
	}
	if err := s.activityRepo.Create(entry); err != nil {
		logger.WithError(err).Warn("failed to write activity log", "action", action)
	}
}

func (s *creatorService) notifyDecision(app *models.CreatorApplication, decision models.ApplicationStatus) {
	template := email.TemplateApplicationApproved
	subject := "Your VLINKY application was approved"
	if decision == models.ApplicationStatusRejected {
		template = email.TemplateApplicationRejected
		subject = "About your VLINKY application"
	}

	err := s.emailer.SendWithTemplate(template, email.TemplateData{
		"DisplayName": app.DisplayName,
	}, &email.Email{
		To:      []string{app.Email},
		Subject: subject,
	})
	if err != nil {
		// Notification failure never affects the decision itself.
		logger.WithError(err).Warn("failed to send decision email", "application_id", app.ID)
	}
}

func applicationToDTO(app *models.CreatorApplication) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:              app.ID,
		UserID:          app.UserID,
		DisplayName:     app.DisplayName,
		Email:           app.Email,
		Country:         app.Country,
		Languages:       fromJSONList(app.Languages),
		Platforms:       fromJSONList(app.Platforms),
		FollowerBucket:  app.FollowerBucket,
		BasePrice:       app.BasePrice,
		TurnaroundDays:  app.TurnaroundDays,
		Available:       app.Available,
		ProfileImageURL: app.ProfileImageURL,
		IntroVideoURL:   app.IntroVideoURL,
		AgencyAffiliate: app.AgencyAffiliate,
		ContentRights:   app.ContentRights,
		Status:          app.Status,
		CreatedAt:       app.CreatedAt,
	}
}
