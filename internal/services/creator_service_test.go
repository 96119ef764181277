package services

import (
	"testing"

	"vlinky_backend/internal/models"
	"vlinky_backend/internal/repositories"
	"vlinky_backend/internal/services/dto"
	"vlinky_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type creatorFixture struct {
	service   CreatorService
	users     *memUserRepo
	creators  *memCreatorRepo
	requests  *memRequestRepo
	earnings  *memEarningsRepo
	activity  *memActivityRepo
	emailer   *fakeEmailProvider
	publisher *recordingPublisher
}

func newCreatorFixture(t *testing.T) *creatorFixture {
	t.Helper()
	users := newMemUserRepo()
	creators := newMemCreatorRepo()
	requests := newMemRequestRepo()
	earnings := newMemEarningsRepo()
	activity := newMemActivityRepo()
	emailer := &fakeEmailProvider{}
	publisher := &recordingPublisher{}

	return &creatorFixture{
		service:   NewCreatorService(creators, users, requests, earnings, activity, emailer, publisher),
		users:     users,
		creators:  creators,
		requests:  requests,
		earnings:  earnings,
		activity:  activity,
		emailer:   emailer,
		publisher: publisher,
	}
}

func validApplication() *dto.CreateApplicationRequest {
	return &dto.CreateApplicationRequest{
		DisplayName:    "Rina",
		Email:          "rina@example.com",
		Country:        "JP",
		Languages:      []string{"Japanese", "English"},
		Platforms:      []string{"YouTube"},
		FollowerBucket: "10k-50k",
		BasePrice:      35,
		TurnaroundDays: 5,
		Available:      true,
		TermsAgreed:    true,
	}
}

func (f *creatorFixture) seedUser(t *testing.T, emailAddr string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{Name: "Test", Email: emailAddr, Role: role, Status: models.UserStatusActive}
	require.NoError(t, f.users.Create(user))
	return user
}

func TestApply_RequiresTermsAndPlatform(t *testing.T) {
	f := newCreatorFixture(t)

	req := validApplication()
	req.TermsAgreed = false
	_, err := f.service.Apply(nil, req)
	require.Error(t, err)

	req = validApplication()
	req.Platforms = nil
	_, err = f.service.Apply(nil, req)
	require.Error(t, err)
}

func TestApply_GuestSubmission(t *testing.T) {
	f := newCreatorFixture(t)

	app, err := f.service.Apply(nil, validApplication())
	require.NoError(t, err)

	assert.Nil(t, app.UserID)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	assert.Equal(t, models.ContentRightsSelf, app.ContentRights) // default
	assert.Equal(t, []string{"Japanese", "English"}, app.Languages)
}

func TestApply_ResubmissionUpdatesPendingApplication(t *testing.T) {
	f := newCreatorFixture(t)
	user := f.seedUser(t, "rina@example.com", models.UserRoleFan)

	first, err := f.service.Apply(&user.ID, validApplication())
	require.NoError(t, err)

	updated := validApplication()
	updated.BasePrice = 50
	second, err := f.service.Apply(&user.ID, updated)
	require.NoError(t, err)

	// Pending applications are updated in place, not duplicated.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 50.0, second.BasePrice)

	// Once decided, the account cannot apply again.
	admin := f.seedUser(t, "admin@example.com", models.UserRoleAdmin)
	require.NoError(t, f.service.Approve(admin.ID, first.ID))

	_, err = f.service.Apply(&user.ID, validApplication())
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestApprovalWorkflow(t *testing.T) {
	f := newCreatorFixture(t)
	user := f.seedUser(t, "rina@example.com", models.UserRoleFan)
	admin := f.seedUser(t, "admin@example.com", models.UserRoleAdmin)

	app, err := f.service.Apply(&user.ID, validApplication())
	require.NoError(t, err)

	// Not discoverable while pending.
	_, err = f.service.GetCreatorCard(app.ID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	require.NoError(t, f.service.Approve(admin.ID, app.ID))

	// Approval promotes the linked account and makes the profile public.
	promoted, err := f.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleCreator, promoted.Role)

	card, err := f.service.GetCreatorCard(app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rina", card.DisplayName)
	assert.Equal(t, 35.0, card.BasePrice)

	// Decisions are recorded and announced.
	assert.Contains(t, f.activity.actions(), "application_approved")
	require.Len(t, f.emailer.sent, 1)
	assert.Equal(t, "application_approved", f.emailer.sent[0].Template)

	// Approved is terminal for the workflow.
	err = f.service.Reject(admin.ID, app.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)
}

func TestReject_SendsRejectionEmail(t *testing.T) {
	f := newCreatorFixture(t)
	admin := f.seedUser(t, "admin@example.com", models.UserRoleAdmin)

	app, err := f.service.Apply(nil, validApplication())
	require.NoError(t, err)

	require.NoError(t, f.service.Reject(admin.ID, app.ID))

	require.Len(t, f.emailer.sent, 1)
	assert.Equal(t, "application_rejected", f.emailer.sent[0].Template)
	assert.Contains(t, f.activity.actions(), "application_rejected")
}

func TestDecisionSurvivesEmailFailure(t *testing.T) {
	f := newCreatorFixture(t)
	f.emailer.fail = assert.AnError
	admin := f.seedUser(t, "admin@example.com", models.UserRoleAdmin)

	app, err := f.service.Apply(nil, validApplication())
	require.NoError(t, err)

	require.NoError(t, f.service.Approve(admin.ID, app.ID))

	stored, err := f.creators.FindByID(app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, stored.Status)
}

func TestListApproved_FiltersAndHidesPending(t *testing.T) {
	f := newCreatorFixture(t)
	admin := f.seedUser(t, "admin@example.com", models.UserRoleAdmin)

	approved, err := f.service.Apply(nil, validApplication())
	require.NoError(t, err)
	require.NoError(t, f.service.Approve(admin.ID, approved.ID))

	pending := validApplication()
	pending.DisplayName = "Hidden"
	pending.Email = "hidden@example.com"
	_, err = f.service.Apply(nil, pending)
	require.NoError(t, err)

	list, err := f.service.ListApproved(repositories.CreatorFilter{}, 1, 20)
	require.NoError(t, err)
	require.Len(t, list.Creators, 1)
	assert.Equal(t, "Rina", list.Creators[0].DisplayName)

	filtered, err := f.service.ListApproved(repositories.CreatorFilter{Language: "Japanese"}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, filtered.Creators, 1)

	none, err := f.service.ListApproved(repositories.CreatorFilter{Language: "Korean"}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, none.Creators, 0)
}

func TestUpdateProfile_ApprovedOnly(t *testing.T) {
	f := newCreatorFixture(t)
	user := f.seedUser(t, "rina@example.com", models.UserRoleFan)
	admin := f.seedUser(t, "admin@example.com", models.UserRoleAdmin)

	app, err := f.service.Apply(&user.ID, validApplication())
	require.NoError(t, err)

	newPrice := 60.0
	_, err = f.service.UpdateProfile(user.ID, &dto.UpdateProfileRequest{BasePrice: &newPrice})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)

	require.NoError(t, f.service.Approve(admin.ID, app.ID))

	updated, err := f.service.UpdateProfile(user.ID, &dto.UpdateProfileRequest{BasePrice: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 60.0, updated.BasePrice)
	// Untouched fields keep their values.
	assert.Equal(t, "Rina", updated.DisplayName)
}

func TestReconcileGuestApplications(t *testing.T) {
	f := newCreatorFixture(t)
	admin := f.seedUser(t, "admin@example.com", models.UserRoleAdmin)
	user := f.seedUser(t, "rina@example.com", models.UserRoleFan)

	guest, err := f.service.Apply(nil, validApplication())
	require.NoError(t, err)
	require.Nil(t, guest.UserID)

	// A guest application with a different email stays untouched.
	other := validApplication()
	other.Email = "other@example.com"
	otherApp, err := f.service.Apply(nil, other)
	require.NoError(t, err)

	linked, err := f.service.ReconcileGuestApplications(admin.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, guest.ID, linked[0].ID)
	require.NotNil(t, linked[0].UserID)
	assert.Equal(t, user.ID, *linked[0].UserID)

	untouched, err := f.creators.FindByID(otherApp.ID)
	require.NoError(t, err)
	assert.Nil(t, untouched.UserID)

	// Every link leaves an audit trail.
	assert.Contains(t, f.activity.actions(), "guest_application_linked")

	// A second run has nothing to link: the account already has an application.
	again, err := f.service.ReconcileGuestApplications(admin.ID, user.ID)
	require.NoError(t, err)
	assert.Len(t, again, 0)
}

func TestReconcile_SkipsWhenAccountHasApplication(t *testing.T) {
	f := newCreatorFixture(t)
	admin := f.seedUser(t, "admin@example.com", models.UserRoleAdmin)
	user := f.seedUser(t, "rina@example.com", models.UserRoleFan)

	// The account already applied itself.
	_, err := f.service.Apply(&user.ID, validApplication())
	require.NoError(t, err)

	// A stray guest submission with the same email is left unlinked.
	guest, err := f.service.Apply(nil, validApplication())
	require.NoError(t, err)

	linked, err := f.service.ReconcileGuestApplications(admin.ID, user.ID)
	require.NoError(t, err)
	assert.Len(t, linked, 0)

	stored, err := f.creators.FindByID(guest.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.UserID)
}

func TestGetOwnEarnings(t *testing.T) {
	f := newCreatorFixture(t)
	admin := f.seedUser(t, "admin@example.com", models.UserRoleAdmin)
	user := f.seedUser(t, "rina@example.com", models.UserRoleFan)

	app, err := f.service.Apply(&user.ID, validApplication())
	require.NoError(t, err)
	require.NoError(t, f.service.Approve(admin.ID, app.ID))

	// Before the worker has run: zeros, not an error.
	empty, err := f.service.GetOwnEarnings(user.ID)
	require.NoError(t, err)
	assert.Equal(t, app.ID, empty.CreatorID)
	assert.Equal(t, 0.0, empty.TotalEarnings)

	require.NoError(t, f.earnings.Upsert(&models.CreatorEarnings{
		CreatorID:     app.ID,
		TotalEarnings: 800,
		MonthEarnings: 160,
		PendingPayout: 160,
	}))

	earned, err := f.service.GetOwnEarnings(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 800.0, earned.TotalEarnings)
	assert.Equal(t, 160.0, earned.PendingPayout)
}

func TestCreatorCardIncludesRatings(t *testing.T) {
	f := newCreatorFixture(t)
	admin := f.seedUser(t, "admin@example.com", models.UserRoleAdmin)

	app, err := f.service.Apply(nil, validApplication())
	require.NoError(t, err)
	require.NoError(t, f.service.Approve(admin.ID, app.ID))

	four, five := 4, 5
	seed := []models.VideoRequest{
		{CreatorID: app.ID, FanName: "A", FanEmail: "a@example.com", Status: models.RequestStatusCompleted, Rating: &four},
		{CreatorID: app.ID, FanName: "B", FanEmail: "b@example.com", Status: models.RequestStatusCompleted, Rating: &five},
		{CreatorID: app.ID, FanName: "C", FanEmail: "c@example.com", Status: models.RequestStatusCompleted},
		{CreatorID: app.ID, FanName: "D", FanEmail: "d@example.com", Status: models.RequestStatusDeclined},
	}
	for i := range seed {
		require.NoError(t, f.requests.Create(&seed[i]))
	}

	card, err := f.service.GetCreatorCard(app.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, card.AverageRating)
	assert.Equal(t, int64(3), card.CompletedOrders)
}
