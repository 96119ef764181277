package services

import (
	"encoding/json"

	"vlinky_backend/internal/models"
	"vlinky_backend/internal/repositories"
	"vlinky_backend/internal/services/dto"
	"vlinky_backend/pkg/apperrors"
)

// AdminService serves the admin dashboard: platform-wide revenue, per-creator
// earnings, the activity trail, and the full request ledger.
type AdminService interface {
	PlatformStats() (*dto.PlatformStatsResponse, error)
	ListEarnings(page, pageSize int) (*dto.EarningsListResponse, error)
	GetCreatorEarnings(creatorID string) (*dto.EarningsResponse, error)
	ListActivity(page, pageSize int) (*dto.ActivityLogListResponse, error)
	ListRequests(status models.RequestStatus, page, pageSize int) (*dto.RequestListResponse, error)
}

type adminService struct {
	requestRepo  repositories.RequestRepository
	creatorRepo  repositories.CreatorRepository
	earningsRepo repositories.EarningsRepository
	activityRepo repositories.ActivityRepository
	feePercent   float64
}

func NewAdminService(
	requestRepo repositories.RequestRepository,
	creatorRepo repositories.CreatorRepository,
	earningsRepo repositories.EarningsRepository,
	activityRepo repositories.ActivityRepository,
	feePercent float64,
) AdminService {
	return &adminService{
		requestRepo:  requestRepo,
		creatorRepo:  creatorRepo,
		earningsRepo: earningsRepo,
		activityRepo: activityRepo,
		feePercent:   feePercent,
	}
}

func (s *adminService) PlatformStats() (*dto.PlatformStatsResponse, error) {
	revenue, err := s.requestRepo.SumCompletedPrices()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	completed, err := s.requestRepo.CountByStatus(models.RequestStatusCompleted)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	pending, err := s.requestRepo.CountByStatus(models.RequestStatusPending)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	approved, err := s.creatorRepo.CountByStatus(models.ApplicationStatusApproved)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	pendingApps, err := s.creatorRepo.CountByStatus(models.ApplicationStatusPending)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.PlatformStatsResponse{
		Revenue:             revenue,
		PlatformFee:         revenue * s.feePercent / 100,
		FeePercent:          s.feePercent,
		CompletedOrders:     completed,
		PendingRequests:     pending,
		ApprovedCreators:    approved,
		PendingApplications: pendingApps,
	}, nil
}

func (s *adminService) ListEarnings(page, pageSize int) (*dto.EarningsListResponse, error) {
	offset := (page - 1) * pageSize
	rows, total, err := s.earningsRepo.FindAll(pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.EarningsResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, earningsToDTO(&rows[i]))
	}
	return &dto.EarningsListResponse{
		Earnings:   responses,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *adminService) GetCreatorEarnings(creatorID string) (*dto.EarningsResponse, error) {
	row, err := s.earningsRepo.FindByCreator(creatorID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	resp := earningsToDTO(row)
	return &resp, nil
}

func (s *adminService) ListActivity(page, pageSize int) (*dto.ActivityLogListResponse, error) {
	offset := (page - 1) * pageSize
	entries, total, err := s.activityRepo.FindRecent(pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ActivityLogResponse, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		var data interface{}
		if len(entry.Data) > 0 {
			_ = json.Unmarshal(entry.Data, &data)
		}
		responses = append(responses, dto.ActivityLogResponse{
			ID:        entry.ID,
			AdminID:   entry.AdminID,
			Action:    entry.Action,
			Target:    entry.Target,
			Data:      data,
			CreatedAt: entry.CreatedAt,
		})
	}
	return &dto.ActivityLogListResponse{
		Entries:    responses,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *adminService) ListRequests(status models.RequestStatus, page, pageSize int) (*dto.RequestListResponse, error) {
	offset := (page - 1) * pageSize
	requests, total, err := s.requestRepo.FindAll(status, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildRequestList(requests, total, pageSize), nil
}

func earningsToDTO(row *models.CreatorEarnings) dto.EarningsResponse {
	return dto.EarningsResponse{
		CreatorID:      row.CreatorID,
		TotalEarnings:  row.TotalEarnings,
		PendingPayout:  row.PendingPayout,
		MonthEarnings:  row.MonthEarnings,
		NextPayoutDate: row.NextPayoutDate,
	}
}
