package profile

import (
	"context"
	"database/sql"

	profileerrors "github.com/Berghsen/timeline/internal/profile/errors"
	"github.com/Berghsen/timeline/internal/shared/contextutil"
	"github.com/Berghsen/timeline/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	GetMe(ctx context.Context, userID string) (ProfileResponse, error)
	UpdateName(ctx context.Context, userID string, req UpdateNameRequest) (ProfileResponse, error)
	ListEmployees(ctx context.Context, page, pageSize int) ([]ProfileResponse, *response.PaginationMeta, error)
	UpdateTravelTime(ctx context.Context, targetUserID string, req UpdateTravelTimeRequest) (ProfileResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("profile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetMe(ctx context.Context, userID string) (ProfileResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidUserID
	}

	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("get profile failed", zap.String("user_id", userID), zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(p), nil
}

func (s *service) UpdateName(ctx context.Context, userID string, req UpdateNameRequest) (ProfileResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update name requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
	)

	if _, err := uuid.Parse(userID); err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update name begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("update name fetch existing failed", zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	p.FullName = req.FullName
	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update name persist failed", zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update name commit failed", zap.String("request_id", rid), zap.Error(err))
		return ProfileResponse{}, err
	}

	s.logger.Info("update name success", zap.String("user_id", userID))
	return mapToResponse(p), nil
}

func (s *service) ListEmployees(ctx context.Context, page, pageSize int) ([]ProfileResponse, *response.PaginationMeta, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	rows, total, err := s.repo.FindByRole(ctx, RoleEmployee, pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, nil, mapRepositoryError(err)
	}

	resp := make([]ProfileResponse, len(rows))
	for i, p := range rows {
		resp[i] = mapToResponse(&p)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	return resp, &meta, nil
}

func (s *service) UpdateTravelTime(ctx context.Context, targetUserID string, req UpdateTravelTimeRequest) (ProfileResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update travel time requested",
		zap.String("request_id", rid),
		zap.String("user_id", targetUserID),
	)

	if _, err := uuid.Parse(targetUserID); err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidUserID
	}
	if req.TravelTimeMinutes == nil || *req.TravelTimeMinutes < 0 {
		return ProfileResponse{}, profileerrors.ErrInvalidTravelTime
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update travel time begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.GetByID(ctx, targetUserID)
	if err != nil {
		s.logger.Error("update travel time fetch existing failed", zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	p.TravelTimeMinutes = *req.TravelTimeMinutes
	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update travel time persist failed", zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update travel time commit failed", zap.String("request_id", rid), zap.Error(err))
		return ProfileResponse{}, err
	}

	s.logger.Info("update travel time success",
		zap.String("user_id", targetUserID),
		zap.Int("travel_time_minutes", p.TravelTimeMinutes),
	)
	return mapToResponse(p), nil
}

func mapToResponse(p *UserProfile) ProfileResponse {
	return ProfileResponse{
		ID:                p.ID.String(),
		Email:             p.Email,
		FullName:          p.FullName,
		Role:              p.Role,
		TravelTimeMinutes: p.TravelTimeMinutes,
	}
}
