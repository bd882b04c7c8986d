package auth

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	autherrors "github.com/Berghsen/timeline/internal/auth/errors"
	"github.com/Berghsen/timeline/internal/profile"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	profileRepo profile.Repository
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, profileRepo profile.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{db: db, repo: repo, profileRepo: profileRepo, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	prof, err := s.profileRepo.GetByID(ctx, user.ID.String())
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	accessToken, _ := s.generateToken(user.ID.String(), prof.Role, accessTokenTTL)
	refreshToken, _ := s.generateToken(user.ID.String(), prof.Role, refreshTokenTTL)

	s.logger.Info("login success", zap.String("user_id", user.ID.String()), zap.String("role", prof.Role))

	return accessToken, refreshToken, mapToResponse(prof), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	prof, err := s.profileRepo.GetByID(ctx, user.ID.String())
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	newAccess, _ := s.generateToken(user.ID.String(), prof.Role, accessTokenTTL)
	newRefresh, _ := s.generateToken(user.ID.String(), prof.Role, refreshTokenTTL)

	return newAccess, newRefresh, mapToResponse(prof), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	prof, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, err
	}
	resp := mapToResponse(prof)
	return &resp, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return AuthResponse{}, autherrors.ErrEmailTaken
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AuthResponse{}, err
	}
	defer tx.Rollback()

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.repo.WithTx(tx).Create(ctx, user); err != nil {
		return AuthResponse{}, err
	}

	// New accounts always start as employees; an admin is promoted in the
	// database, never through the API.
	prof := &profile.UserProfile{
		ID:       user.ID,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     profile.RoleEmployee,
	}
	if err := s.profileRepo.WithTx(tx).Create(ctx, prof); err != nil {
		return AuthResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AuthResponse{}, err
	}

	s.logger.Info("register success", zap.String("user_id", user.ID.String()))

	return mapToResponse(prof), nil
}

func (s *service) generateToken(userID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToResponse(p *profile.UserProfile) AuthResponse {
	return AuthResponse{
		ID:                p.ID.String(),
		Email:             p.Email,
		FullName:          p.FullName,
		Role:              p.Role,
		TravelTimeMinutes: p.TravelTimeMinutes,
	}
}
