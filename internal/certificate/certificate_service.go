package certificate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	certificateerrors "github.com/Berghsen/timeline/internal/certificate/errors"
	"github.com/Berghsen/timeline/internal/events"
	"github.com/Berghsen/timeline/internal/messaging/kafka"
	"github.com/Berghsen/timeline/internal/profile"
	"github.com/Berghsen/timeline/internal/shared/contextutil"
	"github.com/Berghsen/timeline/internal/timeacct"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const MaxFileSizeBytes = 10 << 20

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

type Service interface {
	Upload(ctx context.Context, userID string, req UploadCertificateRequest, file io.Reader) (CertificateResponse, error)
	ListForUser(ctx context.Context, userID string) ([]CertificateResponse, error)
	Delete(ctx context.Context, actorID, actorRole, id string) error
	Download(ctx context.Context, actorID, actorRole, id string) (*Certificate, io.ReadCloser, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	storage Storage
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, storage Storage, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, storage, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	storage Storage,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("certificate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("certificate.service")
	}
	return &service{db: db, repo: repo, storage: storage, outbox: outboxRepo, logger: l}
}

func (s *service) Upload(ctx context.Context, userID string, req UploadCertificateRequest, file io.Reader) (CertificateResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("upload certificate requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("file_name", req.FileName),
		zap.Int64("size_bytes", req.SizeBytes),
	)

	uid, err := uuid.Parse(userID)
	if err != nil {
		return CertificateResponse{}, certificateerrors.ErrInvalidUserID
	}

	if err := validatePeriod(req.StartDate, req.EndDate); err != nil {
		return CertificateResponse{}, err
	}

	ext := strings.ToLower(filepath.Ext(req.FileName))
	if !allowedExtensions[ext] {
		return CertificateResponse{}, certificateerrors.ErrUnsupportedFileType
	}
	if req.SizeBytes <= 0 {
		return CertificateResponse{}, certificateerrors.ErrMissingFile
	}
	if req.SizeBytes > MaxFileSizeBytes {
		return CertificateResponse{}, certificateerrors.ErrFileTooLarge
	}

	storedPath, err := s.storage.Save(userID, ext, io.LimitReader(file, MaxFileSizeBytes))
	if err != nil {
		s.logger.Error("store certificate file failed", zap.String("request_id", rid), zap.Error(err))
		return CertificateResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.storage.Remove(storedPath)
		return CertificateResponse{}, err
	}
	defer tx.Rollback()

	cert := &Certificate{
		ID:          uuid.New(),
		UserID:      uid,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Comment:     req.Comment,
		FileName:    req.FileName,
		StoredPath:  storedPath,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, cert); err != nil {
		s.storage.Remove(storedPath)
		s.logger.Error("create certificate persist failed", zap.Error(err))
		return CertificateResponse{}, mapRepositoryError(err)
	}

	if err := s.queueLifecycleEvent(ctx, tx, events.CertificateUploaded, cert, rid); err != nil {
		s.storage.Remove(storedPath)
		return CertificateResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.storage.Remove(storedPath)
		s.logger.Error("upload certificate commit failed", zap.String("request_id", rid), zap.Error(err))
		return CertificateResponse{}, err
	}

	s.logger.Info("upload certificate success",
		zap.String("request_id", rid),
		zap.String("certificate_id", cert.ID.String()),
	)
	return mapToResponse(*cert), nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]CertificateResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, certificateerrors.ErrInvalidUserID
	}

	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list certificates failed", zap.String("user_id", userID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]CertificateResponse, len(rows))
	for i, cert := range rows {
		resp[i] = mapToResponse(cert)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, actorID, actorRole, id string) error {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return certificateerrors.ErrInvalidCertificateID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	cert, err := qtx.GetByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := authorize(actorID, actorRole, cert); err != nil {
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete certificate failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.queueLifecycleEvent(ctx, tx, events.CertificateDeleted, cert, rid); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete certificate commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	// The row is gone either way; a leftover file only wastes disk.
	if err := s.storage.Remove(cert.StoredPath); err != nil {
		s.logger.Warn("remove certificate file failed",
			zap.String("certificate_id", id),
			zap.String("stored_path", cert.StoredPath),
			zap.Error(err),
		)
	}

	s.logger.Info("delete certificate success",
		zap.String("request_id", rid),
		zap.String("certificate_id", id),
	)
	return nil
}

func (s *service) Download(ctx context.Context, actorID, actorRole, id string) (*Certificate, io.ReadCloser, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil, certificateerrors.ErrInvalidCertificateID
	}

	cert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, mapRepositoryError(err)
	}
	if err := authorize(actorID, actorRole, cert); err != nil {
		return nil, nil, err
	}

	rc, err := s.storage.Open(cert.StoredPath)
	if err != nil {
		s.logger.Error("open certificate file failed",
			zap.String("certificate_id", id),
			zap.String("stored_path", cert.StoredPath),
			zap.Error(err),
		)
		return nil, nil, certificateerrors.ErrCertificateNotFound
	}
	return cert, rc, nil
}

func (s *service) queueLifecycleEvent(ctx context.Context, tx *sql.Tx, eventType string, cert *Certificate, rid string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.CertificateLifecycleEvent{
		EventType:     eventType,
		RequestID:     rid,
		CertificateID: cert.ID.String(),
		UserID:        cert.UserID.String(),
		FileName:      cert.FileName,
		OccurredAt:    time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "certificate",
		AggregateID:   cert.ID.String(),
		EventType:     eventType,
		Topic:         events.CertificateLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("certificate outbox persist failed",
			zap.String("certificate_id", cert.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func authorize(actorID, actorRole string, cert *Certificate) error {
	if actorRole == profile.RoleAdmin {
		return nil
	}
	if cert.UserID.String() != actorID {
		return certificateerrors.ErrNotOwner
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return certificateerrors.ErrCertificateNotFound
	}
	return err
}

func validatePeriod(start, end string) error {
	if _, err := timeacct.ParseDate(start); err != nil {
		return certificateerrors.ErrInvalidPeriod
	}
	if _, err := timeacct.ParseDate(end); err != nil {
		return certificateerrors.ErrInvalidPeriod
	}
	if end < start {
		return certificateerrors.ErrInvalidPeriod
	}
	return nil
}

// periodDays counts the covered days inclusively, so a single-day
// certificate has start == end and one day.
func periodDays(start, end string) int {
	s, err := timeacct.ParseDate(start)
	if err != nil {
		return 0
	}
	e, err := timeacct.ParseDate(end)
	if err != nil {
		return 0
	}
	// Rounding absorbs DST shifts in the local-midnight anchors.
	return int(e.Time().Sub(s.Time()).Hours()/24+0.5) + 1
}

func mapToResponse(cert Certificate) CertificateResponse {
	return CertificateResponse{
		ID:          cert.ID.String(),
		UserID:      cert.UserID.String(),
		StartDate:   cert.StartDate,
		EndDate:     cert.EndDate,
		Days:        periodDays(cert.StartDate, cert.EndDate),
		Comment:     cert.Comment,
		FileName:    cert.FileName,
		ContentType: cert.ContentType,
		SizeBytes:   cert.SizeBytes,
		UploadedAt:  cert.CreatedAt.UTC().Format(time.RFC3339),
	}
}
