package certificate

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"strings"
	"testing"

	certificateerrors "github.com/Berghsen/timeline/internal/certificate/errors"
	"github.com/Berghsen/timeline/internal/messaging/kafka"
	"github.com/Berghsen/timeline/internal/profile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn     func(tx *sql.Tx) Repository
	createFn     func(ctx context.Context, cert *Certificate) error
	getByIDFn    func(ctx context.Context, id string) (*Certificate, error)
	findByUserFn func(ctx context.Context, userID string) ([]Certificate, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, cert *Certificate) error {
	return f.createFn(ctx, cert)
}
func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Certificate, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeRepo) FindByUser(ctx context.Context, userID string) ([]Certificate, error) {
	return f.findByUserFn(ctx, userID)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

type memStorage struct {
	files   map[string][]byte
	removed []string
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (m *memStorage) Save(userID, ext string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	path := userID + "/file" + ext
	m.files[path] = data
	return path, nil
}

func (m *memStorage) Open(storedPath string) (io.ReadCloser, error) {
	data, ok := m.files[storedPath]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStorage) Remove(storedPath string) error {
	m.removed = append(m.removed, storedPath)
	delete(m.files, storedPath)
	return nil
}

type fakeOutboxRepo struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error               { return nil }
func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func TestService_Upload(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	userID := uuid.New()
	var saved Certificate
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, cert *Certificate) error { saved = *cert; return nil }

	storage := newMemStorage()
	outbox := &fakeOutboxRepo{}
	svc := NewServiceWithOutbox(db, repo, storage, outbox)

	req := UploadCertificateRequest{
		StartDate:   "2024-03-11",
		EndDate:     "2024-03-13",
		Comment:     "griep",
		FileName:    "attest.pdf",
		ContentType: "application/pdf",
		SizeBytes:   1024,
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Upload(context.Background(), userID.String(), req, strings.NewReader("%PDF-1.4 test"))
	assert.NoError(t, err)
	assert.Equal(t, "attest.pdf", resp.FileName)
	assert.Equal(t, "2024-03-11", resp.StartDate)
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, saved.StoredPath, userID.String()+"/file.pdf")
	assert.Contains(t, storage.files, saved.StoredPath)

	assert.Len(t, outbox.created, 1)
	assert.Equal(t, "certificate_uploaded", outbox.created[0].EventType)
	assert.Equal(t, "uren.certificate.lifecycle.v1", outbox.created[0].Topic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Upload_RejectsBadInput(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, newMemStorage())
	userID := uuid.New().String()

	valid := UploadCertificateRequest{StartDate: "2024-03-11", EndDate: "2024-03-11"}

	req := valid
	req.FileName, req.ContentType, req.SizeBytes = "malware.exe", "application/octet-stream", 10
	_, err := svc.Upload(context.Background(), userID, req, strings.NewReader("x"))
	assert.ErrorIs(t, err, certificateerrors.ErrUnsupportedFileType)

	req = valid
	req.FileName, req.ContentType, req.SizeBytes = "big.png", "image/png", MaxFileSizeBytes+1
	_, err = svc.Upload(context.Background(), userID, req, strings.NewReader("x"))
	assert.ErrorIs(t, err, certificateerrors.ErrFileTooLarge)

	req = valid
	req.FileName, req.ContentType, req.SizeBytes = "empty.png", "image/png", 0
	_, err = svc.Upload(context.Background(), userID, req, strings.NewReader(""))
	assert.ErrorIs(t, err, certificateerrors.ErrMissingFile)

	req = valid
	req.StartDate, req.EndDate = "2024-03-13", "2024-03-11"
	req.FileName, req.ContentType, req.SizeBytes = "attest.pdf", "application/pdf", 10
	_, err = svc.Upload(context.Background(), userID, req, strings.NewReader("x"))
	assert.ErrorIs(t, err, certificateerrors.ErrInvalidPeriod)

	req = valid
	req.StartDate = "11-03-2024"
	req.FileName, req.ContentType, req.SizeBytes = "attest.pdf", "application/pdf", 10
	_, err = svc.Upload(context.Background(), userID, req, strings.NewReader("x"))
	assert.ErrorIs(t, err, certificateerrors.ErrInvalidPeriod)
}

func TestService_Upload_ExtensionCaseInsensitive(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, cert *Certificate) error { return nil }

	svc := NewService(db, repo, newMemStorage())
	req := UploadCertificateRequest{
		StartDate:   "2024-03-11",
		EndDate:     "2024-03-11",
		FileName:    "Scan.JPG",
		ContentType: "image/jpeg",
		SizeBytes:   100,
	}
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Upload(context.Background(), uuid.New().String(), req, strings.NewReader("jpegdata"))
	assert.NoError(t, err)
}

func TestService_Delete_OwnershipEnforced(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	owner := uuid.New()
	certID := uuid.New()
	storage := newMemStorage()
	storage.files[owner.String()+"/file.pdf"] = []byte("data")

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.getByIDFn = func(ctx context.Context, id string) (*Certificate, error) {
		return &Certificate{ID: certID, UserID: owner, StoredPath: owner.String() + "/file.pdf"}, nil
	}
	repo.deleteFn = func(ctx context.Context, id string) error { return nil }

	svc := NewService(db, repo, storage)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.Delete(context.Background(), uuid.New().String(), profile.RoleEmployee, certID.String())
	assert.ErrorIs(t, err, certificateerrors.ErrNotOwner)
	assert.Empty(t, storage.removed)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err = svc.Delete(context.Background(), owner.String(), profile.RoleEmployee, certID.String())
	assert.NoError(t, err)
	assert.Equal(t, []string{owner.String() + "/file.pdf"}, storage.removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Download(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	owner := uuid.New()
	certID := uuid.New()
	storage := newMemStorage()
	storage.files[owner.String()+"/file.png"] = []byte("pngdata")

	repo := &fakeRepo{}
	repo.getByIDFn = func(ctx context.Context, id string) (*Certificate, error) {
		return &Certificate{ID: certID, UserID: owner, FileName: "scan.png", StoredPath: owner.String() + "/file.png"}, nil
	}

	svc := NewService(db, repo, storage)

	cert, rc, err := svc.Download(context.Background(), owner.String(), profile.RoleEmployee, certID.String())
	assert.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "pngdata", string(data))
	assert.Equal(t, "scan.png", cert.FileName)

	// admin may download anyone's file
	_, rc2, err := svc.Download(context.Background(), uuid.New().String(), profile.RoleAdmin, certID.String())
	assert.NoError(t, err)
	rc2.Close()
}

func TestService_Download_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.getByIDFn = func(ctx context.Context, id string) (*Certificate, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, newMemStorage())
	_, _, err := svc.Download(context.Background(), uuid.New().String(), profile.RoleAdmin, uuid.New().String())
	assert.ErrorIs(t, err, certificateerrors.ErrCertificateNotFound)
}
