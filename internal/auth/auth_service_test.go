package auth

import (
	"context"
	"database/sql"
	"testing"

	autherrors "github.com/Berghsen/timeline/internal/auth/errors"
	"github.com/Berghsen/timeline/internal/profile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	withTxFn     func(tx *sql.Tx) Repository
	createFn     func(ctx context.Context, u *User) error
	getByEmailFn func(ctx context.Context, email string) (*User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*User, error)
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) Repository          { return f.withTxFn(tx) }
func (f *fakeUserRepo) Create(ctx context.Context, u *User) error { return f.createFn(ctx, u) }
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return f.getByEmailFn(ctx, email)
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return f.getByIDFn(ctx, id)
}

type fakeProfileRepo struct {
	withTxFn  func(tx *sql.Tx) profile.Repository
	createFn  func(ctx context.Context, p *profile.UserProfile) error
	getByIDFn func(ctx context.Context, id string) (*profile.UserProfile, error)
}

func (f *fakeProfileRepo) WithTx(tx *sql.Tx) profile.Repository { return f.withTxFn(tx) }
func (f *fakeProfileRepo) Create(ctx context.Context, p *profile.UserProfile) error {
	return f.createFn(ctx, p)
}
func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*profile.UserProfile, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeProfileRepo) FindByRole(ctx context.Context, role string, limit, offset int) ([]profile.UserProfile, int64, error) {
	return nil, 0, nil
}
func (f *fakeProfileRepo) Update(ctx context.Context, p *profile.UserProfile) error { return nil }

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, _, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)

	userRepo := &fakeUserRepo{}
	userRepo.getByEmailFn = func(ctx context.Context, email string) (*User, error) {
		return &User{ID: id, Email: email, PasswordHash: string(hash), IsActive: true}, nil
	}
	profRepo := &fakeProfileRepo{}
	profRepo.getByIDFn = func(ctx context.Context, gotID string) (*profile.UserProfile, error) {
		return &profile.UserProfile{ID: id, Email: "jan@example.com", FullName: "Jan", Role: profile.RoleEmployee}, nil
	}

	svc := NewService(db, userRepo, profRepo)
	access, refresh, resp, err := svc.Login(context.Background(), "jan@example.com", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, profile.RoleEmployee, resp.Role)
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, _, _ := sqlmock.New()
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	userRepo := &fakeUserRepo{}
	userRepo.getByEmailFn = func(ctx context.Context, email string) (*User, error) {
		return &User{ID: uuid.New(), Email: email, PasswordHash: string(hash)}, nil
	}

	svc := NewService(db, userRepo, &fakeProfileRepo{})
	_, _, _, err := svc.Login(context.Background(), "jan@example.com", "wrong")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, _, _ := sqlmock.New()
	defer db.Close()

	userRepo := &fakeUserRepo{}
	userRepo.getByEmailFn = func(ctx context.Context, email string) (*User, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, userRepo, &fakeProfileRepo{})
	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var savedUser User
	var savedProfile profile.UserProfile

	userRepo := &fakeUserRepo{}
	userRepo.getByEmailFn = func(ctx context.Context, email string) (*User, error) {
		return nil, gorm.ErrRecordNotFound
	}
	userRepo.withTxFn = func(tx *sql.Tx) Repository { return userRepo }
	userRepo.createFn = func(ctx context.Context, u *User) error { savedUser = *u; return nil }

	profRepo := &fakeProfileRepo{}
	profRepo.withTxFn = func(tx *sql.Tx) profile.Repository { return profRepo }
	profRepo.createFn = func(ctx context.Context, p *profile.UserProfile) error { savedProfile = *p; return nil }

	svc := NewService(db, userRepo, profRepo)
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Password: "secret123",
		FullName: "New Person",
	})
	assert.NoError(t, err)
	assert.Equal(t, profile.RoleEmployee, resp.Role)
	assert.Equal(t, savedUser.ID, savedProfile.ID)
	assert.NotEqual(t, "secret123", savedUser.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(savedUser.PasswordHash), []byte("secret123")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Register_EmailTaken(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	userRepo := &fakeUserRepo{}
	userRepo.getByEmailFn = func(ctx context.Context, email string) (*User, error) {
		return &User{ID: uuid.New(), Email: email}, nil
	}

	svc := NewService(db, userRepo, &fakeProfileRepo{})
	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "secret123",
		FullName: "Someone",
	})
	assert.ErrorIs(t, err, autherrors.ErrEmailTaken)
}

func TestService_RefreshToken_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, _, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)

	userRepo := &fakeUserRepo{}
	userRepo.getByEmailFn = func(ctx context.Context, email string) (*User, error) {
		return &User{ID: id, Email: email, PasswordHash: string(hash)}, nil
	}
	userRepo.getByIDFn = func(ctx context.Context, gotID uuid.UUID) (*User, error) {
		assert.Equal(t, id, gotID)
		return &User{ID: id, Email: "jan@example.com", PasswordHash: string(hash)}, nil
	}
	profRepo := &fakeProfileRepo{}
	profRepo.getByIDFn = func(ctx context.Context, gotID string) (*profile.UserProfile, error) {
		return &profile.UserProfile{ID: id, Role: profile.RoleEmployee}, nil
	}

	svc := NewService(db, userRepo, profRepo)
	_, refresh, _, err := svc.Login(context.Background(), "jan@example.com", "secret123")
	assert.NoError(t, err)

	newAccess, newRefresh, resp, err := svc.RefreshToken(context.Background(), refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)
	assert.Equal(t, id.String(), resp.ID)
}

func TestService_RefreshToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeUserRepo{}, &fakeProfileRepo{})
	_, _, _, err := svc.RefreshToken(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}
