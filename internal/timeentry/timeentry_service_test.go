package timeentry

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/Berghsen/timeline/internal/messaging/kafka"
	"github.com/Berghsen/timeline/internal/profile"
	"github.com/Berghsen/timeline/internal/timeacct"
	timeentryerrors "github.com/Berghsen/timeline/internal/timeentry/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn             func(tx *sql.Tx) Repository
	createFn             func(ctx context.Context, e *TimeEntry) error
	getByIDFn            func(ctx context.Context, id string) (*TimeEntry, error)
	findByUserAndRangeFn func(ctx context.Context, userID, from, to string) ([]TimeEntry, error)
	updateFn             func(ctx context.Context, e *TimeEntry) error
	deleteFn             func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository              { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, e *TimeEntry) error { return f.createFn(ctx, e) }
func (f *fakeRepo) GetByID(ctx context.Context, id string) (*TimeEntry, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeRepo) FindByUserAndRange(ctx context.Context, userID, from, to string) ([]TimeEntry, error) {
	return f.findByUserAndRangeFn(ctx, userID, from, to)
}
func (f *fakeRepo) Update(ctx context.Context, e *TimeEntry) error { return f.updateFn(ctx, e) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error    { return f.deleteFn(ctx, id) }

type fakeProfileRepo struct {
	travelTime int
}

func (f *fakeProfileRepo) WithTx(tx *sql.Tx) profile.Repository { return f }
func (f *fakeProfileRepo) Create(ctx context.Context, p *profile.UserProfile) error { return nil }
func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*profile.UserProfile, error) {
	return &profile.UserProfile{ID: uuid.MustParse(id), TravelTimeMinutes: f.travelTime}, nil
}
func (f *fakeProfileRepo) FindByRole(ctx context.Context, role string, limit, offset int) ([]profile.UserProfile, int64, error) {
	return nil, 0, nil
}
func (f *fakeProfileRepo) Update(ctx context.Context, p *profile.UserProfile) error { return nil }

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

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	userID := uuid.New()
	var saved TimeEntry
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, e *TimeEntry) error { saved = *e; return nil }

	outbox := &fakeOutboxRepo{}
	svc := NewServiceWithOutbox(db, repo, &fakeProfileRepo{}, outbox, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), userID.String(), CreateTimeEntryRequest{
		Date:      "2024-03-11",
		StartTime: "09:00",
		EndTime:   "17:30",
	})
	assert.NoError(t, err)
	assert.Equal(t, "2024-03-11", saved.Date)
	assert.Equal(t, 510, resp.DurationMinutes)
	assert.Equal(t, "Gewerkt", resp.StatusLabel)

	assert.Len(t, outbox.created, 1)
	assert.Equal(t, "time_entry_created", outbox.created[0].EventType)
	assert.Equal(t, "uren.timeentry.lifecycle.v1", outbox.created[0].Topic)
	assert.NoError(t, kafka.ValidateOutboxEvent(outbox.created[0]))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_StatusOnly(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, e *TimeEntry) error { return nil }

	svc := NewService(db, repo, &fakeProfileRepo{}, nil)
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), uuid.New().String(), CreateTimeEntryRequest{
		Date: "2024-03-11",
		Ziek: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Ziek", resp.StatusLabel)
	assert.Equal(t, 0, resp.DurationMinutes)
}

func TestService_Create_Validation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeProfileRepo{}, nil)
	userID := uuid.New().String()

	_, err := svc.Create(context.Background(), userID, CreateTimeEntryRequest{Date: "11-03-2024", StartTime: "09:00", EndTime: "17:00"})
	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidDate)

	_, err = svc.Create(context.Background(), userID, CreateTimeEntryRequest{Date: "2024-03-11", StartTime: "09:00"})
	assert.ErrorIs(t, err, timeentryerrors.ErrTimesOrStatusRequired)

	_, err = svc.Create(context.Background(), userID, CreateTimeEntryRequest{Date: "2024-03-11", StartTime: "25:00", EndTime: "17:00"})
	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidClockTime)

	_, err = svc.Create(context.Background(), userID, CreateTimeEntryRequest{Date: "2024-03-11", Verlof: true, Ziek: true})
	assert.ErrorIs(t, err, timeentryerrors.ErrConflictingStatus)
}

func TestService_Update_OwnershipEnforced(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	owner := uuid.New()
	entryID := uuid.New()
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.getByIDFn = func(ctx context.Context, id string) (*TimeEntry, error) {
		return &TimeEntry{ID: entryID, UserID: owner, Date: "2024-03-11", StartTime: "09:00", EndTime: "17:00"}, nil
	}
	repo.updateFn = func(ctx context.Context, e *TimeEntry) error { return nil }

	svc := NewService(db, repo, &fakeProfileRepo{}, nil)

	req := UpdateTimeEntryRequest{Date: "2024-03-11", StartTime: "08:00", EndTime: "16:00"}

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Update(context.Background(), uuid.New().String(), profile.RoleEmployee, entryID.String(), req)
	assert.ErrorIs(t, err, timeentryerrors.ErrNotOwner)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), uuid.New().String(), profile.RoleAdmin, entryID.String(), req)
	assert.NoError(t, err)
	assert.Equal(t, "08:00", resp.StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_InvalidatesSummaryCache(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	rdb, redisMock := redismock.NewClientMock()

	owner := uuid.New()
	entryID := uuid.New()
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.getByIDFn = func(ctx context.Context, id string) (*TimeEntry, error) {
		return &TimeEntry{ID: entryID, UserID: owner, Date: "2024-03-11"}, nil
	}
	repo.deleteFn = func(ctx context.Context, id string) error { return nil }

	svc := NewService(db, repo, &fakeProfileRepo{}, rdb)

	weekKey := GetWeekSummaryKey(owner.String(), timeacct.Date("2024-03-11"))
	monthKey := GetMonthSummaryKey(owner.String(), 2024, time.March)
	redisMock.ExpectDel(weekKey, monthKey).SetVal(2)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.Delete(context.Background(), owner.String(), profile.RoleEmployee, entryID.String())
	assert.NoError(t, err)
	assert.NoError(t, redisMock.ExpectationsWereMet())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_WeekSummary(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	userID := uuid.New()
	repo := &fakeRepo{}
	repo.findByUserAndRangeFn = func(ctx context.Context, gotUser, from, to string) ([]TimeEntry, error) {
		assert.Equal(t, userID.String(), gotUser)
		assert.Equal(t, "2024-03-11", from)
		assert.Equal(t, "2024-03-17", to)
		return []TimeEntry{
			{UserID: userID, Date: "2024-03-11", StartTime: "09:00", EndTime: "17:00"},
			{UserID: userID, Date: "2024-03-12", StartTime: "22:00", EndTime: "02:00"},
			{UserID: userID, Date: "2024-03-13", Verlof: true},
		}, nil
	}

	svc := NewService(db, repo, &fakeProfileRepo{travelTime: 30}, nil)
	resp, err := svc.WeekSummary(context.Background(), userID.String(), "2024-03-13")
	assert.NoError(t, err)

	assert.Len(t, resp.Days, 7)
	assert.Equal(t, 480+240, resp.TotalMinutes)
	assert.Equal(t, 2, resp.WorkedDays)
	assert.Equal(t, 120, resp.NightMinutes)
	assert.Equal(t, 30, resp.TravelTimeMinutes)
	assert.Equal(t, "Verlof", resp.Days[2].StatusLabel)
}

func TestService_WeekSummary_CachesResult(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	rdb, redisMock := redismock.NewClientMock()

	userID := uuid.New()
	repo := &fakeRepo{}
	repo.findByUserAndRangeFn = func(ctx context.Context, gotUser, from, to string) ([]TimeEntry, error) {
		return nil, nil
	}

	svc := NewService(db, repo, &fakeProfileRepo{}, rdb)

	cacheKey := GetWeekSummaryKey(userID.String(), timeacct.Date("2024-03-11"))
	redisMock.ExpectGet(cacheKey).RedisNil()
	redisMock.Regexp().ExpectSet(cacheKey, `.*`, summaryCacheTTL).SetVal("OK")

	_, err := svc.WeekSummary(context.Background(), userID.String(), "2024-03-11")
	assert.NoError(t, err)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_MonthSummary_CacheHit(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	rdb, redisMock := redismock.NewClientMock()

	userID := uuid.New()
	cached := SummaryResponse{Title: "March 2024", TotalMinutes: 1200, TotalText: "20u 0m"}
	payload, _ := json.Marshal(cached)

	cacheKey := GetMonthSummaryKey(userID.String(), 2024, time.March)
	redisMock.ExpectGet(cacheKey).SetVal(string(payload))

	repo := &fakeRepo{}
	repo.findByUserAndRangeFn = func(ctx context.Context, gotUser, from, to string) ([]TimeEntry, error) {
		t.Fatal("repository should not be hit on cache hit")
		return nil, nil
	}

	svc := NewService(db, repo, &fakeProfileRepo{}, rdb)
	resp, err := svc.MonthSummary(context.Background(), userID.String(), 2024, 3)
	assert.NoError(t, err)
	assert.Equal(t, cached, resp)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_MonthSummary_InvalidMonth(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeProfileRepo{}, nil)
	_, err := svc.MonthSummary(context.Background(), uuid.New().String(), 2024, 13)
	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidMonth)
}

func TestService_ListForUser_RangeValidation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeProfileRepo{}, nil)
	userID := uuid.New().String()

	_, err := svc.ListForUser(context.Background(), userID, "2024-03-17", "2024-03-11")
	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidRange)

	_, err = svc.ListForUser(context.Background(), userID, "bad", "2024-03-11")
	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidRange)
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.getByIDFn = func(ctx context.Context, id string) (*TimeEntry, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, &fakeProfileRepo{}, nil)
	_, err := svc.GetByID(context.Background(), uuid.New().String(), profile.RoleAdmin, uuid.New().String())
	assert.ErrorIs(t, err, timeentryerrors.ErrTimeEntryNotFound)
}
