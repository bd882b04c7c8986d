package timeentry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Berghsen/timeline/internal/events"
	"github.com/Berghsen/timeline/internal/messaging/kafka"
	"github.com/Berghsen/timeline/internal/profile"
	"github.com/Berghsen/timeline/internal/shared/contextutil"
	"github.com/Berghsen/timeline/internal/timeacct"
	timeentryerrors "github.com/Berghsen/timeline/internal/timeentry/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	WeekSummaryKeyPrefix  = "timeentries:summary:week:"
	MonthSummaryKeyPrefix = "timeentries:summary:month:"

	summaryCacheTTL = 10 * time.Minute
)

func GetWeekSummaryKey(userID string, weekStart timeacct.Date) string {
	return WeekSummaryKeyPrefix + userID + ":" + weekStart.String()
}

func GetMonthSummaryKey(userID string, year int, month time.Month) string {
	return fmt.Sprintf("%s%s:%04d-%02d", MonthSummaryKeyPrefix, userID, year, int(month))
}

type Service interface {
	Create(ctx context.Context, userID string, req CreateTimeEntryRequest) (TimeEntryResponse, error)
	GetByID(ctx context.Context, actorID, actorRole, id string) (TimeEntryResponse, error)
	ListForUser(ctx context.Context, userID, from, to string) ([]TimeEntryResponse, error)
	Update(ctx context.Context, actorID, actorRole, id string, req UpdateTimeEntryRequest) (TimeEntryResponse, error)
	Delete(ctx context.Context, actorID, actorRole, id string) error
	WeekSummary(ctx context.Context, userID, date string) (SummaryResponse, error)
	MonthSummary(ctx context.Context, userID string, year, month int) (SummaryResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	profileRepo profile.Repository
	outbox      kafka.OutboxRepository
	rdb         *redis.Client
	sf          *singleflight.Group
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, profileRepo profile.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, profileRepo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	profileRepo profile.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("timeentry.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeentry.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		profileRepo: profileRepo,
		outbox:      outboxRepo,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, userID string, req CreateTimeEntryRequest) (TimeEntryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create time entry requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("date", req.Date),
	)

	uid, err := uuid.Parse(userID)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidUserID
	}
	if err := validateEntryInput(req.Date, req.StartTime, req.EndTime, req.NietGewerkt, req.Verlof, req.Ziek, req.Recup); err != nil {
		return TimeEntryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create time entry begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	entry := &TimeEntry{
		ID:           uuid.New(),
		UserID:       uid,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		NietGewerkt:  req.NietGewerkt,
		Verlof:       req.Verlof,
		Ziek:         req.Ziek,
		Recup:        req.Recup,
		Rechtstreeks: req.Rechtstreeks,
		Bonnummer:    req.Bonnummer,
		Comment:      req.Comment,
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, entry); err != nil {
		s.logger.Error("create time entry persist failed", zap.Error(err))
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	if err := s.queueLifecycleEvent(ctx, tx, events.TimeEntryCreated, entry, rid); err != nil {
		return TimeEntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create time entry commit failed", zap.String("request_id", rid), zap.Error(err))
		return TimeEntryResponse{}, err
	}

	s.invalidateSummaries(ctx, userID, entry.Date)

	s.logger.Info("create time entry success",
		zap.String("request_id", rid),
		zap.String("time_entry_id", entry.ID.String()),
	)
	return mapToResponse(*entry), nil
}

func (s *service) GetByID(ctx context.Context, actorID, actorRole, id string) (TimeEntryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidTimeEntryID
	}

	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return TimeEntryResponse{}, mapRepositoryError(err)
	}
	if err := authorize(actorID, actorRole, entry); err != nil {
		return TimeEntryResponse{}, err
	}
	return mapToResponse(*entry), nil
}

func (s *service) ListForUser(ctx context.Context, userID, from, to string) ([]TimeEntryResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, timeentryerrors.ErrInvalidUserID
	}
	if _, err := timeacct.ParseDate(from); err != nil {
		return nil, timeentryerrors.ErrInvalidRange
	}
	if _, err := timeacct.ParseDate(to); err != nil {
		return nil, timeentryerrors.ErrInvalidRange
	}
	if from > to {
		return nil, timeentryerrors.ErrInvalidRange
	}

	rows, err := s.repo.FindByUserAndRange(ctx, userID, from, to)
	if err != nil {
		s.logger.Error("list time entries failed", zap.String("user_id", userID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]TimeEntryResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, actorID, actorRole, id string, req UpdateTimeEntryRequest) (TimeEntryResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidTimeEntryID
	}
	if err := validateEntryInput(req.Date, req.StartTime, req.EndTime, req.NietGewerkt, req.Verlof, req.Ziek, req.Recup); err != nil {
		return TimeEntryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update time entry begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	entry, err := qtx.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("update time entry fetch existing failed", zap.Error(err))
		return TimeEntryResponse{}, mapRepositoryError(err)
	}
	if err := authorize(actorID, actorRole, entry); err != nil {
		return TimeEntryResponse{}, err
	}

	oldDate := entry.Date
	entry.Date = req.Date
	entry.StartTime = req.StartTime
	entry.EndTime = req.EndTime
	entry.NietGewerkt = req.NietGewerkt
	entry.Verlof = req.Verlof
	entry.Ziek = req.Ziek
	entry.Recup = req.Recup
	entry.Rechtstreeks = req.Rechtstreeks
	entry.Bonnummer = req.Bonnummer
	entry.Comment = req.Comment

	if err := qtx.Update(ctx, entry); err != nil {
		s.logger.Error("update time entry persist failed", zap.Error(err))
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	if err := s.queueLifecycleEvent(ctx, tx, events.TimeEntryUpdated, entry, rid); err != nil {
		return TimeEntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update time entry commit failed", zap.String("request_id", rid), zap.Error(err))
		return TimeEntryResponse{}, err
	}

	s.invalidateSummaries(ctx, entry.UserID.String(), oldDate)
	if entry.Date != oldDate {
		s.invalidateSummaries(ctx, entry.UserID.String(), entry.Date)
	}

	s.logger.Info("update time entry success",
		zap.String("request_id", rid),
		zap.String("time_entry_id", id),
	)
	return mapToResponse(*entry), nil
}

func (s *service) Delete(ctx context.Context, actorID, actorRole, id string) error {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return timeentryerrors.ErrInvalidTimeEntryID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete time entry begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	entry, err := qtx.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("delete time entry fetch existing failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := authorize(actorID, actorRole, entry); err != nil {
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete time entry failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.queueLifecycleEvent(ctx, tx, events.TimeEntryDeleted, entry, rid); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete time entry commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.invalidateSummaries(ctx, entry.UserID.String(), entry.Date)

	s.logger.Info("delete time entry success",
		zap.String("request_id", rid),
		zap.String("time_entry_id", id),
	)
	return nil
}

func (s *service) WeekSummary(ctx context.Context, userID, date string) (SummaryResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return SummaryResponse{}, timeentryerrors.ErrInvalidUserID
	}
	d, err := timeacct.ParseDate(date)
	if err != nil {
		return SummaryResponse{}, timeentryerrors.ErrInvalidDate
	}
	week := timeacct.WeekOf(d)
	cacheKey := GetWeekSummaryKey(userID, week.Start)

	return s.cachedSummary(ctx, cacheKey, func() (SummaryResponse, error) {
		report, err := s.buildReport(ctx, userID, week.Start, week.End(), func(entries []timeacct.Entry, cfg timeacct.Config) timeacct.Report {
			return timeacct.BuildWeekReport(entries, week, cfg)
		})
		if err != nil {
			return SummaryResponse{}, err
		}
		return mapReport(report), nil
	})
}

func (s *service) MonthSummary(ctx context.Context, userID string, year, month int) (SummaryResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return SummaryResponse{}, timeentryerrors.ErrInvalidUserID
	}
	if month < 1 || month > 12 {
		return SummaryResponse{}, timeentryerrors.ErrInvalidMonth
	}
	m := timeacct.Month{Year: year, Month: time.Month(month)}
	cacheKey := GetMonthSummaryKey(userID, year, time.Month(month))

	return s.cachedSummary(ctx, cacheKey, func() (SummaryResponse, error) {
		report, err := s.buildReport(ctx, userID, m.First(), m.Last(), func(entries []timeacct.Entry, cfg timeacct.Config) timeacct.Report {
			return timeacct.BuildMonthReport(entries, m, cfg)
		})
		if err != nil {
			return SummaryResponse{}, err
		}
		return mapReport(report), nil
	})
}

func (s *service) cachedSummary(ctx context.Context, cacheKey string, build func() (SummaryResponse, error)) (SummaryResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp SummaryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := build()
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, summaryCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return SummaryResponse{}, err
	}
	return v.(SummaryResponse), nil
}

func (s *service) buildReport(
	ctx context.Context,
	userID string,
	first, last timeacct.Date,
	build func([]timeacct.Entry, timeacct.Config) timeacct.Report,
) (timeacct.Report, error) {
	rows, err := s.repo.FindByUserAndRange(ctx, userID, first.String(), last.String())
	if err != nil {
		s.logger.Error("summary fetch entries failed", zap.String("user_id", userID), zap.Error(err))
		return timeacct.Report{}, mapRepositoryError(err)
	}

	cfg := timeacct.Config{}
	if s.profileRepo != nil {
		prof, err := s.profileRepo.GetByID(ctx, userID)
		if err == nil {
			cfg.TravelTimeMinutes = prof.TravelTimeMinutes
		}
	}

	entries := make([]timeacct.Entry, len(rows))
	for i, e := range rows {
		entries[i] = toEngineEntry(e)
	}
	return build(entries, cfg), nil
}

func (s *service) queueLifecycleEvent(ctx context.Context, tx *sql.Tx, eventType string, entry *TimeEntry, rid string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.TimeEntryLifecycleEvent{
		EventType:   eventType,
		RequestID:   rid,
		TimeEntryID: entry.ID.String(),
		UserID:      entry.UserID.String(),
		Date:        entry.Date,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "time_entry",
		AggregateID:   entry.ID.String(),
		EventType:     eventType,
		Topic:         events.TimeEntryLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("time entry outbox persist failed",
			zap.String("time_entry_id", entry.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) invalidateSummaries(ctx context.Context, userID, date string) {
	if s.rdb == nil {
		return
	}
	d, err := timeacct.ParseDate(date)
	if err != nil {
		return
	}

	keys := []string{
		GetWeekSummaryKey(userID, timeacct.WeekOf(d).Start),
		GetMonthSummaryKey(userID, d.Year(), d.Month()),
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("failed to invalidate summary cache",
			zap.Error(err),
			zap.Strings("keys", keys),
		)
	}
}

func authorize(actorID, actorRole string, entry *TimeEntry) error {
	if actorRole == profile.RoleAdmin {
		return nil
	}
	if entry.UserID.String() != actorID {
		return timeentryerrors.ErrNotOwner
	}
	return nil
}

func validateEntryInput(date, start, end string, nietGewerkt, verlof, ziek, recup bool) error {
	if _, err := timeacct.ParseDate(date); err != nil {
		return timeentryerrors.ErrInvalidDate
	}

	statusCount := 0
	for _, flag := range []bool{nietGewerkt, verlof, ziek, recup} {
		if flag {
			statusCount++
		}
	}
	if statusCount > 1 {
		return timeentryerrors.ErrConflictingStatus
	}
	if statusCount == 0 && (start == "" || end == "") {
		return timeentryerrors.ErrTimesOrStatusRequired
	}
	for _, clock := range []string{start, end} {
		if clock == "" {
			continue
		}
		if !isClock(clock) {
			return timeentryerrors.ErrInvalidClockTime
		}
	}
	return nil
}

func isClock(s string) bool {
	if _, err := time.Parse("15:04", s); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05", s)
	return err == nil
}

func toEngineEntry(e TimeEntry) timeacct.Entry {
	return timeacct.Entry{
		Date:         timeacct.Date(e.Date),
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		NietGewerkt:  e.NietGewerkt,
		Verlof:       e.Verlof,
		Ziek:         e.Ziek,
		Recup:        e.Recup,
		Rechtstreeks: e.Rechtstreeks,
		Bonnummer:    e.Bonnummer,
		Comment:      e.Comment,
	}
}

func mapToResponse(e TimeEntry) TimeEntryResponse {
	engineEntry := toEngineEntry(e)
	return TimeEntryResponse{
		ID:              e.ID.String(),
		UserID:          e.UserID.String(),
		Date:            e.Date,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		NietGewerkt:     e.NietGewerkt,
		Verlof:          e.Verlof,
		Ziek:            e.Ziek,
		Recup:           e.Recup,
		Rechtstreeks:    e.Rechtstreeks,
		Bonnummer:       e.Bonnummer,
		Comment:         e.Comment,
		StatusLabel:     timeacct.Label(engineEntry),
		DurationMinutes: engineEntry.Duration(),
	}
}

func mapReport(r timeacct.Report) SummaryResponse {
	days := make([]SummaryDayResponse, len(r.Rows))
	for i, row := range r.Rows {
		days[i] = SummaryDayResponse{
			Date:         row.Date.String(),
			DateLabel:    row.DateLabel,
			StatusLabel:  row.StatusLabel,
			DurationText: row.DurationText,
			Comment:      row.Comment,
			Bonnummer:    row.Bonnummer,
			Rechtstreeks: row.Rechtstreeks,
		}
	}
	return SummaryResponse{
		Title:             r.Title,
		Days:              days,
		TotalMinutes:      r.Summary.TotalMinutes,
		TotalText:         timeacct.FormatMinutes(r.Summary.TotalMinutes),
		WorkedDays:        r.Summary.WorkedDays,
		NightMinutes:      r.Summary.NightMinutes,
		SundayMinutes:     r.Summary.SundayMinutes,
		TravelTimeMinutes: r.Summary.TravelTimeMinutes,
	}
}
