package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	exporterrors "github.com/Berghsen/timeline/internal/export/errors"
	"github.com/Berghsen/timeline/internal/profile"
	"github.com/Berghsen/timeline/internal/timeacct"
	"github.com/Berghsen/timeline/internal/timeentry"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	WeekPDF(ctx context.Context, userID, date string) (fileName string, data []byte, err error)
	MonthPDF(ctx context.Context, userID string, year, month int) (fileName string, data []byte, err error)
}

type service struct {
	entryRepo   timeentry.Repository
	profileRepo profile.Repository
	logger      *zap.Logger
}

func NewService(entryRepo timeentry.Repository, profileRepo profile.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("export.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("export.service")
	}
	return &service{entryRepo: entryRepo, profileRepo: profileRepo, logger: l}
}

func (s *service) WeekPDF(ctx context.Context, userID, date string) (string, []byte, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return "", nil, exporterrors.ErrInvalidUserID
	}
	d, err := timeacct.ParseDate(date)
	if err != nil {
		return "", nil, exporterrors.ErrInvalidDate
	}

	week := timeacct.WeekOf(d)
	name, report, err := s.buildReport(ctx, userID, week.Start, week.End(), func(entries []timeacct.Entry, cfg timeacct.Config) timeacct.Report {
		return timeacct.BuildWeekReport(entries, week, cfg)
	})
	if err != nil {
		return "", nil, err
	}

	data, err := buildReportPDF(name, report)
	if err != nil {
		return "", nil, err
	}

	fileName := fmt.Sprintf("uren-%s-week-%02d-%d.pdf", slug(name, userID), week.Number(), week.Start.Year())
	s.logger.Info("week export generated",
		zap.String("user_id", userID),
		zap.String("week_start", week.Start.String()),
		zap.Int("bytes", len(data)),
	)
	return fileName, data, nil
}

func (s *service) MonthPDF(ctx context.Context, userID string, year, month int) (string, []byte, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return "", nil, exporterrors.ErrInvalidUserID
	}
	if month < 1 || month > 12 {
		return "", nil, exporterrors.ErrInvalidMonth
	}

	m := timeacct.Month{Year: year, Month: time.Month(month)}
	name, report, err := s.buildReport(ctx, userID, m.First(), m.Last(), func(entries []timeacct.Entry, cfg timeacct.Config) timeacct.Report {
		return timeacct.BuildMonthReport(entries, m, cfg)
	})
	if err != nil {
		return "", nil, err
	}

	data, err := buildReportPDF(name, report)
	if err != nil {
		return "", nil, err
	}

	fileName := fmt.Sprintf("uren-%s-%04d-%02d.pdf", slug(name, userID), year, month)
	s.logger.Info("month export generated",
		zap.String("user_id", userID),
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("bytes", len(data)),
	)
	return fileName, data, nil
}

func (s *service) buildReport(
	ctx context.Context,
	userID string,
	first, last timeacct.Date,
	build func([]timeacct.Entry, timeacct.Config) timeacct.Report,
) (string, timeacct.Report, error) {
	rows, err := s.entryRepo.FindByUserAndRange(ctx, userID, first.String(), last.String())
	if err != nil {
		s.logger.Error("export fetch entries failed", zap.String("user_id", userID), zap.Error(err))
		return "", timeacct.Report{}, err
	}

	var name string
	cfg := timeacct.Config{}
	if prof, err := s.profileRepo.GetByID(ctx, userID); err == nil {
		name = prof.FullName
		cfg.TravelTimeMinutes = prof.TravelTimeMinutes
	}

	entries := make([]timeacct.Entry, len(rows))
	for i, e := range rows {
		entries[i] = timeacct.Entry{
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
	return name, build(entries, cfg), nil
}

func slug(name, fallback string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return fallback
	}
	return strings.ReplaceAll(name, " ", "-")
}
