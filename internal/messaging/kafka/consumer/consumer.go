package consumer

import (
	"context"
	"encoding/json"

	"github.com/Berghsen/timeline/internal/events"
	"github.com/Berghsen/timeline/internal/timeacct"
	"github.com/Berghsen/timeline/internal/timeentry"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeTimeEntryLifecycle keeps the summary caches warm: whenever an entry
// changes it drops the affected week and month keys and rebuilds the month
// summary, so the next dashboard load hits redis instead of postgres.
func ConsumeTimeEntryLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	timeEntryService timeentry.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.timeentry_lifecycle")
	log.Info("time entry lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("time entry lifecycle consumer stopped")
				return
			}
			log.Error("fetch time entry lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.TimeEntryLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode time entry lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		d, err := timeacct.ParseDate(event.Date)
		if err != nil {
			log.Error("time entry lifecycle event has invalid date",
				zap.String("date", event.Date),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if rdb != nil {
			keys := []string{
				timeentry.GetWeekSummaryKey(event.UserID, timeacct.WeekOf(d).Start),
				timeentry.GetMonthSummaryKey(event.UserID, d.Year(), d.Month()),
			}
			if err := rdb.Del(ctx, keys...).Err(); err != nil {
				log.Error("drop summary cache failed", zap.Strings("keys", keys), zap.Error(err))
			}
		}

		if _, err := timeEntryService.MonthSummary(ctx, event.UserID, d.Year(), int(d.Month())); err != nil {
			log.Error("rebuild month summary failed",
				zap.String("user_id", event.UserID),
				zap.String("date", event.Date),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit time entry lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("month summary refreshed from time entry event",
			zap.String("event_type", event.EventType),
			zap.String("user_id", event.UserID),
			zap.String("date", event.Date),
		)
	}
}
