package events

import "time"

const TimeEntryLifecycleTopic = "uren.timeentry.lifecycle.v1"

const (
	TimeEntryCreated = "time_entry_created"
	TimeEntryUpdated = "time_entry_updated"
	TimeEntryDeleted = "time_entry_deleted"
)

type TimeEntryLifecycleEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	TimeEntryID string    `json:"time_entry_id"`
	UserID      string    `json:"user_id"`
	Date        string    `json:"date"`
	OccurredAt  time.Time `json:"occurred_at"`
}
