package events

import "time"

const CertificateLifecycleTopic = "uren.certificate.lifecycle.v1"

const (
	CertificateUploaded = "certificate_uploaded"
	CertificateDeleted  = "certificate_deleted"
)

type CertificateLifecycleEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	CertificateID string    `json:"certificate_id"`
	UserID        string    `json:"user_id"`
	FileName      string    `json:"file_name"`
	OccurredAt    time.Time `json:"occurred_at"`
}
