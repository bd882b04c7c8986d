package certificate

// UploadCertificateRequest carries the multipart form fields and file
// metadata for an upload. The file body itself is passed separately.
type UploadCertificateRequest struct {
	StartDate   string
	EndDate     string
	Comment     string
	FileName    string
	ContentType string
	SizeBytes   int64
}

type CertificateResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Days        int    `json:"days"`
	Comment     string `json:"comment,omitempty"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	UploadedAt  string `json:"uploaded_at"`
}
