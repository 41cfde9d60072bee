package domain

// SessionStatus represents the lifecycle of an application session.
type SessionStatus string

const (
	SessionInProgress        SessionStatus = "in_progress"
	SessionCompleted         SessionStatus = "completed"
	SessionDocumentGenerated SessionStatus = "document_generated"
)

// ChatRole identifies the author of a chat log entry.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// Confidence tags how legible a document extraction was.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// AllowedImageTypes maps the MIME content types accepted for document upload.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}
