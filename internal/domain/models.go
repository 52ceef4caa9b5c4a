package domain

import (
	"strings"
	"time"
)

type DocumentType string

const (
	DocTypeBirthCertificate DocumentType = "birth-cert"
	DocTypeDiploma          DocumentType = "diploma"
	DocTypePowerOfAttorney  DocumentType = "poa"
)

type IssuingState string

const (
	StateNewYork    IssuingState = "ny"
	StateCalifornia IssuingState = "ca"
	StateTexas      IssuingState = "tx"
)

// Country is fixed; the request form shows it read-only.
const Country = "USA"

// RequestForm holds the free-form values collected on the first wizard step.
type RequestForm struct {
	DocumentType     DocumentType `json:"document_type"`
	IssuingAuthority string       `json:"issuing_authority"`
	StateOfIssuance  IssuingState `json:"state_of_issuance"`
}

func DefaultRequestForm() RequestForm {
	return RequestForm{
		DocumentType:    DocTypeBirthCertificate,
		StateOfIssuance: StateNewYork,
	}
}

// FileCandidate is a file picked by the user that has not been accepted yet.
type FileCandidate struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	MIMEType  string `json:"mime_type"`
	Content   []byte `json:"-"`
}

type SelectedFile struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	MIMEType  string `json:"mime_type"`
	ObjectKey string `json:"object_key,omitempty"`
}

// SizeMB renders the size the way the upload card shows it.
func (f SelectedFile) SizeMB() float64 {
	return float64(f.SizeBytes) / 1024 / 1024
}

type ServiceRequest struct {
	ID          string       `json:"id"`
	ServiceID   string       `json:"service_id"`
	Form        RequestForm  `json:"form"`
	File        SelectedFile `json:"file"`
	Summary     OrderSummary `json:"summary"`
	SubmittedAt time.Time    `json:"submitted_at"`
}

type Receipt struct {
	RequestID  string        `json:"request_id"`
	Reference  string        `json:"reference"`
	Status     RequestStatus `json:"status"`
	ReceivedAt time.Time     `json:"received_at"`
}

type RequestRecord struct {
	ID          string        `json:"id"`
	ServiceID   string        `json:"service_id"`
	Form        RequestForm   `json:"form"`
	File        SelectedFile  `json:"file"`
	TotalCents  int64         `json:"total_cents"`
	Status      RequestStatus `json:"status"`
	SubmittedAt time.Time     `json:"submitted_at"`
}

type ContactMessage struct {
	ID       string    `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Subject  string    `json:"subject"`
	Message  string    `json:"message"`
	SentAt   time.Time `json:"sent_at"`
}

// Applicant is the fixed profile shown on the review step until accounts exist.
type Applicant struct {
	FullName          string
	IDNumber          string
	Email             string
	RegisteredAddress string
}

var DemoApplicant = Applicant{
	FullName:          "Jonathan Alexander Miller",
	IDNumber:          "P894200155",
	Email:             "j.miller@example.com",
	RegisteredAddress: "742 Evergreen Terrace, Springfield, IL 62704",
}

type SupportContact struct {
	Email string
	Phone string
}

var Support = SupportContact{
	Email: "support@legalizedocs.io",
	Phone: "+1 (800) 555-0123",
}

// RequestReference is the short customer-facing reference for a request ID.
func RequestReference(requestID string) string {
	compact := strings.ToUpper(strings.ReplaceAll(requestID, "-", ""))
	if len(compact) > 8 {
		compact = compact[:8]
	}
	return "LD-" + compact
}
