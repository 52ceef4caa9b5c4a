package domain

type Step int

const (
	StepDocumentType Step = 1
	StepUpload       Step = 2
	StepReview       Step = 3
)

func (s Step) Valid() bool {
	return s >= StepDocumentType && s <= StepReview
}

type RequestStatus string

const (
	StatusDrafting     RequestStatus = "DRAFTING"
	StatusSubmitted    RequestStatus = "SUBMITTED"
	StatusAcknowledged RequestStatus = "ACKNOWLEDGED"
	StatusFailed       RequestStatus = "FAILED"
)

type AuditState string

const (
	AuditRecorded     AuditState = "RECORDED"
	AuditAcknowledged AuditState = "ACKNOWLEDGED"
	AuditFailed       AuditState = "FAILED"
)
