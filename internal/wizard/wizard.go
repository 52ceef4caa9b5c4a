// Package wizard implements the three-step service request flow: pick the
// document type, upload the document, review and submit.
//
// A Wizard is owned by one browser session. All state changes go through its
// methods and every rejected operation leaves the state untouched.
package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"legalize-docs/internal/domain"
)

type Field string

const (
	FieldDocumentType     Field = "documentType"
	FieldIssuingAuthority Field = "issuingAuthority"
	FieldStateOfIssuance  Field = "stateOfIssuance"
)

// Observer receives state machine events, typically for metrics.
type Observer interface {
	StepChanged(from, to domain.Step)
	Rejected(reason string)
	UploadFinished(ok bool)
	RequestSubmitted(ok bool)
}

type nopObserver struct{}

func (nopObserver) StepChanged(domain.Step, domain.Step) {}
func (nopObserver) Rejected(string)                      {}
func (nopObserver) UploadFinished(bool)                  {}
func (nopObserver) RequestSubmitted(bool)                {}

type Option func(*Wizard)

func WithUploader(u Uploader) Option {
	return func(w *Wizard) {
		if u != nil {
			w.uploader = u
		}
	}
}

func WithSubmitter(s Submitter) Option {
	return func(w *Wizard) {
		if s != nil {
			w.submitter = s
		}
	}
}

func WithObserver(o Observer) Option {
	return func(w *Wizard) {
		if o != nil {
			w.observer = o
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Wizard) {
		if l != nil {
			w.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		if now != nil {
			w.now = now
		}
	}
}

// Snapshot is a copy of the wizard state safe to hand to a renderer.
type Snapshot struct {
	ID           string               `json:"id"`
	ServiceID    string               `json:"service_id"`
	Step         domain.Step          `json:"step"`
	Form         domain.RequestForm   `json:"form"`
	SelectedFile *domain.SelectedFile `json:"selected_file,omitempty"`
	Uploading    bool                 `json:"uploading"`
	Submitting   bool                 `json:"submitting"`
	Submitted    bool                 `json:"submitted"`
	Receipt      *domain.Receipt      `json:"receipt,omitempty"`
}

type Wizard struct {
	id        string
	serviceID string
	uploader  Uploader
	submitter Submitter
	observer  Observer
	logger    *slog.Logger
	now       func() time.Time

	inflight sync.WaitGroup

	mu         sync.Mutex
	step       domain.Step
	form       domain.RequestForm
	selected   *domain.SelectedFile
	uploading  bool
	submitting bool
	receipt    *domain.Receipt
	closed     bool
	notes      []Notification
	lastActive time.Time
}

func New(id, serviceID string, opts ...Option) *Wizard {
	w := &Wizard{
		id:        id,
		serviceID: serviceID,
		uploader:  DelayedUploader{Delay: DefaultUploadDelay},
		submitter: DelayedSubmitter{Delay: DefaultSubmitDelay},
		observer:  nopObserver{},
		logger:    slog.Default(),
		now:       time.Now,
		step:      domain.StepDocumentType,
		form:      domain.DefaultRequestForm(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("wizard_id", id, "service_id", serviceID)
	w.lastActive = w.now()
	return w
}

func (w *Wizard) ID() string        { return w.id }
func (w *Wizard) ServiceID() string { return w.serviceID }

// Advance moves to the next step. Leaving the upload step requires an
// accepted file. Advancing from the review step does nothing.
func (w *Wizard) Advance() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.guardLocked(); err != nil {
		return err
	}

	switch w.step {
	case domain.StepDocumentType:
		w.moveLocked(domain.StepUpload)
	case domain.StepUpload:
		if w.selected == nil {
			return w.rejectLocked(ErrMissingRequiredUpload)
		}
		if w.uploading {
			return w.rejectLocked(ErrUploadInProgress)
		}
		w.moveLocked(domain.StepReview)
	}
	return nil
}

// GoBack moves one step back and never goes below the first step.
func (w *Wizard) GoBack() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.guardLocked(); err != nil {
		return err
	}
	if w.step > domain.StepDocumentType {
		w.moveLocked(w.step - 1)
	}
	return nil
}

// JumpTo follows a click on a step header. Only the first two steps are
// reachable this way and no validation gate applies.
func (w *Wizard) JumpTo(step domain.Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.guardLocked(); err != nil {
		return err
	}
	if step != domain.StepDocumentType && step != domain.StepUpload {
		w.observer.Rejected("step_not_jumpable")
		return fmt.Errorf("jump to step %d: %w", step, ErrStepNotJumpable)
	}
	if step != w.step {
		w.moveLocked(step)
	}
	return nil
}

// SetField assigns a form value as is.
func (w *Wizard) SetField(field Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.guardLocked(); err != nil {
		return err
	}
	switch field {
	case FieldDocumentType:
		w.form.DocumentType = domain.DocumentType(value)
	case FieldIssuingAuthority:
		w.form.IssuingAuthority = value
	case FieldStateOfIssuance:
		w.form.StateOfIssuance = domain.IssuingState(value)
	default:
		return fmt.Errorf("set %q: %w", field, ErrUnknownField)
	}
	return nil
}

// SubmitFile validates the candidate synchronously and, if accepted, starts
// the upload. The file becomes the selected file once the upload completes.
// An accepted upload is not cancelled when ctx is.
func (w *Wizard) SubmitFile(ctx context.Context, candidate domain.FileCandidate) error {
	w.mu.Lock()
	if err := w.guardLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	if w.uploading {
		w.mu.Unlock()
		return ErrUploadInProgress
	}
	if err := domain.ValidateFileCandidate(candidate); err != nil {
		err = w.rejectLocked(err)
		w.mu.Unlock()
		return err
	}
	w.uploading = true
	w.inflight.Add(1)
	w.mu.Unlock()

	w.logger.Info("upload started", "file", candidate.Name, "size_bytes", candidate.SizeBytes)
	go w.completeUpload(context.WithoutCancel(ctx), candidate)
	return nil
}

func (w *Wizard) completeUpload(ctx context.Context, candidate domain.FileCandidate) {
	defer w.inflight.Done()

	stored, err := w.uploader.Upload(ctx, UploadRequest{WizardID: w.id, File: candidate})

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		w.logger.Debug("upload finished after close, dropping", "file", candidate.Name)
		return
	}
	w.uploading = false
	if err != nil {
		w.logger.Warn("upload failed", "file", candidate.Name, "error", err)
		w.observer.UploadFinished(false)
		w.notifyLocked(KindUploadFailed)
		return
	}
	w.selected = &domain.SelectedFile{
		Name:      candidate.Name,
		SizeBytes: candidate.SizeBytes,
		MIMEType:  candidate.MIMEType,
		ObjectKey: stored.ObjectKey,
	}
	w.observer.UploadFinished(true)
	w.notifyLocked(KindUploadSucceeded)
}

// RemoveFile clears the selected file. The current step is unchanged.
func (w *Wizard) RemoveFile() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.guardLocked(); err != nil {
		return err
	}
	w.selected = nil
	w.notifyLocked(KindFileRemoved)
	return nil
}

// Submit sends the request from the review step. On success the wizard is
// finished and rejects every further change.
func (w *Wizard) Submit(ctx context.Context) (domain.Receipt, error) {
	w.mu.Lock()
	if err := w.guardLocked(); err != nil {
		w.mu.Unlock()
		return domain.Receipt{}, err
	}
	if w.step != domain.StepReview {
		w.mu.Unlock()
		return domain.Receipt{}, ErrSubmitNotReady
	}
	if w.selected == nil {
		err := w.rejectLocked(ErrMissingRequiredUpload)
		w.mu.Unlock()
		return domain.Receipt{}, err
	}
	if w.uploading {
		w.mu.Unlock()
		return domain.Receipt{}, ErrUploadInProgress
	}
	req := domain.ServiceRequest{
		ID:          uuid.NewString(),
		ServiceID:   w.serviceID,
		Form:        w.form,
		File:        *w.selected,
		Summary:     domain.StandardOrderSummary(),
		SubmittedAt: w.now().UTC(),
	}
	w.submitting = true
	w.mu.Unlock()

	receipt, err := w.submitter.Submit(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		w.logger.Error("submit request failed", "request_id", req.ID, "error", err)
		w.observer.RequestSubmitted(false)
		w.notifyLocked(KindSubmitFailed)
		return domain.Receipt{}, fmt.Errorf("submit request %s: %w", req.ID, err)
	}
	w.receipt = &receipt
	w.observer.RequestSubmitted(true)
	w.notifyLocked(KindRequestSubmitted)
	w.logger.Info("request submitted", "request_id", req.ID, "reference", receipt.Reference)
	return receipt, nil
}

func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := Snapshot{
		ID:         w.id,
		ServiceID:  w.serviceID,
		Step:       w.step,
		Form:       w.form,
		Uploading:  w.uploading,
		Submitting: w.submitting,
		Submitted:  w.receipt != nil,
	}
	if w.selected != nil {
		f := *w.selected
		s.SelectedFile = &f
	}
	if w.receipt != nil {
		r := *w.receipt
		s.Receipt = &r
	}
	return s
}

// Notifications returns and clears the pending notifications.
func (w *Wizard) Notifications() []Notification {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.notes
	w.notes = nil
	return out
}

// WaitForUpload blocks until no upload is in flight.
func (w *Wizard) WaitForUpload() {
	w.inflight.Wait()
}

// Close detaches the wizard from its session. Late upload completions are
// discarded.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

func (w *Wizard) LastActive() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastActive
}

func (w *Wizard) guardLocked() error {
	if w.closed {
		return ErrWizardClosed
	}
	w.lastActive = w.now()
	if w.receipt != nil {
		return ErrAlreadySubmitted
	}
	if w.submitting {
		return ErrSubmissionInProgress
	}
	return nil
}

func (w *Wizard) moveLocked(to domain.Step) {
	from := w.step
	w.step = to
	w.observer.StepChanged(from, to)
	w.logger.Debug("step changed", "from", int(from), "to", int(to))
}

func (w *Wizard) rejectLocked(err error) error {
	kind, ok := rejectionKind(err)
	if !ok {
		w.observer.Rejected("upload_in_progress")
		return err
	}
	w.notifyLocked(kind)
	w.observer.Rejected(string(kind))
	return err
}

func (w *Wizard) notifyLocked(kind Kind) {
	w.notes = append(w.notes, notificationFor(kind))
}
