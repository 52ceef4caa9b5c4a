package api

import (
	"fmt"
	"time"

	"legalize-docs/internal/domain"
	"legalize-docs/internal/wizard"
)

type stepView struct {
	Number   int
	Label    string
	Active   bool
	Done     bool
	Jumpable bool
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type fileView struct {
	Name     string
	Size     string
	MIMEType string
}

type lineView struct {
	Label     string
	Amount    string
	Surcharge bool
}

type receiptView struct {
	Reference  string
	Status     string
	ReceivedAt string
}

// wizardView flattens a snapshot into plain values for the template.
type wizardView struct {
	ID           string
	ServiceID    string
	ServiceTitle string
	BasePath     string
	Step         int
	Steps        []stepView

	DocumentType      string
	DocumentTypeLabel string
	IssuingAuthority  string
	StateOfIssuance   string
	StateLabel        string
	Country           string
	DocumentTypes     []optionView
	States            []optionView

	File       *fileView
	Uploading  bool
	Submitting bool
	Submitted  bool
	Receipt    *receiptView

	Items     []lineView
	Total     string
	Progress  domain.Progress
	Applicant domain.Applicant
	Accept    string
}

var stepLabels = map[domain.Step]string{
	domain.StepDocumentType: "Document Type",
	domain.StepUpload:       "Upload Document",
	domain.StepReview:       "Review & Submit",
}

func newWizardView(snap wizard.Snapshot, svc domain.Service) wizardView {
	v := wizardView{
		ID:                snap.ID,
		ServiceID:         snap.ServiceID,
		ServiceTitle:      svc.Title,
		BasePath:          wizardPath(snap.ServiceID, snap.ID),
		Step:              int(snap.Step),
		DocumentType:      string(snap.Form.DocumentType),
		DocumentTypeLabel: domain.DocumentTypeLabel(snap.Form.DocumentType),
		IssuingAuthority:  snap.Form.IssuingAuthority,
		StateOfIssuance:   string(snap.Form.StateOfIssuance),
		StateLabel:        domain.IssuingStateLabel(snap.Form.StateOfIssuance),
		Country:           domain.Country,
		DocumentTypes:     options(domain.DocumentTypeOptions, string(snap.Form.DocumentType)),
		States:            options(domain.IssuingStateOptions, string(snap.Form.StateOfIssuance)),
		Uploading:         snap.Uploading,
		Submitting:        snap.Submitting,
		Submitted:         snap.Submitted,
		Progress:          domain.ReviewProgress,
		Applicant:         domain.DemoApplicant,
		Accept:            "application/pdf,image/jpeg,image/png",
	}

	for _, s := range []domain.Step{domain.StepDocumentType, domain.StepUpload, domain.StepReview} {
		v.Steps = append(v.Steps, stepView{
			Number:   int(s),
			Label:    stepLabels[s],
			Active:   s == snap.Step,
			Done:     s < snap.Step,
			Jumpable: s != domain.StepReview && !snap.Submitted,
		})
	}

	if f := snap.SelectedFile; f != nil {
		v.File = &fileView{Name: f.Name, Size: fmt.Sprintf("%.2f MB", f.SizeMB()), MIMEType: f.MIMEType}
	}
	if rc := snap.Receipt; rc != nil {
		v.Receipt = &receiptView{
			Reference:  rc.Reference,
			Status:     string(rc.Status),
			ReceivedAt: rc.ReceivedAt.Format(time.RFC1123),
		}
	}

	summary := domain.StandardOrderSummary()
	for _, item := range summary.Items {
		amount := domain.FormatCents(item.AmountCent)
		if item.Surcharge {
			amount = "+" + amount
		}
		v.Items = append(v.Items, lineView{Label: item.Label, Amount: amount, Surcharge: item.Surcharge})
	}
	v.Total = domain.FormatCents(summary.TotalCents)
	return v
}

func options(opts []domain.Option, selected string) []optionView {
	out := make([]optionView, 0, len(opts))
	for _, o := range opts {
		out = append(out, optionView{Value: o.Value, Label: o.Label, Selected: o.Value == selected})
	}
	return out
}

func wizardPath(serviceID, wizardID string) string {
	return "/services/" + serviceID + "/requests/" + wizardID
}
