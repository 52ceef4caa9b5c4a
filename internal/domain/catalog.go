package domain

import "fmt"

type Service struct {
	ID          string
	Title       string
	Description string
}

var Services = []Service{
	{
		ID:          "document-review",
		Title:       "Document Review & Processing",
		Description: "Review and preparation of documents to determine the appropriate apostille or legalization requirements prior to submission.",
	},
	{
		ID:          "apostille",
		Title:       "State & Federal Apostille Services",
		Description: "Preparation and submission of apostille requests at the state and U.S. Department of State level, as well as authentication certificates for documents used in non-Hague Convention countries.",
	},
	{
		ID:          "notary",
		Title:       "Notary Services",
		Description: "Remote online notarization (RON) and in-person notary services to support apostille and document legalization requests.",
	},
}

func LookupService(id string) (Service, bool) {
	for _, s := range Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

type Option struct {
	Value string
	Label string
}

var DocumentTypeOptions = []Option{
	{Value: string(DocTypeBirthCertificate), Label: "Birth Certificate"},
	{Value: string(DocTypeDiploma), Label: "Diploma"},
	{Value: string(DocTypePowerOfAttorney), Label: "Power of Attorney"},
}

var IssuingStateOptions = []Option{
	{Value: string(StateNewYork), Label: "New York"},
	{Value: string(StateCalifornia), Label: "California"},
	{Value: string(StateTexas), Label: "Texas"},
}

// DocumentTypeLabel falls back to the last option for anything unrecognised,
// matching the review card.
func DocumentTypeLabel(v DocumentType) string {
	switch v {
	case DocTypeBirthCertificate:
		return "Birth Certificate"
	case DocTypeDiploma:
		return "Diploma"
	default:
		return "Power of Attorney"
	}
}

func IssuingStateLabel(v IssuingState) string {
	switch v {
	case StateNewYork:
		return "New York"
	case StateCalifornia:
		return "California"
	default:
		return "Texas"
	}
}

type LineItem struct {
	Label      string `json:"label"`
	AmountCent int64  `json:"amount_cents"`
	Surcharge  bool   `json:"surcharge,omitempty"`
}

type OrderSummary struct {
	Items      []LineItem `json:"items"`
	TotalCents int64      `json:"total_cents"`
}

// StandardOrderSummary is display-only; nothing is charged.
func StandardOrderSummary() OrderSummary {
	return OrderSummary{
		Items: []LineItem{
			{Label: "Base verification fee", AmountCent: 4500},
			{Label: "Express processing", AmountCent: 1500, Surcharge: true},
			{Label: "Digital stamp fee", AmountCent: 500},
		},
		TotalCents: 6500,
	}
}

func FormatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

type Progress struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

// ReviewProgress is the sidebar progress shown on the review step.
var ReviewProgress = Progress{Label: "Step 3 of 4: Review And Submit", Percent: 75}
