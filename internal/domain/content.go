package domain

// Highlight is a titled blurb on the marketing pages.
type Highlight struct {
	Title       string
	Description string
}

type FAQ struct {
	Question string
	Answer   string
}

const Tagline = "Apostille and document legalization services."

const Mission = "To provide secure, accessible, and legally-binding authentication globally, ensuring every document is verified with absolute integrity and technological excellence."

var WhyChooseUs = []Highlight{
	{Title: "Bank-Level Security", Description: "AES-256 bit encryption ensures your sensitive legal data remains private and unalterable."},
	{Title: "Lightning Fast Results", Description: "Average verification turnaround time is under 120 seconds for standard legal documents."},
	{Title: "Globally Recognized", Description: "Certified for use in 140+ countries under the Hague Apostille Convention."},
}

var HowItWorks = []Highlight{
	{Title: "Uploaded", Description: "Securely upload your digital documents or high-res scans through our portal."},
	{Title: "Verification", Description: "Our AI-powered engine checks for watermarks, digital signatures, and metadata."},
	{Title: "Processing", Description: "Legal experts cross-reference with global databases for final certification."},
	{Title: "Download", Description: "Receive your legally certified document with a unique validation code."},
}

var CoreValues = []Highlight{
	{Title: "Integrity", Description: "Unwavering ethical standards in every verification process we conduct."},
	{Title: "Innovation", Description: "Cutting-edge verification technology that evolves with the digital landscape."},
	{Title: "Security", Description: "Military-grade encryption protecting your most sensitive legal documents."},
}

var FAQs = []FAQ{
	{
		Question: "What is an apostille?",
		Answer:   "An apostille is a certification that verifies the authenticity of a document for use in countries that are members of the Hague Apostille Convention.",
	},
	{
		Question: "What is the difference between an apostille and authentication?",
		Answer:   "Apostilles are for countries that are part of the Hague Convention, while authentications (and legalizations) are for countries that are not members of the convention.",
	},
	{
		Question: "How do I know if my document requires a state or federal apostille?",
		Answer:   "Generally, documents issued by a state (like birth certificates or notarized documents) require a state apostille, while federal documents (like FBI background checks) require a federal apostille from the U.S. Department of State.",
	},
	{
		Question: "What types of documents do you handle?",
		Answer:   "We handle a wide range of documents including birth certificates, wedding certificates, diplomas, transcripts, power of attorney, corporate documents, and more.",
	},
	{
		Question: "What if I'm not sure which service I need?",
		Answer:   "Our experts can review your documents and destination country to determine exactly what level of authentication is required for your specific situation.",
	},
	{
		Question: "How long does the process take?",
		Answer:   "Timeline varies depending on the type of document and the issuing authority, but we offer expedited services to ensure your documents are processed as quickly as possible.",
	},
}
