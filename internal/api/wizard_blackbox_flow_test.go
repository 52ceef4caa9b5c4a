package api

import (
	"encoding/json"
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"legalize-docs/internal/domain"
	"legalize-docs/internal/wizard"
)

var _ = Describe("Service request wizard over HTTP", func() {
	var env *testEnv

	BeforeEach(func() {
		var err error
		env, err = newTestEnv(envOptions{})
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(env.Close)
	})

	fetch := func(path string) wizardResponse {
		resp, body, err := env.get(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		var out wizardResponse
		Expect(json.Unmarshal([]byte(body), &out)).To(Succeed())
		return out
	}

	It("takes an apostille request from document details to a receipt", func() {
		By("opening a wizard for the apostille service")
		resp, body, err := env.postJSON("/v1/wizards", `{"service_id":"apostille"}`)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))
		var created wizardResponse
		Expect(json.Unmarshal([]byte(body), &created)).To(Succeed())
		Expect(created.Form).To(Equal(domain.DefaultRequestForm()))
		base := "/v1/wizards/" + created.ID

		By("filling in the document details")
		resp, _, err = env.do(http.MethodPatch, base+"/fields", "application/json",
			strings.NewReader(`{"documentType":"birth-cert","issuingAuthority":"Texas DSHS","stateOfIssuance":"tx"}`))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		resp, _, err = env.postJSON(base+"/advance", `{}`)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		By("uploading the certificate and waiting for it to land")
		resp, _, err = env.upload(http.MethodPost, base+"/file", "certificate.pdf", "application/pdf", pdfContent)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusAccepted))

		Eventually(func() *domain.SelectedFile {
			return fetch(base).SelectedFile
		}).ShouldNot(BeNil())

		By("reviewing and submitting")
		resp, _, err = env.postJSON(base+"/advance", `{}`)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		review := fetch(base)
		Expect(review.Step).To(Equal(domain.StepReview))
		Expect(review.Form.StateOfIssuance).To(Equal(domain.StateTexas))
		Expect(review.SelectedFile.Name).To(Equal("certificate.pdf"))

		resp, body, err = env.postJSON(base+"/submit", `{}`)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		var done wizardResponse
		Expect(json.Unmarshal([]byte(body), &done)).To(Succeed())
		Expect(done.Submitted).To(BeTrue())
		Expect(done.Receipt).ToNot(BeNil())
		Expect(done.Receipt.Reference).To(HavePrefix("LD-"))
		Expect(done.Notifications).To(ContainElement(HaveField("Kind", wizard.KindRequestSubmitted)))

		By("refusing further edits")
		resp, _, err = env.postJSON(base+"/back", `{}`)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusConflict))
		Expect(fetch(base).Step).To(Equal(domain.StepReview))
	})

	It("keeps the user on the upload step until a file is accepted", func() {
		resp, body, err := env.postJSON("/v1/wizards", `{"service_id":"notary"}`)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))
		var created wizardResponse
		Expect(json.Unmarshal([]byte(body), &created)).To(Succeed())
		base := "/v1/wizards/" + created.ID

		resp, _, err = env.postJSON(base+"/jump", `{"step":2}`)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		tooBig := make([]byte, 5*1024*1024+1)
		resp, body, err = env.upload(http.MethodPost, base+"/file", "scan.png", "image/png", tooBig)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusUnprocessableEntity))
		Expect(body).To(ContainSubstring(string(wizard.KindFileTooLarge)))

		resp, _, err = env.postJSON(base+"/advance", `{}`)
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusUnprocessableEntity))
		Expect(fetch(base).Step).To(Equal(domain.StepUpload))
	})
})
