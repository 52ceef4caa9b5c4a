package temporal

import (
	"context"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/converter"
	"go.temporal.io/sdk/testsuite"

	"legalize-docs/internal/domain"
	"legalize-docs/internal/storage"
)

type activityTrace struct {
	mu sync.Mutex

	startedOrder   []string
	completedOrder []string

	recordIn *RecordRequestInput
	verifyIn *VerifyUploadInput
	ackIn    *AcknowledgeRequestInput

	failCalls int
}

func (t *activityTrace) recordStarted(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startedOrder = append(t.startedOrder, name)
}

func (t *activityTrace) recordCompleted(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.completedOrder = append(t.completedOrder, name)
}

var _ = Describe("ServiceRequestWorkflow blackbox happy path", func() {
	It("records, verifies and acknowledges a submitted apostille request", func() {
		var suite testsuite.WorkflowTestSuite
		env := suite.NewTestWorkflowEnvironment()

		store := storage.NewMemoryStore()
		req := sampleRequest("req-happy-blackbox-1")
		acts := &Activities{
			Store: store,
			Blob:  &fakeBlob{objects: map[string][]byte{req.File.ObjectKey: []byte("%PDF")}},
		}

		trace := &activityTrace{}

		env.SetOnActivityStartedListener(func(info *activity.Info, _ context.Context, args converter.EncodedValues) {
			trace.recordStarted(info.ActivityType.Name)

			switch info.ActivityType.Name {
			case "RecordRequestActivity":
				var in RecordRequestInput
				_ = args.Get(&in)
				trace.mu.Lock()
				trace.recordIn = &in
				trace.mu.Unlock()
			case "VerifyUploadActivity":
				var in VerifyUploadInput
				_ = args.Get(&in)
				trace.mu.Lock()
				trace.verifyIn = &in
				trace.mu.Unlock()
			case "AcknowledgeRequestActivity":
				var in AcknowledgeRequestInput
				_ = args.Get(&in)
				trace.mu.Lock()
				trace.ackIn = &in
				trace.mu.Unlock()
			case "MarkRequestFailedActivity":
				trace.mu.Lock()
				trace.failCalls++
				trace.mu.Unlock()
			}
		})

		env.SetOnActivityCompletedListener(func(info *activity.Info, _ converter.EncodedValue, _ error) {
			trace.recordCompleted(info.ActivityType.Name)
		})

		env.RegisterWorkflow(ServiceRequestWorkflow)
		env.RegisterActivity(acts)

		By("triggering the workflow with a submitted request")
		env.ExecuteWorkflow(ServiceRequestWorkflow, WorkflowInput{Request: req})

		By("validating workflow completes successfully")
		Expect(env.IsWorkflowCompleted()).To(BeTrue())
		Expect(env.GetWorkflowError()).ToNot(HaveOccurred())

		var wfResult WorkflowResult
		Expect(env.GetWorkflowResult(&wfResult)).To(Succeed())
		Expect(wfResult.RequestID).To(Equal(req.ID))
		Expect(wfResult.Status).To(Equal(domain.StatusAcknowledged))

		By("validating activity order and inputs")
		expectedOrder := []string{
			"RecordRequestActivity",
			"VerifyUploadActivity",
			"AcknowledgeRequestActivity",
		}
		Expect(trace.startedOrder).To(Equal(expectedOrder))
		Expect(trace.completedOrder).To(Equal(expectedOrder))
		Expect(trace.failCalls).To(BeZero())

		Expect(trace.recordIn).ToNot(BeNil())
		Expect(trace.recordIn.Request.Form).To(Equal(domain.DefaultRequestForm()))
		Expect(trace.recordIn.Request.Summary.TotalCents).To(Equal(int64(6500)))
		Expect(trace.verifyIn).ToNot(BeNil())
		Expect(trace.verifyIn.File.ObjectKey).To(Equal(req.File.ObjectKey))
		Expect(trace.ackIn).ToNot(BeNil())
		Expect(trace.ackIn.RequestID).To(Equal(req.ID))

		By("validating persisted state")
		rec, err := store.GetRequest(context.Background(), req.ID)
		Expect(err).ToNot(HaveOccurred())
		Expect(rec.Status).To(Equal(domain.StatusAcknowledged))
		Expect(store.AuditTrail(req.ID)).To(Equal([]domain.AuditState{domain.AuditRecorded, domain.AuditAcknowledged}))
	})
})
