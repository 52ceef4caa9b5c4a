package temporal

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTemporalSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Temporal Suite")
}
