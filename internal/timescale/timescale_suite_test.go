package timescale_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTimescale(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Timescale Suite")
}
