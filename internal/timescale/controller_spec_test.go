package timescale_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/timescale/internal/timescale"
)

type stubHost struct {
	scale      float64
	fps        int
	simulating bool
}

func (h *stubHost) TimeScale() float64         { return h.scale }
func (h *stubHost) SetTimeScale(s float64)     { h.scale = s }
func (h *stubHost) TargetFrameRate() int       { return h.fps }
func (h *stubHost) SetTargetFrameRate(fps int) { h.fps = fps }
func (h *stubHost) IsSimulating() bool         { return h.simulating }

var _ = Describe("Controller", func() {
	var (
		host  *stubHost
		clock *timescale.ManualClock
		ctrl  *timescale.Controller
	)

	BeforeEach(func() {
		host = &stubHost{scale: 1.0, fps: 60}
		clock = timescale.NewManualClock(0)
		ctrl = timescale.New(host, clock)
	})

	Context("while the host is idle", func() {
		It("applies time scale presets immediately", func() {
			for _, p := range timescale.DefaultTimeScalePresets() {
				ctrl.SetTargetTimeScale(p.Value)
				Expect(ctrl.CurrentTimeScale()).To(Equal(p.Value))
				Expect(host.scale).To(Equal(p.Value))
			}
		})

		It("applies frame rate presets immediately", func() {
			for _, p := range timescale.DefaultFrameRatePresets() {
				ctrl.SetTargetFrameRate(p.Value)
				Expect(host.fps).To(Equal(p.Value))
			}
		})

		It("mirrors settings changed elsewhere", func() {
			host.scale, host.fps = 0.25, timescale.Uncapped
			ctrl.Advance(clock.Now())
			Expect(ctrl.CurrentTimeScale()).To(Equal(0.25))
			Expect(ctrl.CurrentFrameRate()).To(Equal(timescale.Uncapped))
		})
	})

	Context("while the host is simulating", func() {
		BeforeEach(func() {
			ctrl.SetTargetTimeScale(0.0)
			host.simulating = true
			ctrl.SetTargetTimeScale(2.0)
		})

		It("does not jump on retarget", func() {
			Expect(ctrl.CurrentTimeScale()).To(Equal(0.0))
			Expect(ctrl.TransitionAnchor()).To(Equal(0.0))
			Expect(host.scale).To(Equal(0.0))
		})

		It("is halfway at 0.25s", func() {
			clock.Set(0.25)
			ctrl.Advance(clock.Now())
			Expect(ctrl.CurrentTimeScale()).To(Equal(1.0))
			Expect(host.scale).To(Equal(1.0))
		})

		It("stays strictly between the endpoints mid transition", func() {
			for _, at := range []float64{0.05, 0.1, 0.25, 0.4, 0.49} {
				ctrl.Advance(at)
				Expect(ctrl.CurrentTimeScale()).To(BeNumerically(">", 0.0))
				Expect(ctrl.CurrentTimeScale()).To(BeNumerically("<", 2.0))
			}
		})

		It("holds the exact target once the transition ends", func() {
			for _, at := range []float64{0.5, 0.6, 3.0} {
				ctrl.Advance(at)
				Expect(ctrl.CurrentTimeScale()).To(Equal(2.0))
			}
			Expect(ctrl.Transitioning(3.0)).To(BeFalse())
		})

		It("steps the frame rate on the next tick", func() {
			ctrl.SetTargetFrameRate(5)
			Expect(host.fps).To(Equal(60))
			ctrl.Advance(0.01)
			Expect(ctrl.CurrentFrameRate()).To(Equal(5))
		})
	})
})
