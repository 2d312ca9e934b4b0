package engine_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/timescale/internal/engine"
	"github.com/san-kum/timescale/internal/integrators"
	"github.com/san-kum/timescale/internal/physics"
	"github.com/san-kum/timescale/internal/timescale"
)

var _ = Describe("Engine as a time scale host", func() {
	var (
		eng   *engine.Engine
		clock *timescale.ManualClock
		ctrl  *timescale.Controller
	)

	BeforeEach(func() {
		var err error
		eng, err = engine.New(physics.NewPendulum(), integrators.NewRK4(), physics.DefaultState("pendulum"), engine.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		clock = timescale.NewManualClock(0)
		ctrl = timescale.New(eng, clock)
	})

	tick := func(d time.Duration) {
		clock.Advance(d.Seconds())
		eng.Frame(d)
		ctrl.Advance(clock.Now())
	}

	It("starts from the engine's settings", func() {
		Expect(ctrl.CurrentTimeScale()).To(Equal(1.0))
		Expect(ctrl.CurrentFrameRate()).To(Equal(60))
	})

	It("pauses the simulation instantly in edit mode", func() {
		ctrl.SetTargetTimeScale(0)
		Expect(eng.TimeScale()).To(Equal(0.0))
	})

	It("eases the engine's time scale in play mode", func() {
		eng.Play()
		ctrl.SetTargetTimeScale(2)

		tick(250 * time.Millisecond)
		Expect(eng.TimeScale()).To(BeNumerically("~", 1.5, 1e-9))

		tick(250 * time.Millisecond)
		Expect(eng.TimeScale()).To(Equal(2.0))
		Expect(eng.SimTime()).To(BeNumerically(">", 0.0))
	})

	It("keeps easing while paused", func() {
		eng.Play()
		eng.Pause()
		ctrl.SetTargetTimeScale(0.1)
		tick(time.Second)
		Expect(eng.TimeScale()).To(Equal(0.1))
		Expect(eng.SimTime()).To(Equal(0.0))
	})

	It("reconciles with a coerced frame rate", func() {
		eng.Play()
		ctrl.SetTargetFrameRate(0)
		tick(10 * time.Millisecond)
		Expect(ctrl.CurrentFrameRate()).To(Equal(timescale.Uncapped))
		Expect(eng.FrameInterval()).To(Equal(engine.DefaultUncappedRefresh))
	})

	It("picks up frame rates set while stopped", func() {
		ctrl.SetTargetFrameRate(120)
		Expect(eng.TargetFrameRate()).To(Equal(120))
		Expect(eng.FrameInterval()).To(Equal(time.Second / 120))
	})
})
