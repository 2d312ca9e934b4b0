package trace

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/timescale/internal/engine"
	"github.com/san-kum/timescale/internal/timescale"
)

// Sample is the panel's view of one tick.
type Sample struct {
	Tick            int
	Wall            float64
	SimTime         float64
	TimeScale       float64
	Target          float64
	FrameRate       int
	TargetFrameRate int
	Mode            string
}

type Options struct {
	// TransitionDuration overrides timescale.TransitionDuration when > 0.
	TransitionDuration float64
	Logger             *log.Logger
}

// Run replays the script against eng on a manual clock, one tick every
// 1/Rate seconds of wall time, and records a sample per tick. Inputs due at
// a tick are applied before the engine steps, as a panel would see them.
func Run(ctx context.Context, s *Script, eng *engine.Engine, opts Options) ([]Sample, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	clock := timescale.NewManualClock(0)
	ctrl := timescale.New(eng, clock,
		timescale.WithTransitionDuration(opts.TransitionDuration),
		timescale.WithLogger(logger))

	ticks := int(math.Floor(s.Duration*s.Rate)) + 1
	step := time.Duration(float64(time.Second) / s.Rate)
	samples := make([]Sample, 0, ticks)
	next := 0

	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return samples, ctx.Err()
		default:
		}

		now := float64(i) / s.Rate
		clock.Set(now)
		for next < len(s.Events) && s.Events[next].At <= now {
			apply(s.Events[next], eng, ctrl)
			logger.Debug("event", "at", now, "kind", s.Events[next].Kind, "value", s.Events[next].Value)
			next++
		}

		if i > 0 {
			eng.Frame(step)
		}
		ctrl.Advance(now)

		samples = append(samples, Sample{
			Tick:            i,
			Wall:            now,
			SimTime:         eng.SimTime(),
			TimeScale:       ctrl.CurrentTimeScale(),
			Target:          ctrl.TargetTimeScale(),
			FrameRate:       ctrl.CurrentFrameRate(),
			TargetFrameRate: ctrl.TargetFrameRate(),
			Mode:            eng.Mode().String(),
		})
	}
	return samples, nil
}

func apply(ev Event, eng *engine.Engine, ctrl *timescale.Controller) {
	switch ev.Kind {
	case KindPlay:
		eng.Play()
	case KindStop:
		eng.Stop()
	case KindPause:
		eng.Pause()
	case KindResume:
		eng.Resume()
	case KindTimeScale:
		ctrl.SetTargetTimeScale(timescale.ClampTimeScale(ev.Value))
	case KindFrameRate:
		ctrl.SetTargetFrameRate(timescale.ClampFrameRate(int(math.Round(ev.Value))))
	}
}
