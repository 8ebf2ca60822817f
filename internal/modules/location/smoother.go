// README: Linear position smoothing between the displayed position and the newest target.
package location

import (
	"time"

	"ordertrack/internal/modules/geo"
	"ordertrack/internal/types"
)

const DefaultAnimationWindow = 2 * time.Second

// Smoother is not safe for concurrent use; the tracking session owns it.
type Smoother struct {
	window time.Duration
	from   types.Point
	to     types.Point
	start  time.Time
	has    bool
}

func NewSmoother(window time.Duration) *Smoother {
	if window < 0 {
		window = 0
	}
	return &Smoother{window: window}
}

// Push starts a transition from the currently displayed position to p. The first
// push jumps straight to p.
func (s *Smoother) Push(p types.Point, now time.Time) {
	if !s.has {
		s.from, s.to, s.start, s.has = p, p, now, true
		return
	}
	cur, _ := s.At(now)
	s.from, s.to, s.start = cur, p, now
}

// At returns the displayed position at now. Once the window has elapsed it is the
// target exactly.
func (s *Smoother) At(now time.Time) (types.Point, bool) {
	if !s.has {
		return types.Point{}, false
	}
	return geo.Lerp(s.from, s.to, s.progress(now)), true
}

func (s *Smoother) Target() (types.Point, bool) {
	return s.to, s.has
}

// Animating reports whether At(now) differs from the target.
func (s *Smoother) Animating(now time.Time) bool {
	return s.has && s.from != s.to && s.progress(now) < 1
}

func (s *Smoother) progress(now time.Time) float64 {
	if s.window <= 0 {
		return 1
	}
	elapsed := now.Sub(s.start)
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(s.window)
}
