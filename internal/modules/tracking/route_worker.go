// README: Route worker; one estimate in flight plus one pending, latest request wins.
package tracking

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"ordertrack/internal/maps"
)

type routeWorker struct {
	est     RouteEstimator
	limiter *rate.Limiter
	out     chan maps.RoutePlan
	wake    chan struct{}

	mu             sync.Mutex
	pending        *maps.Query
	inflight       *maps.Query
	inflightCancel context.CancelFunc
}

func newRouteWorker(est RouteEstimator, minInterval time.Duration) *routeWorker {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &routeWorker{
		est:     est,
		limiter: rate.NewLimiter(limit, 1),
		out:     make(chan maps.RoutePlan, 1),
		wake:    make(chan struct{}, 1),
	}
}

func (w *routeWorker) Results() <-chan maps.RoutePlan { return w.out }

// Submit replaces any pending request. An in-flight request for the other side of
// the pickup boundary or another destination is cancelled; its fallback result is
// discarded by the session.
func (w *routeWorker) Submit(q maps.Query) {
	w.mu.Lock()
	w.pending = &q
	if w.inflight != nil && w.inflightCancel != nil && !maps.Relevant(maps.RoutePlan{
		Destination: w.inflight.Destination,
		RouteType:   w.inflight.RouteType,
		PickedUp:    w.inflight.PickedUp,
	}, q) {
		w.inflightCancel()
	}
	w.mu.Unlock()
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *routeWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.wake:
		}
		for {
			w.mu.Lock()
			q := w.pending
			w.pending = nil
			w.mu.Unlock()
			if q == nil {
				break
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			// A newer request may have arrived while waiting for the limiter.
			w.mu.Lock()
			if w.pending != nil {
				q, w.pending = w.pending, nil
			}
			reqCtx, cancel := context.WithCancel(ctx)
			w.inflight, w.inflightCancel = q, cancel
			w.mu.Unlock()

			plan := w.est.Estimate(reqCtx, *q)
			cancel()

			w.mu.Lock()
			w.inflight, w.inflightCancel = nil, nil
			w.mu.Unlock()

			select {
			case w.out <- plan:
			case <-ctx.Done():
				return
			}
		}
	}
}
