// README: Tracking session; a single loop goroutine owns all state and republishes the combined view.
package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"ordertrack/internal/maps"
	"ordertrack/internal/modules/geo"
	"ordertrack/internal/modules/location"
	"ordertrack/internal/modules/order"
	"ordertrack/internal/modules/status"
	"ordertrack/internal/modules/viewport"
	"ordertrack/internal/types"
)

var (
	ErrNotStarted              = errors.New("tracking session not started")
	ErrAlreadyStarted          = errors.New("tracking session already started")
	ErrStopped                 = errors.New("tracking session stopped")
	ErrNotAwaitingConfirmation = errors.New("order is not awaiting customer confirmation")
	ErrConfirmFailed           = errors.New("confirm receipt failed")
	ErrConfirmInProgress       = errors.New("confirm receipt already in progress")
)

type Session struct {
	id     string
	cfg    Config
	deps   Deps
	logger *slog.Logger
	now    func() time.Time

	confirmCh chan confirmRequest
	done      chan struct{}

	mu      sync.Mutex
	orderID types.ID
	started bool
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	viewMu  sync.RWMutex
	view    View
	subs    map[int]chan View
	nextSub int
	closed  bool
}

func NewSession(deps Deps, cfg Config) *Session {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Sink == nil {
		deps.Sink = NewLogSink(deps.Logger)
	}
	if deps.Routes == nil {
		deps.Routes = maps.NewEstimator(nil, 0, deps.Logger)
	}
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	id := uuid.NewString()
	return &Session{
		id:        id,
		cfg:       cfg.withDefaults(),
		deps:      deps,
		logger:    deps.Logger.With("session_id", id),
		now:       now,
		confirmCh: make(chan confirmRequest),
		done:      make(chan struct{}),
		subs:      make(map[int]chan View),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) OrderID() types.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderID
}

// Start begins tracking and returns immediately; the first view is in the
// loading phase until the initial snapshot arrives.
func (s *Session) Start(ctx context.Context, orderID types.ID) error {
	if orderID == "" {
		return order.ErrBadRequest
	}
	if s.deps.Orders == nil {
		return errors.New("tracking: order service is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrStopped
	}
	if s.started {
		return ErrAlreadyStarted
	}
	s.started, s.orderID = true, orderID

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	lp := newLoop(s, orderID)
	s.setView(lp.buildView())

	go s.supervise(ctx, cancel, lp)
	return nil
}

// supervise runs the loop until it is cancelled or the order reaches a terminal
// stage. Queued history writes still drain in the second case.
func (s *Session) supervise(ctx context.Context, cancel context.CancelFunc, lp *loop) {
	defer close(s.done)
	defer cancel()

	loopCtx, loopCancel := context.WithCancel(ctx)
	s.wg.Add(2)
	go func() { defer s.wg.Done(); lp.routes.Run(loopCtx) }()
	go func() { defer s.wg.Done(); lp.runOutbox(ctx) }()

	lp.run(loopCtx)
	loopCancel()
	close(lp.outbox)
	s.wg.Wait()
	s.closeSubs()
}

// Stop cancels every request, timer and connection the session owns and waits for
// its goroutines. Safe to call more than once.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	started, cancel := s.started, s.cancel
	s.mu.Unlock()

	if started {
		cancel()
		<-s.done
		return
	}
	close(s.done)
	s.closeSubs()
}

func (s *Session) closeSubs() {
	s.viewMu.Lock()
	defer s.viewMu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
}

// Done is closed once the session has stopped or finished at a terminal stage.
func (s *Session) Done() <-chan struct{} { return s.done }

// ConfirmReceipt forwards the customer's confirmation to the order service. A
// failure leaves the stage at awaiting confirmation and wraps ErrConfirmFailed.
// Confirming an already delivered order is a no-op.
func (s *Session) ConfirmReceipt(ctx context.Context) error {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return ErrNotStarted
	}
	req := confirmRequest{ctx: ctx, reply: make(chan error, 1)}
	select {
	case s.confirmCh <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return s.finishedConfirmErr()
	}
	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		select {
		case err := <-req.reply:
			return err
		default:
		}
		return s.finishedConfirmErr()
	}
}

// finishedConfirmErr answers a confirmation that arrives after the loop exited.
func (s *Session) finishedConfirmErr() error {
	switch st := s.View().Stage; {
	case st == status.StageDelivered:
		return nil
	case st.Terminal():
		return ErrNotAwaitingConfirmation
	default:
		return ErrStopped
	}
}

// View returns the latest published view.
func (s *Session) View() View {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()
	return s.view
}

// Subscribe delivers the current view immediately and then every change. Slow
// subscribers only ever see the latest view. The channel is closed once the
// session is done; a finished session delivers its final view and closes at once.
func (s *Session) Subscribe() (<-chan View, func()) {
	ch := make(chan View, 1)
	s.viewMu.Lock()
	defer s.viewMu.Unlock()
	if s.closed {
		ch <- s.view
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.view
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.viewMu.Lock()
			defer s.viewMu.Unlock()
			if c, ok := s.subs[id]; ok {
				close(c)
				delete(s.subs, id)
			}
		})
	}
}

func (s *Session) setView(v View) {
	s.viewMu.Lock()
	defer s.viewMu.Unlock()
	s.view = v
	for _, ch := range s.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}

type confirmRequest struct {
	ctx   context.Context
	reply chan error
}

type confirmResult struct {
	err   error
	reply chan error
}

type snapshotResult struct {
	order *order.Order
	err   error
}

// loop holds the state owned by the session goroutine. Nothing here is touched
// from any other goroutine.
type loop struct {
	s       *Session
	orderID types.ID
	log     *slog.Logger
	fitter  viewport.Fitter
	routes  *routeWorker
	outbox  chan func(context.Context)

	order      *order.Order
	loaded     bool
	stage      status.Stage
	hasPartner bool
	pickedUp   bool
	lastErr    string

	smoother    *location.Smoother
	target      *location.Sample
	streamETA   *int
	streamETAAt time.Time

	route     *maps.RoutePlan
	requested *maps.Query
	region    *viewport.Region

	stream       Stream
	streamEvents <-chan location.Event
	conn         location.ConnectionState
	degraded     bool

	fetching    bool
	snapshots   chan snapshotResult
	loadBackoff time.Duration
	retryTimer  *time.Timer
	frameTicker *time.Ticker
	confirming  bool
	confirmDone chan confirmResult
	version     int64
}

func newLoop(s *Session, orderID types.ID) *loop {
	return &loop{
		s:           s,
		orderID:     orderID,
		log:         s.logger.With("order_id", orderID),
		fitter:      viewport.NewFitter(),
		routes:      newRouteWorker(s.deps.Routes, s.cfg.RouteMinInterval),
		outbox:      make(chan func(context.Context), s.cfg.OutboxSize),
		smoother:    location.NewSmoother(s.cfg.AnimationWindow),
		conn:        location.Disconnected,
		snapshots:   make(chan snapshotResult, 1),
		loadBackoff: s.cfg.LoadRetryBase,
		confirmDone: make(chan confirmResult, 1),
	}
}

func (l *loop) run(ctx context.Context) {
	poll := time.NewTicker(l.s.cfg.PollInterval)
	defer poll.Stop()
	defer l.stopFrames()
	defer l.closeStream()
	defer func() {
		if l.retryTimer != nil {
			l.retryTimer.Stop()
		}
	}()

	l.fetch(ctx)
	for {
		if l.stage.Terminal() && !l.confirming {
			return
		}
		var frameC, retryC <-chan time.Time
		if l.frameTicker != nil {
			frameC = l.frameTicker.C
		}
		if l.retryTimer != nil {
			retryC = l.retryTimer.C
		}

		select {
		case <-ctx.Done():
			return

		case res := <-l.snapshots:
			l.fetching = false
			l.onSnapshot(ctx, res)

		case <-retryC:
			l.retryTimer = nil
			l.fetch(ctx)

		case <-poll.C:
			if l.loaded && !l.stage.Terminal() && l.conn != location.Connected {
				l.fetch(ctx)
			}

		case ev, ok := <-l.streamEvents:
			if !ok {
				l.streamEvents = nil
				l.onStreamEnded()
				continue
			}
			l.onStreamEvent(ctx, ev)

		case plan := <-l.routes.Results():
			l.onRoute(plan)

		case <-frameC:
			now := l.s.now()
			if !l.smoother.Animating(now) {
				l.stopFrames()
			}
			l.publishFrame()

		case req := <-l.s.confirmCh:
			l.onConfirm(ctx, req)

		case res := <-l.confirmDone:
			l.onConfirmResult(res)
		}
	}
}

func (l *loop) fetch(ctx context.Context) {
	if l.fetching {
		return
	}
	l.fetching = true
	l.s.wg.Add(1)
	go func() {
		defer l.s.wg.Done()
		o, err := l.s.deps.Orders.Get(ctx, l.orderID)
		select {
		case l.snapshots <- snapshotResult{order: o, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (l *loop) onSnapshot(ctx context.Context, res snapshotResult) {
	if res.err != nil {
		if ctx.Err() != nil {
			return
		}
		l.lastErr = res.err.Error()
		if !l.loaded {
			l.log.Warn("snapshot_load_failed", "error", res.err, "retry_in", l.loadBackoff)
			l.retryTimer = time.NewTimer(l.loadBackoff)
			l.loadBackoff = min(l.loadBackoff*2, l.s.cfg.LoadRetryMax)
		} else {
			l.log.Warn("snapshot_poll_failed", "error", res.err)
		}
		l.publish()
		return
	}
	if res.order == nil {
		return
	}
	l.lastErr = ""
	l.applySnapshot(ctx, res.order)
}

func (l *loop) applySnapshot(ctx context.Context, o *order.Order) {
	first := !l.loaded
	l.order = o.Clone()
	l.loaded = true
	l.loadBackoff = l.s.cfg.LoadRetryBase
	if first {
		l.log.Info("snapshot_loaded", "status", o.Status)
	}

	l.classify(o.Status)
	if o.HasPartner() {
		l.assignPartner(o.Partner)
		if loc := o.Partner.Location; loc != nil && loc.Valid() && l.stage.Active() && l.snapshotNewer(o.UpdatedAt) {
			if l.target == nil || geo.HaversineMeters(l.target.Point, *loc) > l.s.cfg.RouteEpsilonMeters {
				at := o.UpdatedAt
				if at.IsZero() {
					at = l.s.now()
				}
				l.acceptSample(location.Sample{Point: *loc, RecordedAt: at})
			}
		}
	}

	if l.stage.Active() && l.stream == nil && l.s.deps.Streams != nil {
		l.openStream(ctx)
	}
	l.refresh()
}

// snapshotNewer reports whether a snapshot stamped at may replace the current
// target. An unstamped snapshot only seeds a missing target.
func (l *loop) snapshotNewer(at time.Time) bool {
	if l.target == nil {
		return true
	}
	return !at.IsZero() && at.After(l.target.RecordedAt)
}

func (l *loop) openStream(ctx context.Context) {
	st := l.s.deps.Streams()
	if err := st.Open(ctx, l.orderID); err != nil {
		l.log.Error("stream_open_failed", "error", err)
		_ = st.Close()
		l.degrade()
		return
	}
	l.stream = st
	l.streamEvents = st.Events()
}

func (l *loop) closeStream() {
	if l.stream == nil {
		return
	}
	_ = l.stream.Close()
	l.stream = nil
	l.streamEvents = nil
}

// onStreamEnded handles a stream that stopped on its own. The next successful
// poll opens a fresh one.
func (l *loop) onStreamEnded() {
	l.closeStream()
	l.conn = location.Disconnected
	if !l.stage.Terminal() {
		l.degrade()
	}
	l.publish()
}

func (l *loop) degrade() {
	if l.degraded {
		return
	}
	l.degraded = true
	l.log.Warn("connection_degraded")
	l.notify(Notification{
		OrderID: l.orderID,
		Kind:    NotifyConnectionDegraded,
		Stage:   l.stage,
		Message: "Live tracking unavailable, refreshing periodically",
	})
}

func (l *loop) onStreamEvent(ctx context.Context, ev location.Event) {
	switch ev.Kind {
	case location.KindConnection:
		prev := l.conn
		l.conn = ev.Connection
		switch {
		case ev.Exhausted:
			l.degrade()
		case ev.Connection == location.Connected:
			l.degraded = false
			l.fetch(ctx)
		case ev.Connection == location.Disconnected && prev == location.Connected:
			l.log.Info("stream_disconnected_polling")
		}
		l.publish()

	case location.KindPosition:
		if !l.loaded || l.stage.Terminal() || ev.Position == nil {
			return
		}
		l.acceptSample(*ev.Position)
		if ev.ETASeconds != nil {
			eta := *ev.ETASeconds
			l.streamETA, l.streamETAAt = &eta, l.s.now()
		}
		l.refresh()

	case location.KindPickedUp:
		if !l.loaded || l.stage.Terminal() {
			return
		}
		l.pickedUp = true
		if !l.hasPartner {
			l.assignPartner(nil)
		}
		l.advance(status.StagePickedUpFromBranch)
		l.refresh()

	case location.KindStatus:
		if !l.loaded || l.stage.Terminal() {
			return
		}
		if ev.Partner != nil {
			l.assignPartner(ev.Partner)
		}
		if ev.Status != "" {
			if l.order != nil && status.Advance(l.stage, status.Classify(ev.Status)) != l.stage {
				l.order.Status = ev.Status
			}
			l.classify(ev.Status)
		}
		l.refresh()
	}
}

func (l *loop) acceptSample(smp location.Sample) {
	now := l.s.now()
	l.target = &smp
	l.smoother.Push(smp.Point, now)
	if l.smoother.Animating(now) {
		l.startFrames()
	}
	partnerID := types.ID("")
	if l.order != nil && l.order.Partner != nil {
		partnerID = l.order.Partner.ID
	}
	if rec := l.s.deps.Recorder; rec != nil {
		orderID := l.orderID
		l.enqueue(func(ctx context.Context) error { return rec.RecordSample(ctx, orderID, partnerID, smp) })
	}
}

func (l *loop) assignPartner(p *order.Partner) {
	if p != nil && l.order != nil {
		merged := *p
		if merged.Location == nil && l.order.Partner != nil {
			merged.Location = l.order.Partner.Location
		}
		l.order.Partner = &merged
	}
	if l.hasPartner {
		return
	}
	l.hasPartner = true
	name := ""
	if p != nil {
		name = p.Name
	}
	l.log.Info("partner_assigned", "partner", name)
	l.notify(Notification{
		OrderID: l.orderID,
		Kind:    NotifyPartnerAssigned,
		Stage:   l.stage,
		Message: "A delivery partner has been assigned",
	})
}

// classify maps a backend status onto a stage and advances to it.
func (l *loop) classify(raw string) {
	if !status.Known(raw) {
		l.log.Warn("unknown_status", "status", raw)
	}
	l.advance(status.Classify(raw))
}

// advance applies a classified stage through the monotonic machine.
func (l *loop) advance(next status.Stage) {
	prev := l.stage
	cur := status.Advance(prev, next)
	if cur == prev {
		return
	}
	l.stage = cur
	if cur.Index() >= status.StageOutForDelivery.Index() {
		l.pickedUp = true
	}
	l.log.Info("stage_changed", "from", prev, "to", cur)
	if prev != "" {
		if rec := l.s.deps.Recorder; rec != nil {
			orderID, at := l.orderID, l.s.now()
			l.enqueue(func(ctx context.Context) error { return rec.RecordTransition(ctx, orderID, prev, cur, at) })
		}
		l.notify(Notification{OrderID: l.orderID, Kind: NotifyStageChanged, Stage: cur, Message: stageMessage(cur)})
	}
	if cur.Terminal() {
		l.teardown()
	}
}

// teardown releases live resources once no further updates are expected.
func (l *loop) teardown() {
	l.closeStream()
	l.conn = location.Disconnected
	l.degraded = false
	l.streamETA = nil
	l.stopFrames()
	l.log.Info("tracking_terminal", "stage", l.stage)
}

func (l *loop) currentQuery() (maps.Query, bool) {
	if !l.loaded || l.order == nil || !l.hasPartner {
		return maps.Query{}, false
	}
	dest := l.order.Delivery.Point()
	q := maps.Query{
		OrderID:            l.orderID,
		Origin:             l.order.Pickup.Point(),
		OriginAddress:      l.order.Pickup.Address,
		Destination:        dest,
		DestinationAddress: l.order.Delivery.Address,
		RouteType:          maps.RouteBranchToCustomer,
		PickedUp:           l.pickedUp,
	}
	if l.pickedUp && l.target != nil {
		q.Origin, q.OriginAddress = l.target.Point, ""
		q.RouteType = maps.RoutePartnerToCustomer
	}
	if !q.Origin.Valid() || !q.Destination.Valid() {
		return maps.Query{}, false
	}
	return q, true
}

func (l *loop) maybeRoute() {
	if l.stage == status.StageAwaitingCustomerConfirmation || l.stage.Terminal() {
		return
	}
	q, ok := l.currentQuery()
	if !ok {
		return
	}
	if l.requested != nil && !maps.Changed(*l.requested, q, l.s.cfg.RouteEpsilonMeters) {
		return
	}
	l.requested = &q
	l.routes.Submit(q)
}

func (l *loop) onRoute(plan maps.RoutePlan) {
	if l.stage.Terminal() {
		return
	}
	q, ok := l.currentQuery()
	if !ok || !maps.Relevant(plan, q) {
		l.log.Info("route_discarded", "route_type", plan.RouteType, "picked_up", plan.PickedUp)
		return
	}
	l.route = &plan
	l.refit()
	l.publish()
}

func (l *loop) onConfirm(ctx context.Context, req confirmRequest) {
	switch {
	case l.stage == status.StageDelivered:
		req.reply <- nil
		return
	case l.confirming:
		req.reply <- ErrConfirmInProgress
		return
	case l.stage != status.StageAwaitingCustomerConfirmation:
		req.reply <- ErrNotAwaitingConfirmation
		return
	}
	l.confirming = true
	callCtx, cancel := context.WithCancel(ctx)
	stopAfter := context.AfterFunc(req.ctx, cancel)
	l.s.wg.Add(1)
	go func() {
		defer l.s.wg.Done()
		defer cancel()
		defer stopAfter()
		err := l.s.deps.Orders.ConfirmReceipt(callCtx, l.orderID)
		select {
		case l.confirmDone <- confirmResult{err: err, reply: req.reply}:
		case <-ctx.Done():
		}
	}()
}

func (l *loop) onConfirmResult(res confirmResult) {
	l.confirming = false
	if res.err != nil {
		l.log.Warn("confirm_receipt_failed", "error", res.err)
		res.reply <- fmt.Errorf("%w: %v", ErrConfirmFailed, res.err)
		l.publish()
		return
	}
	if l.order != nil {
		l.order.Status = string(status.StageDelivered)
	}
	l.advance(status.StageDelivered)
	l.refresh()
	res.reply <- nil
}

// refresh recomputes derived state after a state change and publishes.
func (l *loop) refresh() {
	l.maybeRoute()
	l.refit()
	l.publish()
}

func (l *loop) refit() {
	var pts []types.Point
	if l.order != nil {
		if p := l.order.Delivery.Point(); p.Valid() {
			pts = append(pts, p)
		}
		if p := l.order.Pickup.Point(); p.Valid() && !l.pickedUp {
			pts = append(pts, p)
		}
	}
	if l.target != nil && l.hasPartner {
		pts = append(pts, l.target.Point)
	}
	if l.route != nil && len(l.route.Coordinates) > 0 {
		pts = append(pts, l.route.Coordinates[0], l.route.Coordinates[len(l.route.Coordinates)-1])
	}
	if r, ok := l.fitter.Fit(pts); ok {
		l.region = &r
	}
}

func (l *loop) publish() {
	v := l.buildView()
	l.s.setView(v)
	if rec := l.s.deps.Recorder; rec != nil && l.loaded {
		payload, err := json.Marshal(v)
		if err == nil {
			orderID := l.orderID
			l.enqueue(func(ctx context.Context) error { return rec.RecordView(ctx, orderID, payload) })
		}
	}
}

// publishFrame publishes an animation step without recording it.
func (l *loop) publishFrame() {
	l.s.setView(l.buildView())
}

func (l *loop) buildView() View {
	now := l.s.now()
	l.version++
	v := View{
		SessionID:  l.s.id,
		OrderID:    l.orderID,
		Phase:      derivePhase(l.loaded, l.stage, l.hasPartner, l.pickedUp),
		Stage:      l.stage,
		Route:      l.route.Clone(),
		Connection: l.conn,
		Degraded:   l.degraded,
		Error:      l.lastErr,
		Order:      l.order.Clone(),
		UpdatedAt:  now,
		Version:    l.version,
	}
	if l.loaded {
		v.Steps = status.StepsFor(l.stage)
	}
	if l.hasPartner {
		if p, ok := l.smoother.At(now); ok {
			v.Position = &p
		}
		if l.target != nil {
			t := *l.target
			v.Target = &t
		}
	}
	if l.region != nil {
		r := *l.region
		v.Region = &r
	}
	if l.stage.Active() && l.stage != status.StageAwaitingCustomerConfirmation && l.hasPartner {
		v.ETA = l.eta(now)
	}
	return v
}

func (l *loop) eta(now time.Time) *ETA {
	if l.streamETA != nil && now.Sub(l.streamETAAt) <= l.s.cfg.StreamETAMaxAge {
		secs := *l.streamETA
		return &ETA{
			Seconds: secs,
			Text:    geo.DurationText(int(math.Ceil(float64(secs) / 60))),
			Source:  ETAFromStream,
		}
	}
	if l.route == nil {
		return nil
	}
	src := ETAFromService
	if l.route.Provenance == maps.ProvenanceSynthesized {
		src = ETAFromSynthesized
	}
	return &ETA{Seconds: l.route.DurationSeconds, Text: l.route.DurationText, Source: src}
}

func (l *loop) startFrames() {
	if l.frameTicker == nil {
		l.frameTicker = time.NewTicker(l.s.cfg.FrameInterval)
	}
}

func (l *loop) stopFrames() {
	if l.frameTicker != nil {
		l.frameTicker.Stop()
		l.frameTicker = nil
	}
}

func (l *loop) notify(n Notification) {
	n.At = l.s.now()
	sink := l.s.deps.Sink
	l.enqueue(func(ctx context.Context) error {
		sink.Notify(ctx, n)
		return nil
	})
}

// enqueue hands work to the outbox goroutine and drops it when the queue is full
// so the update path never blocks on a slow sink or recorder.
func (l *loop) enqueue(job func(ctx context.Context) error) {
	select {
	case l.outbox <- func(ctx context.Context) {
		if err := job(ctx); err != nil {
			l.log.Warn("recorder_write_failed", "error", err)
		}
	}:
	default:
		l.log.Warn("outbox_full_dropped")
	}
}

func (l *loop) runOutbox(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-l.outbox:
			if !ok {
				return
			}
			jobCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			job(jobCtx)
			cancel()
		}
	}
}
