// Package scroller drives the window pipeline from scroll, resize and data
// events. A single Run goroutine owns the store and talks to the host; the
// setters only record the latest value of each input and wake the loop.
package scroller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rvscroll/internal/command"
	"rvscroll/internal/diff"
	"rvscroll/internal/geometry"
	"rvscroll/internal/itemwidth"
	"rvscroll/internal/store"
)

// latest keeps only the most recent value written to it.
type latest[V any] struct {
	v  V
	ok bool
}

func (l *latest[V]) set(v V) { l.v, l.ok = v, true }

func (l *latest[V]) take() (V, bool) {
	v, ok := l.v, l.ok
	var zero V
	l.v, l.ok = zero, false
	return v, ok
}

// merge moves a pending value from src into l, replacing what l held.
func (l *latest[V]) merge(src *latest[V]) bool {
	if v, ok := src.take(); ok {
		l.set(v)
		return true
	}
	return false
}

type inbox[T any] struct {
	scroll  latest[float64]
	rect    latest[geometry.Rect]
	items   latest[[]T]
	sizing  latest[geometry.SizingOptions]
	stretch latest[bool]
	trackBy latest[store.TrackBy[T]]
	user    latest[command.User]
	focus   latest[int]
	syncs   []chan struct{}
}

// Scroller coalesces inputs into windows, diffs them and applies the plans
// to a store that drives host.
type Scroller[T any] struct {
	host   store.Host[T]
	frames FrameObserver
	opts   Options
	logf   func(string, ...any)
	now    func() time.Time

	mu        sync.Mutex
	in        inbox[T]
	wake      chan struct{}
	idle      chan struct{}
	published geometry.Window
	focused   int
	itemEqual func(a, b T) bool

	// Everything below is owned by Run.
	pending  inbox[T]
	waiters  []chan struct{}
	resizeAt time.Time
	gate     time.Time

	store     *store.Store[T]
	resolver  *itemwidth.Resolver
	sizing    geometry.SizingOptions
	trackBy   store.TrackBy[T]
	keyed     bool
	rect      geometry.Rect
	hasRect   bool
	scrollTop float64
	items     []T
	prevItems []T
	ts        int64

	prev        geometry.Window
	target      geometry.Window
	dataChanged bool
	purge       bool
	batch       []command.Command
	deferred    map[int]int
	rendering   bool
	columns     int
	frame       Frame

	lastFocused int
	autoUntil   time.Time
	settling    bool
	settleAt    time.Time
}

// New validates the sizing options and returns a scroller for host. Host
// may also implement store.ViewCacher and FrameObserver.
func New[T any](host store.Host[T], o Options) (*Scroller[T], error) {
	if err := o.Sizing.Validate(); err != nil {
		return nil, fmt.Errorf("scroller: %w", err)
	}
	if host == nil {
		return nil, fmt.Errorf("scroller: host is required")
	}
	logf := o.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	s := &Scroller[T]{
		host:        host,
		opts:        o,
		logf:        logf,
		now:         time.Now,
		wake:        make(chan struct{}, 1),
		idle:        make(chan struct{}),
		sizing:      o.Sizing,
		trackBy:     store.TrackByIndex[T],
		prev:        geometry.Empty(),
		published:   geometry.Empty(),
		lastFocused: -1,
		focused:     -1,
	}
	close(s.idle)
	if f, ok := host.(FrameObserver); ok {
		s.frames = f
	}
	s.store = store.New(host, store.Options[T]{CacheLimit: o.ViewCache, Logf: logf})
	s.resolver = itemwidth.New()
	s.resolver.Inset = o.StretchInset
	s.resolver.SetGrid(o.Sizing.Layout == geometry.LayoutGrid)
	s.resolver.SetStretch(o.Stretch)
	s.resolver.SetMinWidth(o.Sizing.ItemWidth)
	return s, nil
}

func (s *Scroller[T]) poke() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scroller[T]) put(fn func(in *inbox[T])) {
	s.mu.Lock()
	fn(&s.in)
	s.mu.Unlock()
	s.poke()
}

// Scroll reports the host's current scroll offset.
func (s *Scroller[T]) Scroll(top float64) {
	s.put(func(in *inbox[T]) { in.scroll.set(top) })
}

// Resize reports the host's container rectangle.
func (s *Scroller[T]) Resize(r geometry.Rect) {
	s.put(func(in *inbox[T]) { in.rect.set(r) })
}

// SetItems replaces the data set. The slice must not be modified afterwards.
func (s *Scroller[T]) SetItems(items []T) {
	s.put(func(in *inbox[T]) { in.items.set(items) })
}

// SetSizing replaces the sizing options after validating them.
func (s *Scroller[T]) SetSizing(o geometry.SizingOptions) error {
	if err := o.Validate(); err != nil {
		return fmt.Errorf("scroller: %w", err)
	}
	s.put(func(in *inbox[T]) { in.sizing.set(o) })
	return nil
}

// SetStretch turns grid stretch mode on or off.
func (s *Scroller[T]) SetStretch(v bool) {
	s.put(func(in *inbox[T]) { in.stretch.set(v) })
}

// SetTrackBy replaces the identity function. Every view is rebuilt.
func (s *Scroller[T]) SetTrackBy(fn store.TrackBy[T]) {
	s.put(func(in *inbox[T]) { in.trackBy.set(fn) })
}

// SetItemEqual sets the value comparison used, together with track-by keys,
// to decide whether a retained position needs an update after a data change.
// It must be called before Run.
func (s *Scroller[T]) SetItemEqual(fn func(a, b T) bool) {
	s.mu.Lock()
	s.itemEqual = fn
	s.mu.Unlock()
}

// Do queues a user scroll command.
func (s *Scroller[T]) Do(u command.User) {
	s.put(func(in *inbox[T]) { in.user.set(u) })
}

// Focus records index as the last focused item.
func (s *Scroller[T]) Focus(index int) {
	s.put(func(in *inbox[T]) { in.focus.set(index) })
}

// LastFocused is the last focused item, or -1.
func (s *Scroller[T]) LastFocused() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// Window is the last fully applied window.
func (s *Scroller[T]) Window() geometry.Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.published
}

// Rendering reports whether a plan is still being applied.
func (s *Scroller[T]) Rendering() bool {
	s.mu.Lock()
	ch := s.idle
	s.mu.Unlock()
	select {
	case <-ch:
		return false
	default:
		return true
	}
}

// WaitRendered blocks until no plan is being applied.
func (s *Scroller[T]) WaitRendered(ctx context.Context) error {
	s.mu.Lock()
	ch := s.idle
	s.mu.Unlock()
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sync blocks until every input given so far has been processed, pending
// timers included, and the resulting plan is applied.
func (s *Scroller[T]) Sync(ctx context.Context) error {
	ch := make(chan struct{})
	s.put(func(in *inbox[T]) { in.syncs = append(in.syncs, ch) })
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes inputs until ctx is done. It must be called exactly once.
func (s *Scroller[T]) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		s.drain()
		now := s.now()
		s.step(now)

		if at, ok := s.deadline(); ok {
			timer.Reset(max(0, at.Sub(s.now())))
		} else {
			timer.Stop()
			s.release()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
		case <-timer.C:
		}
	}
}

func (s *Scroller[T]) drain() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	in := &s.in
	p := &s.pending
	p.scroll.merge(&in.scroll)
	if p.rect.merge(&in.rect) {
		s.resizeAt = now.Add(s.opts.ResizeDebounce)
	}
	p.items.merge(&in.items)
	p.sizing.merge(&in.sizing)
	p.stretch.merge(&in.stretch)
	p.trackBy.merge(&in.trackBy)
	p.user.merge(&in.user)
	if idx, ok := in.focus.take(); ok {
		s.lastFocused = idx
		s.focused = idx
	}
	s.waiters = append(s.waiters, in.syncs...)
	in.syncs = nil
}

// deadline is when the loop must run again without new input.
func (s *Scroller[T]) deadline() (time.Time, bool) {
	var at time.Time
	ok := false
	consider := func(t time.Time) {
		if !ok || t.Before(at) {
			at, ok = t, true
		}
	}
	if s.rendering {
		consider(s.now())
	}
	if s.pending.scroll.ok {
		consider(s.gate)
	}
	if s.pending.rect.ok {
		consider(s.resizeAt)
	}
	if s.settling {
		consider(s.settleAt)
	}
	if s.pending.user.ok && s.hasWindow() {
		consider(s.now())
	}
	return at, ok
}

func (s *Scroller[T]) release() {
	for _, ch := range s.waiters {
		close(ch)
	}
	s.waiters = nil
}

func (s *Scroller[T]) setRendering(v bool) {
	if s.rendering == v {
		return
	}
	s.rendering = v
	s.mu.Lock()
	if v {
		s.idle = make(chan struct{})
	} else {
		close(s.idle)
	}
	s.mu.Unlock()
}

// step runs one tick of the pipeline.
func (s *Scroller[T]) step(now time.Time) {
	if s.rendering {
		s.continueRender(now)
		return
	}

	changed := false
	if items, ok := s.pending.items.take(); ok {
		s.items = items
		s.ts++
		s.dataChanged = true
		s.purge = true
		if s.lastFocused >= len(items) {
			s.setFocused(-1)
		}
		changed = true
	}
	if o, ok := s.pending.sizing.take(); ok {
		if o.Layout != s.sizing.Layout || o.ItemHeight != s.sizing.ItemHeight {
			s.rebuild()
		}
		s.sizing = o
		s.resolver.SetGrid(o.Layout == geometry.LayoutGrid)
		s.resolver.SetMinWidth(o.ItemWidth)
		changed = true
	}
	if v, ok := s.pending.stretch.take(); ok {
		s.resolver.SetStretch(v)
		s.resolver.SetContainerWidth(s.rect.Width)
		changed = true
	}
	if fn, ok := s.pending.trackBy.take(); ok {
		s.keyed = fn != nil
		if fn == nil {
			fn = store.TrackByIndex[T]
		}
		s.trackBy = fn
		s.store.SetTrackBy(fn)
		s.prev = geometry.Empty()
		s.columns = 0
		changed = true
	}
	if s.pending.rect.ok && !now.Before(s.resizeAt) {
		r, _ := s.pending.rect.take()
		s.rect = r
		s.hasRect = true
		s.resolver.SetContainerWidth(r.Width)
		changed = true
	}
	userScrolled := false
	if s.pending.scroll.ok && !now.Before(s.gate) {
		top, _ := s.pending.scroll.take()
		s.scrollTop = top
		s.gate = now.Add(s.opts.ScrollDebounce)
		userScrolled = true
		changed = true
	}
	if s.settling && !now.Before(s.settleAt) {
		s.settling = false
		s.correctFocus()
	}
	if u, ok := s.pending.user.v, s.pending.user.ok; ok && s.hasWindow() {
		s.pending.user.take()
		s.scrollTop = s.scrollTo(u, now)
		changed = true
	}

	if !changed || !s.hasRect {
		return
	}
	m := geometry.Measure(s.rect, s.sizing)
	w := geometry.ComputeWindow(s.scrollTop, m, len(s.items), s.ts, s.sizing)
	if userScrolled && now.After(s.autoUntil) {
		s.dropFocusOutside(w)
	}
	if geometry.SameRendering(s.prev, w) {
		s.prev.ScrollTop, s.prev.ScrollPercentage = w.ScrollTop, w.ScrollPercentage
		s.publish(s.prev)
		s.emitFrame(w)
		return
	}
	s.apply(w)
}

// hasWindow reports whether user commands can be translated yet.
func (s *Scroller[T]) hasWindow() bool {
	return s.prev.ItemHeight > 0 && s.prev.VirtualItemCount > 0
}

// rebuild forgets all rendered state so the next window is created from
// scratch.
func (s *Scroller[T]) rebuild() {
	s.store.Clear()
	s.prev = geometry.Empty()
	s.columns = 0
}

// scrollTo translates u into an offset clamped to the scrollable range and
// asks the host to move there.
func (s *Scroller[T]) scrollTo(u command.User, now time.Time) float64 {
	top := s.store.ScrollTarget(u)
	top = min(top, s.prev.VirtualHeight-s.prev.ContainerHeight)
	top = max(0, top)
	s.autoUntil = now.Add(AutoScrollGrace)
	s.host.ScrollTo(top)
	return top
}

func (s *Scroller[T]) equal() diff.EqualFunc {
	if !s.dataChanged {
		return diff.IndexEqual
	}
	s.mu.Lock()
	itemEqual := s.itemEqual
	s.mu.Unlock()
	if !s.keyed && itemEqual == nil {
		return diff.NeverEqual
	}
	prev, cur, key := s.prevItems, s.items, s.trackBy
	return func(pi, ci int) bool {
		if pi < 0 || pi >= len(prev) || ci < 0 || ci >= len(cur) {
			return false
		}
		if s.keyed && key(pi, prev[pi]) != key(ci, cur[ci]) {
			return false
		}
		if itemEqual != nil {
			return itemEqual(prev[pi], cur[ci])
		}
		return true
	}
}

func (s *Scroller[T]) apply(w geometry.Window) {
	plan := diff.Engine{Equal: s.equal()}.Diff(s.prev, w)
	s.store.SetData(s.items)
	s.target = w
	s.deferred = plan.Deferred
	s.applyCommands(plan.Commands)
	if len(s.batch) > 0 || len(s.deferred) > 0 {
		s.setRendering(true)
		return
	}
	s.finish()
}

func (s *Scroller[T]) applyCommands(cmds []command.Command) {
	if !s.opts.AsyncRendering {
		s.store.ApplyAll(cmds)
		return
	}
	for _, c := range cmds {
		if c.Kind == command.CreateItem {
			s.store.Reserve(c)
			s.batch = append(s.batch, c)
			continue
		}
		s.store.Apply(c)
	}
	s.store.Reconcile()
}

// continueRender applies the next deferred part of the current plan: first
// the pending item batch, then rows held back by the remove pass.
func (s *Scroller[T]) continueRender(now time.Time) {
	switch {
	case len(s.batch) > 0:
		batch := s.batch
		s.batch = nil
		s.store.ApplyAll(batch)
	case len(s.deferred) > 0:
		cmds := diff.Engine{}.CreatePass(s.target, s.deferred)
		s.deferred = nil
		s.applyCommands(cmds)
	}
	if len(s.batch) == 0 && len(s.deferred) == 0 {
		s.setRendering(false)
		s.finish()
	}
}

// finish records target as the applied window and emits geometry.
func (s *Scroller[T]) finish() {
	w := s.target
	old := s.prev
	s.store.UpdateWindow(w)
	s.store.Verify()
	s.prev = w
	s.prevItems = s.items
	s.dataChanged = false

	if w.ActualColumnCount != s.columns {
		if s.columns != 0 && old.VirtualItemCount > 0 && s.opts.AutoScrollOnResize && s.lastFocused >= 0 {
			s.settling = true
			s.settleAt = s.now().Add(ResizeSettle)
		}
		s.columns = w.ActualColumnCount
		s.host.ColumnCount(w.ActualColumnCount)
		s.resolver.SetColumns(w.ActualColumnCount)
	}
	if s.purge {
		s.purge = false
		if n := s.store.PurgeCache(s.items); n > 0 {
			s.logf("scroller: purged %d cached views", n)
		}
	}
	s.publish(w)
	s.emitFrame(w)
	// Spacers go last so hosts can treat them as the end of a render.
	before, after := w.Spacers()
	s.host.SpacerSizes(before, after)
}

func (s *Scroller[T]) emitFrame(w geometry.Window) {
	if s.frames == nil {
		return
	}
	f := frameFor(w, s.sizing, s.resolver.Width())
	if f == s.frame {
		return
	}
	s.frame = f
	s.frames.Frame(f)
}

func (s *Scroller[T]) publish(w geometry.Window) {
	s.mu.Lock()
	s.published = w
	s.mu.Unlock()
}
