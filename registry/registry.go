// Package registry owns every live strike and marker effect and enforces
// the two capacity bounds while the upstream feed produces events faster
// than the caps allow.
//
// Concurrency model: tick-driven and cooperative. All state transitions
// happen inside Update, driven by the host render loop. Admit may arrive
// from a feed goroutine between ticks; it only performs synchronous map
// mutation under the registry lock and never runs the tick itself.
package registry

import (
	"hash/fnv"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arclight/strikefx/effect"
	"github.com/arclight/strikefx/event"
	"github.com/arclight/strikefx/feed"
	"github.com/arclight/strikefx/geo"
	"github.com/arclight/strikefx/parameter"
	"github.com/arclight/strikefx/scene"
	"github.com/arclight/strikefx/status"
)

// activeRecord ranks a live strike for recency eviction. Records are kept
// in admission order, so the newest N are always the tail of the slice.
type activeRecord struct {
	id         string
	admittedAt time.Time
}

// Options wires the registry's collaborators. Locator and Container may be
// nil; admission is then a logged no-op until they are provided.
type Options struct {
	Locator   geo.Locator
	Container *scene.Container
	Config    parameter.Provider
	Clock     Clock
	Sync      *event.SyncChannel
	Metrics   *status.Registry
}

// Registry is the admission controller for strike and marker effects
type Registry struct {
	mu sync.Mutex

	locator   geo.Locator
	container *scene.Container
	provider  parameter.Provider
	clock     Clock
	sync      *event.SyncChannel
	metrics   *status.Registry

	strikes map[string]*effect.Strike
	markers map[string]*effect.Marker
	records []activeRecord

	// markerOrder tracks marker creation order; oldest first
	markerOrder []string

	unsubscribe func()

	admitted        *atomic.Int64
	replaced        *atomic.Int64
	expired         *atomic.Int64
	activeEvictions *atomic.Int64
	markerEvictions *atomic.Int64
	speed           *status.AtomicFloat
}

func New(opts Options) *Registry {
	if opts.Config == nil {
		opts.Config = parameter.Static(parameter.Defaults())
	}
	if opts.Clock == nil {
		opts.Clock = NewMonotonicClock()
	}
	if opts.Sync == nil {
		opts.Sync = event.NewSyncChannel()
	}
	if opts.Metrics == nil {
		opts.Metrics = status.NewRegistry()
	}

	r := &Registry{
		locator:   opts.Locator,
		container: opts.Container,
		provider:  opts.Config,
		clock:     opts.Clock,
		sync:      opts.Sync,
		metrics:   opts.Metrics,
		strikes:   make(map[string]*effect.Strike),
		markers:   make(map[string]*effect.Marker),
	}
	r.admitted = r.metrics.Ints.Get(status.StrikesAdmitted)
	r.replaced = r.metrics.Ints.Get(status.StrikesReplaced)
	r.expired = r.metrics.Ints.Get(status.StrikesExpired)
	r.activeEvictions = r.metrics.Ints.Get(status.ActiveEvictions)
	r.markerEvictions = r.metrics.Ints.Get(status.MarkerEvictions)
	r.speed = r.metrics.Floats.Get(status.AnimationSpeed)
	r.speed.Set(r.provider().Sanitize().SpeedFactor)
	return r
}

// Sync exposes the synchronization channel for decorative consumers
func (r *Registry) Sync() *event.SyncChannel { return r.sync }

// Metrics exposes the status registry the controller writes to
func (r *Registry) Metrics() *status.Registry { return r.metrics }

// AttachSource subscribes the registry to an upstream feed. Detached by
// Dispose. Only one source is held at a time; attaching again replaces
// the previous subscription.
func (r *Registry) AttachSource(src feed.Source) {
	r.mu.Lock()
	prev := r.unsubscribe
	r.mu.Unlock()
	if prev != nil {
		prev()
	}

	cancel := src.Subscribe(func(ev feed.StrikeEvent) {
		r.Admit(ev)
	})

	r.mu.Lock()
	r.unsubscribe = cancel
	r.mu.Unlock()
}

// Admit creates the strike and marker effects for an event, broadcasts
// the sync payload, and enforces both caps. Duplicate ids replace the
// prior instance (disposing it first); a missing locator or container
// makes admission a logged no-op returning "".
func (r *Registry) Admit(ev feed.StrikeEvent) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.locator == nil || r.container == nil {
		log.Printf("registry: dropping strike %s: no locator/scene attached", ev.ID)
		return ""
	}
	if ev.ID == "" {
		return ""
	}

	cfg := r.provider().Sanitize()
	now := r.clock.Now()

	// Replace semantics: dispose any prior instance of this id first
	if prior, ok := r.strikes[ev.ID]; ok {
		prior.Terminate()
		delete(r.strikes, ev.ID)
		r.dropRecord(ev.ID)
		r.replaced.Add(1)
	}
	if prior, ok := r.markers[ev.ID]; ok {
		prior.Terminate()
		delete(r.markers, ev.ID)
		r.dropMarkerOrder(ev.ID)
	}

	origin := r.locator.Locate(ev.Lat, ev.Lng, cfg.StartAltitude)
	terminus := r.locator.Locate(ev.Lat, ev.Lng, 0)
	seed := strikeSeed(ev.ID)

	bp := effect.Blueprint{
		ID:        ev.ID,
		Seed:      seed,
		Origin:    origin,
		Terminus:  terminus,
		Intensity: ev.Intensity,
		Config:    cfg,
		Container: r.container,
		Now:       now,
	}

	bp.Kind = effect.KindStrike
	strike := effect.Build(bp).(*effect.Strike)
	strike.Initialize()
	r.strikes[ev.ID] = strike
	r.records = append(r.records, activeRecord{id: ev.ID, admittedAt: now})

	bp.Kind = effect.KindMarker
	marker := effect.Build(bp).(*effect.Marker)
	marker.Initialize()
	r.markers[ev.ID] = marker
	r.markerOrder = append(r.markerOrder, ev.ID)

	r.admitted.Add(1)

	r.sync.Publish(event.StrikeSync{
		StrikeID:    ev.ID,
		Anchor:      terminus,
		StartTime:   strike.Clock().StartTime(),
		SpeedFactor: strike.Clock().SpeedFactor(),
		Duration:    strike.Clock().Duration(),
	})

	r.enforceActiveCap(cfg.MaxActiveAnimations)
	r.enforceMarkerCap(cfg.MaxDisplayedStrikes)
	r.publishGauges()

	return ev.ID
}

// Update runs one tick. Ordering contract:
//  1. recompute the allowed-active set and apply active-cap eviction
//  2. update every surviving strike and marker
//  3. remove anything reporting not-alive
//  4. re-apply the marker cap
func (r *Registry) Update(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg := r.provider().Sanitize()

	r.enforceActiveCap(cfg.MaxActiveAnimations)
	allowed := r.allowedSet(cfg.MaxActiveAnimations)

	for id, s := range r.strikes {
		s.SetAllowed(allowed[id])
		if !safeUpdate(s, now) {
			delete(r.strikes, id)
			r.dropRecord(id)
			r.expired.Add(1)
		}
	}

	for id, m := range r.markers {
		if !safeUpdate(m, now) {
			delete(r.markers, id)
			r.dropMarkerOrder(id)
		}
	}

	r.enforceMarkerCap(cfg.MaxDisplayedStrikes)
	r.publishGauges()
}

// safeUpdate contains per-effect panics so one broken effect cannot stop
// the rest of the tick; the offender is force-terminated.
func safeUpdate(e effect.Effect, now time.Time) (alive bool) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("registry: effect %s update panic: %v", e.ID(), rec)
			e.Terminate()
			alive = false
		}
	}()
	return e.Update(now)
}

// SetSpeed rescales every in-flight strike without resetting progress
func (r *Registry) SetSpeed(f float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.strikes {
		s.SetSpeed(f)
	}
	r.speed.Set(f)
}

// Clear forcibly terminates and disposes every tracked effect
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
}

// Dispose clears all effects and detaches from the upstream feed
func (r *Registry) Dispose() {
	r.mu.Lock()
	cancel := r.unsubscribe
	r.unsubscribe = nil
	r.clearLocked()
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (r *Registry) clearLocked() {
	for id, s := range r.strikes {
		s.Terminate()
		delete(r.strikes, id)
	}
	for id, m := range r.markers {
		m.Terminate()
		delete(r.markers, id)
	}
	r.records = nil
	r.markerOrder = nil
	r.publishGauges()
}

// ActiveCount reports live strike effects
func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.strikes)
}

// MarkerCount reports live markers
func (r *Registry) MarkerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.markers)
}

// StrikeAlpha reports a strike's current opacity; 0 for unknown ids
func (r *Registry) StrikeAlpha(id string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.strikes[id]; ok {
		return s.Alpha()
	}
	return 0
}

// HasMarker reports whether a marker for id is still displayed
func (r *Registry) HasMarker(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.markers[id]
	return ok
}

// --- cap enforcement (callers hold r.mu) ---

// enforceActiveCap cuts off every strike ranked below the newest cap by
// admission time. Eviction is abrupt: no fade, the marker survives.
func (r *Registry) enforceActiveCap(limit int) {
	for len(r.records) > limit {
		victim := r.records[0]
		r.records = r.records[1:]
		if s, ok := r.strikes[victim.id]; ok {
			s.Terminate()
			delete(r.strikes, victim.id)
			r.activeEvictions.Add(1)
		}
	}
}

// allowedSet is the top-N most recently admitted ids
func (r *Registry) allowedSet(limit int) map[string]bool {
	start := len(r.records) - limit
	if start < 0 {
		start = 0
	}
	allowed := make(map[string]bool, len(r.records)-start)
	for _, rec := range r.records[start:] {
		allowed[rec.id] = true
	}
	return allowed
}

// enforceMarkerCap drops the oldest-created markers beyond the cap, along
// with any still-live strike sharing the id.
func (r *Registry) enforceMarkerCap(limit int) {
	for len(r.markerOrder) > limit {
		victim := r.markerOrder[0]
		r.markerOrder = r.markerOrder[1:]
		if m, ok := r.markers[victim]; ok {
			m.Terminate()
			delete(r.markers, victim)
			r.markerEvictions.Add(1)
		}
		if s, ok := r.strikes[victim]; ok {
			s.Terminate()
			delete(r.strikes, victim)
			r.dropRecord(victim)
		}
	}
}

func (r *Registry) dropRecord(id string) {
	for i, rec := range r.records {
		if rec.id == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return
		}
	}
}

func (r *Registry) dropMarkerOrder(id string) {
	for i, mid := range r.markerOrder {
		if mid == id {
			r.markerOrder = append(r.markerOrder[:i], r.markerOrder[i+1:]...)
			return
		}
	}
}

func (r *Registry) publishGauges() {
	r.metrics.Ints.Get(status.ActiveStrikes).Store(int64(len(r.strikes)))
	r.metrics.Ints.Get(status.DisplayedMarkers).Store(int64(len(r.markers)))
	if r.container != nil {
		r.metrics.Ints.Get(status.SceneVisuals).Store(int64(r.container.Count()))
	}
}

// strikeSeed derives the deterministic geometry seed from the strike id
func strikeSeed(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}
