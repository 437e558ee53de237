package resource

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// =============================================================================
// Errors
// =============================================================================

var (
	ErrUnknownKind      = errors.New("unknown resource kind")
	ErrScreenNotMounted = errors.New("screen is not mounted")
	ErrRegistryStopped  = errors.New("screen registry is stopped")
)

// =============================================================================
// Constants
// =============================================================================

const (
	DefaultIdleTTL = 30 * time.Minute

	// How often idle screens are swept
	idleSweepInterval = time.Minute
)

// =============================================================================
// Types
// =============================================================================

// Factory builds a fresh screen for one session.
type Factory func() (Handle, error)

// KindInfo is a registered kind and the permissions that guard it.
type KindInfo struct {
	Name             string `json:"name"`
	ViewPermission   string `json:"view_permission"`
	ManagePermission string `json:"manage_permission"`
}

type registration struct {
	info    KindInfo
	factory Factory
}

type screenKey struct {
	session string
	kind    string
}

// Registry owns every mounted screen, keyed by (session, kind). Screens of
// different sessions never share state. Idle screens are disposed by a
// background sweep.
type Registry struct {
	log     *logrus.Logger
	idleTTL time.Duration
	now     func() time.Time

	mu      sync.Mutex
	kinds   map[string]registration
	screens map[screenKey]Handle

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// =============================================================================
// Constructor
// =============================================================================

// NewRegistry starts the idle sweep. Call Stop() during graceful shutdown.
func NewRegistry(idleTTL time.Duration, log *logrus.Logger) *Registry {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	r := &Registry{
		log:      log,
		idleTTL:  idleTTL,
		now:      time.Now,
		kinds:    make(map[string]registration),
		screens:  make(map[screenKey]Handle),
		stopChan: make(chan struct{}),
	}

	r.wg.Add(1)
	go r.sweepLoop()

	return r
}

// =============================================================================
// Lifecycle Methods
// =============================================================================

// Stop ends the sweep and disposes every screen. Safe to call multiple times.
func (r *Registry) Stop() {
	if r.stopped.CompareAndSwap(false, true) {
		close(r.stopChan)
		r.wg.Wait()

		r.mu.Lock()
		screens := r.screens
		r.screens = make(map[screenKey]Handle)
		r.mu.Unlock()
		for _, h := range screens {
			h.Dispose()
		}
		r.log.Info("Screen registry stopped")
	}
}

// =============================================================================
// Public Methods
// =============================================================================

func (r *Registry) Register(info KindInfo, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[info.Name] = registration{info: info, factory: factory}
}

func (r *Registry) Kind(name string) (KindInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.kinds[name]
	return reg.info, ok
}

// Kinds lists registered kinds by name.
func (r *Registry) Kinds() []KindInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]KindInfo, 0, len(r.kinds))
	for _, reg := range r.kinds {
		out = append(out, reg.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Mount builds a fresh screen for the session, replacing (and disposing)
// any screen of the same kind, then loads it. The screen stays mounted even
// when the initial load fails so the caller can refresh.
func (r *Registry) Mount(ctx context.Context, sessionID, kind string) (Handle, error) {
	if r.stopped.Load() {
		return nil, ErrRegistryStopped
	}
	r.mu.Lock()
	reg, ok := r.kinds[kind]
	r.mu.Unlock()
	if !ok {
		return nil, ErrUnknownKind
	}

	h, err := reg.factory()
	if err != nil {
		return nil, err
	}

	key := screenKey{session: sessionID, kind: kind}
	r.mu.Lock()
	old := r.screens[key]
	r.screens[key] = h
	r.mu.Unlock()
	if old != nil {
		old.Dispose()
	}

	return h, h.Mount(ctx)
}

func (r *Registry) Get(sessionID, kind string) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.kinds[kind]; !ok {
		return nil, ErrUnknownKind
	}
	h, ok := r.screens[screenKey{session: sessionID, kind: kind}]
	if !ok {
		return nil, ErrScreenNotMounted
	}
	return h, nil
}

func (r *Registry) Unmount(sessionID, kind string) bool {
	key := screenKey{session: sessionID, kind: kind}
	r.mu.Lock()
	h, ok := r.screens[key]
	delete(r.screens, key)
	r.mu.Unlock()
	if ok {
		h.Dispose()
	}
	return ok
}

// DisposeSession unmounts every screen of a session and returns how many
// were disposed.
func (r *Registry) DisposeSession(sessionID string) int {
	var disposed []Handle
	r.mu.Lock()
	for key, h := range r.screens {
		if key.session == sessionID {
			disposed = append(disposed, h)
			delete(r.screens, key)
		}
	}
	r.mu.Unlock()

	for _, h := range disposed {
		h.Dispose()
	}
	return len(disposed)
}

func (r *Registry) Mounted() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.screens)
}

// =============================================================================
// Background Workers
// =============================================================================

func (r *Registry) sweepLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(idleSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			r.log.Debug("Screen sweep goroutine stopping")
			return
		case <-ticker.C:
			r.sweepIdle()
		}
	}
}

// sweepIdle disposes screens unused for longer than the idle TTL.
func (r *Registry) sweepIdle() int {
	cutoff := r.now().Add(-r.idleTTL)
	var idle []Handle

	r.mu.Lock()
	for key, h := range r.screens {
		if h.LastUsed().Before(cutoff) {
			idle = append(idle, h)
			delete(r.screens, key)
		}
	}
	r.mu.Unlock()

	for _, h := range idle {
		h.Dispose()
	}
	if len(idle) > 0 {
		r.log.Debugf("Disposed %d idle screens", len(idle))
	}
	return len(idle)
}
