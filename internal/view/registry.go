package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"ledgerview/internal/cache"
	applog "ledgerview/internal/log"
)

// ErrViewNotFound is returned for unknown or expired view ids.
var ErrViewNotFound = errors.New("view not found")

// Loader produces the event that ends the initial load of a view.
type Loader interface {
	Load(ctx context.Context) Event
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) Event

func (f LoaderFunc) Load(ctx context.Context) Event { return f(ctx) }

// View is one mounted page. Events on the same view are applied one at a
// time, in arrival order.
type View struct {
	ID        string
	MountedAt time.Time

	mu    sync.Mutex
	state State
}

// State returns the current state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// dispatch applies the events in order under one lock, so no other event
// observes a state with only some of them applied.
func (v *View) dispatch(events ...Event) State {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, ev := range events {
		v.state = Reduce(v.state, ev)
	}
	return v.state
}

// Registry keeps the mounted views. Views idle for longer than the TTL, or
// pushed out by newer ones, are torn down.
type Registry struct {
	loader Loader
	views  *cache.LRUCache[*View]
	logger *applog.Logger
}

// NewRegistry creates a registry holding at most maxViews views.
func NewRegistry(loader Loader, maxViews int, ttl time.Duration, logger *applog.Logger) *Registry {
	if logger == nil {
		logger = applog.Discard()
	}
	r := &Registry{
		loader: loader,
		logger: logger.WithComponent(applog.ComponentView),
	}
	r.views = cache.NewLRUCache[*View](maxViews, ttl,
		cache.WithSlidingExpiration[*View](),
		cache.WithEvictCallback(func(id string, v *View) {
			r.logger.Debug("View torn down", applog.FieldViewID, id, "age", time.Since(v.MountedAt).String())
		}))
	return r
}

// Views exposes the underlying cache so it can be swept periodically.
func (r *Registry) Views() cache.Cleaner {
	return r.views
}

// Mount creates a view and runs its one and only data load. A failed load
// still mounts the view; the failure is part of its state.
func (r *Registry) Mount(ctx context.Context) *View {
	v := &View{ID: uuid.NewString(), MountedAt: time.Now()}

	ev := r.loader.Load(ctx)
	st := v.dispatch(ev)

	fields := applog.NewFields().WithView(v.ID).WithOperation(applog.OpMount)
	if st.Failed() {
		r.logger.WarnContext(ctx, "View mounted without data", fields.WithError(st.LoadError).ToSlice()...)
	} else {
		r.logger.InfoContext(ctx, "View mounted", append(fields.ToSlice(),
			"customers", len(st.Customers), "transactions", len(st.Transactions))...)
	}

	r.views.Set(v.ID, v)
	return v
}

// Get returns a mounted view.
func (r *Registry) Get(id string) (*View, error) {
	v, ok := r.views.Get(id)
	if !ok {
		return nil, ErrViewNotFound
	}
	return v, nil
}

// Dispatch applies ev to the view and returns the resulting state.
func (r *Registry) Dispatch(ctx context.Context, id string, ev Event) (State, error) {
	return r.DispatchAll(ctx, id, ev)
}

// DispatchAll applies events to the view as one step and returns the
// resulting state. With no events it returns the current state.
func (r *Registry) DispatchAll(ctx context.Context, id string, events ...Event) (State, error) {
	v, err := r.Get(id)
	if err != nil {
		return State{}, err
	}
	st := v.dispatch(events...)
	for _, ev := range events {
		r.logger.DebugContext(ctx, "Event dispatched",
			applog.FieldViewID, id,
			applog.FieldEvent, ev.Name(),
			"visible_customers", len(st.Filtered))
	}
	return st, nil
}

// Len returns the number of mounted views.
func (r *Registry) Len() int {
	return r.views.Size()
}
