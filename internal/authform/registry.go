package authform

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hnrobert/signalist/internal/form"
	"github.com/hnrobert/signalist/internal/logger"
)

type entry struct {
	inst     Instance
	lastSeen time.Time
}

// Registry owns the live form instances. An instance lives until it is
// submitted successfully or sits idle longer than the TTL.
type Registry struct {
	val *form.Validator
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	items map[string]*entry
}

func NewRegistry(val *form.Validator, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Registry{val: val, ttl: ttl, now: time.Now, items: map[string]*entry{}}
}

func (r *Registry) TTL() time.Duration { return r.ttl }

// Open creates an empty form of the given kind.
func (r *Registry) Open(kind string) (Instance, error) {
	id := uuid.NewString()
	var (
		inst Instance
		err  error
	)
	switch kind {
	case KindSignIn:
		inst, err = newInstance[SignInValues](id, kind, r.val)
	case KindSignUp:
		inst, err = newInstance[SignUpValues](id, kind, r.val)
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnknownForm, kind)
	}
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.items[id] = &entry{inst: inst, lastSeen: r.now()}
	r.mu.Unlock()
	logger.Debug("opened %s form %s", kind, id)
	return inst, nil
}

func newInstance[T any](id, kind string, val *form.Validator) (Instance, error) {
	f, err := form.New[T](kind, val)
	if err != nil {
		return nil, err
	}
	return &instance[T]{Form: f, id: id}, nil
}

// Get returns a live instance of the given kind and refreshes its idle timer.
func (r *Registry) Get(id, kind string) (Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok || e.inst.Kind() != kind {
		return nil, ErrUnknownForm
	}
	now := r.now()
	if now.Sub(e.lastSeen) > r.ttl && !e.inst.Submitting() {
		delete(r.items, id)
		return nil, ErrUnknownForm
	}
	e.lastSeen = now
	return e.inst, nil
}

// Discard drops an instance, e.g. after a successful submission.
func (r *Registry) Discard(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep removes idle instances and returns how many were dropped.
// Instances with a submission in flight are kept.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	n := 0
	for id, e := range r.items {
		if now.Sub(e.lastSeen) > r.ttl && !e.inst.Submitting() {
			delete(r.items, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(); n > 0 {
				logger.Debug("swept %d idle forms", n)
			}
		}
	}
}

// Submit runs the submission for inst through s. On success the instance is discarded.
func (r *Registry) Submit(ctx context.Context, inst Instance, s Submitter) error {
	var err error
	if f, ok := SignIn(inst); ok {
		err = f.Submit(ctx, s.SubmitSignIn)
	} else if f, ok := SignUp(inst); ok {
		err = f.Submit(ctx, s.SubmitSignUp)
	} else {
		return ErrUnknownForm
	}
	if err != nil {
		return err
	}
	r.Discard(inst.ID())
	return nil
}
