package services

import (
	"sync"

	"github.com/dmitrijs2005/polygame/internal/client/models"
	"github.com/dmitrijs2005/polygame/internal/metrics"
)

// Result is the outcome of a result-wrapping operation. Error carries a
// user-facing message when Success is false.
type Result struct {
	Success bool
	Error   string
}

func ok() Result { return Result{Success: true} }

func failed(msg string) Result { return Result{Error: msg} }

// OrderResult is the outcome of PlaceOrder. Order is set only on success.
type OrderResult struct {
	Result
	Order *models.Order
}

// observers is an ordered list of state subscribers.
type observers[T any] struct {
	mu   sync.Mutex
	seq  int
	subs []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// add registers fn and returns a function removing it. Calling the returned
// function more than once is a no-op.
func (o *observers[T]) add(fn func(T)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.seq++
	id := o.seq
	o.subs = append(o.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, s := range o.subs {
			if s.id == id {
				o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
				return
			}
		}
	}
}

// notify calls every subscriber in registration order. It must be called
// without holding the owning store's lock so subscribers may read it.
func (o *observers[T]) notify(v T) {
	o.mu.Lock()
	subs := make([]subscriber[T], len(o.subs))
	copy(subs, o.subs)
	o.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// inflight counts running loading-owning operations of one store. The
// caller holds the store's lock around begin and end.
type inflight struct {
	store string
	n     int
}

func (f *inflight) begin() {
	f.n++
	metrics.StoreInFlight.WithLabelValues(f.store).Inc()
}

func (f *inflight) end() {
	if f.n > 0 {
		f.n--
		metrics.StoreInFlight.WithLabelValues(f.store).Dec()
	}
}

func (f *inflight) loading() bool { return f.n > 0 }
