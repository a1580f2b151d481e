package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"sync"

	"github.com/dmitrijs2005/polygame/internal/client/client"
	"github.com/dmitrijs2005/polygame/internal/client/models"
	"github.com/dmitrijs2005/polygame/internal/logging"
)

const (
	orderFailed  = "Order failed"
	cancelFailed = "Cancel failed"
)

// TradingState is a point-in-time copy of the trading mirror.
type TradingState struct {
	Orders    []models.Order
	Positions []models.Position
	Loading   bool
}

// TradingStore mirrors the user's orders and positions and submits order
// actions. Placing or cancelling an order does not touch the cached lists;
// they change only when refetched.
type TradingStore struct {
	api client.Client
	log logging.Logger

	mu        sync.RWMutex
	orders    []models.Order
	positions []models.Position
	busy      inflight

	observers observers[TradingState]
}

func NewTradingStore(api client.Client, log logging.Logger) *TradingStore {
	return &TradingStore{
		api:  api,
		log:  log.With("store", "trading"),
		busy: inflight{store: "trading"},
	}
}

// PlaceOrder submits a new order.
func (s *TradingStore) PlaceOrder(ctx context.Context, spec models.OrderSpec) OrderResult {
	done := s.start()
	defer done()

	var resp models.OrderResponse
	if err := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/trading/orders", Body: spec}, &resp); err != nil {
		s.log.Warn(ctx, "order rejected", "market_id", spec.MarketID, "error", err)
		return OrderResult{Result: failed(client.MessageOr(err, orderFailed))}
	}
	return OrderResult{Result: ok(), Order: resp.Order}
}

// FetchOrders lists the user's orders matching params and replaces the
// cached list.
func (s *TradingStore) FetchOrders(ctx context.Context, params url.Values) (*models.OrderListResponse, error) {
	done := s.start()
	defer done()

	var resp models.OrderListResponse
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: "/trading/orders", Query: params}, &resp); err != nil {
		s.log.Error(ctx, "fetch orders failed", "error", err)
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	s.mu.Lock()
	s.orders = resp.Orders
	s.mu.Unlock()
	s.notify()

	return &resp, nil
}

// FetchPositions replaces the cached positions with the server's.
func (s *TradingStore) FetchPositions(ctx context.Context) ([]models.Position, error) {
	done := s.start()
	defer done()

	var resp models.PositionListResponse
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: "/trading/positions"}, &resp); err != nil {
		s.log.Error(ctx, "fetch positions failed", "error", err)
		return nil, fmt.Errorf("fetch positions: %w", err)
	}

	s.mu.Lock()
	s.positions = resp.Positions
	s.mu.Unlock()
	s.notify()

	return resp.Positions, nil
}

// CancelOrder asks the server to cancel an order. It does not affect
// Loading.
func (s *TradingStore) CancelOrder(ctx context.Context, id models.ID) Result {
	path := "/trading/orders/" + url.PathEscape(id.String())
	if err := s.api.Do(ctx, client.Request{Method: http.MethodDelete, Path: path}, nil); err != nil {
		s.log.Warn(ctx, "cancel rejected", "order_id", id, "error", err)
		return failed(client.MessageOr(err, cancelFailed))
	}
	return ok()
}

func (s *TradingStore) start() func() {
	s.mu.Lock()
	s.busy.begin()
	s.mu.Unlock()
	s.notify()

	return func() {
		s.mu.Lock()
		s.busy.end()
		s.mu.Unlock()
		s.notify()
	}
}

func (s *TradingStore) notify() {
	s.observers.notify(s.Snapshot())
}

func (s *TradingStore) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.orders)
}

func (s *TradingStore) Positions() []models.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.positions)
}

func (s *TradingStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy.loading()
}

func (s *TradingStore) Snapshot() TradingState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TradingState{
		Orders:    slices.Clone(s.orders),
		Positions: slices.Clone(s.positions),
		Loading:   s.busy.loading(),
	}
}

// Subscribe registers fn to receive the mirror state after every change.
func (s *TradingStore) Subscribe(fn func(TradingState)) (unsubscribe func()) {
	return s.observers.add(fn)
}
