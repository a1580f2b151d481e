package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/polygame/internal/client/client"
	"github.com/dmitrijs2005/polygame/internal/client/models"
	"github.com/dmitrijs2005/polygame/internal/logging"
)

// DefaultTrendingLimit is used when FetchTrendingMarkets gets a non-positive
// limit.
const DefaultTrendingLimit = 10

// MarketState is a point-in-time copy of the market mirror.
type MarketState struct {
	Markets       []models.Market
	CurrentMarket *models.Market
	Loading       bool
}

// MarketStore mirrors the market catalogue: the most recently fetched list
// and the most recently fetched single market.
//
// Fetches are not de-duplicated. When requests overlap, whichever response
// arrives last overwrites the cache.
type MarketStore struct {
	api client.Client
	log logging.Logger

	mu      sync.RWMutex
	markets []models.Market
	current *models.Market
	busy    inflight

	observers observers[MarketState]
}

func NewMarketStore(api client.Client, log logging.Logger) *MarketStore {
	return &MarketStore{
		api:  api,
		log:  log.With("store", "market"),
		busy: inflight{store: "market"},
	}
}

// FetchMarkets lists markets matching params (category, status, page, ...)
// and replaces the cached list with the result.
func (s *MarketStore) FetchMarkets(ctx context.Context, params url.Values) (*models.MarketListResponse, error) {
	return s.fetchList(ctx, "fetch markets", "/markets", params)
}

// SearchMarkets lists markets matching keyword. Entries of params take
// precedence over the keyword, including an explicit "q".
func (s *MarketStore) SearchMarkets(ctx context.Context, keyword string, params url.Values) (*models.MarketListResponse, error) {
	q := url.Values{"q": {keyword}}
	for k, v := range params {
		q[k] = slices.Clone(v)
	}
	return s.fetchList(ctx, "search markets", "/markets/search", q)
}

func (s *MarketStore) fetchList(ctx context.Context, op, path string, params url.Values) (*models.MarketListResponse, error) {
	done := s.start()
	defer done()

	var resp models.MarketListResponse
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: path, Query: params}, &resp); err != nil {
		s.log.Error(ctx, op+" failed", "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.markets = resp.Markets
	s.mu.Unlock()
	s.notify()

	return &resp, nil
}

// FetchMarket loads one market and makes it the current market.
func (s *MarketStore) FetchMarket(ctx context.Context, id models.ID) (*models.Market, error) {
	done := s.start()
	defer done()

	var resp models.MarketResponse
	path := "/markets/" + url.PathEscape(id.String())
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: path}, &resp); err != nil {
		s.log.Error(ctx, "fetch market failed", "id", id, "error", err)
		return nil, fmt.Errorf("fetch market %s: %w", id, err)
	}

	s.mu.Lock()
	s.current = resp.Market
	s.mu.Unlock()
	s.notify()

	return resp.Market, nil
}

// FetchTrendingMarkets returns up to limit trending markets. It neither
// caches the result nor affects Loading.
func (s *MarketStore) FetchTrendingMarkets(ctx context.Context, limit int) ([]models.Market, error) {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}

	var resp models.MarketListResponse
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: "/markets/trending", Query: q}, &resp); err != nil {
		s.log.Error(ctx, "fetch trending markets failed", "error", err)
		return nil, fmt.Errorf("fetch trending markets: %w", err)
	}
	return resp.Markets, nil
}

// start marks one loading operation as running and returns its release.
func (s *MarketStore) start() func() {
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

func (s *MarketStore) notify() {
	s.observers.notify(s.Snapshot())
}

// Markets returns a copy of the cached list.
func (s *MarketStore) Markets() []models.Market {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.markets)
}

func (s *MarketStore) CurrentMarket() *models.Market {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *MarketStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy.loading()
}

func (s *MarketStore) Snapshot() MarketState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return MarketState{
		Markets:       slices.Clone(s.markets),
		CurrentMarket: s.current,
		Loading:       s.busy.loading(),
	}
}

// Subscribe registers fn to receive the mirror state after every change.
func (s *MarketStore) Subscribe(fn func(MarketState)) (unsubscribe func()) {
	return s.observers.add(fn)
}
