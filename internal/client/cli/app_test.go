package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/polygame/internal/client/client"
	"github.com/dmitrijs2005/polygame/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/polygame/internal/client/services"
	"github.com/dmitrijs2005/polygame/internal/client/storage"
	"github.com/dmitrijs2005/polygame/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ------------ fake backend ------------

type backend struct {
	mu       sync.Mutex
	requests []string
	lastQ    url.Values
	lastBody map[string]any
}

func (b *backend) record(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, r.Method+" "+strings.TrimPrefix(r.URL.Path, "/api/v1"))
	b.lastQ = r.URL.Query()
	b.lastBody = nil
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&b.lastBody)
	}
}

func (b *backend) calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *backend) query() url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastQ
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func newBackend(t *testing.T) (*httptest.Server, *backend) {
	t.Helper()
	be := &backend{}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			be.record(r)
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			be.mu.Lock()
			body := be.lastBody
			be.mu.Unlock()
			if body["password"] != "secret" {
				writeJSON(w, http.StatusUnauthorized, `{"error":"invalid username or password"}`)
				return
			}
			writeJSON(w, http.StatusOK, `{"token":"abc","user":{"id":1,"username":"alice","virtual_balance":"10000"}}`)
		})
		r.Post("/auth/register", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusCreated, `{"token":"reg","user":{"id":2,"username":"bob","email":"bob@example.com"}}`)
		})

		r.Group(func(r chi.Router) {
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					switch r.Header.Get(client.AuthorizationHeaderName) {
					case "Bearer abc", "Bearer reg":
						next.ServeHTTP(w, r)
					default:
						writeJSON(w, http.StatusUnauthorized, `{"error":"authorization header required"}`)
					}
				})
			})

			r.Get("/user/profile", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"user":{"id":1,"username":"alice","email":"alice@example.com","virtual_balance":"9000"}}`)
			})
			r.Get("/markets", func(w http.ResponseWriter, r *http.Request) {
				category := r.URL.Query().Get("category")
				if category == "" {
					category = "weather"
				}
				writeJSON(w, http.StatusOK, `{"markets":[{"id":1,"title":"Rain tomorrow?","category":"`+category+`","status":"active","total_volume":"120.5"}],"total":1,"page":1}`)
			})
			r.Get("/markets/trending", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"markets":[{"id":2,"title":"Election winner","status":"active"}]}`)
			})
			r.Get("/markets/search", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"markets":[{"id":3,"title":"Search hit `+r.URL.Query().Get("q")+`"}],"total":1,"page":1}`)
			})
			r.Get("/markets/{id}", func(w http.ResponseWriter, r *http.Request) {
				if chi.URLParam(r, "id") != "1" {
					writeJSON(w, http.StatusNotFound, `{"error":"market not found"}`)
					return
				}
				writeJSON(w, http.StatusOK, `{"market":{"id":1,"title":"Rain tomorrow?","status":"active","outcomes":[{"id":10,"outcome_name":"Yes","current_price":"0.6"},{"id":11,"outcome_name":"No","current_price":"0.4"}]}}`)
			})
			r.Post("/trading/orders", func(w http.ResponseWriter, r *http.Request) {
				be.mu.Lock()
				price, _ := be.lastBody["price"].(string)
				be.mu.Unlock()
				if decimal.RequireFromString(price).GreaterThan(decimal.NewFromInt(1)) {
					writeJSON(w, http.StatusBadRequest, `{"error":"invalid price"}`)
					return
				}
				writeJSON(w, http.StatusCreated, `{"order":{"id":9,"market_id":1,"outcome_id":10,"order_type":"buy","shares":"10","price":"0.6","status":"filled"}}`)
			})
			r.Get("/trading/orders", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"orders":[{"id":5,"market_id":1,"outcome_id":10,"order_type":"buy","shares":"10","price":"0.5","status":"pending"}],"total":1,"page":1}`)
			})
			r.Delete("/trading/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
				if chi.URLParam(r, "id") != "5" {
					writeJSON(w, http.StatusNotFound, `{"error":"order not found"}`)
					return
				}
				writeJSON(w, http.StatusOK, `{"message":"order cancelled"}`)
			})
			r.Get("/trading/positions", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"positions":[{"id":1,"market_id":1,"outcome_id":10,"shares":"4","avg_price":"0.5"}]}`)
			})
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, be
}

// ------------ helpers ------------

// newTestApp builds an App against the fake backend with an in-memory
// SQLite session store. input feeds the interactive prompts.
func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer, *backend) {
	t.Helper()
	stubTerminal(t, false, nil, nil)

	ctx := context.Background()
	srv, be := newBackend(t)

	db, err := storage.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	api := client.NewHTTPClient(srv.URL + "/api/v1")
	session, err := services.NewSessionStore(ctx, api, metadata.NewSQLiteRepository(db), logging.Discard())
	require.NoError(t, err)
	api.SetTokenSource(session)

	var out bytes.Buffer
	app, err := newApp(api, session, logging.Discard(), strings.NewReader(input), &out)
	require.NoError(t, err)
	return app, &out, be
}

func signedInApp(t *testing.T) (*App, *bytes.Buffer, *backend) {
	t.Helper()
	app, out, be := newTestApp(t, "alice\nsecret\n")
	require.NoError(t, app.Login(context.Background()))
	out.Reset()
	return app, out, be
}

// ------------ tests ------------

func TestIsLoggedIn_FollowsSession(t *testing.T) {
	app, _, _ := newTestApp(t, "alice\nsecret\n")
	require.False(t, app.isLoggedIn())

	require.NoError(t, app.Login(context.Background()))
	require.True(t, app.isLoggedIn())

	require.NoError(t, app.Logout(context.Background()))
	require.False(t, app.isLoggedIn())
}

func TestMarkets_SignedOutRedirectsToLogin(t *testing.T) {
	app, out, be := newTestApp(t, "")

	err := app.Markets(context.Background(), nil)

	require.ErrorIs(t, err, errSignInRequired)
	require.Contains(t, out.String(), "Please log in first")
	require.Equal(t, "/login", app.router.Current())
	require.Empty(t, be.calls(), "the guard runs before any request")
}

func TestMarkets_ListsWithCategory(t *testing.T) {
	app, out, be := signedInApp(t)

	require.NoError(t, app.Markets(context.Background(), []string{"sports"}))

	require.Equal(t, "sports", be.query().Get("category"))
	require.Contains(t, out.String(), "Rain tomorrow?")
	require.Contains(t, out.String(), "sports")
	require.Contains(t, out.String(), "120.50")
	require.Equal(t, "/markets", app.router.Current())
	require.Len(t, app.markets.Markets(), 1)
}

func TestMarket_DetailAndNotFound(t *testing.T) {
	app, out, _ := signedInApp(t)
	ctx := context.Background()

	require.NoError(t, app.Market(ctx, []string{"1"}))
	require.Contains(t, out.String(), "Yes")
	require.Contains(t, out.String(), "0.6000")
	require.Equal(t, "/markets/1", app.router.Current())

	out.Reset()
	err := app.Market(ctx, []string{"99"})
	require.ErrorIs(t, err, client.ErrNotFound)
	require.Contains(t, out.String(), "Error: market not found")

	require.ErrorIs(t, app.Market(ctx, nil), errUsage)
}

func TestTrending(t *testing.T) {
	app, out, be := signedInApp(t)

	require.NoError(t, app.Trending(context.Background(), []string{"3"}))
	require.Equal(t, "3", be.query().Get("limit"))
	require.Contains(t, out.String(), "Election winner")

	require.ErrorIs(t, app.Trending(context.Background(), []string{"many"}), errUsage)
}

func TestSearch(t *testing.T) {
	app, out, be := signedInApp(t)

	require.NoError(t, app.Search(context.Background(), []string{"rain", "tomorrow"}))
	require.Equal(t, "rain tomorrow", be.query().Get("q"))
	require.Contains(t, out.String(), "Search hit rain tomorrow")

	require.ErrorIs(t, app.Search(context.Background(), nil), errUsage)
}

func TestTrade_PlacesOrderWithoutTouchingCache(t *testing.T) {
	app, out, be := signedInApp(t)
	ctx := context.Background()

	require.NoError(t, app.Trade(ctx, "buy", []string{"1", "10", "10", "0.6"}))

	require.Contains(t, out.String(), "Order 9 placed")
	require.Empty(t, app.trading.Orders())
	require.Contains(t, be.calls(), "POST /trading/orders")
	require.Equal(t, "/markets/1", app.router.Current())
}

func TestTrade_Errors(t *testing.T) {
	app, out, _ := signedInApp(t)
	ctx := context.Background()

	require.ErrorIs(t, app.Trade(ctx, "buy", []string{"1", "10"}), errUsage)
	require.ErrorIs(t, app.Trade(ctx, "buy", []string{"1", "10", "ten", "0.5"}), errUsage)
	require.ErrorIs(t, app.Trade(ctx, "sell", []string{"1", "10", "10", "x"}), errUsage)

	out.Reset()
	err := app.Trade(ctx, "buy", []string{"1", "10", "10", "2"})
	require.ErrorContains(t, err, "invalid price")
	require.Contains(t, out.String(), "Error: invalid price")
}

func TestCancel_KeepsCachedOrder(t *testing.T) {
	app, out, _ := signedInApp(t)
	ctx := context.Background()

	require.NoError(t, app.Orders(ctx))
	require.Contains(t, out.String(), "pending")

	out.Reset()
	require.NoError(t, app.Cancel(ctx, []string{"5"}))
	require.Contains(t, out.String(), "Order 5 cancelled")

	orders := app.trading.Orders()
	require.Len(t, orders, 1)
	require.Equal(t, "5", orders[0].ID.String())

	out.Reset()
	require.Error(t, app.Cancel(ctx, []string{"77"}))
	require.Contains(t, out.String(), "Error: order not found")
}

func TestPositions(t *testing.T) {
	app, out, _ := signedInApp(t)

	require.NoError(t, app.Positions(context.Background()))

	require.Contains(t, out.String(), "AVG PRICE")
	require.Contains(t, out.String(), "2.00")
	require.Equal(t, "/portfolio", app.router.Current())
}

func TestGoto(t *testing.T) {
	app, out, _ := signedInApp(t)
	ctx := context.Background()

	require.NoError(t, app.Goto(ctx, []string{"/markets/1"}))
	require.Contains(t, out.String(), "Rain tomorrow?")

	out.Reset()
	require.NoError(t, app.Goto(ctx, []string{"/portfolio"}))
	require.Contains(t, out.String(), "AVG PRICE")
	require.Contains(t, out.String(), "pending", "orders are fetched too")

	out.Reset()
	require.NoError(t, app.Goto(ctx, []string{"/login"}))
	require.Contains(t, out.String(), "Redirected to /")
	require.Contains(t, out.String(), "Election winner")

	out.Reset()
	require.NoError(t, app.Goto(ctx, []string{"/nowhere"}))
	require.Contains(t, out.String(), "Nothing to show at /nowhere")

	require.ErrorIs(t, app.Goto(ctx, nil), errUsage)
}

func TestGoto_SignedOutProtected(t *testing.T) {
	app, out, be := newTestApp(t, "")

	require.NoError(t, app.Goto(context.Background(), []string{"/profile"}))

	require.Contains(t, out.String(), "Redirected to /login")
	require.Empty(t, be.calls())
}

func TestMetricsRouter(t *testing.T) {
	rec := httptest.NewRecorder()
	metricsRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}
