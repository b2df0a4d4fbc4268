package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/idine/internal/auth"
	"github.com/mmynk/idine/internal/storage"
	"github.com/mmynk/idine/internal/storage/redis"
	"github.com/mmynk/idine/internal/storage/sqlite"
	"github.com/mmynk/idine/pkg/api"
)

func newTestServer(t *testing.T, prefs storage.PreferenceStore) *httptest.Server {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)

	handler, _ := NewHandler(Options{
		Store:          store,
		Prefs:          prefs,
		JWT:            auth.NewJWTManager("server-test-secret-key", time.Hour),
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		AllowedOrigins: []string{"https://idine.example"},
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		store.Close()
	})
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	client := api.NewClient(srv.Client(), srv.URL)
	_, err := client.GetMenu(context.Background(), &api.GetMenuRequest{})
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "idine_orders_finalized_total")
	assert.Contains(t, string(body), `procedure="/idine.v1.MenuService/GetMenu"`)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+api.OrderServiceGetCartProcedure, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://idine.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://idine.example", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(strings.ToLower(resp.Header.Get("Access-Control-Allow-Headers")), "authorization"))

	req.Header.Set("Origin", "https://evil.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestOrderFlowWithRedisPreferences(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	srv := newTestServer(t, redis.NewPreferenceStore(rdb, 0))
	ctx := context.Background()
	client := api.NewClient(srv.Client(), srv.URL)

	reg, err := client.Register(ctx, &api.RegisterRequest{Email: "kat@example.com", DisplayName: "Katherine", Password: "correct horse battery"})
	require.NoError(t, err)
	kat := client.WithToken(reg.Token)

	_, err = kat.SetLanguage(ctx, &api.SetLanguageRequest{Language: "zh"})
	require.NoError(t, err)
	stored, err := mr.Get("pref:" + reg.User.ID + ":language")
	require.NoError(t, err)
	assert.Equal(t, "zh", stored)

	added, err := kat.AddToCart(ctx, &api.AddToCartRequest{ItemID: "f10e4369-c5bf-58ba-8588-154339ba8ef2"})
	require.NoError(t, err)
	assert.Equal(t, "菲力牛排", added.Cart.Items[0].Name)

	placed, err := kat.Checkout(ctx, &api.CheckoutRequest{PaymentType: api.PaymentDebit, TipPercent: 10, PickupTime: api.PickupNow})
	require.NoError(t, err)
	assert.Equal(t, 20, placed.Order.TotalPrice)
	assert.Equal(t, "$22.00", placed.TotalWithTip)
}
