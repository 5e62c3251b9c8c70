package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leganyst/saas-store/internal/config"
	"github.com/Leganyst/saas-store/internal/db"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		ServiceName:        "saas-store-test",
		HTTPAddr:           "127.0.0.1:0",
		GRPCAddr:           "127.0.0.1:0",
		JWTSecret:          "secret",
		ReservedTenantSlug: "zo-system",
		TenantCacheTTL:     time.Minute,
		ReminderEnabled:    true,
		ReminderCron:       "0 9 * * *",
		ReminderLeadDays:   1,
	}
}

func newTestApp(t *testing.T, cfg *config.AppConfig) *App {
	t.Helper()
	a, err := New(context.Background(), cfg, &config.DBConfig{Driver: config.DriverSQLite, DSN: db.MemoryDSN()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	require.NoError(t, a.Migrate())
	return a
}

func TestApp_ServeAndShutdown(t *testing.T) {
	a := newTestApp(t, testConfig())

	httpLis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	grpcLis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, httpLis, grpcLis) }()

	url := "http://" + httpLis.Addr().String() + "/healthz"
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url)
		return err == nil
	}, 3*time.Second, 20*time.Millisecond)
	defer resp.Body.Close()

	var body struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2000, body.Code)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestApp_BadReminderSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.ReminderCron = "every day"
	a := newTestApp(t, cfg)

	httpLis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	grpcLis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	assert.Error(t, a.Serve(context.Background(), httpLis, grpcLis))
}

func TestApp_UsesRedisWhenConfigured(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.RedisAddr = mr.Addr()
	a := newTestApp(t, cfg)
	require.NotNil(t, a.redis)

	ctx := context.Background()
	_, err := a.Resolver.Resolve(ctx, "missing")
	require.Error(t, err)

	cfg2 := testConfig()
	cfg2.RedisAddr = "127.0.0.1:1"
	b := newTestApp(t, cfg2)
	assert.Nil(t, b.redis)
}
