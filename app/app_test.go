package app

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"taskpro/api/broker"
	"taskpro/api/config"
	"taskpro/api/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:         "test",
		AppPort:        "0",
		AllowedOrigins: "*",
		BcryptCost:     4,
		MaxBodyBytes:   1 << 20,
	}
}

func TestNewWithDatabase(t *testing.T) {
	db := testutils.SetupTestDB(t)

	a := NewWithDatabase(testConfig(), db)

	assert.IsType(t, broker.NoopPublisher{}, a.Events)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"username":"alice","password":"password123"}`))
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestNewWithSQLite(t *testing.T) {
	cfg := testConfig()
	cfg.DBDriver = "sqlite"
	cfg.DBPath = filepath.Join(t.TempDir(), "app.db")

	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewUnsupportedDriver(t *testing.T) {
	cfg := testConfig()
	cfg.DBDriver = "oracle"

	_, err := New(cfg)

	assert.Error(t, err)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	db := testutils.SetupTestDB(t)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := testConfig()
	cfg.AppPort = strconv.Itoa(port)
	a := NewWithDatabase(cfg, db)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + cfg.AppPort + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
