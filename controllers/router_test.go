package controllers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bookreco-backend/models/recommend"
	"bookreco-backend/services/catalog"
	"bookreco-backend/services/similarity"
)

type failingPinger struct{}

func (failingPinger) PingContext(ctx context.Context) error { return errors.New("unreachable") }

func newTestServer(t *testing.T) (*httptest.Server, *catalog.GormStore) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "bookreco.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, catalog.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	store := catalog.NewGormStore(db)
	_, err = store.SeedIfEmpty(context.Background(), catalog.SampleBooks())
	require.NoError(t, err)

	srv := httptest.NewServer(NewRouter(Deps{
		Store:          store,
		Ranker:         similarity.NewEngine(),
		DB:             sqlDB,
		Logger:         zap.NewNop(),
		Registry:       prometheus.NewRegistry(),
		AllowedOrigins: []string{"*"},
		Limit:          similarity.DefaultLimit,
	}))
	t.Cleanup(srv.Close)
	return srv, store
}

func recommendFor(t *testing.T, srv *httptest.Server, bookID string) (int, []byte) {
	t.Helper()
	resp, err := http.PostForm(srv.URL+"/recommend", url.Values{"book_id": {bookID}})
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, []byte(buf.String())
}

func TestEndToEndSeedCatalog(t *testing.T) {
	srv, store := newTestServer(t)

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 5)

	for _, target := range all {
		code, body := recommendFor(t, srv, strconv.FormatUint(uint64(target.ID), 10))
		require.Equal(t, http.StatusOK, code)

		var resp recommend.RecommendationResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Len(t, resp.Recommendations, len(all)-1)
		for _, r := range resp.Recommendations {
			assert.NotEqual(t, target.ID, r.ID)
		}
	}

	gatsby := all[0]
	require.Equal(t, "The Great Gatsby", gatsby.Title)

	code, body := recommendFor(t, srv, strconv.FormatUint(uint64(gatsby.ID), 10))
	require.Equal(t, http.StatusOK, code)
	var resp recommend.RecommendationResponse
	require.NoError(t, json.Unmarshal(body, &resp))

	// Ranking must follow the engine's descending similarity order.
	ranked, err := similarity.NewEngine().Rank(gatsby.ID, all, similarity.DefaultLimit)
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, len(ranked))
	for i, s := range ranked {
		assert.Equal(t, s.Book.ID, resp.Recommendations[i].ID)
	}
}

func TestEndToEndUnknownBook(t *testing.T) {
	srv, _ := newTestServer(t)

	code, body := recommendFor(t, srv, "12345")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"error":"Book not found"}`, string(body))
}

func TestHomePage(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	for _, b := range catalog.SampleBooks() {
		assert.Contains(t, buf.String(), b.Author)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/recommend")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	rec := httptest.NewRecorder()
	healthz(failingPinger{})(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	code, _ := recommendFor(t, srv, "1")
	require.Equal(t, http.StatusOK, code)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `bookreco_http_requests_total{method="POST",route="/recommend",status="200"} 1`)
}
