package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"scholar-ai/internal/apperr"
	"scholar-ai/internal/profile"
	"scholar-ai/internal/scholarship"
)

type fakeScraper struct {
	results []scholarship.Scholarship
	calls   int
}

func (f *fakeScraper) ScrapeAll(_ context.Context) []scholarship.Scholarship {
	f.calls++
	return f.results
}

type fakeCatalog struct {
	cached     []scholarship.Scholarship
	hasCache   bool
	all        []scholarship.Scholarship
	allErr     error
	storeErr   error
	storeCalls int
}

func (f *fakeCatalog) CachedScrape(_ context.Context) ([]scholarship.Scholarship, bool) {
	return f.cached, f.hasCache
}

func (f *fakeCatalog) StoreScrape(_ context.Context, _ []scholarship.Scholarship) error {
	f.storeCalls++
	return f.storeErr
}

func (f *fakeCatalog) All(_ context.Context) ([]scholarship.Scholarship, error) {
	return f.all, f.allErr
}

type fakeUsers struct {
	users []profile.User
	err   error
}

func (f *fakeUsers) FetchAll(_ context.Context) ([]profile.User, error) {
	return f.users, f.err
}

type fakePicker struct {
	picks []scholarship.Recommendation
	err   error
}

func (f *fakePicker) Recommend(_ context.Context, _ profile.User, _ []scholarship.Scholarship) ([]scholarship.Recommendation, error) {
	return f.picks, f.err
}

func TestHealthHandler_ReturnsOk(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", healthHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("expected response to contain 'ok', got: %s", w.Body.String())
	}
}

func TestScrapeSyncHandler_ServesCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	scraper := &fakeScraper{}
	catalog := &fakeCatalog{
		cached:   []scholarship.Scholarship{{Title: "Cached Scholarship"}},
		hasCache: true,
	}
	r := gin.New()
	r.POST("/api/scrape-sync", ScrapeSyncHandler(scraper, catalog))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/scrape-sync", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if scraper.calls != 0 {
		t.Error("cache hit must not trigger a scrape run")
	}
	if !strings.Contains(w.Body.String(), `"cached":true`) {
		t.Errorf("expected cached flag in response: %s", w.Body.String())
	}
}

func TestScrapeSyncHandler_RunsAndStores(t *testing.T) {
	gin.SetMode(gin.TestMode)
	scraper := &fakeScraper{results: []scholarship.Scholarship{{Title: "Fresh Scholarship"}}}
	catalog := &fakeCatalog{}
	r := gin.New()
	r.POST("/api/scrape-sync", ScrapeSyncHandler(scraper, catalog))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/scrape-sync", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if scraper.calls != 1 {
		t.Errorf("expected 1 scrape run, got %d", scraper.calls)
	}
	if catalog.storeCalls != 1 {
		t.Errorf("expected 1 store call, got %d", catalog.storeCalls)
	}
	if !strings.Contains(w.Body.String(), `"count":1`) {
		t.Errorf("expected count in response: %s", w.Body.String())
	}
}

func TestRecommendHandler_UnknownUserIs404(t *testing.T) {
	gin.SetMode(gin.TestMode)
	users := &fakeUsers{users: []profile.User{{ID: "1", Name: "Alice"}}}
	r := gin.New()
	r.GET("/api/ai/recommend-scholarships/:userId", RecommendHandler(users, &fakeCatalog{}, &fakePicker{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/ai/recommend-scholarships/999", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", w.Code)
	}
}

func TestRecommendHandler_HappyPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	users := &fakeUsers{users: []profile.User{{ID: "7", Name: "Bola", Education: "MSc"}}}
	catalog := &fakeCatalog{all: []scholarship.Scholarship{{Title: "Graduate Fellowship"}}}
	picker := &fakePicker{picks: []scholarship.Recommendation{{Title: "Graduate Fellowship"}}}
	r := gin.New()
	r.GET("/api/ai/recommend-scholarships/:userId", RecommendHandler(users, catalog, picker))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/ai/recommend-scholarships/7", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Graduate Fellowship") {
		t.Errorf("expected recommendation in response: %s", w.Body.String())
	}
}

func TestRecommendHandler_UpstreamErrorsMapToStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	users := &fakeUsers{err: fmt.Errorf("%w: users API unreachable", apperr.ErrIntegration)}
	r := gin.New()
	r.GET("/api/ai/recommend-scholarships/:userId", RecommendHandler(users, &fakeCatalog{}, &fakePicker{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/ai/recommend-scholarships/1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for upstream failure, got %d", w.Code)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.ErrValidation, http.StatusBadRequest},
		{apperr.ErrUnsupportedFormat, http.StatusBadRequest},
		{apperr.ErrNotFound, http.StatusNotFound},
		{apperr.ErrState, http.StatusInternalServerError},
		{apperr.ErrConfiguration, http.StatusInternalServerError},
		{apperr.ErrIntegration, http.StatusBadGateway},
		{apperr.ErrFormat, http.StatusBadGateway},
		{apperr.ErrTimeout, http.StatusGatewayTimeout},
		{errors.New("anything else"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", apperr.ErrTimeout), http.StatusGatewayTimeout},
	}
	for _, c := range cases {
		if got := statusFor(c.err); got != c.want {
			t.Errorf("statusFor(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
