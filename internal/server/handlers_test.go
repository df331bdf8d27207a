package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"filmlog/internal/config"
	"filmlog/internal/database"
	"filmlog/internal/movies"
	"filmlog/internal/tmdb"
)

// fakeTMDb serves canned search and details responses.
func fakeTMDb(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("query") == "Nothing" {
			w.Write([]byte(`{"results": [], "total_results": 0}`))
			return
		}
		w.Write([]byte(`{"results": [{
			"id": 27205,
			"title": "Inception",
			"overview": "A thief who steals corporate secrets.",
			"release_date": "2010-07-15",
			"poster_path": "/inception.jpg",
			"vote_average": 8.4
		}], "total_results": 1}`))
	})
	mux.HandleFunc("/movie/27205", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 27205,
			"title": "Inception",
			"overview": "A thief who steals corporate secrets.",
			"release_date": "2010-07-15",
			"poster_path": "/inception.jpg"
		}`))
	})
	mux.HandleFunc("/movie/500", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusInternalServerError)
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newTestServer(t *testing.T) (*gin.Engine, *movies.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&database.Movie{}))
	repo := movies.NewRepository(db)

	cfg := config.Default()
	cfg.TMDb.APIKey = "test-key"
	cfg.TMDb.BaseURL = fakeTMDb(t).URL
	cfg.TMDb.CacheTTL = time.Minute

	tmdbClient := tmdb.NewClient(cfg.TMDb, hclog.NewNullLogger())
	srv := New(cfg, repo, tmdbClient, hclog.NewNullLogger())
	return srv.Router(), repo
}

func seedMovie(t *testing.T, repo *movies.Repository, title string, rating *float64) *database.Movie {
	t.Helper()
	movie := &database.Movie{
		Title:       title,
		Year:        2010,
		Description: "seeded test movie",
		ImgURL:      "https://image.tmdb.org/t/p/w500/seed.jpg",
		Rating:      rating,
	}
	require.NoError(t, repo.Create(context.Background(), movie))
	return movie
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListMoviesRanked(t *testing.T) {
	router, repo := newTestServer(t)

	nine, seven, eight := 9.0, 7.3, 8.1
	seedMovie(t, repo, "A", &nine)
	seedMovie(t, repo, "B", &seven)
	seedMovie(t, repo, "C", &eight)

	w := get(router, "/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `"count":3`)
	// A (9.0) before C (8.1) before B (7.3).
	assert.Less(t, strings.Index(body, `"title":"A"`), strings.Index(body, `"title":"C"`))
	assert.Less(t, strings.Index(body, `"title":"C"`), strings.Index(body, `"title":"B"`))
	assert.Contains(t, body, `"ranking":1`)
	assert.Contains(t, body, `"ranking":3`)
}

func TestShowAddForm(t *testing.T) {
	router, _ := newTestServer(t)

	w := get(router, "/add")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "form")
}

func TestSearchCandidates(t *testing.T) {
	router, _ := newTestServer(t)

	w := postForm(router, "/add", url.Values{"title": {"Inception"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	assert.Contains(t, w.Body.String(), "Inception")
}

func TestSearchCandidatesEmptyTitle(t *testing.T) {
	router, _ := newTestServer(t)

	w := postForm(router, "/add", url.Values{"title": {""}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestFindCreatesMovieAndRedirects(t *testing.T) {
	router, repo := newTestServer(t)

	w := get(router, "/find?id=27205")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/update?movie_id=")

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Inception", all[0].Title)
	assert.Equal(t, 2010, all[0].Year)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/inception.jpg", all[0].ImgURL)
	assert.Nil(t, all[0].Rating)
}

func TestFindDuplicateTitleConflicts(t *testing.T) {
	router, _ := newTestServer(t)

	require.Equal(t, http.StatusSeeOther, get(router, "/find?id=27205").Code)
	w := get(router, "/find?id=27205")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONSTRAINT_VIOLATION")
}

func TestFindUpstreamFailure(t *testing.T) {
	router, _ := newTestServer(t)

	w := get(router, "/find?id=500")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "METADATA_ERROR")
}

func TestFindInvalidID(t *testing.T) {
	router, _ := newTestServer(t)

	w := get(router, "/find?id=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShowUpdateFormPrefill(t *testing.T) {
	router, repo := newTestServer(t)
	movie := seedMovie(t, repo, "Arrival", nil)

	w := get(router, "/update?movie_id="+itoa(movie.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Arrival"`)
}

func TestShowUpdateFormNotFound(t *testing.T) {
	router, _ := newTestServer(t)

	w := get(router, "/update?movie_id=404")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestUpdateMovie(t *testing.T) {
	router, repo := newTestServer(t)
	movie := seedMovie(t, repo, "Arrival", nil)

	w := postForm(router, "/update?movie_id="+itoa(movie.ID), url.Values{
		"rating": {"8.5"},
		"review": {"Quietly devastating."},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	got, err := repo.Get(context.Background(), movie.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 8.5, *got.Rating)
	assert.Equal(t, "Quietly devastating.", got.Review)
}

func TestUpdateMovieValidation(t *testing.T) {
	router, repo := newTestServer(t)
	movie := seedMovie(t, repo, "Arrival", nil)

	tests := []struct {
		name   string
		rating string
		review string
	}{
		{"empty rating", "", "fine"},
		{"rating too long", "10.25", "fine"},
		{"rating not a number", "nope", "fine"},
		{"empty review", "8.5", ""},
		{"review too long", "8.5", strings.Repeat("x", 51)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postForm(router, "/update?movie_id="+itoa(movie.ID), url.Values{
				"rating": {tc.rating},
				"review": {tc.review},
			})
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUpdateMovieNotFound(t *testing.T) {
	router, _ := newTestServer(t)

	w := postForm(router, "/update?movie_id=404", url.Values{
		"rating": {"8.5"},
		"review": {"ghost"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMovie(t *testing.T) {
	router, repo := newTestServer(t)
	movie := seedMovie(t, repo, "Heat", nil)

	w := get(router, "/delete/"+itoa(movie.ID))
	require.Equal(t, http.StatusSeeOther, w.Code)

	_, err := repo.Get(context.Background(), movie.ID)
	assert.ErrorIs(t, err, movies.ErrNotFound)
}

func TestDeleteMovieIdempotent(t *testing.T) {
	router, _ := newTestServer(t)

	w := get(router, "/delete/12345")
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestHealth(t *testing.T) {
	router, _ := newTestServer(t)

	w := get(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
