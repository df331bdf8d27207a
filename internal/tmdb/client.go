// Package tmdb is the client for The Movie Database API. It covers the
// two read-only endpoints filmlog needs: title search and movie details.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/patrickmn/go-cache"

	"filmlog/internal/config"
)

// Client handles all TMDb API interactions. Responses are cached for
// the configured TTL so repeated searches do not hit the API again.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
	cache        *cache.Cache
	logger       hclog.Logger
}

// NewClient creates a new TMDb API client from configuration.
func NewClient(cfg config.TMDbConfig, logger hclog.Logger) *Client {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		imageBaseURL: cfg.ImageBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// Result is one candidate from the search endpoint.
type Result struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
}

type searchResponse struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalResults int      `json:"total_results"`
}

// Details is the response from the movie details endpoint.
type Details struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
}

// ReleaseYear derives the year from the release date, which TMDb
// formats as YYYY-MM-DD. Returns 0 when the date is missing or odd.
func (d *Details) ReleaseYear() int {
	if len(d.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(d.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// PosterURL builds the full image URL for a poster path.
func (c *Client) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return c.imageBaseURL + posterPath
}

// Search queries TMDb for movies matching the title.
func (c *Client) Search(ctx context.Context, title string) ([]Result, error) {
	cacheKey := "search:" + title
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]Result), nil
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", title)
	requestURL := fmt.Sprintf("%s/search/movie?%s", c.baseURL, params.Encode())

	var response searchResponse
	if err := c.get(ctx, "search", requestURL, &response); err != nil {
		return nil, err
	}

	c.logger.Debug("movie search completed", "title", title, "results", len(response.Results))
	c.cache.Set(cacheKey, response.Results, cache.DefaultExpiration)
	return response.Results, nil
}

// MovieDetails fetches the details for one movie by its TMDb ID.
func (c *Client) MovieDetails(ctx context.Context, id int) (*Details, error) {
	cacheKey := "movie:" + strconv.Itoa(id)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*Details), nil
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", "en-US")
	requestURL := fmt.Sprintf("%s/movie/%d?%s", c.baseURL, id, params.Encode())

	var details Details
	if err := c.get(ctx, "details", requestURL, &details); err != nil {
		return nil, err
	}

	c.cache.Set(cacheKey, &details, cache.DefaultExpiration)
	return &details, nil
}

// get performs one HTTP GET and decodes the JSON body into result.
// Every failure mode comes back as a *FetchError.
func (c *Client) get(ctx context.Context, op, requestURL string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Op: op, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("read response body: %w", err)}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("unmarshal response: %w", err)}
	}
	return nil
}
