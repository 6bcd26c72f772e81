package kb

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	cacheTTL        = 5 * time.Minute
	defaultPerPage  = 50
	defaultMaxPages = 4
	rateLimitPause  = 800 * time.Millisecond
	retryPause      = 500 * time.Millisecond
	pagePause       = 120 * time.Millisecond
)

// Article is one knowledge-base search hit.
type Article struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	SnippetHTML string `json:"snippetHtml"`
	HTMLURL     string `json:"html_url"`
	UpdatedAt   string `json:"updated_at"`
	Locale      string `json:"locale"`
	SectionID   int64  `json:"section_id"`
	BrandID     int64  `json:"brand_id"`
	IsInternal  bool   `json:"is_internal"`
}

// SearchResult is the cached, client-facing search payload.
type SearchResult struct {
	Query   string    `json:"query"`
	Count   int       `json:"count"`
	Results []Article `json:"results"`
}

// SearchOptions tune pagination and locale; zero values mean the
// defaults above.
type SearchOptions struct {
	PerPage  int
	MaxPages int
	NoBrands bool
	Locale   string
}

type cacheEntry struct {
	value   SearchResult
	expires time.Time
}

// Client searches the help-center knowledge base. Search responses are
// cached for five minutes keyed by the full query shape, the rate
// limiter is respected with a short pause, and the legacy search
// endpoint is used as a fallback when the article one 404s.
type Client struct {
	subdomain string
	auth      string
	httpc     *http.Client
	sleep     func(time.Duration)

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewClient(subdomain, email, token string) *Client {
	raw := email + "/token:" + token
	return &Client{
		subdomain: subdomain,
		auth:      "Basic " + base64.StdEncoding.EncodeToString([]byte(raw)),
		httpc:     &http.Client{Timeout: 30 * time.Second},
		sleep:     time.Sleep,
		cache:     make(map[string]cacheEntry),
	}
}

func (c *Client) endpoints() [2]string {
	return [2]string{
		"https://" + c.subdomain + ".zendesk.com/api/v2/help_center/articles/search.json",
		"https://" + c.subdomain + ".zendesk.com/api/v2/help_center/search.json",
	}
}

// Search runs a paginated article search, serving repeated queries
// from the TTL cache.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (SearchResult, error) {
	if opts.PerPage <= 0 {
		opts.PerPage = defaultPerPage
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaultMaxPages
	}
	if opts.Locale == "" {
		opts.Locale = "*"
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{Results: []Article{}}, nil
	}

	key := fmt.Sprintf("search.v1|%s|%d|%d|%v|%s", query, opts.PerPage, opts.MaxPages, !opts.NoBrands, opts.Locale)
	if cached, ok := c.cacheGet(key); ok {
		return cached, nil
	}

	results, err := c.fetchPages(ctx, query, opts)
	if err != nil {
		return SearchResult{}, err
	}
	payload := SearchResult{Query: query, Count: len(results), Results: results}
	c.cacheSet(key, payload)
	return payload, nil
}

func (c *Client) fetchPages(ctx context.Context, query string, opts SearchOptions) ([]Article, error) {
	endpoints := c.endpoints()
	endpointIdx := 0
	results := []Article{}

	for page := 1; page <= opts.MaxPages; {
		params := url.Values{}
		params.Set("query", query)
		params.Set("multibrand", strconv.FormatBool(!opts.NoBrands))
		params.Set("page", strconv.Itoa(page))
		params.Set("per_page", strconv.Itoa(opts.PerPage))
		params.Set("sort_by", "relevance")
		params.Set("sort_order", "desc")
		if opts.Locale != "*" {
			params.Set("locale", opts.Locale)
		}
		reqURL := endpoints[endpointIdx] + "?" + params.Encode()

		resp, err := c.getWithRetry(ctx, reqURL)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusNotFound && endpointIdx == 0 {
			resp.Body.Close()
			endpointIdx = 1
			continue
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			c.sleep(rateLimitPause)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return nil, fmt.Errorf("kb search failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}

		var pageData struct {
			Results []rawArticle `json:"results"`
		}
		err = json.NewDecoder(resp.Body).Decode(&pageData)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		for _, a := range pageData.Results {
			results = append(results, a.article())
		}
		if len(pageData.Results) < opts.PerPage {
			break
		}
		page++
		c.sleep(pagePause)
	}
	return results, nil
}

// getWithRetry retries one network failure after a short pause; the
// help center API is flaky enough that a single retry pays for itself.
func (c *Client) getWithRetry(ctx context.Context, reqURL string) (*http.Response, error) {
	resp, err := c.doGet(ctx, reqURL)
	if err == nil {
		return resp, nil
	}
	c.sleep(retryPause)
	return c.doGet(ctx, reqURL)
}

func (c *Client) doGet(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Content-Type", "application/json")
	return c.httpc.Do(req)
}

type rawArticle struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Snippet        string  `json:"snippet"`
	HTMLURL        string  `json:"html_url"`
	UpdatedAt      string  `json:"updated_at"`
	Locale         string  `json:"locale"`
	SectionID      int64   `json:"section_id"`
	BrandID        int64   `json:"brand_id"`
	UserSegmentID  *int64  `json:"user_segment_id"`
	UserSegmentIDs []int64 `json:"user_segment_ids"`
}

func (a rawArticle) article() Article {
	return Article{
		ID:          a.ID,
		Title:       a.Title,
		SnippetHTML: a.Snippet,
		HTMLURL:     a.HTMLURL,
		UpdatedAt:   a.UpdatedAt,
		Locale:      a.Locale,
		SectionID:   a.SectionID,
		BrandID:     a.BrandID,
		IsInternal:  a.UserSegmentID != nil || len(a.UserSegmentIDs) > 0,
	}
}

func (c *Client) cacheGet(key string) (SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[key]
	if !ok {
		return SearchResult{}, false
	}
	if time.Now().After(entry.expires) {
		delete(c.cache, key)
		return SearchResult{}, false
	}
	return entry.value, true
}

func (c *Client) cacheSet(key string, value SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheEntry{value: value, expires: time.Now().Add(cacheTTL)}
}
