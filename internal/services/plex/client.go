package plex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
)

// requestTimeout bounds every Plex API call.
const requestTimeout = 10 * time.Second

const userAgent = "plexsync/0.1.0"

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to a Plex Media Server.
type Client struct {
	baseURL       string
	token         string
	moviesLibrary string
	tvLibrary     string
	client        HTTPDoer

	mu       sync.Mutex
	sections map[string]string
}

// New constructs a Plex client with the default HTTP backend.
func New(baseURL, token, moviesLibrary, tvLibrary string) *Client {
	return NewWithDoer(baseURL, token, moviesLibrary, tvLibrary, &http.Client{Timeout: requestTimeout})
}

// NewWithDoer constructs a Plex client using the provided HTTP backend.
func NewWithDoer(baseURL, token, moviesLibrary, tvLibrary string, doer HTTPDoer) *Client {
	return &Client{
		baseURL:       strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:         strings.TrimSpace(token),
		moviesLibrary: moviesLibrary,
		tvLibrary:     tvLibrary,
		client:        doer,
	}
}

// Name implements catalog.Catalog.
func (c *Client) Name() string { return "plex" }

// Connect verifies the server answers its identity endpoint. Commands call
// this once at startup; failure here is fatal for the run.
func (c *Client) Connect(ctx context.Context) error {
	var out struct{}
	return c.getJSON(ctx, "/identity", nil, &out)
}

// metadata mirrors one entry of a Plex MediaContainer response.
type metadata struct {
	RatingKey   string `json:"ratingKey"`
	Title       string `json:"title"`
	Year        int    `json:"year"`
	ViewCount   int    `json:"viewCount"`
	AddedAt     int64  `json:"addedAt"`
	ParentIndex int    `json:"parentIndex"`
	Index       int    `json:"index"`
	Media       []struct {
		Part []struct {
			File string `json:"file"`
		} `json:"Part"`
	} `json:"Media"`
}

type container struct {
	MediaContainer struct {
		Metadata  []metadata `json:"Metadata"`
		Directory []struct {
			Key   string `json:"key"`
			Title string `json:"title"`
		} `json:"Directory"`
	} `json:"MediaContainer"`
}

// Movies implements catalog.Catalog.
func (c *Client) Movies(ctx context.Context, opts catalog.ListOptions) ([]catalog.Item, error) {
	entries, err := c.sectionItems(ctx, c.moviesLibrary)
	if err != nil {
		return nil, err
	}
	items := make([]catalog.Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toItem(entry))
	}
	return items, nil
}

// Shows implements catalog.Catalog.
func (c *Client) Shows(ctx context.Context, opts catalog.ListOptions) ([]catalog.Show, error) {
	entries, err := c.sectionItems(ctx, c.tvLibrary)
	if err != nil {
		return nil, err
	}
	shows := make([]catalog.Show, 0, len(entries))
	for _, entry := range entries {
		shows = append(shows, catalog.Show{Title: entry.Title, Year: entry.Year, ID: entry.RatingKey})
	}
	return shows, nil
}

// Episodes implements catalog.Catalog. Episodes come from the show's
// allLeaves endpoint, which flattens seasons.
func (c *Client) Episodes(ctx context.Context, showID string, opts catalog.ListOptions) ([]catalog.Item, error) {
	var out container
	path := fmt.Sprintf("/library/metadata/%s/allLeaves", url.PathEscape(showID))
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	items := make([]catalog.Item, 0, len(out.MediaContainer.Metadata))
	for _, entry := range out.MediaContainer.Metadata {
		episode := toItem(entry)
		episode.ParentID = showID
		items = append(items, episode)
	}
	return items, nil
}

// MovieByTitle implements catalog.Catalog. A missing title returns (nil, nil).
func (c *Client) MovieByTitle(ctx context.Context, title string) (*catalog.Item, error) {
	movies, err := c.Movies(ctx, catalog.ListOptions{})
	if err != nil {
		return nil, err
	}
	for i := range movies {
		if strings.EqualFold(movies[i].Title, title) {
			return &movies[i], nil
		}
	}
	return nil, nil
}

// ShowByTitle implements catalog.Catalog. A missing title returns (nil, nil).
func (c *Client) ShowByTitle(ctx context.Context, title string) (*catalog.Show, error) {
	shows, err := c.Shows(ctx, catalog.ListOptions{})
	if err != nil {
		return nil, err
	}
	for i := range shows {
		if strings.EqualFold(shows[i].Title, title) {
			return &shows[i], nil
		}
	}
	return nil, nil
}

// MarkMovieWatched implements catalog.Catalog.
func (c *Client) MarkMovieWatched(ctx context.Context, id string) error {
	return c.scrobble(ctx, id)
}

// MarkEpisodeWatched implements catalog.Catalog.
func (c *Client) MarkEpisodeWatched(ctx context.Context, id string) error {
	return c.scrobble(ctx, id)
}

// UpdateMovieAddedAt implements catalog.Catalog. The value is locked so the
// next metadata refresh does not revert it.
func (c *Client) UpdateMovieAddedAt(ctx context.Context, id string, addedAt time.Time) error {
	params := url.Values{
		"addedAt.value":  {strconv.FormatInt(addedAt.Unix(), 10)},
		"addedAt.locked": {"1"},
	}
	path := fmt.Sprintf("/library/metadata/%s", url.PathEscape(id))
	return c.send(ctx, http.MethodPut, path, params)
}

func (c *Client) scrobble(ctx context.Context, id string) error {
	params := url.Values{
		"key":        {id},
		"identifier": {"com.plexapp.plugins.library"},
	}
	return c.send(ctx, http.MethodGet, "/:/scrobble", params)
}

func (c *Client) sectionItems(ctx context.Context, library string) ([]metadata, error) {
	key, err := c.sectionKey(ctx, library)
	if err != nil {
		return nil, err
	}
	var out container
	if err := c.getJSON(ctx, fmt.Sprintf("/library/sections/%s/all", key), nil, &out); err != nil {
		return nil, err
	}
	return out.MediaContainer.Metadata, nil
}

func (c *Client) sectionKey(ctx context.Context, library string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sections == nil {
		var out container
		if err := c.getJSON(ctx, "/library/sections", nil, &out); err != nil {
			return "", err
		}
		sections := make(map[string]string, len(out.MediaContainer.Directory))
		for _, dir := range out.MediaContainer.Directory {
			if dir.Key == "" || dir.Title == "" {
				continue
			}
			sections[strings.ToLower(dir.Title)] = dir.Key
		}
		c.sections = sections
	}

	key, ok := c.sections[strings.ToLower(library)]
	if !ok {
		return "", catalog.Wrap(catalog.ErrNotFound, c.Name(), fmt.Sprintf("library %q", library), nil)
	}
	return key, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.applyHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return catalog.Wrap(catalog.ErrUnavailable, c.Name(), path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		detail := fmt.Sprintf("%s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
		return catalog.Wrap(catalog.ErrUnavailable, c.Name(), detail, nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return catalog.Wrap(catalog.ErrMalformed, c.Name(), path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, params url.Values) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.applyHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return catalog.Wrap(catalog.ErrUnavailable, c.Name(), path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		detail := fmt.Sprintf("%s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
		return catalog.Wrap(catalog.ErrUnavailable, c.Name(), detail, nil)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
}

func toItem(entry metadata) catalog.Item {
	item := catalog.Item{
		Title:    entry.Title,
		Year:     entry.Year,
		ID:       entry.RatingKey,
		Watched:  entry.ViewCount > 0,
		Season:   entry.ParentIndex,
		Episode:  entry.Index,
		Versions: len(entry.Media),
	}
	if entry.AddedAt > 0 {
		item.AddedAt = time.Unix(entry.AddedAt, 0).UTC().Truncate(time.Minute)
	}
	if len(entry.Media) > 0 && len(entry.Media[0].Part) > 0 {
		item.Path = entry.Media[0].Part[0].File
	}
	return item
}
