package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
)

// requestTimeout bounds every Jellyfin API call.
const requestTimeout = 10 * time.Second

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to a Jellyfin server on behalf of one user.
type Client struct {
	baseURL string
	apiKey  string
	user    string
	client  HTTPDoer

	mu     sync.Mutex
	userID string
}

// New constructs a Jellyfin client with the default HTTP backend.
func New(baseURL, apiKey, user string) *Client {
	return NewWithDoer(baseURL, apiKey, user, &http.Client{Timeout: requestTimeout})
}

// NewWithDoer constructs a Jellyfin client using the provided HTTP backend.
func NewWithDoer(baseURL, apiKey, user string, doer HTTPDoer) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		user:    strings.TrimSpace(user),
		client:  doer,
	}
}

// Name implements catalog.Catalog.
func (c *Client) Name() string { return "jellyfin" }

// Connect verifies the server is reachable and the configured user exists.
// Commands call this once at startup; failure here is fatal for the run.
func (c *Client) Connect(ctx context.Context) error {
	_, err := c.ensureUserID(ctx)
	return err
}

func (c *Client) ensureUserID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.userID != "" {
		return c.userID, nil
	}

	var users []struct {
		Name string `json:"Name"`
		ID   string `json:"Id"`
	}
	if err := c.getJSON(ctx, "/Users", nil, &users); err != nil {
		return "", err
	}
	for _, user := range users {
		if strings.EqualFold(user.Name, c.user) {
			if user.ID == "" {
				return "", catalog.Wrap(catalog.ErrMalformed, c.Name(), "resolve user: empty id", nil)
			}
			c.userID = user.ID
			return c.userID, nil
		}
	}
	return "", catalog.Wrap(catalog.ErrNotFound, c.Name(), fmt.Sprintf("user %q", c.user), nil)
}

// item mirrors the loosely-typed Jellyfin item record. Absent optional fields
// stay at their zero values and are mapped explicitly in toItem.
type item struct {
	Name              string `json:"Name"`
	ID                string `json:"Id"`
	ProductionYear    int    `json:"ProductionYear"`
	Path              string `json:"Path"`
	DateCreated       string `json:"DateCreated"`
	SeriesID          string `json:"SeriesId"`
	ParentIndexNumber int    `json:"ParentIndexNumber"`
	IndexNumber       int    `json:"IndexNumber"`
	UserData          struct {
		Played bool `json:"Played"`
	} `json:"UserData"`
	MediaSources []json.RawMessage `json:"MediaSources"`
}

type itemsPage struct {
	Items []item `json:"Items"`
}

// Movies implements catalog.Catalog.
func (c *Client) Movies(ctx context.Context, opts catalog.ListOptions) ([]catalog.Item, error) {
	records, err := c.listItems(ctx, url.Values{
		"IncludeItemTypes": {"Movie"},
		"Recursive":        {"true"},
	}, opts)
	if err != nil {
		return nil, err
	}
	items := make([]catalog.Item, 0, len(records))
	for _, record := range records {
		items = append(items, toItem(record))
	}
	return items, nil
}

// Shows implements catalog.Catalog.
func (c *Client) Shows(ctx context.Context, opts catalog.ListOptions) ([]catalog.Show, error) {
	records, err := c.listItems(ctx, url.Values{
		"IncludeItemTypes": {"Series"},
		"Recursive":        {"true"},
	}, opts)
	if err != nil {
		return nil, err
	}
	shows := make([]catalog.Show, 0, len(records))
	for _, record := range records {
		shows = append(shows, catalog.Show{Title: record.Name, Year: record.ProductionYear, ID: record.ID})
	}
	return shows, nil
}

// Episodes implements catalog.Catalog.
func (c *Client) Episodes(ctx context.Context, showID string, opts catalog.ListOptions) ([]catalog.Item, error) {
	records, err := c.listItems(ctx, url.Values{
		"ParentId":         {showID},
		"IncludeItemTypes": {"Episode"},
		"Recursive":        {"true"},
	}, opts)
	if err != nil {
		return nil, err
	}
	items := make([]catalog.Item, 0, len(records))
	for _, record := range records {
		episode := toItem(record)
		if episode.ParentID == "" {
			episode.ParentID = showID
		}
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
	return c.markPlayed(ctx, id)
}

// MarkEpisodeWatched implements catalog.Catalog.
func (c *Client) MarkEpisodeWatched(ctx context.Context, id string) error {
	return c.markPlayed(ctx, id)
}

// UpdateMovieAddedAt implements catalog.Catalog. Jellyfin does not expose a
// writable creation date, and nothing in this tool syncs timestamps toward
// Jellyfin, so the call is rejected outright.
func (c *Client) UpdateMovieAddedAt(ctx context.Context, id string, addedAt time.Time) error {
	return catalog.Wrap(catalog.ErrMalformed, c.Name(), "added-at timestamps are not writable", nil)
}

func (c *Client) markPlayed(ctx context.Context, id string) error {
	userID, err := c.ensureUserID(ctx)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/Users/%s/PlayedItems/%s", userID, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build mark-played request: %w", err)
	}
	c.applyHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return catalog.Wrap(catalog.ErrUnavailable, c.Name(), "mark played", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return catalog.Wrap(catalog.ErrUnavailable, c.Name(), fmt.Sprintf("mark played returned %d", resp.StatusCode), nil)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) listItems(ctx context.Context, params url.Values, opts catalog.ListOptions) ([]item, error) {
	userID, err := c.ensureUserID(ctx)
	if err != nil {
		return nil, err
	}
	fields := "DateCreated,MediaSources"
	if opts.WithPaths {
		fields += ",Path"
	}
	params.Set("fields", fields)

	var page itemsPage
	if err := c.getJSON(ctx, fmt.Sprintf("/Users/%s/Items", userID), params, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
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

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("X-Emby-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")
}

func toItem(record item) catalog.Item {
	return catalog.Item{
		Title:    record.Name,
		Year:     record.ProductionYear,
		ID:       record.ID,
		Watched:  record.UserData.Played,
		AddedAt:  parseDateCreated(record.DateCreated),
		Path:     record.Path,
		ParentID: record.SeriesID,
		Season:   record.ParentIndexNumber,
		Episode:  record.IndexNumber,
		Versions: len(record.MediaSources),
	}
}

// parseDateCreated keeps minute precision, matching the granularity used for
// added-at comparisons. Returns the zero time when the field is absent or
// unparseable.
func parseDateCreated(value string) time.Time {
	if len(value) < 16 {
		return time.Time{}
	}
	parsed, err := time.Parse("2006-01-02T15:04", value[:16])
	if err != nil {
		return time.Time{}
	}
	return parsed
}
