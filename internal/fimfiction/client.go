package fimfiction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fictrack/internal/faults"
	"fictrack/internal/logging"
	"fictrack/internal/story"
)

const (
	// DefaultBaseURL is the public Fimfiction site.
	DefaultBaseURL = "https://www.fimfiction.net"
	userAgent      = "fictrack (+https://www.fimfiction.net)"
)

// Client performs requests against Fimfiction.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "fimfiction")
	}
}

// New creates a client rooted at baseURL (DefaultBaseURL when empty).
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logging.NewComponentLogger(nil, "fimfiction"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// BaseURL returns the site root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// DownloadURL returns the export link for id in format.
func (c *Client) DownloadURL(id story.ID, format story.Format) string {
	return story.DownloadURLFor(c.baseURL, id, format)
}

// Story looks up a single story. It makes exactly one request.
func (c *Client) Story(ctx context.Context, id story.ID) (*StoryResponse, error) {
	endpoint := c.baseURL + "/api/story.php?" + url.Values{"story": {id.String()}}.Encode()
	logger := c.logger.With(logging.String(logging.FieldStoryID, id.String()))

	req, err := c.newRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, faults.Wrap(faults.ErrNetwork, "fimfiction", "lookup", fmt.Sprintf("story %d (latency=%v)", id, latency), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, faults.Wrap(faults.ErrNetwork, "fimfiction", "lookup", fmt.Sprintf("read response body for story %d", id), err)
	}
	logger.Debug("story lookup finished",
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency),
		logging.Int("bytes", len(body)))

	return decodeStory(id, resp.StatusCode, body)
}

func decodeStory(id story.ID, status int, body []byte) (*StoryResponse, error) {
	var payload envelope
	if err := json.Unmarshal(body, &payload); err != nil {
		if status != http.StatusOK {
			return nil, &LookupError{Kind: KindUnrecognizedAPIError, ID: id, Message: "HTTP " + strconv.Itoa(status), Body: string(body)}
		}
		return nil, &LookupError{Kind: KindMalformedPayload, ID: id, Body: string(body), Err: err}
	}

	if payload.Error != nil {
		if *payload.Error == invalidIDMessage {
			return nil, &LookupError{Kind: KindInvalidID, ID: id, Message: *payload.Error}
		}
		return nil, &LookupError{Kind: KindUnrecognizedAPIError, ID: id, Message: *payload.Error, Body: string(body)}
	}

	if payload.Story == nil {
		if status != http.StatusOK {
			return nil, &LookupError{Kind: KindUnrecognizedAPIError, ID: id, Message: "HTTP " + strconv.Itoa(status), Body: string(body)}
		}
		return nil, &LookupError{Kind: KindMalformedPayload, ID: id, Body: string(body), Err: errors.New(`missing "story" object`)}
	}
	if payload.Story.ID == 0 || payload.Story.Author.Name == "" {
		return nil, &LookupError{Kind: KindMalformedPayload, ID: id, Body: string(body), Err: errors.New("story object lacks id or author")}
	}
	return payload.Story, nil
}

// Download opens the export of id in format. The caller closes the body.
// The returned size is -1 when the server does not announce it.
func (c *Client) Download(ctx context.Context, id story.ID, format story.Format) (io.ReadCloser, int64, error) {
	req, err := c.newRequest(ctx, c.DownloadURL(id, format))
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, faults.Wrap(faults.ErrNetwork, "fimfiction", "download", fmt.Sprintf("story %d", id), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, 0, faults.Wrap(faults.ErrNetwork, "fimfiction", "download", fmt.Sprintf("story %d returned HTTP %d", id, resp.StatusCode), nil)
	}
	return resp.Body, resp.ContentLength, nil
}

func (c *Client) newRequest(ctx context.Context, endpoint string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, faults.Wrap(faults.ErrNetwork, "fimfiction", "build request", endpoint, err)
	}
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}
