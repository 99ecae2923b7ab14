// Package relay carries drag sessions between launcher windows over a small
// local HTTP service.
package relay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/dragsession"
)

// DefaultURL is the relay address used when none is configured.
const DefaultURL = "http://127.0.0.1:7431"

// ErrNoActiveSession is returned by Active when no drag is in flight.
var ErrNoActiveSession = errors.New("no active drag session")

// --- Envelope ---

type envelope[T any] struct {
	Data  T         `json:"data"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Acceptance records which window took a session.
type Acceptance struct {
	TargetWindow string `json:"target_window"`
	TargetKey    string `json:"target_key,omitempty"`
}

// Client wraps HTTP calls to the relay.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new relay client.
func NewClient(baseURL string, timeout ...time.Duration) *Client {
	httpTimeout := 2 * time.Second
	if len(timeout) > 0 && timeout[0] > 0 {
		httpTimeout = timeout[0]
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: httpTimeout},
	}
}

// do executes an HTTP request and returns the raw response body.
func (c *Client) do(method, path string, body any) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var env envelope[any]
		if err := json.Unmarshal(respBody, &env); err == nil && env.Error != nil {
			return nil, resp.StatusCode, fmt.Errorf("%s: %s", env.Error.Code, env.Error.Message)
		}
		return nil, resp.StatusCode, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, resp.StatusCode, nil
}

func decode[T any](data []byte) (*T, error) {
	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &env.Data, nil
}

// Health calls /api/health and returns its status string.
func (c *Client) Health() (string, error) {
	data, _, err := c.do(http.MethodGet, "/api/health", nil)
	if err != nil {
		return "", err
	}
	payload, err := decode[struct {
		Status string `json:"status"`
	}](data)
	if err != nil {
		return "", err
	}
	return payload.Status, nil
}

// Announce publishes a drag session.
func (c *Client) Announce(s dragsession.Session) error {
	_, _, err := c.do(http.MethodPost, "/api/sessions", s)
	return err
}

// End removes a drag session.
func (c *Client) End(id string) error {
	_, _, err := c.do(http.MethodDelete, "/api/sessions/"+url.PathEscape(id), nil)
	return err
}

// Active returns the most recent live session.
func (c *Client) Active() (*dragsession.Session, error) {
	data, status, err := c.do(http.MethodGet, "/api/sessions/active", nil)
	if status == http.StatusNotFound {
		return nil, ErrNoActiveSession
	}
	if err != nil {
		return nil, err
	}
	return decode[dragsession.Session](data)
}

// Accept marks a session as dropped into another window.
func (c *Client) Accept(id string, a Acceptance) error {
	_, _, err := c.do(http.MethodPost, "/api/sessions/"+url.PathEscape(id)+"/accept", a)
	return err
}
