package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/abhisek/persona/internal/ledger"
	"github.com/abhisek/persona/internal/quiz"
	"github.com/abhisek/persona/internal/result"
)

// HTTPClient talks JSON over HTTP to the assessment service.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates an HTTPClient from cfg. Wrap it with WithRetry
// for transient-failure handling.
func NewHTTPClient(cfg Config) *HTTPClient {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	return &HTTPClient{
		baseURL: base,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *HTTPClient) CreateSession(ctx context.Context, user UserData) (*SessionInfo, error) {
	var info SessionInfo
	if err := c.do(ctx, http.MethodPost, "/sessions", user, &info); err != nil {
		return nil, err
	}
	if info.SessionID == "" {
		return nil, &ErrNetwork{Op: "create session", Err: fmt.Errorf("response carried no sessionId")}
	}
	return &info, nil
}

func (c *HTTPClient) ValidateSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	var info SessionInfo
	path := "/sessions/" + url.PathEscape(sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *HTTPClient) FetchSections(ctx context.Context, lang string) ([]quiz.Section, error) {
	path := "/questions"
	if lang != "" {
		path += "?lang=" + url.QueryEscape(lang)
	}
	var body struct {
		Sections []quiz.Section `json:"sections"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &body); err != nil {
		return nil, err
	}
	return body.Sections, nil
}

func (c *HTTPClient) SubmitResponse(ctx context.Context, sessionID string, resp ledger.Response) error {
	path := "/sessions/" + url.PathEscape(sessionID) + "/responses"
	return c.do(ctx, http.MethodPost, path, resp, nil)
}

func (c *HTTPClient) SubmitBulk(ctx context.Context, sessionID string, responses []ledger.Response, lang string) error {
	path := "/sessions/" + url.PathEscape(sessionID) + "/responses/bulk"
	payload := struct {
		Responses []ledger.Response `json:"responses"`
		Language  string            `json:"language,omitempty"`
	}{Responses: responses, Language: lang}
	return c.do(ctx, http.MethodPost, path, payload, nil)
}

func (c *HTTPClient) CalculateResults(ctx context.Context, sessionID string, input CalculateInput) (*result.Payload, error) {
	path := "/sessions/" + url.PathEscape(sessionID) + "/calculate"
	var body struct {
		Result json.RawMessage `json:"result"`
	}
	if err := c.do(ctx, http.MethodPost, path, input, &body); err != nil {
		return nil, err
	}

	if err := validateResultPayload(body.Result); err != nil {
		return nil, err
	}

	var payload result.Payload
	if err := json.Unmarshal(body.Result, &payload); err != nil {
		return nil, &ErrInvalidPayload{Content: body.Result, Err: err}
	}
	return &payload, nil
}

// do performs one JSON round trip. Non-2xx statuses and transport errors
// come back as *ErrNetwork.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	op := fmt.Sprintf("%s %s", method, path)

	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &ErrNetwork{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &ErrNetwork{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(msg))),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ErrNetwork{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
