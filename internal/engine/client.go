package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lettucelabs/lettucectl/internal/logging"
)

const (
	// DefaultTimeout is the HTTP request timeout for ordinary operations
	DefaultTimeout = 10 * time.Second

	// LongTimeout is the HTTP request timeout for generative operations
	// (chat, boost) where the Engine may spend a while on inference
	LongTimeout = 120 * time.Second
)

// Client is the wire gateway for one Engine instance.
//
// It exposes exactly one method per remote operation, performs no
// retries, and surfaces every failure verbatim as an *Error. The
// session identity (base URL + access credential) is fixed at
// construction and never mutated.
type Client struct {
	// BaseURL is the Engine's base address (e.g. "http://localhost:8742")
	BaseURL string

	// APIKey is the bearer credential. Empty means unauthenticated,
	// which the Engine permits for health and setup-status probes.
	APIKey string

	// HTTPClient is the underlying HTTP client for ordinary calls
	HTTPClient *http.Client

	// LongHTTPClient is used for chat and boost, which run inference
	LongHTTPClient *http.Client
}

// NewClient creates a gateway for the Engine at baseURL.
// Trailing slashes on baseURL are tolerated.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL:        strings.TrimRight(baseURL, "/"),
		APIKey:         apiKey,
		HTTPClient:     &http.Client{Timeout: DefaultTimeout},
		LongHTTPClient: &http.Client{Timeout: LongTimeout},
	}
}

// SetTimeout sets the HTTP request timeout for ordinary operations
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// ── Health & setup ─────────────────────────────────────────────────────────

// Health performs GET /health
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, c.HTTPClient, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetupStatus performs GET /setup/status
func (c *Client) SetupStatus(ctx context.Context) (*SetupStatusResponse, error) {
	var out SetupStatusResponse
	if err := c.do(ctx, c.HTTPClient, http.MethodGet, "/setup/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetupComplete performs POST /setup/complete
func (c *Client) SetupComplete(ctx context.Context) (*SetupCompleteResponse, error) {
	var out SetupCompleteResponse
	if err := c.do(ctx, c.HTTPClient, http.MethodPost, "/setup/complete", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Config ─────────────────────────────────────────────────────────────────

// SetProviderConfig performs PUT /config/llm/{provider}
func (c *Client) SetProviderConfig(ctx context.Context, provider string, req ProviderConfigRequest) error {
	return c.do(ctx, c.HTTPClient, http.MethodPut, "/config/llm/"+provider, req, nil)
}

// SetDefaultProvider performs PUT /config/llm/default
func (c *Client) SetDefaultProvider(ctx context.Context, provider string) error {
	return c.do(ctx, c.HTTPClient, http.MethodPut, "/config/llm/default", DefaultProviderRequest{Provider: provider}, nil)
}

// DeleteProviderConfig performs DELETE /config/llm/{provider}
func (c *Client) DeleteProviderConfig(ctx context.Context, provider string) error {
	return c.do(ctx, c.HTTPClient, http.MethodDelete, "/config/llm/"+provider, nil, nil)
}

// SetEngineConfig performs PUT /config/engine
func (c *Client) SetEngineConfig(ctx context.Context, req EngineConfigRequest) error {
	return c.do(ctx, c.HTTPClient, http.MethodPut, "/config/engine", req, nil)
}

// SetBackgroundConfig performs PUT /config/background
func (c *Client) SetBackgroundConfig(ctx context.Context, req BackgroundConfigRequest) error {
	return c.do(ctx, c.HTTPClient, http.MethodPut, "/config/background", req, nil)
}

// SetMemoryConfig performs PUT /config/memory
func (c *Client) SetMemoryConfig(ctx context.Context, req MemoryConfigRequest) error {
	return c.do(ctx, c.HTTPClient, http.MethodPut, "/config/memory", req, nil)
}

// SetSafetyConfig performs PUT /config/safety
func (c *Client) SetSafetyConfig(ctx context.Context, req SafetyConfigRequest) error {
	return c.do(ctx, c.HTTPClient, http.MethodPut, "/config/safety", req, nil)
}

// SetResearchConfig performs PUT /config/research
func (c *Client) SetResearchConfig(ctx context.Context, req ResearchConfigRequest) error {
	return c.do(ctx, c.HTTPClient, http.MethodPut, "/config/research", req, nil)
}

// GetConfig performs GET /config
func (c *Client) GetConfig(ctx context.Context) (*ConfigDocument, error) {
	var out ConfigDocument
	if err := c.do(ctx, c.HTTPClient, http.MethodGet, "/config", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Status & usage ─────────────────────────────────────────────────────────

// Status performs GET /status
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.do(ctx, c.HTTPClient, http.MethodGet, "/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Usage performs GET /usage
func (c *Client) Usage(ctx context.Context) (*UsageResponse, error) {
	var out UsageResponse
	if err := c.do(ctx, c.HTTPClient, http.MethodGet, "/usage", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Characters ─────────────────────────────────────────────────────────────

// ListCharacters performs GET /characters
func (c *Client) ListCharacters(ctx context.Context) ([]CharacterSummary, error) {
	var out []CharacterSummary
	if err := c.do(ctx, c.HTTPClient, http.MethodGet, "/characters", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadCharacter performs POST /characters/{slug}/load, activating the
// character's background loops
func (c *Client) LoadCharacter(ctx context.Context, slug string) error {
	return c.do(ctx, c.HTTPClient, http.MethodPost, "/characters/"+slug+"/load", struct{}{}, nil)
}

// UnloadCharacter performs POST /characters/{slug}/unload
func (c *Client) UnloadCharacter(ctx context.Context, slug string) error {
	return c.do(ctx, c.HTTPClient, http.MethodPost, "/characters/"+slug+"/unload", struct{}{}, nil)
}

// Activity performs GET /characters/{slug}/activity
func (c *Client) Activity(ctx context.Context, slug string) (*ActivityResponse, error) {
	var out ActivityResponse
	if err := c.do(ctx, c.HTTPClient, http.MethodGet, "/characters/"+slug+"/activity", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CharacterTemplate performs GET /characters/template, returning an
// empty character card with the Engine's field scaffolding
func (c *Client) CharacterTemplate(ctx context.Context) (*CharacterDocument, error) {
	var out CharacterDocument
	if err := c.do(ctx, c.HTTPClient, http.MethodGet, "/characters/template", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BoostCharacter performs POST /characters/boost, generating a full
// character draft from a short seed description. The Engine has been
// observed to return either {"character": {...}} or the bare document;
// both are accepted.
func (c *Client) BoostCharacter(ctx context.Context, req BoostRequest) (*CharacterDocument, error) {
	var out boostResponse
	if err := c.do(ctx, c.LongHTTPClient, http.MethodPost, "/characters/boost", req, &out); err != nil {
		return nil, err
	}
	if out.Character != nil {
		return out.Character, nil
	}
	doc := out.CharacterDocument
	return &doc, nil
}

// CreateCharacter performs POST /characters
func (c *Client) CreateCharacter(ctx context.Context, doc CharacterDocument) (*CharacterDocument, error) {
	var out CharacterDocument
	if err := c.do(ctx, c.HTTPClient, http.MethodPost, "/characters", doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FullCharacter performs GET /characters/{slug}/full
func (c *Client) FullCharacter(ctx context.Context, slug string) (*CharacterDocument, error) {
	var out CharacterDocument
	if err := c.do(ctx, c.HTTPClient, http.MethodGet, "/characters/"+slug+"/full", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCharacter performs PUT /characters/{slug}
func (c *Client) UpdateCharacter(ctx context.Context, slug string, doc CharacterDocument) error {
	return c.do(ctx, c.HTTPClient, http.MethodPut, "/characters/"+slug, doc, nil)
}

// DeleteCharacter performs DELETE /characters/{slug}. Deletion is
// terminal; the slug is gone from the Engine afterwards.
func (c *Client) DeleteCharacter(ctx context.Context, slug string) error {
	return c.do(ctx, c.HTTPClient, http.MethodDelete, "/characters/"+slug, nil, nil)
}

// ── Chat ───────────────────────────────────────────────────────────────────

// Chat performs POST /characters/{slug}/chat
func (c *Client) Chat(ctx context.Context, slug string, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.do(ctx, c.LongHTTPClient, http.MethodPost, "/characters/"+slug+"/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChatHistory performs GET /characters/{slug}/history/{userId}.
// A limit <= 0 means the Engine's default window.
func (c *Client) ChatHistory(ctx context.Context, slug, userID string, limit int) ([]HistoryMessage, error) {
	path := "/characters/" + slug + "/history/" + userID
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var out []HistoryMessage
	if err := c.do(ctx, c.HTTPClient, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Request plumbing ───────────────────────────────────────────────────────

// errorBody is the Engine's error envelope
type errorBody struct {
	Detail string `json:"detail"`
}

// do performs a single request against the Engine. body and out may be
// nil. Success payloads are decoded into out; absent fields keep their
// zero values.
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return newTransportError("failed to encode request body", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return newTransportError("failed to create request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		logging.LogEngineFailure(method, path, err)
		return newTransportError("Engine unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return newTransportError("failed to read response body", err)
	}
	logging.LogEngineRequest(method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newApplicationError(resp.StatusCode, extractDetail(raw, resp.StatusCode))
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return newDecodeError("failed to parse Engine response", err)
		}
	}
	return nil
}

// extractDetail pulls the Engine's detail message out of an error body,
// falling back to the HTTP status when the body is not the expected
// envelope.
func extractDetail(raw []byte, statusCode int) string {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil && eb.Detail != "" {
		return eb.Detail
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed != "" && len(trimmed) <= 200 {
		return trimmed
	}
	return fmt.Sprintf("Engine request failed (HTTP %d)", statusCode)
}
