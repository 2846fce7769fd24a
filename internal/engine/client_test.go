package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	client := NewClient("http://localhost:8742/", "secret")

	if client.BaseURL != "http://localhost:8742" {
		t.Errorf("BaseURL = %s, want http://localhost:8742", client.BaseURL)
	}

	if client.HTTPClient == nil || client.LongHTTPClient == nil {
		t.Error("HTTP clients should not be nil")
	}
}

func TestHealthSendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/health" {
			t.Errorf("path = %s, want /health", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"ok","version":"0.4.1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}

	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer secret", gotAuth)
	}
	if health.Version != "0.4.1" {
		t.Errorf("Version = %s, want 0.4.1", health.Version)
	}
}

func TestHealthOmitsAuthWhenNoKey(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestApplicationErrorCarriesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"model is required"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	err := client.SetProviderConfig(context.Background(), "openai", ProviderConfigRequest{})
	if err == nil {
		t.Fatal("expected error")
	}

	var engineErr *Error
	if !errors.As(err, &engineErr) {
		t.Fatalf("error type = %T, want *engine.Error", err)
	}
	if engineErr.Kind != KindApplication {
		t.Errorf("Kind = %v, want KindApplication", engineErr.Kind)
	}
	if engineErr.Message != "model is required" {
		t.Errorf("Message = %q, want detail verbatim", engineErr.Message)
	}
	if engineErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", engineErr.StatusCode)
	}
}

func TestApplicationErrorWithoutDetailBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	_, err := client.Status(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(Detail(err), "502") {
		t.Errorf("Detail = %q, want HTTP status fallback", Detail(err))
	}
}

func TestTransportErrorKind(t *testing.T) {
	// Point at a server that is already closed
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "secret")
	_, err := client.Health(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if KindOf(err) != KindTransport {
		t.Errorf("KindOf = %v, want KindTransport", KindOf(err))
	}
}

func TestDecodeErrorKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	_, err := client.Status(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if KindOf(err) != KindDecode {
		t.Errorf("KindOf = %v, want KindDecode", KindOf(err))
	}
}

func TestSetProviderConfigOmitsAbsentAPIKey(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if r.URL.Path != "/config/llm/anthropic" {
			t.Errorf("path = %s, want /config/llm/anthropic", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	err := client.SetProviderConfig(context.Background(), "anthropic", ProviderConfigRequest{
		Model:     "claude-sonnet-4-5",
		MaxTokens: 1024,
	})
	if err != nil {
		t.Fatalf("SetProviderConfig() error = %v", err)
	}

	if _, present := body["api_key"]; present {
		t.Error("api_key should be absent from the wire body, not empty")
	}
	if body["model"] != "claude-sonnet-4-5" {
		t.Errorf("model = %v, want claude-sonnet-4-5", body["model"])
	}
}

func TestBoostAcceptsWrappedCharacter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"character":{"name":"Ada Lovelace","era":"Victorian"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	doc, err := client.BoostCharacter(context.Background(), BoostRequest{Seed: "first programmer"})
	if err != nil {
		t.Fatalf("BoostCharacter() error = %v", err)
	}
	if doc.Name != "Ada Lovelace" {
		t.Errorf("Name = %s, want Ada Lovelace", doc.Name)
	}
}

func TestBoostAcceptsBareCharacter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Ada Lovelace","role":"mathematician"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	doc, err := client.BoostCharacter(context.Background(), BoostRequest{Seed: "first programmer"})
	if err != nil {
		t.Fatalf("BoostCharacter() error = %v", err)
	}
	if doc.Name != "Ada Lovelace" || doc.Role != "mathematician" {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestChatHistoryLimitQuery(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		_, _ = w.Write([]byte(`[{"id":"m1","user_id":"u1","role":"user","content":"hello"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	msgs, err := client.ChatHistory(context.Background(), "ada", "u1", 50)
	if err != nil {
		t.Fatalf("ChatHistory() error = %v", err)
	}

	if gotPath != "/characters/ada/history/u1?limit=50" {
		t.Errorf("path = %s", gotPath)
	}
	if len(msgs) != 1 || msgs[0].Content != "hello" {
		t.Errorf("unexpected history: %+v", msgs)
	}
}

func TestChatHistoryNoLimitOmitsQuery(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	if _, err := client.ChatHistory(context.Background(), "ada", "u1", 0); err != nil {
		t.Fatalf("ChatHistory() error = %v", err)
	}
	if gotPath != "/characters/ada/history/u1" {
		t.Errorf("path = %s, want no query", gotPath)
	}
}

func TestDeleteCharacterMethodAndPath(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	if err := client.DeleteCharacter(context.Background(), "ada"); err != nil {
		t.Fatalf("DeleteCharacter() error = %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/characters/ada" {
		t.Errorf("got %s %s, want DELETE /characters/ada", gotMethod, gotPath)
	}
}

func TestFullCharacterPath(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"slug":"ada","name":"Ada Lovelace","era":"1840s"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	doc, err := client.FullCharacter(context.Background(), "ada")
	if err != nil {
		t.Fatalf("FullCharacter() error = %v", err)
	}
	if gotMethod != http.MethodGet || gotPath != "/characters/ada/full" {
		t.Errorf("got %s %s, want GET /characters/ada/full", gotMethod, gotPath)
	}
	if doc.Name != "Ada Lovelace" || doc.Era != "1840s" {
		t.Errorf("doc = %+v", doc)
	}
}

func TestCharacterTemplatePath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"name":"","speech_patterns":{"formality":"neutral"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	doc, err := client.CharacterTemplate(context.Background())
	if err != nil {
		t.Fatalf("CharacterTemplate() error = %v", err)
	}
	if gotPath != "/characters/template" {
		t.Errorf("path = %s, want /characters/template", gotPath)
	}
	if doc.SpeechPatterns.Formality != "neutral" {
		t.Errorf("doc = %+v", doc)
	}
}

func TestUpdateCharacterMethodAndBody(t *testing.T) {
	var gotMethod, gotPath string
	var body CharacterDocument
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	err := client.UpdateCharacter(context.Background(), "ada", CharacterDocument{Name: "Ada Lovelace", Role: "mathematician"})
	if err != nil {
		t.Fatalf("UpdateCharacter() error = %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/characters/ada" {
		t.Errorf("got %s %s, want PUT /characters/ada", gotMethod, gotPath)
	}
	if body.Name != "Ada Lovelace" || body.Role != "mathematician" {
		t.Errorf("body = %+v", body)
	}
}
