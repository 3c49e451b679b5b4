package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func completionBody(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestComplete(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("the answer")))
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	got, err := c.Complete(context.Background(), "sk-test", Request{
		Model:       "gpt-4o-mini",
		Messages:    []Message{{Role: "user", Content: "hello"}},
		Temperature: 0.3,
		JSONObject:  true,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "the answer" {
		t.Errorf("got %q", got)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", gotBody.Model)
	}
	if gotBody.Temperature != 0.3 {
		t.Errorf("temperature = %v", gotBody.Temperature)
	}
	if gotBody.ResponseFormat == nil || gotBody.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format = %+v", gotBody.ResponseFormat)
	}
}

func TestComplete_noJSONObject(t *testing.T) {
	var gotBody chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(completionBody("free text")))
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	if _, err := c.Complete(context.Background(), "sk-test", Request{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: "user", Content: "hi"}},
	}); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if gotBody.ResponseFormat != nil {
		t.Errorf("response_format should be omitted, got %+v", gotBody.ResponseFormat)
	}
}

func TestComplete_httpError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "invalid key"}}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	_, err := c.Complete(context.Background(), "bad-key", Request{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	var capErr *CapabilityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapabilityError, got %v", err)
	}
	if capErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d", capErr.StatusCode)
	}
}

func TestComplete_networkError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	_, err := c.Complete(context.Background(), "sk-test", Request{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	var capErr *CapabilityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapabilityError, got %v", err)
	}
	if capErr.StatusCode != 0 {
		t.Errorf("network errors should carry status 0, got %d", capErr.StatusCode)
	}
}

func TestComplete_noMessages(t *testing.T) {
	c := NewClient("http://unused")
	if _, err := c.Complete(context.Background(), "sk-test", Request{Model: "m"}); err == nil {
		t.Error("expected error for empty messages")
	}
}

func TestComplete_emptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	_, err := c.Complete(context.Background(), "sk-test", Request{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err == nil {
		t.Error("expected error for empty choices")
	}
}
