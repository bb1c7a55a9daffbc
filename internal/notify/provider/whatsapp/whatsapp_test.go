package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendPostsTextPayload(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := New(Config{
		Token:         "tok",
		PhoneNumberID: "12345",
		BaseURL:       srv.URL,
	})

	if err := sender.Send(context.Background(), "+15551234567", "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotPath != "/12345/messages" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("unexpected auth header: %s", gotAuth)
	}
	if gotPayload["messaging_product"] != "whatsapp" || gotPayload["type"] != "text" {
		t.Fatalf("unexpected payload: %v", gotPayload)
	}
	if gotPayload["to"] != "+15551234567" {
		t.Fatalf("unexpected recipient: %v", gotPayload["to"])
	}
	text, _ := gotPayload["text"].(map[string]any)
	if text["body"] != "hello" {
		t.Fatalf("unexpected body: %v", text)
	}
}

func TestSendReportsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 190}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := New(Config{Token: "tok", PhoneNumberID: "12345", BaseURL: srv.URL})

	if err := sender.Send(context.Background(), "+15551234567", "hello"); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}
