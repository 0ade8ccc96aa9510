package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mamadbah2/ranch/internal/config"
)

func TestAPIClient_SendTextMessage(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	client := NewClient(config.WhatsAppConfig{
		AccessToken:   "token",
		PhoneNumberID: "12345",
		BaseURL:       srv.URL + "/",
		APIVersion:    "v20.0",
	})

	resp, err := client.SendTextMessage(context.Background(), SendTextMessageRequest{To: "573001112233", Body: "digest"})
	if err != nil {
		t.Fatalf("SendTextMessage: %v", err)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].ID != "wamid.1" {
		t.Errorf("response = %+v", resp)
	}
	if gotPath != "/v20.0/12345/messages" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer token" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotBody["to"] != "573001112233" || gotBody["type"] != "text" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestAPIClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid parameter","code":100}}`))
	}))
	defer srv.Close()

	client := NewClient(config.WhatsAppConfig{AccessToken: "t", PhoneNumberID: "1", BaseURL: srv.URL, APIVersion: "v20.0"})

	err := client.SendText(context.Background(), "573001112233", "digest")
	if err == nil || !strings.Contains(err.Error(), "code=100") || !strings.Contains(err.Error(), "Invalid parameter") {
		t.Errorf("err = %v", err)
	}
}

func TestAPIClient_RequiresRecipient(t *testing.T) {
	client := NewClient(config.WhatsAppConfig{BaseURL: "http://127.0.0.1:1", APIVersion: "v20.0"})
	if err := client.SendText(context.Background(), "", "digest"); err == nil {
		t.Fatal("expected error without recipient")
	}
}

func TestAPIClient_TruncatesOnCharacters(t *testing.T) {
	var sent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Text struct {
				Body string `json:"body"`
			} `json:"text"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		sent = payload.Text.Body
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.2"}]}`))
	}))
	defer srv.Close()

	client := NewClient(config.WhatsAppConfig{AccessToken: "token", PhoneNumberID: "12345", BaseURL: srv.URL, APIVersion: "v20.0"})

	// "ñ" is two bytes, so a byte cut at the limit would land mid-character.
	body := "a" + strings.Repeat("ñ", maxBodyLength)
	if err := client.SendText(context.Background(), "573001112233", body); err != nil {
		t.Fatalf("SendText: %v", err)
	}

	if !utf8.ValidString(sent) {
		t.Fatal("truncated body is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(sent); n != maxBodyLength {
		t.Errorf("sent %d characters, want %d", n, maxBodyLength)
	}
	if !strings.HasPrefix(sent, "añ") {
		t.Errorf("body prefix = %q", truncateBody(sent, 2))
	}
}

func TestTruncateBody(t *testing.T) {
	tests := []struct {
		body  string
		limit int
		want  string
	}{
		{"digest", 10, "digest"},
		{"digest", 6, "digest"},
		{"digest", 3, "dig"},
		{"semana ñandú", 8, "semana ñ"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := truncateBody(tt.body, tt.limit); got != tt.want {
			t.Errorf("truncateBody(%q, %d) = %q, want %q", tt.body, tt.limit, got, tt.want)
		}
	}
}
