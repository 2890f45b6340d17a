package board

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Key:     "test-key",
		Token:   "test-token",
		ListID:  "list-1",
	}
}

func TestCreateCardSendsQueryAuth(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/cards" {
			t.Errorf("path = %s, want /cards", r.URL.Path)
		}
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"card-123","shortUrl":"https://trello.com/c/abc"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	result, err := client.CreateCard(context.Background(), CardInput{
		Name:        "Order #7 - Hilltop Primary",
		Description: "Order ID: 7",
	})
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	if result.CardID != "card-123" {
		t.Errorf("card id = %s, want card-123", result.CardID)
	}
	if result.ShortURL != "https://trello.com/c/abc" {
		t.Errorf("short url = %s", result.ShortURL)
	}
	if gotQuery["key"] != "test-key" || gotQuery["token"] != "test-token" {
		t.Errorf("auth query = %v", gotQuery)
	}
	if gotQuery["idList"] != "list-1" {
		t.Errorf("idList = %s, want list-1", gotQuery["idList"])
	}
	if gotQuery["name"] != "Order #7 - Hilltop Primary" {
		t.Errorf("name = %s", gotQuery["name"])
	}
}

func TestCreateCardServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	if _, err := client.CreateCard(context.Background(), CardInput{Name: "Order #1 - Unknown School"}); err == nil {
		t.Fatal("expected error on http 401")
	}
}

func TestCreateCardConfigValidation(t *testing.T) {
	client := NewClient(Config{})
	if _, err := client.CreateCard(context.Background(), CardInput{Name: "x"}); err == nil {
		t.Fatal("expected config error with empty credentials")
	}
}
