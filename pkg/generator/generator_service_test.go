package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Nutripedia-Backend/domain"
)

func geminiReply(text string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{
						{"text": text},
					},
				},
			},
		},
	})
	return string(body)
}

func testGenerator(baseURL string) *geminiGenerator {
	return &geminiGenerator{
		apiKey:  "test-key",
		model:   "test-model",
		baseURL: baseURL,
		client:  &http.Client{Timeout: 2 * time.Second},
	}
}

func serveReply(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGenerateItemExtractsFencedJSON(t *testing.T) {
	reply := "Here is the data you asked for:\n```json\n{\"ItemType\": \"nutrient\", \"Name\": \"Vitamin C\"}\n```\nLet me know if you need more."
	server := serveReply(t, geminiReply(reply))

	raw, err := testGenerator(server.URL).GenerateItem(context.Background(), "vitamin c")
	if err != nil {
		t.Fatalf("GenerateItem: %v", err)
	}

	var record map[string]interface{}
	if err := json.Unmarshal(raw, &record); err != nil {
		t.Fatalf("returned span is not JSON: %v", err)
	}
	if record["Name"] != "Vitamin C" {
		t.Errorf("Name = %v, want Vitamin C", record["Name"])
	}
}

func TestGenerateItemBareJSON(t *testing.T) {
	server := serveReply(t, geminiReply(`{"ItemType": "nutrient", "Name": "Iron"}`))

	if _, err := testGenerator(server.URL).GenerateItem(context.Background(), "iron"); err != nil {
		t.Fatalf("GenerateItem: %v", err)
	}
}

func TestGenerateItemErrorMarkerBeforeParse(t *testing.T) {
	// The marker wins even though the reply contains a parsable object.
	server := serveReply(t, geminiReply(`{"error": "Invalid item"}`))

	_, err := testGenerator(server.URL).GenerateItem(context.Background(), "arsenic")
	if !errors.Is(err, domain.ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
}

func TestGenerateItemErrorMarkerInsideProse(t *testing.T) {
	server := serveReply(t, geminiReply(`I cannot help with that. "ERROR": not a food item.`))

	_, err := testGenerator(server.URL).GenerateItem(context.Background(), "arsenic")
	if !errors.Is(err, domain.ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
}

func TestGenerateItemNoBracePairIsParseFailure(t *testing.T) {
	server := serveReply(t, geminiReply("Sorry, I can only answer questions about food."))

	_, err := testGenerator(server.URL).GenerateItem(context.Background(), "ginger")
	if !errors.Is(err, domain.ErrGeneratorParse) {
		t.Fatalf("expected ErrGeneratorParse, got %v", err)
	}
}

func TestGenerateItemMalformedSpanIsParseFailure(t *testing.T) {
	server := serveReply(t, geminiReply(`{"ItemType": "nutrient", "Name": }`))

	_, err := testGenerator(server.URL).GenerateItem(context.Background(), "ginger")
	if !errors.Is(err, domain.ErrGeneratorParse) {
		t.Fatalf("expected ErrGeneratorParse, got %v", err)
	}
}

func TestGenerateItemEmptyCandidatesIsParseFailure(t *testing.T) {
	server := serveReply(t, `{"candidates": []}`)

	_, err := testGenerator(server.URL).GenerateItem(context.Background(), "ginger")
	if !errors.Is(err, domain.ErrGeneratorParse) {
		t.Fatalf("expected ErrGeneratorParse, got %v", err)
	}
}

func TestGenerateItemUpstreamErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	_, err := testGenerator(server.URL).GenerateItem(context.Background(), "ginger")
	if !errors.Is(err, domain.ErrGeneratorUnavailable) {
		t.Fatalf("expected ErrGeneratorUnavailable, got %v", err)
	}
}

func TestGenerateItemTransportFailureIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := testGenerator(server.URL).GenerateItem(context.Background(), "ginger")
	if !errors.Is(err, domain.ErrGeneratorUnavailable) {
		t.Fatalf("expected ErrGeneratorUnavailable, got %v", err)
	}
}
