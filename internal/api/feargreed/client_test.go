package feargreed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Alias1177/Pulse/models"
)

func TestGetIndex(t *testing.T) {
	body := `{"name":"Fear and Greed Index","data":[{"value":"72","value_classification":"Greed","timestamp":"1700000000"}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fng/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseURL: server.URL, RequestTimeout: 5 * time.Second, MaxRetries: 1})
	reading, err := client.GetIndex(context.Background())
	if err != nil {
		t.Fatalf("GetIndex() error: %v", err)
	}
	if reading.Value != 72 {
		t.Errorf("Value = %d, want 72", reading.Value)
	}
	expected := time.Unix(1700000000, 0).UTC()
	if !reading.AsOf.Equal(expected) {
		t.Errorf("AsOf = %v, want %v", reading.AsOf, expected)
	}
}

func TestGetIndexEmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseURL: server.URL, RequestTimeout: 5 * time.Second, MaxRetries: 1})
	_, err := client.GetIndex(context.Background())
	if !errors.Is(err, models.ErrUpstreamUnavailable) {
		t.Errorf("GetIndex() error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestGetIndexUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseURL: server.URL, RequestTimeout: 5 * time.Second, MaxRetries: 1})
	_, err := client.GetIndex(context.Background())
	if !errors.Is(err, models.ErrUpstreamUnavailable) {
		t.Errorf("GetIndex() error = %v, want ErrUpstreamUnavailable", err)
	}
}
