package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"philcali.me/inventory/internal/config"
	"philcali.me/inventory/internal/routes"
	"philcali.me/inventory/internal/routes/items"
	"philcali.me/inventory/internal/server"
	"philcali.me/inventory/internal/test"
)

const milk = `{"item_name":"Milk","placed_at":"2024-01-01","use_by":"2024-01-10","category":"Dairy","status":"ok"}`

func send(t *testing.T, client *http.Client, method string, url string, body string) (*http.Response, string) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("Failed to build request %s %s: %v", method, url, err)
	}
	request.Header.Set("Content-Type", "application/json")
	response, err := client.Do(request)
	if err != nil {
		t.Fatalf("Failed to send request %s %s: %v", method, url, err)
	}
	defer response.Body.Close()
	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("Failed to read response %s %s: %v", method, url, err)
	}
	return response, string(payload)
}

func TestHandler(t *testing.T) {
	router := routes.NewRouter(zerolog.Nop(), items.NewRoute(test.NewMemoryItemRepository()))
	httpServer := httptest.NewServer(server.Handler(router, zerolog.Nop()))
	defer httpServer.Close()
	client := httpServer.Client()

	t.Run("ItemWorkflow", func(t *testing.T) {
		created, body := send(t, client, "POST", httpServer.URL+"/items", milk)
		if created.StatusCode != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", created.StatusCode, body)
		}
		if created.Header.Get("Content-Type") != "application/json" {
			t.Fatalf("Expected a JSON content type, got %s", created.Header.Get("Content-Type"))
		}
		var item items.Item
		if err := json.Unmarshal([]byte(body), &item); err != nil {
			t.Fatalf("Failed to decode created item %s: %v", body, err)
		}

		read, body := send(t, client, "GET", httpServer.URL+"/items/"+item.Id+"/", "")
		if read.StatusCode != http.StatusOK || !strings.Contains(body, item.Id) {
			t.Fatalf("Expected to read %s, got %d: %s", item.Id, read.StatusCode, body)
		}

		unchanged, body := send(t, client, "PUT", httpServer.URL+"/items/"+item.Id, `{"status":"ok"}`)
		if unchanged.StatusCode != http.StatusNotModified {
			t.Fatalf("Expected 304, got %d", unchanged.StatusCode)
		}
		if body != "" {
			t.Fatalf("Expected no body on 304, got %s", body)
		}

		deleted, body := send(t, client, "DELETE", httpServer.URL+"/items/"+item.Id, "")
		if deleted.StatusCode != http.StatusNoContent || body != "" {
			t.Fatalf("Expected empty 204, got %d: %s", deleted.StatusCode, body)
		}

		missing, _ := send(t, client, "GET", httpServer.URL+"/items/"+item.Id, "")
		if missing.StatusCode != http.StatusNotFound {
			t.Fatalf("Expected 404 after delete, got %d", missing.StatusCode)
		}
	})

	t.Run("InvalidBody", func(t *testing.T) {
		response, body := send(t, client, "POST", httpServer.URL+"/items", `{"item_name": 12}`)
		if response.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("Expected 422, got %d: %s", response.StatusCode, body)
		}
	})
}

func TestNewRequestEvent(t *testing.T) {
	request := httptest.NewRequest("PUT", "/items/abc?dry=true&dry=false", strings.NewReader(`{"status":"gone"}`))
	request.Header.Set("X-Trace-Id", "trace")
	request.RemoteAddr = "10.0.0.1:5000"
	event, err := server.NewRequestEvent(request)
	if err != nil {
		t.Fatalf("Failed to translate request: %v", err)
	}
	if event.RequestContext.HTTP.Method != "PUT" || event.RequestContext.HTTP.Path != "/items/abc" {
		t.Fatalf("Unexpected method or path: %v", event.RequestContext.HTTP)
	}
	if event.Headers["x-trace-id"] != "trace" {
		t.Fatalf("Expected lower cased headers, got %v", event.Headers)
	}
	if event.QueryStringParameters["dry"] != "true,false" {
		t.Fatalf("Expected joined query values, got %v", event.QueryStringParameters)
	}
	if event.RequestContext.HTTP.SourceIP != "10.0.0.1" {
		t.Fatalf("Expected source ip 10.0.0.1, got %s", event.RequestContext.HTTP.SourceIP)
	}
	if event.Body != `{"status":"gone"}` {
		t.Fatalf("Unexpected body %s", event.Body)
	}
}

func TestShutdown(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", ReadTimeout: 1, WriteTimeout: 1, IdleTimeout: 1},
	}
	s := server.New(cfg, zerolog.Nop(), nil)
	if err := s.Start(); err == nil {
		t.Fatal("Expected an error starting without a handler")
	}
	s.SetupHTTPServer(http.NotFoundHandler())
	done := make(chan error, 1)
	go func() {
		done <- s.Start()
	}()
	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Failed to shutdown: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Expected a clean stop, got %v", err)
	}
}
