package e2e_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// WebhookReceiver is a mock HTTP server that records probe calls and answers with a configurable responder.
type WebhookReceiver struct {
	server   *httptest.Server
	received []WebhookCall
	mu       sync.RWMutex
	respond  http.HandlerFunc
}

type WebhookCall struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
	Time    time.Time         `json:"time"`
}

func NewWebhookReceiver(respond http.HandlerFunc) *WebhookReceiver {
	wr := &WebhookReceiver{
		received: make([]WebhookCall, 0),
		respond:  respond,
	}

	wr.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read body", http.StatusBadRequest)
			return
		}

		headers := make(map[string]string)
		for key, values := range r.Header {
			if len(values) > 0 {
				headers[key] = values[0]
			}
		}

		wr.mu.Lock()
		wr.received = append(wr.received, WebhookCall{
			Method:  r.Method,
			URL:     r.URL.String(),
			Headers: headers,
			Body:    string(body),
			Time:    time.Now(),
		})
		wr.mu.Unlock()

		wr.respond(w, r)
	}))
	return wr
}

func (wr *WebhookReceiver) URL() string {
	return wr.server.URL
}

func (wr *WebhookReceiver) GetReceivedCalls() []WebhookCall {
	wr.mu.RLock()
	defer wr.mu.RUnlock()

	result := make([]WebhookCall, len(wr.received))
	copy(result, wr.received)
	return result
}

func (wr *WebhookReceiver) Close() {
	wr.server.Close()
}
