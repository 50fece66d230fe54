// Command webhook_receiver is a sample endpoint for trying the validator by hand.
// Each mode imitates a kind of receiver the validator has to tell apart.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/DIMO-Network/server-garage/pkg/logging"
	"github.com/rs/zerolog"
)

const landingPage = `<!DOCTYPE html>
<html>
<head><meta name="generator" content="WordPress 6.4"><title>My Store</title></head>
<body>%s</body>
</html>`

type receiver struct {
	mode   string
	delay  time.Duration
	logger zerolog.Logger
}

func (rc *receiver) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	rc.logger.Info().
		Str("method", r.Method).
		Str("probeId", r.Header.Get("X-Probe-Id")).
		RawJSON("payload", jsonOrQuoted(body)).
		Msg("Webhook received")

	switch rc.mode {
	case "ack":
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	case "json":
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"received"}`))
	case "empty":
		w.WriteHeader(http.StatusNoContent)
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprintf(w, landingPage, strings.Repeat("<p>Welcome to our store!</p>\n", 50))
	case "slow":
		select {
		case <-time.After(rc.delay):
		case <-r.Context().Done():
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"received"}`))
	case "error":
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		http.Error(w, "unknown mode", http.StatusNotImplemented)
	}
}

func jsonOrQuoted(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if json.Valid(trimmed) {
		return trimmed
	}
	return []byte(strconv.Quote(string(trimmed)))
}

func main() {
	logger := logging.GetAndSetDefaultLogger("webhook-receiver")

	port := flag.Int("port", 8081, "port to listen on")
	mode := flag.String("mode", "ack", "response mode: ack, json, empty, html, slow, error")
	delay := flag.Duration("delay", 4*time.Second, "response delay for slow mode")
	flag.Parse()

	mux := http.NewServeMux()
	mux.Handle("/webhook", &receiver{mode: *mode, delay: *delay, logger: logger})

	addr := ":" + strconv.Itoa(*port)
	logger.Info().Str("addr", addr).Str("mode", *mode).Msg("Webhook receiver listening")
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("Webhook receiver stopped")
	}
}
