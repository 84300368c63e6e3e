package connectors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"portfoliotracker/src/repository"
)

type recordingApplier struct {
	mu      sync.Mutex
	applied map[string]repository.QuoteUpdate
}

func (r *recordingApplier) ApplyQuote(_ context.Context, symbol string, q repository.QuoteUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applied == nil {
		r.applied = map[string]repository.QuoteUpdate{}
	}
	r.applied[symbol] = q
	return nil
}

func (r *recordingApplier) get(symbol string) (repository.QuoteUpdate, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.applied[symbol]
	return q, ok
}

func TestQuoteStreamAppliesTicks(t *testing.T) {
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		messages := []string{
			`{"type": "HEARTBEAT"}`,
			`not even json`,
			`{"type": "QUOTE", "body": {"symbol": "AAPL", "price": "205.5", "previous_close": "200", "volume": 42, "as_of": "2026-02-10T15:30:00Z"}}`,
		}
		for _, msg := range messages {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		}

		// hold the connection open until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	applier := &recordingApplier{}
	stream := NewQuoteStream(Config{QuoteStreamURL: wsURL}, applier)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- stream.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for {
		if q, ok := applier.get("AAPL"); ok {
			if q.Volume != 42 {
				t.Fatalf("unexpected quote update: %+v", q)
			}
			cancel()
			break
		}
		select {
		case <-deadline:
			t.Fatalf("quote tick never applied")
		case <-time.After(10 * time.Millisecond):
		}
	}

	<-done
}
