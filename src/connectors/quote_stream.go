package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"

	"portfoliotracker/src/repository"
)

// QuoteApplier is the slice of the stock repository the stream needs.
type QuoteApplier interface {
	ApplyQuote(ctx context.Context, symbol string, q repository.QuoteUpdate) error
}

// streamTick is one incremental quote message from the provider.
type streamTick struct {
	Type string          `json:"type"`
	Body json.RawMessage `json:"body"`
}

// QuoteStream consumes the provider's websocket feed and applies incremental
// quote updates to the stocks table.
type QuoteStream struct {
	url     string
	applier QuoteApplier
}

func NewQuoteStream(cfg Config, applier QuoteApplier) *QuoteStream {
	return &QuoteStream{
		url:     cfg.QuoteStreamURL,
		applier: applier,
	}
}

// Run dials the feed and consumes ticks until the context is canceled or the
// connection drops. Reconnection policy belongs to the caller.
func (s *QuoteStream) Run(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout:  15 * time.Second,
		EnableCompression: true,
		Proxy:             http.ProxyFromEnvironment,
	}

	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("ws dial failed: %w", err)
	}
	defer conn.Close()

	// unblock ReadMessage when the caller cancels
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	logger.WithField("component", "QuoteStream").Infof("Connected to %s", s.url)

	for {
		select {
		case <-ctx.Done():
			logger.WithField("component", "QuoteStream").Info("Stream consumer stopping")
			return ctx.Err()
		default:
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("ws read failed: %w", err)
		}

		var tick streamTick
		if err := json.Unmarshal(msg, &tick); err != nil {
			logger.WithField("component", "QuoteStream").
				WithError(err).Warn("Skipping malformed stream message")
			continue
		}

		switch tick.Type {
		case "QUOTE":
			s.handleQuote(ctx, tick.Body)
		default:
			// heartbeats and unknown types are ignored
		}
	}
}

func (s *QuoteStream) handleQuote(ctx context.Context, body json.RawMessage) {
	var snap QuoteSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		logger.WithField("component", "QuoteStream").
			WithError(err).Warn("Skipping malformed quote body")
		return
	}

	err := s.applier.ApplyQuote(ctx, snap.Symbol, repository.QuoteUpdate{
		CurrentPrice:  snap.Price,
		PreviousClose: snap.PreviousClose,
		Volume:        snap.Volume,
		AsOf:          snap.AsOf,
	})
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"component": "QuoteStream",
			"symbol":    snap.Symbol,
		}).WithError(err).Warn("Failed to apply streamed quote")
	}
}
