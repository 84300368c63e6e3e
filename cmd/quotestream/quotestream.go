package quotestream

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"portfoliotracker/src/connectors"
	"portfoliotracker/src/repository"
)

const reconnectDelay = 5 * time.Second

// QuoteStream keeps a websocket consumer attached to the provider's quote
// feed, reconnecting until interrupted.
type QuoteStream struct {
	Log *logger.Entry
	DB  *gorm.DB
}

func (q *QuoteStream) Start() error {
	stocks := repository.NewStockRepository().WithDB(q.DB)
	stream := connectors.NewQuoteStream(connectors.GetConfig(), stocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		q.Log.Info("Signal received, stopping stream")
		cancel()
	}()

	for {
		err := stream.Run(ctx)
		if ctx.Err() != nil {
			return nil
		}

		q.Log.WithError(err).Warnf("Stream dropped, reconnecting in %s", reconnectDelay)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}
