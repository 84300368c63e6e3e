package connectors

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	MarketDataBaseURL string `envconfig:"MARKET_DATA_BASE_URL" default:"https://api.marketdata.test/v1"`
	MarketDataAPIKey  string `envconfig:"MARKET_DATA_API_KEY" default:""`
	QuoteStreamURL    string `envconfig:"QUOTE_STREAM_URL" default:"wss://stream.marketdata.test/v1/quotes"`

	RequestTimeoutSeconds int `envconfig:"MARKET_DATA_TIMEOUT_SECONDS" default:"15"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
