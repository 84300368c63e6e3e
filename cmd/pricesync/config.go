package pricesync

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Symbols     []string  `envconfig:"SYNC_SYMBOLS" default:"AAPL,MSFT,GOOGL"`
	StartDt     time.Time `envconfig:"START_DATE" default:"2026-01-01T00:00:00Z"`
	EndDt       time.Time `envconfig:"END_DATE" default:"2026-12-31T00:00:00Z"`
	AutoMode    bool      `envconfig:"AUTO_MODE" default:"false"`
	SyncIndices bool      `envconfig:"SYNC_INDICES" default:"true"`
}

func GetConfig() *Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return &config
}
