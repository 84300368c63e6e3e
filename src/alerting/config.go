package alerting

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	LoopPeriod        time.Duration `envconfig:"ALERT_LOOP_PERIOD" default:"30s"`
	MarketHoursOnly   bool          `envconfig:"ALERT_MARKET_HOURS_ONLY" default:"true"`
	StopOnEvalFailure bool          `envconfig:"ALERT_STOP_ON_EVAL_FAILURE" default:"false"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
