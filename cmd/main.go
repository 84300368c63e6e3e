package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"portfoliotracker/cmd/pricesync"
	"portfoliotracker/cmd/quotestream"
	"portfoliotracker/src/alerting"
	"portfoliotracker/src/database"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "Portfolio Tracker CMD"
	app.Usage = "The portfolio tracker command line interface"

	app.Commands = []cli.Command{
		priceSyncCMD,
		quoteStreamCMD,
		alertScanCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	priceSyncCMD = cli.Command{
		Name:        "pricesync",
		Usage:       "run price sync",
		Action:      priceSyncAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Pull quotes, daily bars and index values from the market data provider`,
	}
	quoteStreamCMD = cli.Command{
		Name:        "quotestream",
		Usage:       "run quote stream consumer",
		Action:      quoteStreamAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Consume the provider's websocket quote feed`,
	}
	alertScanCMD = cli.Command{
		Name:        "alertscan",
		Usage:       "run price alert evaluation loop",
		Action:      alertScanAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Evaluate armed price alerts against stored quotes on a fixed period`,
	}
)

// priceSyncAction pulls daily bars and fresh quotes for the tracked symbols.
func priceSyncAction(_ *cli.Context) error {

	logrus.Info("Starting price sync CMD")
	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	sync := &pricesync.PriceSync{
		Log: logrus.WithField("cmd", "pricesync"),
		DB:  database.MainDB,
	}

	err := sync.Start()
	if err != nil {
		logrus.WithError(err).Error("Starting price sync cmd")
		return err
	}

	return nil
}

func quoteStreamAction(_ *cli.Context) error {

	logrus.Info("Starting quote stream CMD")
	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	stream := &quotestream.QuoteStream{
		Log: logrus.WithField("cmd", "quotestream"),
		DB:  database.MainDB,
	}

	err := stream.Start()
	if err != nil {
		logrus.WithError(err).Error("Starting quote stream cmd")
		return err
	}

	return nil
}

func alertScanAction(_ *cli.Context) error {

	logrus.Info("Starting alert scan CMD")
	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		cancel()
	}()

	if err := alerting.StartLoop(ctx); err != nil {
		logrus.WithError(err).Error("Starting alert scan cmd")
		return err
	}

	return nil
}
