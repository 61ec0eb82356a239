package main

import (
	"flag"

	"clovis-backend/lib/configutil"
	"clovis-backend/lib/restyutil"
	"clovis-backend/lib/scrapers/gflights"
	"clovis-backend/lib/serviceutil"
	"clovis-backend/services/flights"
)

type Config struct {
	Port    int              `json:"port"`
	Scraper gflights.Options `json:"scraper"`
	Flights flights.Options  `json:"flights"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 3000
	}

	client, err := gflights.NewClient(cfg.Scraper)
	if err != nil {
		serviceutil.Fatal("init flights scraper", err)
	}
	if *verbose {
		client.SetRestyInstrumentOutput(
			restyutil.NewFilesystemOutput(".dev/resty/gflights"),
		)
	}

	service := flights.NewService(client, cfg.Flights)

	go serviceutil.StartHttpServer(cfg.Port, service.Router())
	<-ctx.Done()
}
