package main

import (
	"context"
	_ "embed"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tourism/apis/nominatim"
	"tourism/apis/openmeteo"
	"tourism/apis/overpass"
	"tourism/cli"
	"tourism/composer"
	"tourism/config"
	"tourism/web"
)

//go:embed config.yaml
var configRaw []byte

func main() {
	ctx := context.Background()

	// Optional; endpoints and timeouts work without any environment.
	_ = godotenv.Load()

	cfg, err := config.Parse(configRaw)
	if err != nil {
		log.Fatalf("parse config: %s", err)
	}

	timeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	service := composer.New(
		nominatim.New(cfg.Nominatim.Endpoint, cfg.UserAgent, timeout),
		openmeteo.New(cfg.OpenMeteo.Endpoint, cfg.UserAgent, timeout),
		overpass.New(cfg.Overpass.Endpoint, cfg.UserAgent, timeout, cfg.MaxAttractions),
		cfg.RadiusMeters,
	)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cmd := cli.New(service)
	cmd.AddCommand(cli.NewServe(web.New(service, logger), cfg.Web.Addr))

	if err = cmd.ExecuteContext(ctx); err != nil {
		log.Printf("exec: %s\n", err)
		os.Exit(1)
	}
}
