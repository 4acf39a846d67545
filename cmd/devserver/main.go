package main

import (
	"context"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-client-desk/internal/adapter"
	"github.com/MKhiriev/go-client-desk/internal/config"
	handler "github.com/MKhiriev/go-client-desk/internal/handler/http"
	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/internal/server"
	"github.com/MKhiriev/go-client-desk/internal/store"
	"github.com/MKhiriev/go-client-desk/models"
)

const appName = "client-desk"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBanner(buildInfo)

	log := logger.NewLogger("client-desk-devserver")

	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	config.RegisterServerFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.GetServerConfig(fs)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()
	storage, err := store.NewStorage(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storage")
	}
	defer storage.Close()

	backend, err := adapter.NewLocalBackend(ctx, storage, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating local backend")
	}

	h := handler.NewHandler(backend, buildInfo, log)
	srv, err := server.NewServer(h.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBanner(info models.AppBuildInfo) {
	figure.NewFigure(appName, "cybermedium", true).Print()
	fmt.Println()
	fmt.Print(info.String())
}
