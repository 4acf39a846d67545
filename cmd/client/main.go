package main

import (
	"os"

	"github.com/MKhiriev/go-client-desk/internal/cli"
	"github.com/MKhiriev/go-client-desk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(cli.Execute(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)))
}
