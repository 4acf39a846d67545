package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-client-desk/internal/config"
	"github.com/MKhiriev/go-client-desk/internal/utils"
	"github.com/MKhiriev/go-client-desk/models"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show who is logged in and where the data lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, nil, func(rt *env) error {
				cfg := rt.app.Config()
				backend := cfg.Backend.Mode
				if backend == config.BackendHTTP {
					backend += " (" + cfg.Backend.HTTPAddress + ")"
				}

				pairs := [][2]string{
					{"Backend", backend},
					{"Storage", cfg.Storage.DSN},
				}

				snap := rt.app.Session().Snapshot()
				if !snap.IsAuthenticated {
					pairs = append(pairs, [2]string{"Session", "not logged in"})
				} else {
					pairs = append(pairs, [2]string{"Session", snap.User.Name + " <" + snap.User.Email + ">"})
					pairs = append(pairs, [2]string{"Expires", tokenExpiry(snap)})
				}

				rt.println(rt.theme.fields(pairs...))
				return nil
			})
		},
	}
}

func tokenExpiry(snap models.Session) string {
	exp, ok := utils.TokenExpiry(snap.Token)
	if !ok {
		return "unknown"
	}
	return exp.Local().Format(time.RFC1123)
}

func newVersionCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), buildInfo.String())
		},
	}
}
