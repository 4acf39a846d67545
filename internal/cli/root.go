// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli defines the cobra commands of the client-desk binary.
//
// Every command builds a [client.App] from the merged configuration, which
// restores the persisted session, then runs at most one session operation.
// Running the binary without a subcommand on a terminal starts the
// interactive UI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-client-desk/internal/config"
	"github.com/MKhiriev/go-client-desk/internal/session"
	"github.com/MKhiriev/go-client-desk/internal/tui"
	"github.com/MKhiriev/go-client-desk/models"
)

// logRole labels every log entry of the command line client.
const logRole = "client-desk"

// NewRootCommand assembles the command tree.
func NewRootCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:   "client-desk",
		Short: "Manage your account and client records",
		Long: `client-desk keeps a signed-in session and a list of client records
against a remote API or a local fallback backend.

Run without a subcommand in a terminal to open the interactive UI.`,
		Version:       buildInfo.BuildVersion(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !tui.IsTTY() {
				return cmd.Help()
			}
			return runInteractive(cmd, buildInfo)
		},
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newSignupCommand(),
		newLoginCommand(),
		newLogoutCommand(),
		newProfileCommand(),
		newClientsCommand(),
		newStatusCommand(),
		newVersionCommand(buildInfo),
	)

	return root
}

// Execute runs the command line and returns the process exit code.
// Failures of session operations were already reported by the notifier and
// are not printed again.
func Execute(buildInfo models.AppBuildInfo) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	root := NewRootCommand(buildInfo)
	if err := root.ExecuteContext(ctx); err != nil {
		var sessionErr *session.Error
		if !errors.As(err, &sessionErr) {
			fmt.Fprintln(os.Stderr, newTheme(os.Stderr).errorText.Render("Error: "+capitalize(err.Error())))
		}
		return 1
	}
	return 0
}

func runInteractive(cmd *cobra.Command, buildInfo models.AppBuildInfo) error {
	notifier := tui.NewNotifier()

	return withApp(cmd, notifier, func(rt *env) error {
		ui := tui.New(rt.app.Session(), notifier, buildInfo, rt.app.Config().Backend.RequestTimeout, rt.log)
		return rt.app.Run(rt.ctx, ui)
	})
}
