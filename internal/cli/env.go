package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-client-desk/internal/client"
	"github.com/MKhiriev/go-client-desk/internal/config"
	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/internal/session"
	"github.com/MKhiriev/go-client-desk/internal/validators"
)

// env is what a command body works with.
type env struct {
	ctx       context.Context
	cmd       *cobra.Command
	app       *client.App
	log       *logger.Logger
	validator validators.Validator
	theme     theme
}

// withApp loads the config of cmd, builds the app and runs fn with it.
// notifier receives session notifications; nil prints them to the command
// output.
func withApp(cmd *cobra.Command, notifier session.Notifier, fn func(rt *env) error) error {
	cfg, err := config.GetClientConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.NewClientLogger(logRole, cfg.App.LogFile)
	log.Debug().Str("command", cmd.CommandPath()).Str("backend", cfg.Backend.Mode).Msg("command started")

	if notifier == nil {
		notifier = newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := client.NewApp(ctx, cfg, notifier, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close storage")
		}
	}()

	return fn(&env{
		ctx:       ctx,
		cmd:       cmd,
		app:       app,
		log:       log,
		validator: validators.NewFormValidator(),
		theme:     newTheme(cmd.OutOrStdout()),
	})
}

// request bounds one session operation by the configured request timeout.
func (rt *env) request() (context.Context, context.CancelFunc) {
	return rt.app.RequestContext(rt.ctx)
}

func (rt *env) validate(obj any) error {
	return rt.validator.Validate(rt.ctx, obj)
}

func (rt *env) requireSession() error {
	if !rt.app.Session().IsAuthenticated() {
		return ErrNotLoggedIn
	}
	return nil
}

func (rt *env) println(a ...any) {
	fmt.Fprintln(rt.cmd.OutOrStdout(), a...)
}
