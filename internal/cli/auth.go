package cli

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-client-desk/models"
)

const (
	flagName    = "name"
	flagEmail   = "email"
	flagCompany = "company"
	flagStatus  = "status"
	flagOutput  = "output"
)

func newSignupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString(flagName)
			email, _ := cmd.Flags().GetString(flagEmail)
			password, err := readPassword(cmd, true)
			if err != nil {
				return err
			}

			return withApp(cmd, nil, func(rt *env) error {
				reg := models.Registration{Name: name, Email: email, Password: password}
				if err := rt.validate(reg); err != nil {
					return err
				}

				ctx, cancel := rt.request()
				defer cancel()
				return rt.app.Session().Signup(ctx, reg.Name, reg.Email, reg.Password)
			})
		},
	}

	cmd.Flags().String(flagName, "", "Display name")
	cmd.Flags().String(flagEmail, "", "Account email")
	addPasswordFlags(cmd)

	return cmd
}

func newLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString(flagEmail)
			password, err := readPassword(cmd, false)
			if err != nil {
				return err
			}

			return withApp(cmd, nil, func(rt *env) error {
				creds := models.Credentials{Email: email, Password: password}
				if err := rt.validate(creds); err != nil {
					return err
				}

				ctx, cancel := rt.request()
				defer cancel()
				return rt.app.Session().Login(ctx, creds.Email, creds.Password)
			})
		},
	}

	cmd.Flags().String(flagEmail, "", "Account email")
	addPasswordFlags(cmd)

	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, nil, func(rt *env) error {
				if !rt.app.Session().IsAuthenticated() {
					rt.println("You are not logged in")
				}

				ctx, cancel := rt.request()
				defer cancel()
				rt.app.Session().Logout(ctx)
				return nil
			})
		},
	}
}
