package cli

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-client-desk/models"
)

func newProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
	}

	cmd.AddCommand(newProfileShowCommand(), newProfileUpdateCommand())
	return cmd
}

func newProfileShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the profile of the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, nil, func(rt *env) error {
				if err := rt.requireSession(); err != nil {
					return err
				}

				u := rt.app.Session().User()
				rt.println(rt.theme.fields(
					[2]string{"ID", u.ID},
					[2]string{"Name", u.Name},
					[2]string{"Email", u.Email},
				))
				return nil
			})
		},
	}
}

func newProfileUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change your name or email",
		Long:  "Only the flags that are given are sent; every other field keeps its value.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			patch := profilePatch(cmd)

			return withApp(cmd, nil, func(rt *env) error {
				if err := rt.requireSession(); err != nil {
					return err
				}
				if err := rt.validate(patch); err != nil {
					return err
				}

				ctx, cancel := rt.request()
				defer cancel()
				return rt.app.Session().UpdateProfile(ctx, patch)
			})
		},
	}

	cmd.Flags().String(flagName, "", "New display name")
	cmd.Flags().String(flagEmail, "", "New email")

	return cmd
}

// profilePatch holds exactly the flags set on the command line.
func profilePatch(cmd *cobra.Command) models.UserPatch {
	var patch models.UserPatch
	if cmd.Flags().Changed(flagName) {
		name, _ := cmd.Flags().GetString(flagName)
		patch.Name = &name
	}
	if cmd.Flags().Changed(flagEmail) {
		email, _ := cmd.Flags().GetString(flagEmail)
		patch.Email = &email
	}
	return patch
}
