package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-client-desk/models"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func newClientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"client"},
		Short:   "List and add client records",
	}

	cmd.AddCommand(newClientsListCommand(), newClientsAddCommand())
	return cmd
}

func newClientsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print your clients",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString(flagOutput)
			if output != outputTable && output != outputJSON {
				return fmt.Errorf("%w %q, use %s or %s", ErrUnknownOutput, output, outputTable, outputJSON)
			}

			return withApp(cmd, nil, func(rt *env) error {
				if err := rt.requireSession(); err != nil {
					return err
				}

				ctx, cancel := rt.request()
				defer cancel()
				if err := rt.app.Session().FetchClients(ctx); err != nil {
					return err
				}

				return printClients(rt, rt.app.Session().Clients(), output)
			})
		},
	}

	cmd.Flags().StringP(flagOutput, "o", outputTable, "Output format: table or json")
	return cmd
}

func printClients(rt *env, clients []models.Client, output string) error {
	if output == outputJSON {
		if clients == nil {
			clients = []models.Client{}
		}
		enc := json.NewEncoder(rt.cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(clients)
	}

	if len(clients) == 0 {
		rt.println("No clients yet")
		return nil
	}
	rt.println(rt.theme.clientTable(clients))
	return nil
}

func newClientsAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a client record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString(flagName)
			email, _ := cmd.Flags().GetString(flagEmail)
			company, _ := cmd.Flags().GetString(flagCompany)
			status, _ := cmd.Flags().GetString(flagStatus)

			return withApp(cmd, nil, func(rt *env) error {
				if err := rt.requireSession(); err != nil {
					return err
				}

				c := models.NewClient{
					Name:    name,
					Email:   email,
					Company: company,
					Status:  models.ClientStatus(status),
				}
				if err := rt.validate(c); err != nil {
					return err
				}

				ctx, cancel := rt.request()
				defer cancel()
				created, err := rt.app.Session().AddClient(ctx, c)
				if err != nil {
					return err
				}

				rt.println(rt.theme.fields([2]string{"ID", created.ID}))
				return nil
			})
		},
	}

	cmd.Flags().String(flagName, "", "Client name")
	cmd.Flags().String(flagEmail, "", "Client email")
	cmd.Flags().String(flagCompany, "", "Client company")
	cmd.Flags().String(flagStatus, string(models.ClientActive), "Client status: active or inactive")

	return cmd
}
