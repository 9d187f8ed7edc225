package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage panel users (application token)",
}

func init() {
	usersCmd.AddCommand(usersListCmd)
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List panel users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := appAPI()
		if err != nil {
			return err
		}

		list, err := p.App.ListUsers(cmd.Context())
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), list, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tADMIN\t2FA")
			for _, u := range list.Items() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%t\n", u.ID, u.Username, u.Email, u.RootAdmin, u.TwoFactor)
			}
		})
	},
}
