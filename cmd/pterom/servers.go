package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/pterom/bytesize"
	"github.com/adamwoolhether/pterom/clientapi"
)

var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "List and control servers",
}

func init() {
	serversCmd.AddCommand(serversListCmd)
	serversCmd.AddCommand(serversShowCmd)
	serversCmd.AddCommand(serversUsageCmd)
	serversCmd.AddCommand(serversPowerCmd)
	serversCmd.AddCommand(serversCommandCmd)
}

var serversListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the servers your account can access",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := clientAPI()
		if err != nil {
			return err
		}

		list, err := p.Client.ListServers(cmd.Context())
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), list, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "IDENTIFIER\tNAME\tNODE\tMEMORY\tDISK")
			for _, s := range list.Items() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Identifier, s.Name, s.Node,
					bytesize.Format(int64(s.Limits.Memory)<<20), bytesize.Format(int64(s.Limits.Disk)<<20))
			}
		})
	},
}

var serversShowCmd = &cobra.Command{
	Use:   "show <server>",
	Short: "Show a server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := clientAPI()
		if err != nil {
			return err
		}

		s, err := p.Client.ServerDetails(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), s, func(w *tabwriter.Writer) {
			fmt.Fprintf(w, "Identifier:\t%s\n", s.Identifier)
			fmt.Fprintf(w, "Name:\t%s\n", s.Name)
			fmt.Fprintf(w, "Node:\t%s\n", s.Node)
			fmt.Fprintf(w, "SFTP:\t%s:%d\n", s.SFTPDetails.IP, s.SFTPDetails.Port)
			fmt.Fprintf(w, "Suspended:\t%t\n", s.IsSuspended)
		})
	},
}

var serversUsageCmd = &cobra.Command{
	Use:   "usage <server>",
	Short: "Show live resource usage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := clientAPI()
		if err != nil {
			return err
		}

		r, err := p.Client.ResourceUsage(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), r, func(w *tabwriter.Writer) {
			fmt.Fprintf(w, "State:\t%s\n", r.CurrentState)
			fmt.Fprintf(w, "CPU:\t%.2f%%\n", r.Resources.CPUAbsolute)
			fmt.Fprintf(w, "Memory:\t%s\n", bytesize.Format(r.Resources.MemoryBytes))
			fmt.Fprintf(w, "Disk:\t%s\n", bytesize.Format(r.Resources.DiskBytes))
			fmt.Fprintf(w, "Network:\t%s in, %s out\n",
				bytesize.Format(r.Resources.NetworkRxBytes), bytesize.Format(r.Resources.NetworkTxBytes))
		})
	},
}

var serversPowerCmd = &cobra.Command{
	Use:       "power <server> <start|stop|restart|kill>",
	Short:     "Send a power signal",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"start", "stop", "restart", "kill"},
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := clientAPI()
		if err != nil {
			return err
		}

		return p.Client.ChangePowerState(cmd.Context(), args[0], clientapi.PowerSignal(args[1]))
	},
}

var serversCommandCmd = &cobra.Command{
	Use:   "command <server> <command...>",
	Short: "Run a console command",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := clientAPI()
		if err != nil {
			return err
		}

		return p.Client.SendCommand(cmd.Context(), args[0], strings.Join(args[1:], " "))
	},
}
