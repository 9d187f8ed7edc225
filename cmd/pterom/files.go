package main

import (
	"crypto/sha1"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/pterom/bytesize"
	"github.com/adamwoolhether/pterom/client"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Browse and download server files",
}

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List and download backups",
}

var showProgress bool

func init() {
	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesCatCmd)
	filesCmd.AddCommand(filesDownloadCmd)

	backupsCmd.AddCommand(backupsListCmd)
	backupsCmd.AddCommand(backupsDownloadCmd)

	filesDownloadCmd.Flags().BoolVar(&showProgress, "progress", false, "Log download progress")
	backupsDownloadCmd.Flags().BoolVar(&showProgress, "progress", false, "Log download progress")
}

var filesListCmd = &cobra.Command{
	Use:   "ls <server> [dir]",
	Short: "List a directory",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := clientAPI()
		if err != nil {
			return err
		}

		dir := "/"
		if len(args) == 2 {
			dir = args[1]
		}

		list, err := p.Client.ListFiles(cmd.Context(), args[0], dir)
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), list, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "MODE\tSIZE\tMODIFIED\tNAME")
			for _, f := range list.Items() {
				name := f.Name
				if !f.IsFile {
					name += "/"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Mode, bytesize.Format(f.Size), f.ModifiedAt.Format("2006-01-02 15:04"), name)
			}
		})
	},
}

var filesCatCmd = &cobra.Command{
	Use:   "cat <server> <path>",
	Short: "Print a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := clientAPI()
		if err != nil {
			return err
		}

		dir, file := splitPath(args[1])

		content, err := p.Client.GetFileContent(cmd.Context(), args[0], dir, file)
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	},
}

var filesDownloadCmd = &cobra.Command{
	Use:   "download <server> <path> [dest]",
	Short: "Download a file",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := clientAPI()
		if err != nil {
			return err
		}

		dir, file := splitPath(args[1])
		dest := file
		if len(args) == 3 {
			dest = args[2]
		}

		signed, err := p.Client.DownloadFile(cmd.Context(), args[0], dir, file)
		if err != nil {
			return err
		}

		var opts []client.DownloadOption
		if showProgress {
			opts = append(opts, client.WithProgress())
		}

		return p.Client.Dispatcher().Download(cmd.Context(), signed, dest, opts...)
	},
}

var backupsListCmd = &cobra.Command{
	Use:   "list <server>",
	Short: "List backups",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := clientAPI()
		if err != nil {
			return err
		}

		list, err := p.Client.ListBackups(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), list, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "UUID\tNAME\tSIZE\tCREATED\tDONE")
			for _, b := range list.Items() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", b.UUID, b.Name, bytesize.Format(b.Bytes),
					b.CreatedAt.Format("2006-01-02 15:04"), b.CompletedAt != nil)
			}
		})
	},
}

var backupsDownloadCmd = &cobra.Command{
	Use:   "download <server> <backup> [dest]",
	Short: "Download a backup archive, verifying its checksum",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := clientAPI()
		if err != nil {
			return err
		}

		backup, err := p.Client.BackupDetails(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		dest := filepath.Clean(backup.UUID + ".tar.gz")
		if len(args) == 3 {
			dest = args[2]
		}

		signed, err := p.Client.DownloadBackup(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		var opts []client.DownloadOption
		if backup.Checksum != nil {
			opts = append(opts, client.WithChecksum(sha1.New(), *backup.Checksum))
		}
		if showProgress {
			opts = append(opts, client.WithProgress())
		}

		return p.Client.Dispatcher().Download(cmd.Context(), signed, dest, opts...)
	},
}
