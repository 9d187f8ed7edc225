package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adamwoolhether/pterom"
	"github.com/adamwoolhether/pterom/client"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

var (
	cfgFile string
	envFile string
	format  string
	verbose bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pterom",
	Short: "Command-line client for the Pterodactyl panel",
	Long: `pterom talks to a Pterodactyl panel through its application and
client APIs.

Configuration is read from flags, PTEROM_* environment variables, an
optional .env file and ~/.pterom/config.yaml, in that order of
precedence:

  PTEROM_HOST=https://panel.example.com
  PTEROM_APP_TOKEN=ptla_...
  PTEROM_CLIENT_TOKEN=ptlc_...`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}

		if err := readConfig(cfgFile); err != nil {
			return err
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.pterom/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load if present")
	rootCmd.PersistentFlags().StringVar(&format, "format", "text", "Output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every request")
	rootCmd.PersistentFlags().String("host", "", "Panel URL")
	_ = viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serversCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(backupsCmd)
	rootCmd.AddCommand(usersCmd)
}

// readConfig loads cfgFile, or ~/.pterom/config.yaml when cfgFile is
// empty. Only a missing default file is tolerated.
func readConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locating config dir: %w", err)
		}
		viper.AddConfigPath(filepath.Join(home, ".pterom"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("pterom")
	viper.AutomaticEnv()
	viper.SetDefault("timeout", 30*time.Second)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	return nil
}

// panel builds the API clients from the resolved configuration.
func panel() (*pterom.Pterom, error) {
	return pterom.New(pterom.Config{
		Host:        viper.GetString("host"),
		AppToken:    viper.GetString("app_token"),
		ClientToken: viper.GetString("client_token"),
	},
		client.WithTimeout(viper.GetDuration("timeout")),
		client.WithUserAgent("pterom/"+version),
		client.WithLogger(slog.Default()),
	)
}

func clientAPI() (*pterom.Pterom, error) {
	p, err := panel()
	if err != nil {
		return nil, err
	}
	if p.Client == nil {
		return nil, errors.New("a client token is required: set PTEROM_CLIENT_TOKEN")
	}

	return p, nil
}

func appAPI() (*pterom.Pterom, error) {
	p, err := panel()
	if err != nil {
		return nil, err
	}
	if p.App == nil {
		return nil, errors.New("an application token is required: set PTEROM_APP_TOKEN")
	}

	return p, nil
}

// render writes v as JSON when --format=json, otherwise calls text
// with a tabwriter.
func render(out io.Writer, v any, text func(w *tabwriter.Writer)) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "text":
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		text(w)
		return w.Flush()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// splitPath splits a panel path into its directory and file name.
func splitPath(p string) (string, string) {
	dir, file := path.Split(p)
	if dir == "" {
		dir = "/"
	}

	return dir, file
}

// ── version ──────────────────────────────────────────────────────────────────

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "pterom", version)
	},
}
