// Package cli is the command-line client: it drives the client store against
// a running proxy and exports cards through the share chain.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"roaster-backend/internal/card"
	"roaster-backend/internal/client"
	"roaster-backend/internal/config"
	"roaster-backend/internal/storage"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
	// Clipboard overrides the system clipboard.
	Clipboard card.Clipboard
}

type flags struct {
	configPath string
	serverURL  string
	storage    string
	storageDSN string
	timeout    time.Duration
}

// app is what every subcommand works with once the root has resolved config.
type app struct {
	cfg     config.CLIConfig
	storage storage.Storage
	store   *client.Store
	stdout  io.Writer
	stderr  io.Writer

	clipboard card.Clipboard
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(opts Options) *cobra.Command {
	var f flags
	a := &app{clipboard: opts.Clipboard}
	if a.clipboard == nil {
		a.clipboard = NewClipboard()
	}

	if !opts.Verbose {
		log.SetOutput(io.Discard)
	}

	root := &cobra.Command{
		Use:           "roaster",
		Short:         "AI Roaster & Praiser",
		Long:          "Generate a personalised roast or praise for a name and profession, keep a history and export share cards.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context(), cmd, f)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.storage != nil {
				return a.storage.Close()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "Config file (default ~/.roaster/config.yaml)")
	pf.StringVar(&f.serverURL, "server", "", "Proxy base URL (default from config)")
	pf.StringVar(&f.storage, "storage", "", "History storage: file, sqlite, redis or postgres")
	pf.StringVar(&f.storageDSN, "storage-dsn", "", "Storage path or connection URL")
	pf.DurationVar(&f.timeout, "timeout", 0, "Request timeout (default from config)")

	root.AddCommand(
		newGenerateCommand(a, "roast", "Roast someone about their career", "roast"),
		newGenerateCommand(a, "praise", "Praise someone for their career", "positive"),
		newHistoryCommand(a),
		newShareCommand(a),
		newCardCommand(a),
	)
	return root
}

func (a *app) init(ctx context.Context, cmd *cobra.Command, f flags) error {
	if a.stdout == nil {
		a.stdout = cmd.OutOrStdout()
	}
	if a.stderr == nil {
		a.stderr = cmd.ErrOrStderr()
	}
	if a.store != nil {
		return nil
	}

	cfg, err := config.LoadCLIConfig(config.CLIConfigPath(f.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if f.serverURL != "" {
		cfg.ServerURL = f.serverURL
	}
	if f.storage != "" {
		cfg.Storage.Kind = f.storage
	}
	if f.storageDSN != "" {
		cfg.Storage.DSN = f.storageDSN
	}
	if f.timeout > 0 {
		cfg.Timeout = f.timeout
	}
	a.cfg = cfg

	st, err := storage.Open(ctx, cfg.Storage.Kind, cfg.Storage.DSN)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	a.storage = st

	a.store = client.NewStore(client.NewHTTPClient(cfg.ServerURL, cfg.Timeout), st)
	if err := a.store.Load(ctx); err != nil {
		fmt.Fprintf(a.stderr, "warning: %v\n", err)
	}
	return nil
}

func (a *app) sharer(outDir string) *card.Sharer {
	return &card.Sharer{
		Renderer:  card.NewRenderer(),
		Platform:  NewDirPlatform(outDir, a.stdout),
		Clipboard: a.clipboard,
		Notifier:  NewNotifier(a.stderr),
	}
}

// export runs the share chain, or only the clipboard copy when copyOnly is set.
func (a *app) export(ctx context.Context, outDir string, copyOnly bool) card.ShareOutcome {
	if outDir == "" {
		outDir = a.cfg.ExportDir
	}
	sharer := a.sharer(outDir)
	if copyOnly {
		return a.store.CopyCurrent(sharer)
	}
	return a.store.ShareCurrent(ctx, sharer)
}

// Execute runs the CLI and reports errors the way main expects.
func Execute(ctx context.Context, opts Options) int {
	if err := NewRootCmd(opts).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
