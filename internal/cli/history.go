package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"roaster-backend/internal/client"
	"roaster-backend/internal/models"
)

const msgNoHistory = "No history yet."

func newHistoryCommand(a *app) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past results",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(a),
		newHistoryClearCommand(a),
		newHistoryExportCommand(a),
	)
	return historyCmd
}

func newHistoryListCommand(a *app) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List past results, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistory(a.stdout, a.store.State().History, full)
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Show complete responses")
	return cmd
}

func newHistoryClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all past results",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.ClearHistory(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "History cleared.")
			return nil
		},
	}
}

func newHistoryExportCommand(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the history as an HTML page",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" || out == "-" {
				return client.ExportHTML(a.stdout, a.store.State().History)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := client.ExportHTML(f, a.store.State().History); err != nil {
				return err
			}
			fmt.Fprintf(a.stderr, "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	return cmd
}

func listHistory(w io.Writer, history []models.HistoryEntry, full bool) error {
	if len(history) == 0 {
		fmt.Fprintln(w, msgNoHistory)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tWHEN\tMODE\tNAME\tCAREER\tRESPONSE")
	for i, e := range history {
		response := e.Response
		if !full {
			response = truncate(response, 60)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i, e.Timestamp.Local().Format("2006-01-02 15:04"), e.Mode.Label(), e.Name, e.Career, response)
	}
	return tw.Flush()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
