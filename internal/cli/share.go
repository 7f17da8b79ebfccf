package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"roaster-backend/internal/card"
	"roaster-backend/internal/models"
)

func historyEntry(history []models.HistoryEntry, index int) (models.HistoryEntry, error) {
	if len(history) == 0 {
		return models.HistoryEntry{}, fmt.Errorf("%s", msgNoHistory)
	}
	if index < 0 || index >= len(history) {
		return models.HistoryEntry{}, fmt.Errorf("no history entry #%d (have %d)", index, len(history))
	}
	return history[index], nil
}

func newShareCommand(a *app) *cobra.Command {
	var (
		index   int
		outDir  string
		copyOut bool
	)

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Export a past result as a card",
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := historyEntry(a.store.State().History, index)
			if err != nil {
				return err
			}
			a.store.ShowEntry(entry)
			outcome := a.export(cmd.Context(), outDir, copyOut)
			fmt.Fprintf(a.stderr, "share: %s\n", outcome)
			if outcome == card.ShareFailed {
				return fmt.Errorf("share failed")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "History entry to share (0 is newest)")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory for exported cards (default from config)")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the text instead of exporting a card")
	return cmd
}

func newCardCommand(a *app) *cobra.Command {
	var (
		index    int
		out      string
		maxLines int
	)

	cmd := &cobra.Command{
		Use:   "card",
		Short: "Render a past result to a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := historyEntry(a.store.State().History, index)
			if err != nil {
				return err
			}
			if out == "" {
				out = card.FileName(entry.Name)
			}

			c, err := card.NewRenderer().Render(card.Input{
				Text:     entry.Response,
				Name:     entry.Name,
				Career:   entry.Career,
				Mode:     entry.Mode,
				MaxLines: maxLines,
			})
			if err != nil {
				return fmt.Errorf("failed to render card: %w", err)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := c.EncodePNG(f); err != nil {
				return fmt.Errorf("failed to encode card: %w", err)
			}

			fmt.Fprintf(a.stdout, "Wrote %s (%dx%d, %d lines)\n",
				out, c.Layout.CanvasWidth, c.Layout.CanvasHeight, c.Layout.WrappedLineCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "History entry to render (0 is newest)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default AI_Verdict_<name>.png)")
	cmd.Flags().IntVar(&maxLines, "max-lines", 0, "Truncate the body after this many lines")
	return cmd
}
