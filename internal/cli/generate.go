package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"roaster-backend/internal/models"
)

const msgNoResponse = "No response received."

func newGenerateCommand(a *app, use, short string, mode models.Mode) *cobra.Command {
	var (
		share   bool
		copyOut bool
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   use + " <name> <career>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.store.SetName(args[0])
			a.store.SetCareer(args[1])

			err := a.store.FetchResponse(cmd.Context(), mode)
			state := a.store.State()
			if state.CurrentResponse == "" {
				if state.Error != "" {
					return fmt.Errorf("%s", state.Error)
				}
				if err != nil {
					return err
				}
				return fmt.Errorf("%s", msgNoResponse)
			}

			// The text was generated even if saving the history failed.
			fmt.Fprintln(a.stdout, state.CurrentResponse)
			if err != nil {
				fmt.Fprintf(a.stderr, "warning: %v\n", err)
			}

			if share || copyOut {
				outcome := a.export(cmd.Context(), outDir, copyOut)
				fmt.Fprintf(a.stderr, "share: %s\n", outcome)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&share, "share", false, "Export the result as a card")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the result to the clipboard")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory for exported cards (default from config)")
	return cmd
}
