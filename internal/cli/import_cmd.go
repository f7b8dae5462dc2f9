package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Bulk-load events, meetings and transition weeks from JSON or YAML",
		Long: `Imports a file with top-level "events", "governance", "series" and
"transitions" lists. Every record is validated first; nothing is written
unless the whole file is valid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportFile(cmdContext(cmd), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d events, %d governance meetings, %d transition weeks\n",
				res.EventCount, res.GovernanceCount, res.TransitionCount)
			return nil
		},
	}
}
