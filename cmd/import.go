package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lotolab/service"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import historical draws from a CSV file",
	Long: `Import parses a CSV of historical draws and stores them. Rows are
date[,day_of_week],n1..n5,s1[,s2]; dates already recorded are skipped.
Reads from stdin when no file is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := parseGameFlag()
		if err != nil {
			return err
		}

		var input io.Reader = os.Stdin
		if importFile != "" {
			f, err := os.Open(importFile)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", importFile, err)
			}
			defer f.Close()
			input = f
		}

		ctx := cmd.Context()
		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		svc := service.NewImportService(newUnitOfWorkFactory(db))
		summary, err := svc.ImportCSV(ctx, game, input)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d draws (%d skipped, %d rejected)\n",
			summary.Imported, summary.Skipped, summary.Rejected)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file to import (default stdin)")
	rootCmd.AddCommand(importCmd)
}
