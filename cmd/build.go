package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"itemgroups/questionnaire/internal/forest"
)

var (
	buildJSON   bool
	buildReport bool
)

var buildCmd = &cobra.Command{
	Use:   "build <document>",
	Short: "Rebuild the item groups of one document",
	Long:  "Resolves a document by GUID, GUID prefix, or title, loads its coded values in recorded order, and prints the grouped item forest.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		doc, err := ResolveDocument(d, args[0])
		if err != nil {
			return err
		}

		res, err := forest.Load(cmd.Context(), d, doc.GUID, forest.LoadOptions{
			MaxRecords: cfg.Forest.MaxRecords,
			Logger:     logger,
		})
		if errors.Is(err, forest.ErrNoRecords) {
			logger.Debug("Document has no coded values", zap.String("document", doc.GUID))
			return fmt.Errorf("resource not found: %s", doc.GUID)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if buildJSON {
			return writeResultJSON(out, doc.GUID, res, buildReport)
		}

		fmt.Fprintf(out, "\n  %s (%s)  records=%d groups=%d\n\n",
			doc.Title, truncID(doc.GUID), res.Report.TotalRecords, res.Groups.Len())
		printForest(out, res)
		if buildReport {
			printReport(out, res.Report)
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildJSON, "json", false, "Output as JSON")
	buildCmd.Flags().BoolVar(&buildReport, "report", false, "Include placement report")
	rootCmd.AddCommand(buildCmd)
}
