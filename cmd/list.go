package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"itemgroups/questionnaire/internal/db"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents and their coded value counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		docs, err := d.AllDocuments()
		if err != nil {
			return fmt.Errorf("listing documents: %w", err)
		}
		if docs == nil {
			docs = []db.Document{}
		}

		out := cmd.OutOrStdout()
		if listJSON {
			return writeJSON(out, docs)
		}
		if len(docs) == 0 {
			fmt.Fprintln(out, "No documents.")
			return nil
		}
		for _, doc := range docs {
			created := time.UnixMilli(doc.CreatedAt).Format("2006-01-02 15:04")
			fmt.Fprintf(out, "  %s  %s  %5d  %s\n", truncID(doc.GUID), created, doc.RecordCount, truncLabel(doc.Title, 50))
		}
		fmt.Fprintf(out, "\n%d document(s)\n", len(docs))
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}
