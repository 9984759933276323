package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importTitle string
	importJSON  bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store a file of coded values as a new document",
	Long:  "Reads coded values one per line and stores them, in file order, under a new document GUID. The database is created if none is found.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening records: %w", err)
		}
		defer f.Close()

		raw, err := readRecords(f)
		if err != nil {
			return err
		}

		title := importTitle
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}

		d, err := OpenOrCreateDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		guid, err := d.CreateDocument(cmd.Context(), title, raw)
		if err != nil {
			return fmt.Errorf("importing %s: %w", args[0], err)
		}
		logger.Info("Imported document",
			zap.String("document", guid),
			zap.String("title", title),
			zap.Int("records", len(raw)))

		if importJSON {
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"guid":    guid,
				"title":   title,
				"records": len(raw),
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), guid)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importTitle, "title", "", "Document title (default: file name)")
	importCmd.Flags().BoolVar(&importJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(importCmd)
}
