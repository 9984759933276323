package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"itemgroups/questionnaire/internal/db"
	"itemgroups/questionnaire/internal/forest"
)

var (
	exportOutDir      string
	exportConcurrency int
	exportReport      bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Rebuild every document and write one JSON file per document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		opts := exportOptions{
			OutDir:      firstNonEmpty(exportOutDir, cfg.Export.OutputDir),
			Concurrency: cfg.Export.Concurrency,
			WithReport:  exportReport,
			Load: forest.LoadOptions{
				MaxRecords: cfg.Forest.MaxRecords,
				Logger:     logger,
			},
		}
		if exportConcurrency > 0 {
			opts.Concurrency = exportConcurrency
		}

		summary, err := exportDocuments(cmd.Context(), d, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d document(s) to %s (%d skipped without coded values)\n",
			summary.Written, opts.OutDir, summary.Skipped)
		return nil
	},
}

type exportOptions struct {
	OutDir      string
	Concurrency int
	WithReport  bool
	Load        forest.LoadOptions
}

type exportSummary struct {
	Written int
	Skipped int
}

// exportDocuments rebuilds every document concurrently and writes
// <guid>.json into opts.OutDir. The first failure cancels the rest.
func exportDocuments(ctx context.Context, d *db.DB, opts exportOptions) (exportSummary, error) {
	docs, err := d.AllDocuments()
	if err != nil {
		return exportSummary{}, fmt.Errorf("listing documents: %w", err)
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return exportSummary{}, fmt.Errorf("creating output directory: %w", err)
	}

	log := opts.Load.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var written, skipped atomic.Int64
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(opts.Concurrency, 1))

	for _, doc := range docs {
		doc := doc
		eg.Go(func() error {
			res, err := forest.Load(egCtx, d, doc.GUID, opts.Load)
			if errors.Is(err, forest.ErrNoRecords) {
				log.Warn("Skipping document without coded values", zap.String("document", doc.GUID))
				skipped.Add(1)
				return nil
			}
			if err != nil {
				return err
			}

			var payload any = res.Groups
			if opts.WithReport {
				payload = jsonOutput{Document: doc.GUID, Groups: res.Groups, Report: res.Report}
			}
			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding %s: %w", doc.GUID, err)
			}
			path := filepath.Join(opts.OutDir, doc.GUID+".json")
			if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			written.Add(1)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return exportSummary{}, err
	}
	return exportSummary{Written: int(written.Load()), Skipped: int(skipped.Load())}, nil
}

func init() {
	exportCmd.Flags().StringVar(&exportOutDir, "out", "", "Output directory (default: export.output_dir)")
	exportCmd.Flags().IntVar(&exportConcurrency, "concurrency", 0, "Documents built in parallel (default: export.concurrency)")
	exportCmd.Flags().BoolVar(&exportReport, "report", false, "Include placement report in each file")
	rootCmd.AddCommand(exportCmd)
}
