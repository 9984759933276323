package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"itemgroups/questionnaire/internal/forest"
)

var (
	parseJSON   bool
	parseReport bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Rebuild item groups from raw coded values, one per line",
	Long:  "Reads coded values (PathId^Label[^...]) from a file, or stdin when the file is '-' or omitted, and prints the grouped item forest. No database is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening records: %w", err)
			}
			defer f.Close()
			in = f
		}

		raw, err := readRecords(in)
		if err != nil {
			return err
		}
		if limit := cfg.Forest.MaxRecords; limit > 0 && len(raw) > limit {
			return fmt.Errorf("%w: %d records, limit is %d", forest.ErrTooManyRecords, len(raw), limit)
		}

		res := forest.Reconstruct(raw)
		out := cmd.OutOrStdout()
		if parseJSON {
			return writeResultJSON(out, "", res, parseReport)
		}
		printForest(out, res)
		if parseReport {
			printReport(out, res.Report)
		}
		return nil
	},
}

// maxRecordLine bounds a single coded value; long free-text labels exceed
// bufio's 64KiB default.
const maxRecordLine = 1 << 20

// readRecords returns one raw coded value per line. Line endings (\n or
// \r\n) are stripped; blank lines are skipped.
func readRecords(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordLine)

	var raw []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		raw = append(raw, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return raw, nil
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Output as JSON")
	parseCmd.Flags().BoolVar(&parseReport, "report", false, "Include placement report")
	rootCmd.AddCommand(parseCmd)
}
