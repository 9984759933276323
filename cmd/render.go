package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"itemgroups/questionnaire/internal/forest"
)

// jsonOutput is the --json shape. Report is only present with --report.
type jsonOutput struct {
	Document string         `json:"document,omitempty"`
	Groups   *forest.Groups `json:"groups"`
	Report   *forest.Report `json:"report,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeResultJSON prints the bare grouped mapping, or a wrapper carrying the
// report when withReport is set.
func writeResultJSON(w io.Writer, documentGUID string, res *forest.Result, withReport bool) error {
	if !withReport {
		return writeJSON(w, res.Groups)
	}
	return writeJSON(w, jsonOutput{
		Document: documentGUID,
		Groups:   res.Groups,
		Report:   res.Report,
	})
}

func printForest(w io.Writer, res *forest.Result) {
	if res.Groups.Len() == 0 {
		fmt.Fprintln(w, "  (no placeable items)")
		return
	}
	for _, key := range res.Groups.Keys() {
		fmt.Fprintf(w, "  [%s]\n", key)
		nodes, _ := res.Groups.Get(key)
		for _, root := range nodes {
			root.Walk(func(n *forest.Node, level int) {
				indent := strings.Repeat("  ", level+2)
				fmt.Fprintf(w, "%s%s  %s\n", indent, n.NativeID(), truncLabel(n.Label, 60))
			})
		}
	}
}

func printReport(w io.Writer, r *forest.Report) {
	fmt.Fprintln(w, "\n  PLACEMENT")
	fmt.Fprintln(w, "  ────────────────────────────────────────")
	fmt.Fprintf(w, "  Records: %d  Placed: %d  Roots: %d  Groups: %d  Max depth: %d\n",
		r.TotalRecords, r.PlacedNodes, r.RootCount, r.GroupCount, r.MaxDepth)
	if r.UnplaceableCount > 0 {
		fmt.Fprintf(w, "  Unplaceable (no depth): %d\n", r.UnplaceableCount)
	}
	if r.OrphanCount > 0 {
		fmt.Fprintf(w, "  Orphans: %d coded values with no parent\n", r.OrphanCount)
		limit := 5
		if len(r.OrphanPaths) < limit {
			limit = len(r.OrphanPaths)
		}
		for _, p := range r.OrphanPaths[:limit] {
			fmt.Fprintf(w, "    - %s\n", p)
		}
		if r.OrphanCount > limit {
			fmt.Fprintf(w, "    ... and %d more\n", r.OrphanCount-limit)
		}
	}
	if len(r.DepthHistogram) > 0 {
		fmt.Fprintln(w, "\n  Depth distribution:")
		for _, b := range r.DepthHistogram {
			if b.Count > 0 {
				fmt.Fprintf(w, "    %8s: %4d\n", b.Label, b.Count)
			}
		}
	}
}

func truncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncLabel(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Find a safe UTF-8 boundary
	truncated := s[:max]
	for len(truncated) > 0 && !utf8.ValidString(truncated) {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "..."
}
