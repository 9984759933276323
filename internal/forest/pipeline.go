package forest

// Result is the output of one reconstruction.
type Result struct {
	Groups *Groups
	Report *Report
}

// Reconstruct runs the full pipeline over raw coded values: decode, build,
// group. It never fails; an empty input yields empty groups.
func Reconstruct(raw []string) *Result {
	a := assemble(DecodeAll(raw))
	groups := GroupByRoot(a.roots())
	return &Result{
		Groups: groups,
		Report: computeReport(a, groups),
	}
}
