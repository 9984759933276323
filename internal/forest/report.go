package forest

import "strconv"

// DepthBucket is one bucket in the depth histogram
type DepthBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Report describes how a batch of records was placed. It is diagnostic only
// and never changes the grouped output.
type Report struct {
	TotalRecords     int           `json:"total_records"`
	PlacedNodes      int           `json:"placed_nodes"`
	RootCount        int           `json:"root_count"`
	GroupCount       int           `json:"group_count"`
	MaxDepth         int           `json:"max_depth"`
	OrphanCount      int           `json:"orphan_count"`
	OrphanPaths      []string      `json:"orphan_paths"`
	UnplaceableCount int           `json:"unplaceable_count"`
	DepthHistogram   []DepthBucket `json:"depth_histogram"`
}

// maxReportedOrphans caps OrphanPaths; OrphanCount is always exact.
const maxReportedOrphans = 50

func computeReport(a *assembly, groups *Groups) *Report {
	r := &Report{
		TotalRecords: len(a.records),
		RootCount:    len(a.byDepth[1]),
		GroupCount:   groups.Len(),
		OrphanPaths:  []string{},
	}
	if len(a.records) == 0 {
		r.DepthHistogram = []DepthBucket{}
		return r
	}
	if a.maxDepth > 0 {
		r.MaxDepth = a.maxDepth
	}

	placed := a.placed()
	for i, ok := range placed {
		switch {
		case ok:
			r.PlacedNodes++
		case a.depth[i] < 1:
			// No slash or a bare "/x": never selected at any processed depth.
			r.UnplaceableCount++
		default:
			r.OrphanCount++
			if len(r.OrphanPaths) < maxReportedOrphans {
				r.OrphanPaths = append(r.OrphanPaths, a.records[i].PathID)
			}
		}
	}

	r.DepthHistogram = depthHistogram(a)
	return r
}

// depthHistogram counts records per depth from 1 to maxDepth. Depths below 1
// are folded into a single "unplaced" bucket.
func depthHistogram(a *assembly) []DepthBucket {
	var shallow int
	for _, d := range a.depth {
		if d < 1 {
			shallow++
		}
	}
	buckets := []DepthBucket{{Label: "unplaced", Count: shallow}}
	for d := 1; d <= a.maxDepth; d++ {
		buckets = append(buckets, DepthBucket{
			Label: strconv.Itoa(d),
			Count: len(a.byDepth[d]),
		})
	}
	return buckets
}
