package forest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReport_Empty(t *testing.T) {
	r := Reconstruct(nil).Report
	if r.TotalRecords != 0 || r.PlacedNodes != 0 || r.GroupCount != 0 || r.MaxDepth != 0 {
		t.Errorf("empty input should report all zeros, got %+v", r)
	}
	if len(r.DepthHistogram) != 0 {
		t.Errorf("expected empty histogram, got %+v", r.DepthHistogram)
	}
}

func TestReport_Counts(t *testing.T) {
	r := Reconstruct([]string{
		"/1/10^Top^",
		"/1/10/100^Child^",
		"/1/10/100/1000^Grandchild^",
		"/2/20^Other root^",
		"/1/99/900^Orphan^",
		"nocaret",
		"/1^Bare root^",
	}).Report

	if r.TotalRecords != 7 {
		t.Errorf("TotalRecords = %d, want 7", r.TotalRecords)
	}
	if r.PlacedNodes != 4 {
		t.Errorf("PlacedNodes = %d, want 4", r.PlacedNodes)
	}
	if r.RootCount != 2 {
		t.Errorf("RootCount = %d, want 2", r.RootCount)
	}
	if r.GroupCount != 2 {
		t.Errorf("GroupCount = %d, want 2", r.GroupCount)
	}
	if r.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", r.MaxDepth)
	}
	if r.OrphanCount != 1 {
		t.Errorf("OrphanCount = %d, want 1", r.OrphanCount)
	}
	if diff := cmp.Diff([]string{"/1/99/900"}, r.OrphanPaths); diff != "" {
		t.Errorf("OrphanPaths mismatch (-want +got):\n%s", diff)
	}
	if r.UnplaceableCount != 2 {
		t.Errorf("UnplaceableCount = %d, want 2", r.UnplaceableCount)
	}

	want := []DepthBucket{
		{Label: "unplaced", Count: 2},
		{Label: "1", Count: 2},
		{Label: "2", Count: 2},
		{Label: "3", Count: 1},
	}
	if diff := cmp.Diff(want, r.DepthHistogram); diff != "" {
		t.Errorf("histogram mismatch (-want +got):\n%s", diff)
	}
}

func TestReport_OrphanPathsCapped(t *testing.T) {
	var raw []string
	for i := 0; i < maxReportedOrphans+10; i++ {
		raw = append(raw, fmt.Sprintf("/1/missing/%d^o^", i))
	}
	r := Reconstruct(raw).Report
	if r.OrphanCount != maxReportedOrphans+10 {
		t.Errorf("OrphanCount = %d, want %d", r.OrphanCount, maxReportedOrphans+10)
	}
	if len(r.OrphanPaths) != maxReportedOrphans {
		t.Errorf("len(OrphanPaths) = %d, want %d", len(r.OrphanPaths), maxReportedOrphans)
	}
}

// --- Load ---

type fakeSource struct {
	values map[string][]string
	err    error
}

func (f *fakeSource) CodedValues(_ context.Context, guid string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.values[guid], nil
}

func TestLoad(t *testing.T) {
	src := &fakeSource{values: map[string][]string{
		"doc-1": {"/1/10^Q1^", "/1/20^Q2^", "/1/10/100^Q1a^"},
	}}
	res, err := Load(context.Background(), src, "doc-1", LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Groups.Len() != 1 {
		t.Fatalf("expected 1 group, got %d", res.Groups.Len())
	}
	if res.Report.PlacedNodes != 3 {
		t.Errorf("PlacedNodes = %d, want 3", res.Report.PlacedNodes)
	}
}

func TestLoad_NoRecords(t *testing.T) {
	src := &fakeSource{values: map[string][]string{}}
	_, err := Load(context.Background(), src, "missing", LoadOptions{})
	if !errors.Is(err, ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
}

func TestLoad_FoundButUnplaceableIsNotAnError(t *testing.T) {
	src := &fakeSource{values: map[string][]string{
		"doc-2": {"/1/10/100^Orphan^"},
	}}
	res, err := Load(context.Background(), src, "doc-2", LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Groups.Len() != 0 {
		t.Errorf("expected empty groups, got %d", res.Groups.Len())
	}
}

func TestLoad_MaxRecords(t *testing.T) {
	src := &fakeSource{values: map[string][]string{
		"doc-3": {"/1/10^a^", "/1/20^b^", "/1/30^c^"},
	}}
	_, err := Load(context.Background(), src, "doc-3", LoadOptions{MaxRecords: 2})
	if !errors.Is(err, ErrTooManyRecords) {
		t.Fatalf("expected ErrTooManyRecords, got %v", err)
	}
	if _, err := Load(context.Background(), src, "doc-3", LoadOptions{MaxRecords: 3}); err != nil {
		t.Errorf("limit equal to batch size should pass, got %v", err)
	}
}

func TestLoad_SourceError(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := Load(context.Background(), &fakeSource{err: boom}, "doc", LoadOptions{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestReport_AllUnplaceable(t *testing.T) {
	r := Reconstruct([]string{"nocaret", "plain^label^"}).Report
	if r.MaxDepth != 0 {
		t.Errorf("MaxDepth = %d, want 0", r.MaxDepth)
	}
	if r.UnplaceableCount != 2 || r.PlacedNodes != 0 {
		t.Errorf("expected 2 unplaceable and none placed, got %+v", r)
	}
	want := []DepthBucket{{Label: "unplaced", Count: 2}}
	if diff := cmp.Diff(want, r.DepthHistogram); diff != "" {
		t.Errorf("histogram mismatch (-want +got):\n%s", diff)
	}
}
