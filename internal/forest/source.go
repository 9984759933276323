package forest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrNoRecords means the source has nothing for the document. It is
	// distinct from records that were found but could not be placed.
	ErrNoRecords = errors.New("no coded values found")
	// ErrTooManyRecords means the batch exceeds LoadOptions.MaxRecords.
	ErrTooManyRecords = errors.New("too many coded values")
)

// RecordSource supplies the raw coded values of one document, in order.
type RecordSource interface {
	CodedValues(ctx context.Context, documentGUID string) ([]string, error)
}

// LoadOptions bounds a load.
type LoadOptions struct {
	MaxRecords int // 0 = unbounded
	Logger     *zap.Logger
}

// Load fetches a document's coded values from src and reconstructs them.
func Load(ctx context.Context, src RecordSource, documentGUID string, opts LoadOptions) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	raw, err := src.CodedValues(ctx, documentGUID)
	if err != nil {
		return nil, fmt.Errorf("loading coded values for %s: %w", documentGUID, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w for document %s", ErrNoRecords, documentGUID)
	}
	if opts.MaxRecords > 0 && len(raw) > opts.MaxRecords {
		return nil, fmt.Errorf("%w: document %s has %d, limit is %d",
			ErrTooManyRecords, documentGUID, len(raw), opts.MaxRecords)
	}

	result := Reconstruct(raw)
	log.Debug("Reconstructed document",
		zap.String("document", documentGUID),
		zap.Int("records", result.Report.TotalRecords),
		zap.Int("placed", result.Report.PlacedNodes),
		zap.Int("groups", result.Report.GroupCount))
	if result.Report.OrphanCount > 0 {
		log.Info("Orphaned coded values dropped",
			zap.String("document", documentGUID),
			zap.Int("orphans", result.Report.OrphanCount))
	}
	return result, nil
}
