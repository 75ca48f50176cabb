package convert

import (
	"context"
	"log/slog"
)

// Item is one batch entry: a host-store identifier plus the file it references.
type Item struct {
	ExternalID string
	SourcePath string
	MIMEType   string
}

// ItemResult pairs a batch item with its conversion result.
type ItemResult struct {
	Item   Item
	Result Result
}

// Notifier receives the new file reference after a conversion produced an
// output. Implementations persist the reference and regenerate any derived
// metadata; URL derivation is the implementation's concern since only the
// store knows how paths map to URLs.
type Notifier interface {
	ConversionApplied(ctx context.Context, externalID, newPath, newMIMEType string) error
}

// ConvertAll drives the orchestrator over an ordered item list. Items are
// processed synchronously, one at a time; a per-item failure never aborts the
// batch. The notifier is invoked exactly once per item that produced an
// output (including the source-delete failure case). Processing stops early
// only when ctx is cancelled; already-collected results are returned.
func (o *Orchestrator) ConvertAll(ctx context.Context, items []Item, notifier Notifier) []ItemResult {
	results := make([]ItemResult, 0, len(items))
	for _, item := range items {
		if ctx.Err() != nil {
			o.logger.Warn("batch interrupted", slog.Int("remaining", len(items)-len(results)))
			break
		}

		result := o.Convert(ctx, Request{
			SourcePath: item.SourcePath,
			MIMEType:   item.MIMEType,
			ExternalID: item.ExternalID,
		})

		if result.Converted() && notifier != nil && item.ExternalID != "" {
			if err := notifier.ConversionApplied(ctx, item.ExternalID, result.OutputPath, result.MIMEType); err != nil {
				o.logger.Warn("conversion applied but host notification failed",
					slog.String("external_id", item.ExternalID),
					slog.String("output", result.OutputPath),
					slog.Any("error", err),
				)
				if result.Err == nil {
					result.Err = err
				}
			}
		}

		results = append(results, ItemResult{Item: item, Result: result})
	}
	return results
}

// Summary aggregates batch outcomes for reporting.
type Summary struct {
	Converted int
	Skipped   int
	Failed    int
}

// Summarize tallies per-item results into a Summary. A source-delete failure
// counts as converted since an output was produced and adopted.
func Summarize(results []ItemResult) Summary {
	var summary Summary
	for _, r := range results {
		switch {
		case r.Result.Converted():
			summary.Converted++
		case r.Result.Outcome == OutcomeSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
	}
	return summary
}
