package library

import (
	"context"
	"log/slog"
	"os"

	"webmify/internal/convert"
	"webmify/internal/probe"
)

// ConversionRecorder implements the batch driver's notification contract
// against the library store. On each applied conversion it regenerates the
// attachment's derived metadata by probing the new file; probe failures are
// tolerated since the reference swap matters more than fresh metadata.
type ConversionRecorder struct {
	store       *Store
	probeBinary string
	logger      *slog.Logger
}

// NewConversionRecorder builds a recorder around the store.
func NewConversionRecorder(store *Store, probeBinary string, logger *slog.Logger) *ConversionRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConversionRecorder{store: store, probeBinary: probeBinary, logger: logger}
}

// ConversionApplied persists the new file reference and refreshed metadata.
func (r *ConversionRecorder) ConversionApplied(ctx context.Context, externalID, newPath, newMIMEType string) error {
	var meta FileMetadata
	if info, err := os.Stat(newPath); err == nil {
		meta.SizeBytes = info.Size()
	}
	if result, err := probe.Inspect(ctx, r.probeBinary, newPath); err == nil {
		meta.DurationSeconds = result.DurationSeconds()
		meta.Width, meta.Height = result.Dimensions()
	} else {
		r.logger.Debug("metadata probe failed for converted file",
			slog.String("path", newPath),
			slog.Any("error", err),
		)
	}
	return r.store.ApplyConversion(ctx, externalID, newPath, newMIMEType, meta)
}

var _ convert.Notifier = (*ConversionRecorder)(nil)
