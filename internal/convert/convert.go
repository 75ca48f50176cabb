package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"webmify/internal/config"
	"webmify/internal/encoder"
)

// Settings captures the conversion policy for an orchestrator.
type Settings struct {
	Enabled      bool
	VideoCodec   string
	AudioCodec   string
	Extension    string
	ExtraArgs    []string
	KeepOriginal bool
}

// SettingsFromConfig maps application configuration onto conversion settings.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Enabled:      cfg.Conversion.Enabled,
		VideoCodec:   cfg.Encoder.VideoCodec,
		AudioCodec:   cfg.Encoder.AudioCodec,
		Extension:    cfg.Encoder.Extension,
		ExtraArgs:    cfg.Encoder.ExtraArgs,
		KeepOriginal: cfg.Conversion.KeepOriginal,
	}
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithLogger attaches a logger for per-conversion diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator converts one media file per call. It keeps no state across
// calls; callers must not submit the same source path concurrently.
type Orchestrator struct {
	enc      encoder.Client
	settings Settings
	logger   *slog.Logger
}

// New constructs an orchestrator around an encoder client.
func New(enc encoder.Client, settings Settings, opts ...Option) *Orchestrator {
	o := &Orchestrator{enc: enc, settings: settings, logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Settings returns the policy the orchestrator was built with.
func (o *Orchestrator) Settings() Settings {
	return o.settings
}

// Convert transcodes one source file into the target format.
//
// Disabled conversion or a non-video MIME type returns OutcomeSkipped with no
// side effects. Otherwise the encoder runs synchronously; on exit 0 with a
// non-empty output the source is removed (unless KeepOriginal) and the result
// is OutcomeSuccess. Any other path is OutcomeFailed with the source left
// untouched. A partially written output file is deliberately kept on failure
// so it can be inspected.
func (o *Orchestrator) Convert(ctx context.Context, req Request) Result {
	if !o.settings.Enabled {
		return skipped("conversion disabled")
	}
	if !IsVideo(req.MIMEType) {
		return skipped(fmt.Sprintf("mime type %q is not video", req.MIMEType))
	}

	info, err := os.Stat(req.SourcePath)
	if err != nil {
		return failed(FailureSourceMissing, fmt.Errorf("stat source: %w", err))
	}
	if info.IsDir() {
		return failed(FailureSourceMissing, fmt.Errorf("source %q is a directory", req.SourcePath))
	}

	outputPath := OutputPath(req.SourcePath, o.settings.Extension)
	o.logger.Debug("starting conversion",
		slog.String("source", req.SourcePath),
		slog.String("output", outputPath),
	)

	encRes, err := o.enc.Run(ctx, req.SourcePath, outputPath, encoder.Options{
		VideoCodec: o.settings.VideoCodec,
		AudioCodec: o.settings.AudioCodec,
		ExtraArgs:  o.settings.ExtraArgs,
	})
	if err != nil {
		kind := FailureEncoderExit
		if errors.Is(err, encoder.ErrBinaryNotFound) {
			kind = FailureBinaryMissing
		}
		o.logger.Warn("conversion failed",
			slog.String("source", req.SourcePath),
			slog.Int("exit_code", encRes.ExitCode),
			slog.Any("error", err),
		)
		result := failed(kind, err)
		result.ExitCode = encRes.ExitCode
		result.RawOutput = encRes.Output
		return result
	}

	outInfo, statErr := os.Stat(outputPath)
	if statErr != nil || outInfo.Size() == 0 {
		err := fmt.Errorf("encoder exited cleanly but produced no usable output at %q", outputPath)
		if statErr != nil {
			err = fmt.Errorf("encoder exited cleanly but output is missing: %w", statErr)
		}
		result := failed(FailureNoOutput, err)
		result.ExitCode = encRes.ExitCode
		result.RawOutput = encRes.Output
		return result
	}

	result := Result{
		Outcome:    OutcomeSuccess,
		OutputPath: outputPath,
		MIMEType:   TargetMIME(o.settings.Extension),
		ExitCode:   encRes.ExitCode,
		RawOutput:  encRes.Output,
	}

	if !o.settings.KeepOriginal {
		if err := os.Remove(req.SourcePath); err != nil {
			// The conversion itself succeeded; report the cleanup failure
			// distinctly and keep the output path so callers can adopt it.
			result.Outcome = OutcomeFailed
			result.Failure = FailureSourceDelete
			result.Err = fmt.Errorf("remove source after conversion: %w", err)
			o.logger.Warn("converted but source removal failed",
				slog.String("source", req.SourcePath),
				slog.String("output", outputPath),
				slog.Any("error", err),
			)
			return result
		}
	}

	o.logger.Info("conversion complete",
		slog.String("source", req.SourcePath),
		slog.String("output", outputPath),
		slog.Int64("output_bytes", outInfo.Size()),
	)
	return result
}
