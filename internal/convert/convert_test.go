package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"webmify/internal/encoder"
)

type fakeEncoder struct {
	calls []string
	run   func(inputPath, outputPath string, opts encoder.Options) (encoder.Result, error)
}

func (f *fakeEncoder) Run(ctx context.Context, inputPath, outputPath string, opts encoder.Options) (encoder.Result, error) {
	f.calls = append(f.calls, inputPath)
	if f.run == nil {
		return encoder.Result{}, nil
	}
	return f.run(inputPath, outputPath, opts)
}

func (f *fakeEncoder) Available(ctx context.Context) bool {
	return true
}

func testSettings() Settings {
	return Settings{
		Enabled:    true,
		VideoCodec: "libvpx-vp9",
		AudioCodec: "libopus",
		Extension:  "webm",
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("source bytes"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

// writingEncoder simulates a successful encode by writing payload to the
// output path.
func writingEncoder(payload string) *fakeEncoder {
	return &fakeEncoder{run: func(inputPath, outputPath string, opts encoder.Options) (encoder.Result, error) {
		if err := os.WriteFile(outputPath, []byte(payload), 0o644); err != nil {
			return encoder.Result{ExitCode: encoder.UnknownExitCode}, err
		}
		return encoder.Result{ExitCode: 0, Output: "encoded ok"}, nil
	}}
}

func TestConvertSkipsNonVideoMIME(t *testing.T) {
	enc := &fakeEncoder{}
	orch := New(enc, testSettings(), WithLogger(quietLogger()))
	source := writeSource(t, t.TempDir(), "photo.jpg")

	result := orch.Convert(context.Background(), Request{SourcePath: source, MIMEType: "image/jpeg"})

	if result.Outcome != OutcomeSkipped {
		t.Fatalf("expected skipped, got %v", result.Outcome)
	}
	if len(enc.calls) != 0 {
		t.Fatalf("encoder must not be invoked for skipped requests, got %d calls", len(enc.calls))
	}
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("source must be untouched: %v", err)
	}
}

func TestConvertSkipsWhenDisabled(t *testing.T) {
	enc := &fakeEncoder{}
	settings := testSettings()
	settings.Enabled = false
	orch := New(enc, settings, WithLogger(quietLogger()))
	source := writeSource(t, t.TempDir(), "clip.mp4")

	result := orch.Convert(context.Background(), Request{SourcePath: source, MIMEType: "video/mp4"})

	if result.Outcome != OutcomeSkipped {
		t.Fatalf("expected skipped, got %v", result.Outcome)
	}
	if len(enc.calls) != 0 {
		t.Fatal("encoder must not run while conversion is disabled")
	}
}

func TestConvertSuccessRemovesSource(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "clip.mp4")
	orch := New(writingEncoder("webm payload"), testSettings(), WithLogger(quietLogger()))

	result := orch.Convert(context.Background(), Request{SourcePath: source, MIMEType: "video/mp4"})

	if result.Outcome != OutcomeSuccess {
		t.Fatalf("expected success, got %v (%v)", result.Outcome, result.Err)
	}
	want := filepath.Join(dir, "clip.webm")
	if result.OutputPath != want {
		t.Fatalf("expected output %q, got %q", want, result.OutputPath)
	}
	if result.MIMEType != "video/webm" {
		t.Fatalf("expected target mime video/webm, got %q", result.MIMEType)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if _, err := os.Stat(source); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("source should be removed after success, stat err=%v", err)
	}
}

func TestConvertKeepOriginalRetainsSource(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "clip.mp4")
	settings := testSettings()
	settings.KeepOriginal = true
	orch := New(writingEncoder("webm payload"), settings, WithLogger(quietLogger()))

	result := orch.Convert(context.Background(), Request{SourcePath: source, MIMEType: "video/mp4"})

	if result.Outcome != OutcomeSuccess {
		t.Fatalf("expected success, got %v (%v)", result.Outcome, result.Err)
	}
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("source should be kept: %v", err)
	}
}

func TestConvertFailureLeavesSourceUntouched(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "clip.mp4")
	enc := &fakeEncoder{run: func(inputPath, outputPath string, opts encoder.Options) (encoder.Result, error) {
		return encoder.Result{ExitCode: 1, Output: "conversion blew up"}, fmt.Errorf("encoder exited with status 1")
	}}
	orch := New(enc, testSettings(), WithLogger(quietLogger()))

	result := orch.Convert(context.Background(), Request{SourcePath: source, MIMEType: "video/mp4"})

	if result.Outcome != OutcomeFailed || result.Failure != FailureEncoderExit {
		t.Fatalf("expected encoder_exit failure, got %v/%v", result.Outcome, result.Failure)
	}
	if result.ExitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", result.ExitCode)
	}
	if result.RawOutput != "conversion blew up" {
		t.Fatalf("raw output not propagated: %q", result.RawOutput)
	}
	data, err := os.ReadFile(source)
	if err != nil || string(data) != "source bytes" {
		t.Fatalf("source must survive failure unmodified (err=%v data=%q)", err, data)
	}
}

func TestConvertFailureKeepsPartialOutput(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "clip.mp4")
	enc := &fakeEncoder{run: func(inputPath, outputPath string, opts encoder.Options) (encoder.Result, error) {
		if err := os.WriteFile(outputPath, []byte("truncated"), 0o644); err != nil {
			return encoder.Result{}, err
		}
		return encoder.Result{ExitCode: 1, Output: "ran out of disk"}, fmt.Errorf("encoder exited with status 1")
	}}
	orch := New(enc, testSettings(), WithLogger(quietLogger()))

	result := orch.Convert(context.Background(), Request{SourcePath: source, MIMEType: "video/mp4"})

	if result.Outcome != OutcomeFailed {
		t.Fatalf("expected failure, got %v", result.Outcome)
	}
	// Partial outputs are kept for inspection rather than cleaned up.
	if _, err := os.Stat(filepath.Join(dir, "clip.webm")); err != nil {
		t.Fatalf("partial output should remain on disk: %v", err)
	}
}

func TestConvertBinaryMissing(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "clip.mp4")
	enc := &fakeEncoder{run: func(inputPath, outputPath string, opts encoder.Options) (encoder.Result, error) {
		return encoder.Result{ExitCode: encoder.UnknownExitCode, Output: "exec: not found"},
			fmt.Errorf("%w: %q", encoder.ErrBinaryNotFound, "ffmpeg")
	}}
	orch := New(enc, testSettings(), WithLogger(quietLogger()))

	result := orch.Convert(context.Background(), Request{SourcePath: source, MIMEType: "video/mp4"})

	if result.Failure != FailureBinaryMissing {
		t.Fatalf("expected binary_missing, got %v", result.Failure)
	}
	if result.ExitCode != encoder.UnknownExitCode {
		t.Fatalf("expected sentinel exit code, got %d", result.ExitCode)
	}
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("no delete may be attempted when the binary is missing: %v", err)
	}
}

func TestConvertEmptyOutputIsFailure(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "clip.mp4")
	enc := &fakeEncoder{run: func(inputPath, outputPath string, opts encoder.Options) (encoder.Result, error) {
		// Exit 0 but write nothing of substance.
		return encoder.Result{ExitCode: 0}, os.WriteFile(outputPath, nil, 0o644)
	}}
	orch := New(enc, testSettings(), WithLogger(quietLogger()))

	result := orch.Convert(context.Background(), Request{SourcePath: source, MIMEType: "video/mp4"})

	if result.Failure != FailureNoOutput {
		t.Fatalf("expected no_output failure, got %v", result.Failure)
	}
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("source must survive a no-output failure: %v", err)
	}
}

func TestConvertMissingSource(t *testing.T) {
	enc := &fakeEncoder{}
	orch := New(enc, testSettings(), WithLogger(quietLogger()))

	result := orch.Convert(context.Background(), Request{
		SourcePath: filepath.Join(t.TempDir(), "gone.mp4"),
		MIMEType:   "video/mp4",
	})

	if result.Failure != FailureSourceMissing {
		t.Fatalf("expected source_missing, got %v", result.Failure)
	}
	if len(enc.calls) != 0 {
		t.Fatal("encoder must not run when the source is missing")
	}
}

func TestConvertReportsSourceDeleteDistinctly(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not restrict root")
	}

	dir := t.TempDir()
	source := writeSource(t, dir, "clip.mp4")
	enc := &fakeEncoder{run: func(inputPath, outputPath string, opts encoder.Options) (encoder.Result, error) {
		if err := os.WriteFile(outputPath, []byte("webm payload"), 0o644); err != nil {
			return encoder.Result{}, err
		}
		// Lock the directory after the output lands so only the source
		// removal fails.
		if err := os.Chmod(dir, 0o555); err != nil {
			return encoder.Result{}, err
		}
		return encoder.Result{ExitCode: 0}, nil
	}}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })
	orch := New(enc, testSettings(), WithLogger(quietLogger()))

	result := orch.Convert(context.Background(), Request{SourcePath: source, MIMEType: "video/mp4"})

	if result.Failure != FailureSourceDelete {
		t.Fatalf("expected source_delete failure, got %v/%v", result.Outcome, result.Failure)
	}
	if result.OutputPath == "" {
		t.Fatal("output path must be reported so the caller can adopt the converted file")
	}
	if !result.Converted() {
		t.Fatal("a source-delete failure still counts as converted")
	}
}
