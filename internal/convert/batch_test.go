package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"webmify/internal/encoder"
)

type recordingNotifier struct {
	applied []string
	err     error
}

func (n *recordingNotifier) ConversionApplied(ctx context.Context, externalID, newPath, newMIMEType string) error {
	n.applied = append(n.applied, externalID)
	return n.err
}

func batchItems(t *testing.T, dir string, names ...string) []Item {
	t.Helper()
	items := make([]Item, 0, len(names))
	for i, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("source bytes"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		items = append(items, Item{
			ExternalID: fmt.Sprintf("att-%d", i+1),
			SourcePath: path,
			MIMEType:   "video/mp4",
		})
	}
	return items
}

func TestConvertAllContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	items := batchItems(t, dir, "one.mp4", "two.mp4", "three.mp4")

	enc := &fakeEncoder{run: func(inputPath, outputPath string, opts encoder.Options) (encoder.Result, error) {
		if strings.Contains(inputPath, "two") {
			return encoder.Result{ExitCode: 1, Output: "boom"}, fmt.Errorf("encoder exited with status 1")
		}
		if err := os.WriteFile(outputPath, []byte("webm payload"), 0o644); err != nil {
			return encoder.Result{}, err
		}
		return encoder.Result{ExitCode: 0}, nil
	}}
	orch := New(enc, testSettings(), WithLogger(quietLogger()))
	notifier := &recordingNotifier{}

	results := orch.ConvertAll(context.Background(), items, notifier)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Result.Outcome != OutcomeSuccess ||
		results[1].Result.Outcome != OutcomeFailed ||
		results[2].Result.Outcome != OutcomeSuccess {
		t.Fatalf("unexpected outcomes: %v %v %v",
			results[0].Result.Outcome, results[1].Result.Outcome, results[2].Result.Outcome)
	}
	if len(notifier.applied) != 2 {
		t.Fatalf("notifier must be called exactly twice, got %v", notifier.applied)
	}
	if notifier.applied[0] != "att-1" || notifier.applied[1] != "att-3" {
		t.Fatalf("notifier called for wrong items: %v", notifier.applied)
	}

	summary := Summarize(results)
	if summary.Converted != 2 || summary.Failed != 1 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestConvertAllSkippedItemsAreNotNotified(t *testing.T) {
	dir := t.TempDir()
	items := batchItems(t, dir, "clip.mp4")
	items[0].MIMEType = "audio/mpeg"

	orch := New(&fakeEncoder{}, testSettings(), WithLogger(quietLogger()))
	notifier := &recordingNotifier{}

	results := orch.ConvertAll(context.Background(), items, notifier)

	if results[0].Result.Outcome != OutcomeSkipped {
		t.Fatalf("expected skipped, got %v", results[0].Result.Outcome)
	}
	if len(notifier.applied) != 0 {
		t.Fatalf("skipped items must not notify, got %v", notifier.applied)
	}
}

func TestConvertAllNilNotifier(t *testing.T) {
	dir := t.TempDir()
	items := batchItems(t, dir, "clip.mp4")

	orch := New(writingEncoder("webm payload"), testSettings(), WithLogger(quietLogger()))
	results := orch.ConvertAll(context.Background(), items, nil)

	if results[0].Result.Outcome != OutcomeSuccess {
		t.Fatalf("expected success without a notifier, got %v", results[0].Result.Outcome)
	}
}

func TestConvertAllNotifierErrorDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	items := batchItems(t, dir, "one.mp4", "two.mp4")

	orch := New(writingEncoder("webm payload"), testSettings(), WithLogger(quietLogger()))
	notifier := &recordingNotifier{err: errors.New("store unavailable")}

	results := orch.ConvertAll(context.Background(), items, notifier)

	if len(results) != 2 {
		t.Fatalf("expected both items processed, got %d", len(results))
	}
	if results[0].Result.Err == nil {
		t.Fatal("notification failure should surface on the item result")
	}
	if len(notifier.applied) != 2 {
		t.Fatalf("notifier should still be attempted per item, got %v", notifier.applied)
	}
}

func TestConvertAllStopsOnCancelledContext(t *testing.T) {
	dir := t.TempDir()
	items := batchItems(t, dir, "one.mp4", "two.mp4", "three.mp4")

	ctx, cancel := context.WithCancel(context.Background())
	converted := 0
	enc := &fakeEncoder{run: func(inputPath, outputPath string, opts encoder.Options) (encoder.Result, error) {
		converted++
		if converted == 1 {
			cancel()
		}
		if err := os.WriteFile(outputPath, []byte("webm payload"), 0o644); err != nil {
			return encoder.Result{}, err
		}
		return encoder.Result{ExitCode: 0}, nil
	}}
	orch := New(enc, testSettings(), WithLogger(quietLogger()))

	results := orch.ConvertAll(ctx, items, nil)

	if len(results) != 1 {
		t.Fatalf("expected processing to stop after cancellation, got %d results", len(results))
	}
}
