package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestConsoleHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, slog.LevelInfo))
	logger = WithComponent(logger, "batch")

	logger.Info("converted file",
		slog.String("source", "/media/clip.mp4"),
		slog.Int("exit_code", 0),
		slog.String("note", "has spaces"),
	)

	line := buf.String()
	for _, want := range []string{" INFO ", "batch: converted file", "source=/media/clip.mp4", "exit_code=0", `note="has spaces"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("console line %q missing %q", line, want)
		}
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should render as prefix, got %q", line)
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, slog.LevelWarn))
	logger.Info("ignored")
	logger.Warn("kept")
	out := buf.String()
	if strings.Contains(out, "ignored") {
		t.Fatalf("info record should be dropped, got %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn record missing from %q", out)
	}
}

func TestConsoleHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, slog.LevelInfo)).WithGroup("encoder")
	logger.Info("done", slog.String("binary", "ffmpeg"))
	if !strings.Contains(buf.String(), "encoder.binary=ffmpeg") {
		t.Fatalf("group prefix missing in %q", buf.String())
	}
}

func TestJSONHandlerKeys(t *testing.T) {
	var buf bytes.Buffer
	handler := newJSONHandler(&buf, slog.LevelInfo)
	record := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)
	if err := handler.Handle(context.Background(), record); err != nil {
		t.Fatalf("handle: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json log line: %v", err)
	}
	if _, ok := decoded["ts"]; !ok {
		t.Fatalf("expected ts key in %v", decoded)
	}
	if decoded["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", decoded["level"])
	}
	if decoded["msg"] != "hello" {
		t.Fatalf("unexpected msg %v", decoded["msg"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
