package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"webmify/internal/config"
	"webmify/internal/convert"
	"webmify/internal/library"
	"webmify/internal/probe"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Register new video files found under the media directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				added, err := scanMediaDir(cmd.Context(), cfg, store)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(added) == 0 {
					fmt.Fprintln(out, "No new video files found")
					return nil
				}

				rows := make([][]string, 0, len(added))
				for _, att := range added {
					rows = append(rows, []string{
						relToMediaDir(cfg, att.Path),
						att.MIMEType,
						formatBytes(att.SizeBytes),
						formatDuration(att.DurationSeconds),
					})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"File", "Type", "Size", "Duration"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
				))
				fmt.Fprintf(out, "Registered %d new video file(s)\n", len(added))
				return nil
			})
		},
	}
}

type scanCandidate struct {
	path string
	mime string
	meta library.FileMetadata
}

// scanMediaDir walks the media directory, probes video files the library does
// not know yet, and registers them. Returns the newly added attachments.
func scanMediaDir(ctx context.Context, cfg *config.Config, store *library.Store) ([]*library.Attachment, error) {
	candidates, err := discoverNewVideos(ctx, cfg, store)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	if err := probeCandidates(ctx, cfg, candidates); err != nil {
		return nil, err
	}

	added := make([]*library.Attachment, 0, len(candidates))
	for _, cand := range candidates {
		att, err := store.Add(ctx, &library.Attachment{
			Path:            cand.path,
			MIMEType:        cand.mime,
			SizeBytes:       cand.meta.SizeBytes,
			DurationSeconds: cand.meta.DurationSeconds,
			Width:           cand.meta.Width,
			Height:          cand.meta.Height,
		})
		if err != nil {
			return added, fmt.Errorf("register %s: %w", cand.path, err)
		}
		added = append(added, att)
	}
	return added, nil
}

func discoverNewVideos(ctx context.Context, cfg *config.Config, store *library.Store) ([]*scanCandidate, error) {
	var candidates []*scanCandidate
	walkErr := filepath.WalkDir(cfg.Paths.MediaDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != cfg.Paths.MediaDir && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		mimeType, ok := convert.DetectMIME(path)
		if !ok {
			return nil
		}
		existing, err := store.FindByPath(ctx, path)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		candidates = append(candidates, &scanCandidate{path: path, mime: mimeType})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan media directory: %w", walkErr)
	}
	return candidates, nil
}

// probeCandidates fills file metadata concurrently. Probe failures are
// tolerated so a missing ffprobe never blocks registration.
func probeCandidates(ctx context.Context, cfg *config.Config, candidates []*scanCandidate) error {
	group, groupCtx := errgroup.WithContext(ctx)
	workers := cfg.Workflow.ScanWorkers
	if workers < 1 {
		workers = 1
	}
	group.SetLimit(workers)

	for _, cand := range candidates {
		group.Go(func() error {
			if info, err := os.Stat(cand.path); err == nil {
				cand.meta.SizeBytes = info.Size()
			}
			if result, err := probe.Inspect(groupCtx, cfg.Encoder.ProbeBinary, cand.path); err == nil {
				cand.meta.DurationSeconds = result.DurationSeconds()
				cand.meta.Width, cand.meta.Height = result.Dimensions()
			}
			return groupCtx.Err()
		})
	}
	return group.Wait()
}

func relToMediaDir(cfg *config.Config, path string) string {
	rel, err := filepath.Rel(cfg.Paths.MediaDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
