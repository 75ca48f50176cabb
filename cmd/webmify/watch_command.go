package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"webmify/internal/config"
	"webmify/internal/convert"
	"webmify/internal/library"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll the media directory and convert videos as they appear",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			orchestrator, err := ctx.newOrchestrator("watch")
			if err != nil {
				return err
			}
			logger, err := ctx.componentLogger("watch")
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				recorder := library.NewConversionRecorder(store, cfg.Encoder.ProbeBinary, logger)

				interval := time.Duration(cfg.Workflow.WatchPollInterval) * time.Second
				if interval <= 0 {
					interval = 10 * time.Second
				}

				logger.Info("watching media directory",
					slog.String("dir", cfg.Paths.MediaDir),
					slog.Duration("interval", interval),
				)

				// Failed conversions are not retried within a session so a
				// broken file does not burn encoder time on every poll.
				attempted := make(map[string]struct{})

				ticker := time.NewTicker(interval)
				defer ticker.Stop()

				for {
					if err := watchCycle(signalCtx, cfg, store, orchestrator, recorder, logger, attempted); err != nil {
						if signalCtx.Err() != nil {
							break
						}
						logger.Error("watch cycle failed", slog.Any("error", err))
					}

					select {
					case <-signalCtx.Done():
						logger.Info("watch stopped")
						return nil
					case <-ticker.C:
					}
				}

				logger.Info("watch stopped")
				return nil
			})
		},
	}
}

func watchCycle(
	ctx context.Context,
	cfg *config.Config,
	store *library.Store,
	orchestrator *convert.Orchestrator,
	recorder *library.ConversionRecorder,
	logger *slog.Logger,
	attempted map[string]struct{},
) error {
	added, err := scanMediaDir(ctx, cfg, store)
	if err != nil {
		return err
	}
	if len(added) > 0 {
		logger.Info("registered new video files", slog.Int("count", len(added)))
	}

	pending, err := store.Videos(ctx)
	if err != nil {
		return err
	}

	items := make([]convert.Item, 0, len(pending))
	for _, att := range pending {
		if _, seen := attempted[att.ExternalID]; seen {
			continue
		}
		items = append(items, convert.Item{
			ExternalID: att.ExternalID,
			SourcePath: att.Path,
			MIMEType:   att.MIMEType,
		})
	}
	if len(items) == 0 {
		return nil
	}

	results := orchestrator.ConvertAll(ctx, items, recorder)
	for _, r := range results {
		attempted[r.Item.ExternalID] = struct{}{}
	}

	summary := convert.Summarize(results)
	logger.Info("watch cycle complete",
		slog.Int("converted", summary.Converted),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
	)
	if summary.Failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", summary.Failed)
	}
	return nil
}
