package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"webmify/internal/config"
	"webmify/internal/convert"
	"webmify/internal/library"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Convert all pending library videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				pending, err := store.Videos(signalCtx)
				if err != nil {
					return err
				}
				if limit > 0 && len(pending) > limit {
					pending = pending[:limit]
				}

				out := cmd.OutOrStdout()
				if len(pending) == 0 {
					fmt.Fprintln(out, "No pending videos to convert")
					return nil
				}

				if dryRun {
					rows := make([][]string, 0, len(pending))
					for _, att := range pending {
						rows = append(rows, []string{
							relToMediaDir(cfg, att.Path),
							att.MIMEType,
							formatBytes(att.SizeBytes),
						})
					}
					fmt.Fprintln(out, renderTable(out,
						[]string{"File", "Type", "Size"},
						rows,
						[]columnAlignment{alignLeft, alignLeft, alignRight},
					))
					fmt.Fprintf(out, "%d video(s) would be converted\n", len(pending))
					return nil
				}

				lock := flock.New(cfg.BatchLockPath())
				ok, err := lock.TryLock()
				if err != nil {
					return fmt.Errorf("acquire batch lock: %w", err)
				}
				if !ok {
					return errors.New("another batch conversion is already running")
				}
				defer lock.Unlock()

				orchestrator, err := ctx.newOrchestrator("batch")
				if err != nil {
					return err
				}
				logger, err := ctx.componentLogger("batch")
				if err != nil {
					return err
				}
				recorder := library.NewConversionRecorder(store, cfg.Encoder.ProbeBinary, logger)

				items := make([]convert.Item, 0, len(pending))
				for _, att := range pending {
					items = append(items, convert.Item{
						ExternalID: att.ExternalID,
						SourcePath: att.Path,
						MIMEType:   att.MIMEType,
					})
				}

				results := orchestrator.ConvertAll(signalCtx, items, recorder)
				printBatchResults(cmd, cfg, results)

				summary := convert.Summarize(results)
				fmt.Fprintf(out, "Converted %d, skipped %d, failed %d\n",
					summary.Converted, summary.Skipped, summary.Failed)
				if signalCtx.Err() != nil && len(results) < len(items) {
					fmt.Fprintf(out, "Interrupted with %d video(s) remaining\n", len(items)-len(results))
				}
				if summary.Failed > 0 {
					return fmt.Errorf("%d conversion(s) failed", summary.Failed)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Convert at most this many videos (0 means all)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List pending videos without converting")
	return cmd
}

func printBatchResults(cmd *cobra.Command, cfg *config.Config, results []convert.ItemResult) {
	if len(results) == 0 {
		return
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := string(r.Result.Outcome)
		if r.Result.Failure == convert.FailureSourceDelete {
			status = "converted (original kept)"
		} else if r.Result.Outcome == convert.OutcomeFailed {
			status = fmt.Sprintf("failed (%s)", r.Result.Failure)
		}
		detail := r.Result.Reason
		if r.Result.Converted() {
			detail = relToMediaDir(cfg, r.Result.OutputPath)
		}
		rows = append(rows, []string{
			relToMediaDir(cfg, r.Item.SourcePath),
			status,
			detail,
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(out,
		[]string{"File", "Status", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
}
