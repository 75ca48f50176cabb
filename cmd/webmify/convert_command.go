package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"webmify/internal/config"
	"webmify/internal/convert"
	"webmify/internal/library"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var mimeOverride string

	cmd := &cobra.Command{
		Use:   "convert FILE...",
		Short: "Convert video files and update matching library entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orchestrator, err := ctx.newOrchestrator("convert")
			if err != nil {
				return err
			}
			logger, err := ctx.componentLogger("convert")
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				recorder := library.NewConversionRecorder(store, cfg.Encoder.ProbeBinary, logger)
				out := cmd.OutOrStdout()

				failed := 0
				for _, arg := range args {
					path, err := config.ExpandPath(arg)
					if err != nil {
						return err
					}

					mimeType := mimeOverride
					if mimeType == "" {
						mimeType, _ = convert.DetectMIME(path)
					}

					result := orchestrator.Convert(cmd.Context(), convert.Request{
						SourcePath: path,
						MIMEType:   mimeType,
					})

					switch {
					case result.Converted():
						fmt.Fprintf(out, "converted %s -> %s\n", path, result.OutputPath)
						if att, err := store.FindByPath(cmd.Context(), path); err != nil {
							return err
						} else if att != nil {
							if err := recorder.ConversionApplied(cmd.Context(), att.ExternalID, result.OutputPath, result.MIMEType); err != nil {
								fmt.Fprintf(out, "warning: library update failed for %s: %v\n", path, err)
							}
						}
						if result.Failure == convert.FailureSourceDelete {
							fmt.Fprintf(out, "warning: original %s could not be removed\n", path)
						}
					case result.Outcome == convert.OutcomeSkipped:
						fmt.Fprintf(out, "skipped %s: %s\n", path, result.Reason)
					default:
						failed++
						fmt.Fprintf(out, "failed %s: %s\n", path, result.Reason)
						if result.RawOutput != "" {
							fmt.Fprintln(out, result.RawOutput)
						}
					}
				}

				if failed > 0 {
					return fmt.Errorf("%d of %d conversions failed", failed, len(args))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&mimeOverride, "mime", "", "Override the detected MIME type")
	return cmd
}
