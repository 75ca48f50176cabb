package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"webmify/internal/config"
	"webmify/internal/library"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var videosOnly bool
	var pendingOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered library attachments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				var attachments []*library.Attachment
				var err error
				if pendingOnly {
					attachments, err = store.Videos(cmd.Context())
				} else {
					attachments, err = store.List(cmd.Context())
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				rows := make([][]string, 0, len(attachments))
				for _, att := range attachments {
					if videosOnly && !att.IsVideo() {
						continue
					}
					rows = append(rows, []string{
						att.ExternalID,
						relToMediaDir(cfg, att.Path),
						att.MIMEType,
						formatBytes(att.SizeBytes),
						formatDuration(att.DurationSeconds),
						yesNo(att.IsConverted()),
					})
				}
				if len(rows) == 0 {
					fmt.Fprintln(out, "Library is empty")
					return nil
				}

				fmt.Fprintln(out, renderTable(out,
					[]string{"ID", "File", "Type", "Size", "Duration", "Converted"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				))

				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d attachment(s), %d video(s), %d converted\n",
					stats.Total, stats.Videos, stats.Converted)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&videosOnly, "videos", false, "Show only video attachments")
	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "Show only videos awaiting conversion")
	return cmd
}
