package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"webmify/internal/library"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the encoder, directories, and library database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			enc, err := ctx.newEncoderClient()
			if err != nil {
				return err
			}

			encoderOK := enc.Available(cmd.Context())
			probeOK := binaryOnPath(cfg.Encoder.ProbeBinary)
			mediaOK := dirExists(cfg.Paths.MediaDir)

			storeOK := true
			if store, err := library.Open(cfg); err != nil {
				storeOK = false
			} else {
				store.Close()
			}

			rows := [][]string{
				{"Encoder binary", cfg.Encoder.Binary, checkStatus(encoderOK)},
				{"Probe binary", cfg.Encoder.ProbeBinary, checkStatus(probeOK)},
				{"Media directory", cfg.Paths.MediaDir, checkStatus(mediaOK)},
				{"Library database", cfg.LibraryDBPath(), checkStatus(storeOK)},
				{"Conversion enabled", yesNo(cfg.Conversion.Enabled), "-"},
				{"Target format", cfg.Encoder.Extension, "-"},
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"Check", "Value", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if !encoderOK {
				return fmt.Errorf("encoder binary %q is not available; conversions will fail", cfg.Encoder.Binary)
			}
			if !mediaOK || !storeOK {
				return errors.New("environment check failed")
			}
			if !probeOK {
				fmt.Fprintln(out, "warning: probe binary missing; metadata will not be regenerated")
			}
			return nil
		},
	}
}

func binaryOnPath(binary string) bool {
	if binary == "" {
		return false
	}
	_, err := exec.LookPath(binary)
	return err == nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func checkStatus(ok bool) string {
	if ok {
		return "ok"
	}
	return "missing"
}
