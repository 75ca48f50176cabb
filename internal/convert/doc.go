// Package convert orchestrates single-file and batch video conversions.
//
// The Orchestrator turns one source file into the configured web format by
// invoking the encoder client, validating the output, and removing the source
// on success. It holds no state across calls; every conversion is an
// independent synchronous operation. The batch driver composes the
// orchestrator over an ordered item list and notifies the host store once per
// produced output, continuing past per-item failures.
//
// Failure handling follows a small taxonomy: a missing encoder binary, a
// non-zero encoder exit (including timeouts), an empty or absent output
// despite exit 0, and a source that could not be removed after a successful
// conversion. The last case is reported distinctly and still carries the
// output path so callers never lose a produced file.
package convert
