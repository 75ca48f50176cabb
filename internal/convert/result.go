package convert

// Outcome classifies the result of one conversion attempt.
type Outcome string

const (
	// OutcomeSuccess means the encoder produced a non-empty output and the
	// source was handled per policy.
	OutcomeSuccess Outcome = "success"
	// OutcomeSkipped means the conversion was not attempted; no filesystem or
	// process side effects occurred.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the conversion was attempted and did not complete
	// cleanly. The source file is never removed on failure.
	OutcomeFailed Outcome = "failed"
)

// FailureKind narrows an OutcomeFailed result.
type FailureKind string

const (
	FailureNone          FailureKind = ""
	FailureSourceMissing FailureKind = "source_missing"
	FailureBinaryMissing FailureKind = "binary_missing"
	FailureEncoderExit   FailureKind = "encoder_exit"
	FailureNoOutput      FailureKind = "no_output"
	// FailureSourceDelete means the conversion itself succeeded but the
	// source file could not be removed. OutputPath is still populated so the
	// caller can adopt the new file.
	FailureSourceDelete FailureKind = "source_delete"
)

// Request describes one file to convert.
type Request struct {
	SourcePath string
	MIMEType   string
	// ExternalID carries the host store identifier, when known. The
	// orchestrator ignores it; the batch driver uses it for notification.
	ExternalID string
}

// Result reports the outcome of one conversion.
type Result struct {
	Outcome    Outcome
	OutputPath string
	MIMEType   string
	ExitCode   int
	RawOutput  string
	Failure    FailureKind
	Reason     string
	Err        error
}

// Converted reports whether a new output file was produced, including the
// delete-failure case where the source remains behind.
func (r Result) Converted() bool {
	return r.Outcome == OutcomeSuccess || r.Failure == FailureSourceDelete
}

func skipped(reason string) Result {
	return Result{Outcome: OutcomeSkipped, Reason: reason}
}

func failed(kind FailureKind, err error) Result {
	result := Result{Outcome: OutcomeFailed, Failure: kind, Err: err}
	if err != nil {
		result.Reason = err.Error()
	}
	return result
}
