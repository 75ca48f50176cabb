// Package encoder wraps the external encoder binary (ffmpeg by default).
//
// It exposes a Client interface plus a CLI implementation that launches one
// synchronous child process per conversion, captures combined stdout/stderr
// and the exit code, and enforces an optional wall-clock timeout. Tests swap
// the commandContext seam to avoid executing a real encoder.
package encoder
