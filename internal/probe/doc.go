// Package probe inspects media files with ffprobe to regenerate derived
// metadata (duration, dimensions, container format) for library attachments.
package probe
