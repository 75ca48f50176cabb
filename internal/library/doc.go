// Package library persists the media attachment catalog in SQLite and plays
// the host-storage role in the conversion workflow.
//
// Attachments record a file path, its public URL, MIME type, and probed
// metadata. The store hands the batch driver its pending video attachments
// and, through ConversionRecorder, receives the new file reference after each
// successful conversion, regenerating derived metadata for the output file.
//
// Schema changes bump the version in schema.go; the database is a catalog
// that can be rebuilt with a rescan, not an archive.
package library
