package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const attachmentColumns = `id, external_id, path, url, mime_type, size_bytes,
	duration_seconds, width, height, converted_at, created_at, updated_at`

// Add registers a new attachment. A missing ExternalID is assigned a fresh
// UUID and the URL is derived from the configured base URL.
func (s *Store) Add(ctx context.Context, att *Attachment) (*Attachment, error) {
	if att == nil {
		return nil, errors.New("attachment is nil")
	}
	if att.Path == "" {
		return nil, errors.New("attachment path required")
	}
	if att.MIMEType == "" {
		return nil, errors.New("attachment mime type required")
	}

	externalID := att.ExternalID
	if externalID == "" {
		externalID = uuid.NewString()
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO attachments (
            external_id, path, url, mime_type, size_bytes,
            duration_seconds, width, height, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		externalID,
		att.Path,
		s.urlFor(att.Path),
		att.MIMEType,
		att.SizeBytes,
		att.DurationSeconds,
		att.Width,
		att.Height,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert attachment: %w", err)
	}

	return s.GetByExternalID(ctx, externalID)
}

// GetByExternalID fetches an attachment by its stable identifier.
func (s *Store) GetByExternalID(ctx context.Context, externalID string) (*Attachment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+attachmentColumns+` FROM attachments WHERE external_id = ?`, externalID)
	att, err := scanAttachment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get attachment: %w", err)
	}
	return att, nil
}

// FindByPath returns the attachment referencing a file path, or nil.
func (s *Store) FindByPath(ctx context.Context, path string) (*Attachment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+attachmentColumns+` FROM attachments WHERE path = ?`, path)
	att, err := scanAttachment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by path: %w", err)
	}
	return att, nil
}

// List returns all attachments ordered by creation time.
func (s *Store) List(ctx context.Context) ([]*Attachment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+attachmentColumns+` FROM attachments ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()
	return collectAttachments(rows)
}

// Videos returns video attachments that have not been converted yet, ordered
// by creation time. This is the batch driver's work list.
func (s *Store) Videos(ctx context.Context) ([]*Attachment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+attachmentColumns+` FROM attachments
         WHERE mime_type LIKE 'video/%' AND converted_at IS NULL
         ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list pending videos: %w", err)
	}
	defer rows.Close()
	return collectAttachments(rows)
}

// ApplyConversion persists the new file reference for an attachment and
// regenerates its derived metadata. The old path is replaced; converted_at
// marks the attachment as done so batch runs do not pick it up again.
func (s *Store) ApplyConversion(ctx context.Context, externalID, newPath, newMIMEType string, meta FileMetadata) error {
	if externalID == "" {
		return errors.New("external id required")
	}
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`UPDATE attachments
         SET path = ?, url = ?, mime_type = ?, size_bytes = ?,
             duration_seconds = ?, width = ?, height = ?,
             converted_at = ?, updated_at = ?
         WHERE external_id = ?`,
		newPath,
		s.urlFor(newPath),
		newMIMEType,
		meta.SizeBytes,
		meta.DurationSeconds,
		meta.Width,
		meta.Height,
		timestamp,
		timestamp,
		externalID,
	)
	if err != nil {
		return fmt.Errorf("apply conversion: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("attachment %q not found", externalID)
	}
	return nil
}

// Remove deletes an attachment by identifier.
func (s *Store) Remove(ctx context.Context, externalID string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM attachments WHERE external_id = ?`, externalID)
	if err != nil {
		return false, fmt.Errorf("delete attachment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Stats returns aggregate catalog counts.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
                COALESCE(SUM(CASE WHEN mime_type LIKE 'video/%' THEN 1 ELSE 0 END), 0),
                COALESCE(SUM(CASE WHEN converted_at IS NOT NULL THEN 1 ELSE 0 END), 0)
         FROM attachments`,
	).Scan(&stats.Total, &stats.Videos, &stats.Converted)
	if err != nil {
		return Stats{}, fmt.Errorf("catalog stats: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttachment(scanner rowScanner) (*Attachment, error) {
	var (
		att         Attachment
		url         sql.NullString
		convertedAt sql.NullString
		createdAt   string
		updatedAt   string
	)
	if err := scanner.Scan(
		&att.ID,
		&att.ExternalID,
		&att.Path,
		&url,
		&att.MIMEType,
		&att.SizeBytes,
		&att.DurationSeconds,
		&att.Width,
		&att.Height,
		&convertedAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	att.URL = url.String
	if convertedAt.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, convertedAt.String); err == nil {
			att.ConvertedAt = &ts
		}
	}
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		att.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		att.UpdatedAt = ts
	}
	return &att, nil
}

func collectAttachments(rows *sql.Rows) ([]*Attachment, error) {
	var items []*Attachment
	for rows.Next() {
		att, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, att)
	}
	return items, rows.Err()
}
