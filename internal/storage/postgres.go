package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"legalize-docs/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate applies the idempotent schema.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateRequest(ctx context.Context, req domain.ServiceRequest) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO service_requests (
			id, service_id, document_type, issuing_authority, state_of_issuance,
			file_name, file_size, file_mime, object_key, total_cents, status, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING
	`, req.ID, req.ServiceID, req.Form.DocumentType, req.Form.IssuingAuthority, req.Form.StateOfIssuance,
		req.File.Name, req.File.SizeBytes, req.File.MIMEType, req.File.ObjectKey,
		req.Summary.TotalCents, domain.StatusSubmitted, req.SubmittedAt)
	return err
}

func (s *PostgresStore) UpdateRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE service_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, requestID, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *PostgresStore) GetRequest(ctx context.Context, requestID string) (domain.RequestRecord, error) {
	var rec domain.RequestRecord
	row := s.db.QueryRowContext(ctx, `
		SELECT id, service_id, document_type, issuing_authority, state_of_issuance,
		       file_name, file_size, file_mime, COALESCE(object_key, ''), total_cents, status, submitted_at
		FROM service_requests
		WHERE id = $1
	`, requestID)
	if err := row.Scan(
		&rec.ID,
		&rec.ServiceID,
		&rec.Form.DocumentType,
		&rec.Form.IssuingAuthority,
		&rec.Form.StateOfIssuance,
		&rec.File.Name,
		&rec.File.SizeBytes,
		&rec.File.MIMEType,
		&rec.File.ObjectKey,
		&rec.TotalCents,
		&rec.Status,
		&rec.SubmittedAt,
	); err != nil {
		return domain.RequestRecord{}, err
	}
	return rec, nil
}

func (s *PostgresStore) InsertAudit(ctx context.Context, requestID string, state domain.AuditState, detail any) error {
	var payload []byte
	switch v := detail.(type) {
	case nil:
		payload = []byte("{}")
	case []byte:
		payload = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		payload = b
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_log (request_id, state, detail)
		VALUES ($1, $2, $3::jsonb)
	`, requestID, state, string(payload))
	return err
}

func (s *PostgresStore) SaveContactMessage(ctx context.Context, msg domain.ContactMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_messages (id, full_name, email, subject, message, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, msg.ID, msg.FullName, msg.Email, msg.Subject, msg.Message, msg.SentAt)
	return err
}

func (s *PostgresStore) CountRequests(ctx context.Context) (int64, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM service_requests`)
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return count, nil
}
