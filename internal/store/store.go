package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ReportRecord represents a stored readiness report row.
type ReportRecord struct {
	ID           int64
	RunID        string
	Hostname     string
	MachineLabel string
	Eligible     bool
	CollectedAt  time.Time
	StoredAt     time.Time
	ReportJSON   string
}

// ListFilter holds optional query parameters for listing reports.
// Eligible is tri-state: nil matches both outcomes.
type ListFilter struct {
	Hostname        string
	MachineLabel    string
	Eligible        *bool
	CollectedAfter  *time.Time
	CollectedBefore *time.Time
	PageSize        int
	Page            int
}

// Store provides CRUD operations for readiness report records.
type Store struct {
	db *sql.DB
}

// New opens the SQLite database at path and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores a report record and returns the new ID and stored_at time.
func (s *Store) Insert(ctx context.Context, rec *ReportRecord) (int64, time.Time, error) {
	storedAt := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO reports (run_id, hostname, machine_label, eligible, collected_at, stored_at, report_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Hostname,
		rec.MachineLabel,
		boolToInt(rec.Eligible),
		rec.CollectedAt.UTC().Format(time.RFC3339),
		storedAt.Format(time.RFC3339),
		rec.ReportJSON,
	)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("insert report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("get last insert id: %w", err)
	}

	return id, storedAt, nil
}

// Get retrieves a report record by ID.
func (s *Store) Get(ctx context.Context, id int64) (*ReportRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, run_id, hostname, machine_label, eligible, collected_at, stored_at, report_json
		 FROM reports WHERE id = ?`, id)

	return scanRecord(row)
}

// GetLatestByHostname retrieves the most recent report for a hostname.
func (s *Store) GetLatestByHostname(ctx context.Context, hostname string) (*ReportRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, run_id, hostname, machine_label, eligible, collected_at, stored_at, report_json
		 FROM reports WHERE hostname = ? ORDER BY collected_at DESC LIMIT 1`, hostname)

	return scanRecord(row)
}

// Delete removes a report record by ID.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// List returns report records matching the given filter. The report
// body is omitted from list results.
func (s *Store) List(ctx context.Context, f ListFilter) ([]ReportRecord, int, error) {
	where, args := buildWhere(f)

	// Count total matching rows.
	var total int
	countQuery := "SELECT COUNT(*) FROM reports" + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	// Fetch page.
	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * pageSize

	query := `SELECT id, run_id, hostname, machine_label, eligible, collected_at, stored_at, ''
		FROM reports` + where + ` ORDER BY collected_at DESC LIMIT ? OFFSET ?`
	args = append(args, pageSize, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var records []ReportRecord
	for rows.Next() {
		rec, err := scanRecordFrom(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *rec)
	}

	return records, total, rows.Err()
}

// Purge deletes report records older than the given duration.
func (s *Store) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339)
	result, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE collected_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge reports: %w", err)
	}
	return result.RowsAffected()
}

func buildWhere(f ListFilter) (string, []any) {
	var conditions []string
	var args []any

	if f.Hostname != "" {
		conditions = append(conditions, "hostname = ?")
		args = append(args, f.Hostname)
	}
	if f.MachineLabel != "" {
		conditions = append(conditions, "machine_label = ?")
		args = append(args, f.MachineLabel)
	}
	if f.Eligible != nil {
		conditions = append(conditions, "eligible = ?")
		args = append(args, boolToInt(*f.Eligible))
	}
	if f.CollectedAfter != nil {
		conditions = append(conditions, "collected_at >= ?")
		args = append(args, f.CollectedAfter.UTC().Format(time.RFC3339))
	}
	if f.CollectedBefore != nil {
		conditions = append(conditions, "collected_at <= ?")
		args = append(args, f.CollectedBefore.UTC().Format(time.RFC3339))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	where := " WHERE "
	for i, c := range conditions {
		if i > 0 {
			where += " AND "
		}
		where += c
	}
	return where, args
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row *sql.Row) (*ReportRecord, error) {
	return scanRecordFrom(row)
}

func scanRecordFrom(sc scanner) (*ReportRecord, error) {
	var rec ReportRecord
	var eligible int
	var collectedAt, storedAt string
	err := sc.Scan(&rec.ID, &rec.RunID, &rec.Hostname, &rec.MachineLabel, &eligible, &collectedAt, &storedAt, &rec.ReportJSON)
	if err != nil {
		return nil, err
	}

	rec.Eligible = eligible != 0
	rec.CollectedAt, _ = time.Parse(time.RFC3339, collectedAt)
	rec.StoredAt, _ = time.Parse(time.RFC3339, storedAt)

	return &rec, nil
}
