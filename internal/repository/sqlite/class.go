package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/tharindu/classtrack/internal/apperror"
	"github.com/tharindu/classtrack/internal/model"
	"github.com/tharindu/classtrack/internal/repository"
)

// Compile-time check that *DB implements the repository interface — a
// missing method fails the build here instead of at a distant call site.
var _ repository.ClassRepository = (*DB)(nil)

const classColumns = `id, title, subject, grade, teacher, schedule, room,
	capacity, fee, currency, status, start_date, end_date, created_at, updated_at`

// Create inserts a new class. The ID (xid: 20 chars, URL-safe, sortable by
// creation time) and the timestamps are assigned here; the caller's struct
// is updated in place so the handler can return the full record.
func (db *DB) Create(ctx context.Context, class *model.Class) error {
	class.ID = xid.New().String()

	now := time.Now()
	class.CreatedAt = now
	class.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO classes (`+classColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		class.ID, class.Title, class.Subject, class.Grade, class.Teacher,
		class.Schedule, class.Room, class.Capacity, class.Fee, class.Currency,
		class.Status, class.StartDate, class.EndDate,
		class.CreatedAt, class.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating class: %w", err)
	}

	return nil
}

// GetByID retrieves a single class. sql.ErrNoRows is translated to the
// domain's NotFound so the handler can answer 404 without knowing SQL.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Class, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+classColumns+` FROM classes WHERE id = ?`, id)

	class, err := scanClass(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("class", id)
		}
		return nil, fmt.Errorf("sqlite: getting class %s: %w", id, err)
	}

	return class, nil
}

// List returns the whole catalog, newest first. No pagination: the clients
// own filtering and sorting, and the catalog stays small by nature.
func (db *DB) List(ctx context.Context) ([]model.Class, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+classColumns+` FROM classes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing classes: %w", err)
	}
	defer rows.Close()

	classes := make([]model.Class, 0, 32)
	for rows.Next() {
		class, err := scanClass(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning class row: %w", err)
		}
		classes = append(classes, *class)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating classes: %w", err)
	}

	return classes, nil
}

// Update replaces every client-authored field of the record (PUT semantics —
// the payload is the whole record). ID and created_at are immutable.
func (db *DB) Update(ctx context.Context, class *model.Class) error {
	class.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE classes
		 SET title = ?, subject = ?, grade = ?, teacher = ?, schedule = ?,
		     room = ?, capacity = ?, fee = ?, currency = ?, status = ?,
		     start_date = ?, end_date = ?, updated_at = ?
		 WHERE id = ?`,
		class.Title, class.Subject, class.Grade, class.Teacher, class.Schedule,
		class.Room, class.Capacity, class.Fee, class.Currency, class.Status,
		class.StartDate, class.EndDate, class.UpdatedAt,
		class.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating class %s: %w", class.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("class", class.ID)
	}

	return nil
}

// Delete removes a class. Same RowsAffected pattern as Update to detect a
// target that vanished between the client's list fetch and this call.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM classes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting class %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("class", id)
	}

	return nil
}

// scanClass reads one row's columns in classColumns order. Works for both
// sql.Row.Scan and sql.Rows.Scan since they share the signature.
func scanClass(scan func(dest ...any) error) (*model.Class, error) {
	var c model.Class
	err := scan(
		&c.ID, &c.Title, &c.Subject, &c.Grade, &c.Teacher, &c.Schedule,
		&c.Room, &c.Capacity, &c.Fee, &c.Currency, &c.Status,
		&c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
