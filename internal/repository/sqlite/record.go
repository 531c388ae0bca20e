package sqlite

import (
	"context"
	"fmt"

	"github.com/rs/xid"

	"github.com/isufellowship/attendance-bot/internal/model"
	"github.com/isufellowship/attendance-bot/internal/repository"
)

// Compile-time check that *DB satisfies the RecordStore interface.
var _ repository.RecordStore = (*DB)(nil)

// Append inserts one attendance record. The insert is a single statement,
// so concurrent appends from different webhook handlers cannot interleave
// or lose rows. The generated id is a storage detail; nothing dedupes on
// it and repeated same-day submissions produce repeated rows.
func (db *DB) Append(ctx context.Context, rec *model.AttendanceRecord) error {
	rec.ID = xid.New().String()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO attendance_records (id, submitted_at, user_id, name, day, submitted_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Timestamp,
		rec.UserID,
		rec.Name,
		rec.Day,
		rec.Date,
	)
	if err != nil {
		return fmt.Errorf("sqlite: appending attendance record: %w", err)
	}

	return nil
}

// ReadAll returns every attendance record in insertion order. The digest
// relies on this order when composing its lines.
func (db *DB) ReadAll(ctx context.Context) ([]model.AttendanceRecord, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, submitted_at, user_id, name, day, submitted_date
		 FROM attendance_records
		 ORDER BY seq ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading attendance records: %w", err)
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		var r model.AttendanceRecord
		if err := rows.Scan(
			&r.ID, &r.Timestamp, &r.UserID, &r.Name, &r.Day, &r.Date,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning attendance record: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating attendance records: %w", err)
	}

	return records, nil
}
