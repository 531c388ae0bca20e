package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/isufellowship/attendance-bot/internal/apperror"
	"github.com/isufellowship/attendance-bot/internal/model"
	"github.com/isufellowship/attendance-bot/internal/repository"
)

// Compile-time check that *DB satisfies the UserDirectory interface.
var _ repository.UserDirectory = (*DB)(nil)

// Get retrieves a profile by remote user identifier. A miss is reported
// as apperror.ErrNotFound — the conversation engine derives "unknown
// user" from exactly that error.
func (db *DB) Get(ctx context.Context, id string) (*model.Profile, error) {
	var p model.Profile

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name FROM users WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}

	return &p, nil
}

// Put stores a profile. INSERT OR REPLACE keeps the directory
// last-write-wins: two racing first messages from the same identifier both
// write, and the later one silently overwrites the earlier.
func (db *DB) Put(ctx context.Context, profile *model.Profile) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO users (id, name) VALUES (?, ?)`,
		profile.ID,
		profile.Name,
	)
	if err != nil {
		return fmt.Errorf("sqlite: putting user %s: %w", profile.ID, err)
	}

	return nil
}

// AllIDs returns a snapshot of every known identifier. Diagnostics only;
// the dialog logic never calls it.
func (db *DB) AllIDs(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing user ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user ids: %w", err)
	}

	return ids, nil
}
