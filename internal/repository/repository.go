// Package repository declares the storage interfaces the rest of the
// application depends on. The service layer only sees these interfaces;
// the sqlite subpackage provides the durable implementation.
package repository

import (
	"context"

	"github.com/isufellowship/attendance-bot/internal/model"
)

// RecordStore is the append-only attendance log. Each Append is one atomic
// unit and ReadAll returns records in insertion order. Records are never
// updated, deleted, or deduplicated.
type RecordStore interface {
	Append(ctx context.Context, rec *model.AttendanceRecord) error
	ReadAll(ctx context.Context) ([]model.AttendanceRecord, error)
}

// UserDirectory maps a remote user identifier to their profile.
// AllIDs is a snapshot read used for diagnostics only.
type UserDirectory interface {
	Get(ctx context.Context, id string) (*model.Profile, error)
	Put(ctx context.Context, profile *model.Profile) error
	AllIDs(ctx context.Context) ([]string, error)
}
