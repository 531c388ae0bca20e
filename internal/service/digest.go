package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/isufellowship/attendance-bot/internal/model"
	"github.com/isufellowship/attendance-bot/internal/repository"
)

// DigestService composes and broadcasts the daily attendance summary.
// It shares only the record store with the conversation engine and is
// driven by the scheduler, never by webhook traffic.
type DigestService struct {
	records  repository.RecordStore
	notifier Notifier
	groupID  string
	logger   *slog.Logger
}

// NewDigestService creates a digest service broadcasting to groupID.
func NewDigestService(records repository.RecordStore, notifier Notifier, groupID string, logger *slog.Logger) *DigestService {
	return &DigestService{
		records:  records,
		notifier: notifier,
		groupID:  groupID,
		logger:   logger,
	}
}

// SendDaily reads all records, keeps those dated now's calendar date and
// broadcasts one summary message. Zero matching records means no send.
// There is no dedup guard: invoked twice on the same day, it sends twice.
func (s *DigestService) SendDaily(ctx context.Context, now time.Time) error {
	records, err := s.records.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("reading attendance records: %w", err)
	}

	today := now.Format(model.DateLayout)

	var matched []model.AttendanceRecord
	for _, r := range records {
		if r.Date == today {
			matched = append(matched, r)
		}
	}

	if len(matched) == 0 {
		s.logger.Info("no attendance records for today, skipping digest",
			slog.String("date", today),
		)
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📌 Attendance Summary — %s\n\n", today)
	for _, r := range matched {
		fmt.Fprintf(&b, "- %s: Present (%s)\n", r.Name, r.Day)
	}

	if err := s.notifier.SendText(ctx, s.groupID, b.String()); err != nil {
		return fmt.Errorf("broadcasting digest: %w", err)
	}

	s.logger.Info("daily digest sent",
		slog.String("date", today),
		slog.Int("records", len(matched)),
	)

	return nil
}
