// Package service contains the dialog and digest logic. Both services
// talk to storage and delivery only through interfaces, so tests inject
// mocks and the handlers stay thin.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/isufellowship/attendance-bot/internal/apperror"
	"github.com/isufellowship/attendance-bot/internal/model"
	"github.com/isufellowship/attendance-bot/internal/repository"
)

// Notifier delivers outbound messages. The conversation engine does not
// inspect delivery results beyond propagating errors for logging.
type Notifier interface {
	SendText(ctx context.Context, to, body string) error
	SendButtons(ctx context.Context, to, body string, options []model.ButtonOption) error
}

const (
	msgAskName    = "Welcome! Please type your full name:"
	msgDayPrompt  = "Please choose your attendance day:"
	msgNameAckFmt = "Thank you %s! Now choose your attendance:"
	msgSavedFmt   = "Attendance saved for %s. Thank you!"
)

// ConversationService maps one inbound event plus the current directory
// state to outbound sends and at most one durable write. A user's dialog
// phase is never stored: it is derived per event from whether the
// directory knows the sender (profile missing = still in name capture)
// and the shape of the event.
type ConversationService struct {
	directory repository.UserDirectory
	records   repository.RecordStore
	notifier  Notifier
	days      map[string]string
	options   []model.ButtonOption
	logger    *slog.Logger
	now       func() time.Time
}

// NewConversationService creates the dialog engine. dayOptions is the
// fixed choice set offered to users, in prompt order.
func NewConversationService(
	directory repository.UserDirectory,
	records repository.RecordStore,
	notifier Notifier,
	dayOptions []model.ButtonOption,
	logger *slog.Logger,
) *ConversationService {
	days := make(map[string]string, len(dayOptions))
	for _, opt := range dayOptions {
		days[opt.ID] = opt.Label
	}

	return &ConversationService{
		directory: directory,
		records:   records,
		notifier:  notifier,
		days:      days,
		options:   dayOptions,
		logger:    logger,
		now:       time.Now,
	}
}

// HandleEvent processes one inbound event. Errors are returned for the
// caller to log; the webhook acknowledgment does not depend on them.
func (s *ConversationService) HandleEvent(ctx context.Context, ev model.Event) error {
	profile, err := s.directory.Get(ctx, ev.From)
	switch {
	case err == nil:
		return s.handleKnown(ctx, profile, ev)
	case errors.Is(err, apperror.ErrNotFound):
		return s.handleFirstContact(ctx, ev)
	default:
		return fmt.Errorf("looking up profile for %s: %w", ev.From, err)
	}
}

// handleFirstContact runs the name-capture step for senders the directory
// does not know yet.
func (s *ConversationService) handleFirstContact(ctx context.Context, ev model.Event) error {
	if ev.Kind != model.EventText {
		s.logger.Info("new user sent non-text message, asking for name",
			slog.String("from", ev.From),
		)
		if err := s.notifier.SendText(ctx, ev.From, msgAskName); err != nil {
			return fmt.Errorf("sending name request: %w", err)
		}
		return nil
	}

	name := strings.TrimSpace(ev.Text)
	s.logger.Info("new user provided name",
		slog.String("from", ev.From),
		slog.String("name", name),
	)

	if err := s.directory.Put(ctx, &model.Profile{ID: ev.From, Name: name}); err != nil {
		return fmt.Errorf("saving profile for %s: %w", ev.From, err)
	}

	// Ack first, then the day prompt. If a send fails here the profile
	// stays in place; the user is simply re-prompted on their next message.
	if err := s.notifier.SendText(ctx, ev.From, fmt.Sprintf(msgNameAckFmt, name)); err != nil {
		return fmt.Errorf("sending name ack: %w", err)
	}
	if err := s.notifier.SendButtons(ctx, ev.From, msgDayPrompt, s.options); err != nil {
		return fmt.Errorf("sending day prompt: %w", err)
	}

	return nil
}

// handleKnown runs the day-selection step for senders with a profile.
func (s *ConversationService) handleKnown(ctx context.Context, profile *model.Profile, ev model.Event) error {
	if ev.Kind != model.EventInteractive {
		s.logger.Info("known user sent non-interactive message, showing day prompt",
			slog.String("from", ev.From),
		)
		if err := s.notifier.SendButtons(ctx, ev.From, msgDayPrompt, s.options); err != nil {
			return fmt.Errorf("re-sending day prompt: %w", err)
		}
		return nil
	}

	// An unrecognized choice id resolves to an empty day. The record is
	// appended and confirmed anyway; submissions are never rejected.
	day := s.days[ev.ChoiceID]

	now := s.now()
	rec := &model.AttendanceRecord{
		Timestamp: now,
		UserID:    ev.From,
		Name:      profile.Name,
		Day:       day,
		Date:      now.Format(model.DateLayout),
	}

	if err := s.records.Append(ctx, rec); err != nil {
		return fmt.Errorf("appending attendance record: %w", err)
	}

	s.logger.Info("attendance saved",
		slog.String("from", ev.From),
		slog.String("name", profile.Name),
		slog.String("day", day),
	)

	if err := s.notifier.SendText(ctx, ev.From, fmt.Sprintf(msgSavedFmt, day)); err != nil {
		return fmt.Errorf("sending confirmation: %w", err)
	}

	return nil
}
