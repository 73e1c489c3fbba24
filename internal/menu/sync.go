package menu

import (
	"errors"
	"fmt"
	"time"

	"thermobot/internal/state"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// forceMarkers are visually blank Braille characters appended to the text
// so that a render always differs from the previous one even when the
// semantic message repeats. The marker is picked by a timestamp digit.
var forceMarkers = []rune("⠀⠁⠂⠃⠄⠅⠆⠇⠈⠉")

// Event is one outcome to render into the live message of a user
type Event struct {
	// Headline is the error or confirmation line
	Headline string
	// ContentType names what was detected, shown alongside errors
	ContentType string
	// Success switches feedback from guidance to confirmation wording
	Success bool
	// Controls, when set, override the reconstructed default ones
	Controls *tele.ReplyMarkup
}

// Synchronizer locates the live message of a user through the session
// registry and performs an idempotent in-place edit of it.
type Synchronizer struct {
	sessions *state.SessionRegistry
	dir      Directory
	msgr     Messenger
	logger   *zap.Logger
	now      func() time.Time
}

// NewSynchronizer creates a synchronizer
func NewSynchronizer(
	sessions *state.SessionRegistry,
	dir Directory,
	msgr Messenger,
	logger *zap.Logger,
) *Synchronizer {
	return &Synchronizer{
		sessions: sessions,
		dir:      dir,
		msgr:     msgr,
		logger:   logger,
		now:      time.Now,
	}
}

// Update renders an event into the live message of a user.
// Returns ErrNotHandled when there is no live message or the edit failed
// for good; the caller must then post a fresh top-level message itself.
func (s *Synchronizer) Update(userID int64, ev Event) error {
	session := s.sessions.Get(userID)
	if session == nil {
		s.logger.Warn("No live menu to update",
			zap.Int64("user_id", userID),
			zap.Int("active_menus", s.sessions.ActiveCount()),
		)
		return ErrNotHandled
	}

	text := composeFeedback(session, ev)

	controls := ev.Controls
	if controls == nil {
		var err error
		controls, err = Reconstruct(session, s.dir)
		if err != nil {
			s.logger.Error("Failed to rebuild menu controls",
				zap.Error(err),
				zap.Int64("user_id", userID),
				zap.String("kind", string(session.Kind)),
			)
			return fmt.Errorf("%w: rebuild controls: %v", ErrNotHandled, err)
		}
	}

	err := s.msgr.Edit(session.Ref, text+s.invisibleMarker(), controls)
	if errors.Is(err, ErrNotModified) {
		// The invisible marker collided with the previous render; retry
		// exactly once with a marker the platform cannot consider equal.
		err = s.msgr.Edit(session.Ref, text+s.visibleMarker(), controls)
	}
	if err != nil {
		s.logger.Error("Failed to edit live menu",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("kind", string(session.Kind)),
			zap.Int("message_id", session.Ref.MessageID),
		)
		return fmt.Errorf("%w: %v", ErrNotHandled, err)
	}

	// Same message, same semantics: only the activity timestamp moves
	s.sessions.Track(userID, session.ChatID, session.Ref.MessageID, session.Kind, session.Context)

	s.logger.Debug("Live menu updated",
		zap.Int64("user_id", userID),
		zap.String("kind", string(session.Kind)),
	)
	return nil
}

// invisibleMarker returns a blank character chosen by the last digit of
// the current millisecond timestamp.
func (s *Synchronizer) invisibleMarker() string {
	digit := s.now().UnixMilli() % int64(len(forceMarkers))
	return string(forceMarkers[digit])
}

// visibleMarker returns a human-readable refresh suffix
func (s *Synchronizer) visibleMarker() string {
	return fmt.Sprintf("\n\n`⟨ обновлено %s ⟩`", s.now().Format("15:04:05"))
}
