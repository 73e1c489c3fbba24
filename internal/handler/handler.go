package handler

import (
	"errors"

	"thermobot/internal/domain"
	"thermobot/internal/menu"
	"thermobot/internal/service"
	"thermobot/internal/state"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	access       *service.AccessService
	registration *service.RegistrationService
	thresholds   *service.ThresholdService
	sessions     *state.SessionRegistry
	wizard       *state.WizardMachine
	pending      *state.ThresholdContext
	sync         *menu.Synchronizer
	msgr         menu.Messenger
	logger       *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	access *service.AccessService,
	registration *service.RegistrationService,
	thresholds *service.ThresholdService,
	sessions *state.SessionRegistry,
	wizard *state.WizardMachine,
	pending *state.ThresholdContext,
	sync *menu.Synchronizer,
	msgr menu.Messenger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		access:       access,
		registration: registration,
		thresholds:   thresholds,
		sessions:     sessions,
		wizard:       wizard,
		pending:      pending,
		sync:         sync,
		msgr:         msgr,
		logger:       logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/reset", h.handleReset)
	h.bot.Handle("/help", h.handleHelp)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Everything that is not text lands in the same rejection path
	for _, endpoint := range []string{
		tele.OnPhoto, tele.OnDocument, tele.OnSticker, tele.OnVoice,
		tele.OnVideo, tele.OnAudio, tele.OnAnimation, tele.OnContact,
		tele.OnLocation, tele.OnVideoNote,
	} {
		h.bot.Handle(endpoint, h.handleUnsupported)
	}

	// Callback queries (inline buttons)
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// showLive renders a menu into the user's live message, falling back to a
// fresh message when there is none or the edit fails for good. The session
// registry is updated either way, so the rendered message becomes the live
// one.
func (h *Handler) showLive(userID, chatID int64, kind domain.MenuKind, ctx map[string]string, text string, markup *tele.ReplyMarkup) error {
	if session := h.sessions.Get(userID); session != nil {
		err := h.msgr.Edit(session.Ref, text, markup)
		if err == nil || errors.Is(err, menu.ErrNotModified) {
			h.sessions.Track(userID, chatID, session.Ref.MessageID, kind, ctx)
			return nil
		}
		h.logger.Warn("Failed to edit live message, sending new",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("kind", string(kind)),
		)
	}

	messageID, err := h.msgr.Send(chatID, text, markup)
	if err != nil {
		return err
	}
	h.sessions.Track(userID, chatID, messageID, kind, ctx)
	return nil
}

// deleteUserMessage removes the user's own message to keep the chat a
// single live menu. Deletion failures are only logged.
func (h *Handler) deleteUserMessage(c tele.Context) {
	msg := c.Message()
	if msg == nil {
		return
	}
	if err := h.msgr.Delete(msg.Chat.ID, msg.ID); err != nil {
		h.logger.Debug("Failed to delete user message",
			zap.Error(err),
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Int("message_id", msg.ID),
		)
	}
}
