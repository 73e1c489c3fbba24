package handler

import (
	"strconv"
	"strings"

	"thermobot/internal/domain"
	"thermobot/internal/menu"

	tele "gopkg.in/telebot.v3"
)

// TeleMessenger adapts a telebot instance to the messenger interface the
// menu package works against. Platform idempotency rejections are mapped
// to menu.ErrNotModified so callers can branch on a sentinel instead of
// matching error strings everywhere.
type TeleMessenger struct {
	bot *tele.Bot
}

// NewTeleMessenger wraps a bot
func NewTeleMessenger(bot *tele.Bot) *TeleMessenger {
	return &TeleMessenger{bot: bot}
}

func storedMessage(ref domain.MessageRef) tele.StoredMessage {
	return tele.StoredMessage{
		MessageID: strconv.Itoa(ref.MessageID),
		ChatID:    ref.ChatID,
	}
}

// Edit replaces the text and controls of an existing message in place
func (m *TeleMessenger) Edit(ref domain.MessageRef, text string, markup *tele.ReplyMarkup) error {
	var err error
	if markup != nil {
		_, err = m.bot.Edit(storedMessage(ref), text, markup, tele.ModeMarkdown)
	} else {
		_, err = m.bot.Edit(storedMessage(ref), text, tele.ModeMarkdown)
	}
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return menu.ErrNotModified
	}
	return err
}

// Send posts a new message and returns its identifier
func (m *TeleMessenger) Send(chatID int64, text string, markup *tele.ReplyMarkup) (int, error) {
	var (
		msg *tele.Message
		err error
	)
	if markup != nil {
		msg, err = m.bot.Send(tele.ChatID(chatID), text, markup, tele.ModeMarkdown)
	} else {
		msg, err = m.bot.Send(tele.ChatID(chatID), text, tele.ModeMarkdown)
	}
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// Delete removes a message
func (m *TeleMessenger) Delete(chatID int64, messageID int) error {
	return m.bot.Delete(storedMessage(domain.MessageRef{ChatID: chatID, MessageID: messageID}))
}

// Pin pins a message without notification
func (m *TeleMessenger) Pin(chatID int64, messageID int) error {
	return m.bot.Pin(storedMessage(domain.MessageRef{ChatID: chatID, MessageID: messageID}))
}
