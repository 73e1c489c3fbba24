// Package menu keeps the one live interactive message of every user in sync
// with conversational state. Handlers render menus through the Synchronizer,
// which edits the live message in place instead of posting new ones.
package menu

import (
	"errors"

	"thermobot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

var (
	// ErrNotModified is reported by a Messenger when the platform rejects
	// an edit whose rendered content is identical to the current message.
	ErrNotModified = errors.New("message is not modified")

	// ErrNotHandled means the Synchronizer could not update the live
	// message. The caller must fall back to posting a fresh one.
	ErrNotHandled = errors.New("live message not updated")
)

// Messenger is the chat-platform adapter consumed by the Synchronizer
type Messenger interface {
	Edit(ref domain.MessageRef, text string, markup *tele.ReplyMarkup) error
	Send(chatID int64, text string, markup *tele.ReplyMarkup) (messageID int, err error)
	Delete(chatID int64, messageID int) error
	Pin(chatID int64, messageID int) error
}

// Directory answers the read-only questions needed to rebuild the default
// controls of a menu from its semantic kind and context alone.
type Directory interface {
	Role(chatID int64) (domain.Role, error)
	AccessibleGroups(chatID int64) ([]string, error)
	AllGroups() ([]string, error)
	GroupDevices(group string) ([]string, error)
}
