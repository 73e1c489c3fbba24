package handler

import (
	"errors"
	"fmt"
	"strings"

	"thermobot/internal/domain"
	"thermobot/internal/menu"
	"thermobot/internal/validate"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText routes free text by conversational state: a pending threshold
// prompt wins over the wizard, the wizard wins over everything else.
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	chatID := c.Chat().ID
	text := strings.TrimSpace(c.Text())

	// Commands have their own handlers
	if strings.HasPrefix(text, "/") {
		return nil
	}

	defer h.deleteUserMessage(c)

	if !validate.UserInput(text) {
		return h.rejectInput(userID, chatID, "Недопустимый ввод", "📝 произвольный текст")
	}

	if req := h.pending.GetPending(userID); req != nil {
		return h.handleThresholdInput(c, req, text)
	}

	if h.wizard.InProgress(chatID) {
		return h.handleWizardInput(c, text)
	}

	return h.rejectInput(userID, chatID, "Неподдерживаемый ввод", "📝 произвольный текст")
}

// handleThresholdInput consumes the numeric pair a prompt is waiting for
func (h *Handler) handleThresholdInput(c tele.Context, req *domain.ThresholdEditRequest, text string) error {
	userID := c.Sender().ID
	chatID := c.Chat().ID

	min, max, err := validate.ParseTempPair(text)
	if err != nil {
		return h.rejectInput(userID, chatID, pairErrorHeadline(err), "📝 произвольный текст")
	}

	var userGroups []string
	if req.Op == domain.OpAllUserGroups {
		userGroups, err = h.access.AccessibleGroups(userID)
		if err != nil {
			h.logger.Error("Failed to load groups for threshold apply", zap.Error(err))
			return h.rejectInput(userID, chatID, "Не удалось сохранить пороги", "")
		}
	}

	if err := h.thresholds.Apply(req, min, max, userGroups); err != nil {
		h.logger.Error("Failed to apply thresholds",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("op", string(req.Op)),
		)
		return h.rejectInput(userID, chatID, "Не удалось сохранить пороги", "")
	}

	// The slot is single-use: consume it before rendering the result
	h.pending.ClearPending(userID)

	confirmation := fmt.Sprintf(
		"✅ *Пороги обновлены*\n\n%s\n🌡 Диапазон: %.1f…%.1f°C",
		scopeTitle(req), min, max,
	)
	// The prompt message stays the live one: keep its kind and back
	// control so the user can step back to where the edit started.
	return h.showLive(userID, chatID, domain.MenuThresholdDevicePrompt,
		map[string]string{domain.CtxGroup: req.GroupKey, domain.CtxDevice: req.DeviceKey},
		confirmation,
		menu.ThresholdPromptKeyboard(req.GroupKey, req.DeviceKey))
}

// handleWizardInput consumes text for the current registration step
func (h *Handler) handleWizardInput(c tele.Context, text string) error {
	userID := c.Sender().ID
	chatID := c.Chat().ID

	switch h.wizard.Step(chatID) {
	case domain.StepName:
		if !validate.FullName(text) {
			return h.rejectInput(userID, chatID, "Неверный формат ФИО", "📝 произвольный текст")
		}
		h.wizard.SubmitName(chatID, text)
		return h.showWizardGroups(userID, chatID,
			fmt.Sprintf("✅ %s\n\nТеперь выберите ваши рабочие группы:", text))

	case domain.StepGroups:
		// This step is button-driven
		return h.rejectInput(userID, chatID, "Используйте кнопки для выбора групп", "📝 произвольный текст")

	case domain.StepPosition:
		if !validate.Position(text) {
			return h.rejectInput(userID, chatID, "Слишком короткое название должности", "📝 произвольный текст")
		}
		h.wizard.SubmitPosition(chatID, text)
		return h.completeRegistration(userID, chatID)

	default:
		return h.rejectInput(userID, chatID, "Продолжите регистрацию командой /start", "")
	}
}

// completeRegistration persists the finished wizard and shows the main menu
func (h *Handler) completeRegistration(userID, chatID int64) error {
	result := h.wizard.ConsumeCompleted(chatID)
	if result == nil {
		return h.rejectInput(userID, chatID, "Регистрация не завершена. Отправьте /start", "")
	}

	admin, err := h.registration.Complete(userID, result)
	if err != nil {
		h.logger.Error("Failed to complete registration",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return h.rejectInput(userID, chatID, "Не удалось сохранить регистрацию. Попробуйте /start", "")
	}

	text := fmt.Sprintf(
		"🎉 *Регистрация завершена!*\n\n👤 %s\n💼 %s\n🏷 Группы: %s\n\nВыберите действие:",
		admin.FullName,
		admin.Position,
		strings.Join(admin.Groups, ", "),
	)
	if err := h.showLive(userID, chatID, domain.MenuMain, nil, text, menu.MainKeyboard(admin.Role)); err != nil {
		return err
	}

	// Keep the freshly registered user's menu on top of the chat
	if session := h.sessions.Get(userID); session != nil {
		if err := h.msgr.Pin(chatID, session.Ref.MessageID); err != nil {
			h.logger.Debug("Failed to pin main menu", zap.Error(err), zap.Int64("user_id", userID))
		}
	}
	return nil
}

// handleUnsupported rejects non-text content through the live menu
func (h *Handler) handleUnsupported(c tele.Context) error {
	userID := c.Sender().ID
	chatID := c.Chat().ID

	defer h.deleteUserMessage(c)

	return h.rejectInput(userID, chatID, "Неподдерживаемый тип сообщения", contentTypeName(c.Message()))
}

// rejectInput renders a rejection into the live menu, sending a plain
// fallback message when there is no menu to edit.
func (h *Handler) rejectInput(userID, chatID int64, headline, contentType string) error {
	err := h.sync.Update(userID, menu.Event{
		Headline:    headline,
		ContentType: contentType,
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, menu.ErrNotHandled) {
		return err
	}

	_, sendErr := h.msgr.Send(chatID, "❌ "+headline+"\n\nОтправьте /start, чтобы открыть меню.", nil)
	return sendErr
}

// pairErrorHeadline maps a pair validation error to a user-facing headline
func pairErrorHeadline(err error) string {
	switch {
	case errors.Is(err, validate.ErrPairFormat):
		return "Нужно два числа: минимум и максимум"
	case errors.Is(err, validate.ErrPairNotNumbers):
		return "Пороги должны быть числами"
	case errors.Is(err, validate.ErrPairOrder):
		return "Минимум должен быть меньше максимума"
	case errors.Is(err, validate.ErrPairRange):
		return fmt.Sprintf("Значения должны быть в диапазоне %.0f…%.0f°C", validate.MinTemperature, validate.MaxTemperature)
	default:
		return "Неверный формат пороговых значений"
	}
}

// scopeTitle names the scope of an applied threshold request
func scopeTitle(req *domain.ThresholdEditRequest) string {
	switch req.Op {
	case domain.OpAllSystem:
		return "🏭 Область: вся система"
	case domain.OpAllUserGroups:
		return "🌐 Область: все ваши группы"
	case domain.OpWholeGroup:
		return fmt.Sprintf("🔧 Область: группа %s", req.GroupKey)
	default:
		return fmt.Sprintf("🌡️ Датчик %s (группа %s)", req.DeviceKey, req.GroupKey)
	}
}

// contentTypeName names what the user actually sent
func contentTypeName(msg *tele.Message) string {
	switch {
	case msg == nil:
		return "неизвестный тип"
	case msg.Photo != nil:
		return "📷 фото"
	case msg.Document != nil:
		return "📄 документ"
	case msg.Sticker != nil:
		return "🎭 стикер"
	case msg.Voice != nil:
		return "🎤 голосовое сообщение"
	case msg.VideoNote != nil:
		return "📹 видеосообщение"
	case msg.Video != nil:
		return "🎬 видео"
	case msg.Audio != nil:
		return "🎵 аудио"
	case msg.Animation != nil:
		return "🎞 анимация"
	case msg.Contact != nil:
		return "👤 контакт"
	case msg.Location != nil:
		return "📍 геолокация"
	default:
		return "неизвестный тип"
	}
}
