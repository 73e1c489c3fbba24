package handler

import (
	"fmt"
	"strings"

	"thermobot/internal/domain"
	"thermobot/internal/menu"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start: the main menu for registered users, the
// registration wizard for everyone else.
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID
	chatID := c.Chat().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	defer h.deleteUserMessage(c)

	registered, err := h.access.IsRegistered(userID)
	if err != nil {
		h.logger.Error("Failed to check registration", zap.Error(err))
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}

	if !registered {
		return h.startWizard(userID, chatID)
	}

	return h.showMainMenu(userID, chatID)
}

// handleReset drops every piece of conversational state of the user and
// starts over from a clean main menu or wizard.
func (h *Handler) handleReset(c tele.Context) error {
	userID := c.Sender().ID
	chatID := c.Chat().ID

	h.wizard.Reset(chatID)
	h.pending.ClearPending(userID)
	h.sessions.Clear(userID)

	h.logger.Info("User state reset", zap.Int64("user_id", userID))

	defer h.deleteUserMessage(c)

	registered, err := h.access.IsRegistered(userID)
	if err != nil {
		h.logger.Error("Failed to check registration", zap.Error(err))
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}
	if !registered {
		return h.startWizard(userID, chatID)
	}
	return h.showMainMenu(userID, chatID)
}

// handleHelp shows the help menu
func (h *Handler) handleHelp(c tele.Context) error {
	userID := c.Sender().ID
	defer h.deleteUserMessage(c)
	return h.showLive(userID, c.Chat().ID, domain.MenuHelp, nil, helpText(), menu.HelpKeyboard())
}

// startWizard begins (or resumes) the registration flow
func (h *Handler) startWizard(userID, chatID int64) error {
	h.wizard.Start(chatID)

	switch h.wizard.Step(chatID) {
	case domain.StepGroups:
		return h.showWizardGroups(userID, chatID, "Продолжим регистрацию. Выберите ваши рабочие группы:")
	case domain.StepPosition:
		return h.showLive(userID, chatID, domain.MenuWizardStep,
			map[string]string{domain.CtxWizardStep: string(domain.StepPosition)},
			"Продолжим регистрацию.\n\nВведите вашу должность (например: Директор, Менеджер):", nil)
	default:
		return h.showLive(userID, chatID, domain.MenuWizardStep,
			map[string]string{domain.CtxWizardStep: string(domain.StepName)},
			"👋 Добро пожаловать в систему мониторинга температуры склада!\n\n"+
				"Для начала работы пройдите регистрацию.\n\n"+
				"Введите полное ФИО: Фамилия Имя Отчество", nil)
	}
}

// showWizardGroups renders the group multi-select step
func (h *Handler) showWizardGroups(userID, chatID int64, headline string) error {
	available, err := h.access.AllGroups()
	if err != nil {
		h.logger.Error("Failed to load groups for wizard", zap.Error(err))
		return err
	}

	var selected []string
	if state := h.wizard.Get(chatID); state != nil {
		selected = state.SelectedGroups()
	}

	return h.showLive(userID, chatID, domain.MenuWizardStep,
		map[string]string{domain.CtxWizardStep: string(domain.StepGroups)},
		headline,
		menu.WizardGroupsKeyboard(available, selected))
}

// showMainMenu renders the role-aware main menu
func (h *Handler) showMainMenu(userID, chatID int64) error {
	admin, err := h.access.Admin(userID)
	if err != nil {
		h.logger.Error("Failed to load admin", zap.Error(err))
		return err
	}

	text := "🏠 *Главное меню*\n\nВыберите действие:"
	role := domain.RoleUnknown
	if admin != nil {
		role = admin.Role
		text = fmt.Sprintf("🏠 *Главное меню*\n\n👤 %s\n\nВыберите действие:", admin.FullName)
	}

	return h.showLive(userID, chatID, domain.MenuMain, nil, text, menu.MainKeyboard(role))
}

func helpText() string {
	lines := []string{
		"❓ *Справка*",
		"",
		"Бот следит за температурой датчиков на складе и присылает уведомления при выходе за пороги.",
		"",
		"• 📊 Мои данные — ваша регистрационная информация",
		"• 🌡️ Выбрать группу — текущие показания датчиков",
		"• ⚙️ Пороговые значения — настройка порогов уведомлений",
		"",
		"Команды:",
		"/start — главное меню",
		"/reset — сбросить текущее состояние",
		"/help — эта справка",
	}
	return strings.Join(lines, "\n")
}
