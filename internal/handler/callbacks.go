package handler

import (
	"fmt"
	"strings"
	"unicode"

	"thermobot/internal/domain"
	"thermobot/internal/menu"
	"thermobot/internal/validate"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// splitCallbackArgs splits the payload part of callback data
func splitCallbackArgs(data string) []string {
	data = cleanCallbackData(data)
	if data == "" {
		return nil
	}
	return strings.Split(data, "|")
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	unique := strings.TrimSpace(callback.Unique)
	args := splitCallbackArgs(callback.Data)

	h.logger.Info("Processing callback",
		zap.String("unique", unique),
		zap.Strings("args", args),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Wizard callbacks are the only ones available before registration
	switch unique {
	case menu.CbToggleGroup:
		return h.handleToggleGroup(c, args)
	case menu.CbFinishGroups:
		return h.handleFinishGroups(c)
	case menu.CbNeedGroup:
		return c.Respond(&tele.CallbackResponse{
			Text:      "Выберите минимум одну группу",
			ShowAlert: true,
		})
	}

	registered, err := h.access.IsRegistered(c.Sender().ID)
	if err != nil {
		h.logger.Error("Failed to check registration", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка. Попробуйте позже."})
	}
	if !registered {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Сначала пройдите регистрацию: /start",
			ShowAlert: true,
		})
	}

	switch unique {
	case menu.CbBackToMain:
		return h.respondAfter(c, h.showMainMenu(c.Sender().ID, c.Chat().ID))
	case menu.CbHelp:
		return h.respondAfter(c, h.showLive(c.Sender().ID, c.Chat().ID, domain.MenuHelp, nil, helpText(), menu.HelpKeyboard()))
	case menu.CbMyData:
		return h.handleMyData(c)
	case menu.CbSelectGroup:
		return h.handleGroupList(c)
	case menu.CbGroupInfo:
		return h.handleGroupInfo(c, args)
	case menu.CbThresholds:
		return h.handleThresholdGroups(c)
	case menu.CbThresholdGroup:
		return h.handleThresholdDevices(c, args)
	case menu.CbThresholdSet:
		return h.handleThresholdPrompt(c, args)
	case menu.CbListAdmins:
		return h.handleAdminList(c)
	case menu.CbSystemStats:
		return h.handleStats(c)
	case "help_manual", "help_support":
		return c.Respond(&tele.CallbackResponse{
			Text:      "По вопросам работы бота обратитесь к администратору склада",
			ShowAlert: true,
		})
	}

	h.logger.Warn("Unhandled callback",
		zap.String("unique", unique),
		zap.Strings("args", args),
	)
	return c.Respond()
}

// respondAfter acknowledges the callback once its render is done
func (h *Handler) respondAfter(c tele.Context, err error) error {
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке данных"})
	}
	return c.Respond()
}

// handleToggleGroup flips one group in the wizard multi-select
func (h *Handler) handleToggleGroup(c tele.Context, args []string) error {
	userID := c.Sender().ID
	if len(args) < 1 {
		return c.Respond(&tele.CallbackResponse{Text: "Неверные данные кнопки"})
	}
	group := args[0]

	added, ok := h.wizard.ToggleGroup(c.Chat().ID, group)
	if !ok {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Регистрация не активна. Отправьте /start",
			ShowAlert: true,
		})
	}

	headline := "Группа убрана: " + group
	if added {
		headline = "Группа добавлена: " + group
	}

	if err := h.showWizardGroups(userID, c.Chat().ID, "Выберите ваши рабочие группы:"); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке данных"})
	}
	return c.Respond(&tele.CallbackResponse{Text: headline})
}

// handleFinishGroups moves the wizard to the position step
func (h *Handler) handleFinishGroups(c tele.Context) error {
	userID := c.Sender().ID

	if !h.wizard.FinishGroups(c.Chat().ID) {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Выберите минимум одну группу",
			ShowAlert: true,
		})
	}

	err := h.showLive(userID, c.Chat().ID, domain.MenuWizardStep,
		map[string]string{domain.CtxWizardStep: string(domain.StepPosition)},
		"✅ Группы сохранены.\n\nВведите вашу должность (например: Директор, Менеджер):", nil)
	return h.respondAfter(c, err)
}

// handleMyData shows the registration card of the user
func (h *Handler) handleMyData(c tele.Context) error {
	userID := c.Sender().ID

	admin, err := h.access.Admin(userID)
	if err != nil || admin == nil {
		h.logger.Error("Failed to load admin card", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке данных"})
	}

	text := fmt.Sprintf(
		"📊 *Мои данные*\n\n👤 ФИО: %s\n💼 Должность: %s\n🔑 Роль: %s\n🏷 Группы: %s\n📅 Зарегистрирован: %s",
		admin.FullName,
		admin.Position,
		roleTitle(admin.Role),
		strings.Join(admin.Groups, ", "),
		admin.RegisteredAt.Format("02.01.2006"),
	)

	return h.respondAfter(c, h.showLive(userID, c.Chat().ID, domain.MenuMyData, nil, text, menu.BackToMainKeyboard()))
}

// handleGroupList shows the groups available to the user
func (h *Handler) handleGroupList(c tele.Context) error {
	userID := c.Sender().ID

	groups, err := h.access.AccessibleGroups(userID)
	if err != nil {
		h.logger.Error("Failed to load groups", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке данных"})
	}

	text := "🌡️ *Выберите группу датчиков:*"
	if len(groups) == 0 {
		text = "⚠️ У вас пока нет доступных групп"
	}

	return h.respondAfter(c, h.showLive(userID, c.Chat().ID, domain.MenuGroupList, nil, text, menu.GroupListKeyboard(groups)))
}

// handleGroupInfo shows the latest readings of one group
func (h *Handler) handleGroupInfo(c tele.Context, args []string) error {
	userID := c.Sender().ID
	if len(args) < 1 || !validate.GroupName(args[0]) {
		return c.Respond(&tele.CallbackResponse{Text: "Неверные данные кнопки"})
	}
	group := args[0]

	allowed, err := h.access.CanAccessGroup(userID, group)
	if err != nil {
		h.logger.Error("Failed to check group access", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке данных"})
	}
	if !allowed {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Нет доступа к группе " + group,
			ShowAlert: true,
		})
	}

	text, err := h.groupReport(group)
	if err != nil {
		h.logger.Error("Failed to build group report", zap.Error(err), zap.String("group", group))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке данных"})
	}

	ctx := map[string]string{domain.CtxGroup: group}
	return h.respondAfter(c, h.showLive(userID, c.Chat().ID, domain.MenuGroupInfo, ctx, text, menu.GroupInfoKeyboard(group)))
}

// groupReport renders the current state of every device in a group
func (h *Handler) groupReport(group string) (string, error) {
	devices, err := h.access.GroupDevices(group)
	if err != nil {
		return "", err
	}

	text := fmt.Sprintf("🌡️ *Группа %s*\n\n", group)
	if len(devices) == 0 {
		return text + "В группе пока нет датчиков", nil
	}

	for _, device := range devices {
		min, max, err := h.thresholds.Band(group, device)
		if err != nil {
			return "", err
		}

		reading, err := h.thresholds.LatestReading(device)
		if err != nil {
			return "", err
		}
		if reading == nil {
			text += fmt.Sprintf("⚪️ `%s`: нет данных\n", device)
			continue
		}

		icon := "✅"
		switch {
		case reading.Temperature > max:
			icon = "🔥"
		case reading.Temperature < min:
			icon = "❄️"
		}
		text += fmt.Sprintf("%s `%s`: %.1f°C (пороги %.1f…%.1f)\n", icon, device, reading.Temperature, min, max)
	}
	return text, nil
}

// handleThresholdGroups shows the threshold settings entry menu
func (h *Handler) handleThresholdGroups(c tele.Context) error {
	userID := c.Sender().ID

	groups, err := h.access.AccessibleGroups(userID)
	if err != nil {
		h.logger.Error("Failed to load groups", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке данных"})
	}
	role, err := h.access.Role(userID)
	if err != nil {
		h.logger.Error("Failed to load role", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке данных"})
	}

	text := "⚙️ *Пороговые значения*\n\nВыберите группу или область применения:"
	err = h.showLive(userID, c.Chat().ID, domain.MenuThresholdGroupList, nil, text,
		menu.ThresholdGroupListKeyboard(groups, role))
	return h.respondAfter(c, err)
}

// handleThresholdDevices shows the device picker of one group
func (h *Handler) handleThresholdDevices(c tele.Context, args []string) error {
	userID := c.Sender().ID
	if len(args) < 1 {
		return c.Respond(&tele.CallbackResponse{Text: "Неверные данные кнопки"})
	}
	group := args[0]

	allowed, err := h.access.CanAccessGroup(userID, group)
	if err != nil || !allowed {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Нет доступа к группе " + group,
			ShowAlert: true,
		})
	}

	devices, err := h.access.GroupDevices(group)
	if err != nil {
		h.logger.Error("Failed to load devices", zap.Error(err), zap.String("group", group))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке данных"})
	}

	text := fmt.Sprintf("⚙️ *Группа %s*\n\nВыберите датчик или всю группу:", group)
	ctx := map[string]string{domain.CtxGroup: group}
	err = h.showLive(userID, c.Chat().ID, domain.MenuThresholdDeviceList, ctx, text,
		menu.ThresholdDeviceListKeyboard(group, devices))
	return h.respondAfter(c, err)
}

// handleThresholdPrompt arms the numeric-pair slot and renders the prompt
func (h *Handler) handleThresholdPrompt(c tele.Context, args []string) error {
	userID := c.Sender().ID
	chatID := c.Chat().ID
	if len(args) < 2 {
		return c.Respond(&tele.CallbackResponse{Text: "Неверные данные кнопки"})
	}
	group, device := args[0], args[1]
	if device != menu.DeviceAll && !validate.DeviceID(device) {
		return c.Respond(&tele.CallbackResponse{Text: "Неверные данные кнопки"})
	}

	op, err := h.resolveOperation(userID, group, device)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: err.Error(), ShowAlert: true})
	}

	text, err := h.promptText(op, group, device)
	if err != nil {
		h.logger.Error("Failed to build threshold prompt", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке данных"})
	}

	ctx := map[string]string{domain.CtxGroup: group, domain.CtxDevice: device}
	if err := h.showLive(userID, chatID, domain.MenuThresholdDevicePrompt, ctx, text,
		menu.ThresholdPromptKeyboard(group, device)); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке данных"})
	}

	// Arm the slot only after the prompt is actually on screen
	session := h.sessions.Get(userID)
	messageID := 0
	if session != nil {
		messageID = session.Ref.MessageID
	}
	h.pending.SetPending(userID, chatID, messageID, op, group, device)

	return c.Respond()
}

// resolveOperation maps prompt arguments to a threshold scope, rejecting
// scopes the user has no right to.
func (h *Handler) resolveOperation(userID int64, group, device string) (domain.OperationKind, error) {
	switch {
	case group == menu.GroupSys && device == menu.DeviceAll:
		role, err := h.access.Role(userID)
		if err != nil {
			return "", fmt.Errorf("ошибка проверки доступа")
		}
		if role != domain.RoleBigBoss {
			return "", fmt.Errorf("настройка всей системы доступна только руководителю")
		}
		return domain.OpAllSystem, nil

	case group == menu.GroupUser && device == menu.DeviceAll:
		return domain.OpAllUserGroups, nil

	case device == menu.DeviceAll:
		allowed, err := h.access.CanAccessGroup(userID, group)
		if err != nil || !allowed {
			return "", fmt.Errorf("нет доступа к группе %s", group)
		}
		return domain.OpWholeGroup, nil

	default:
		allowed, err := h.access.CanAccessGroup(userID, group)
		if err != nil || !allowed {
			return "", fmt.Errorf("нет доступа к группе %s", group)
		}
		return domain.OpSingleDevice, nil
	}
}

// promptText renders the numeric-pair prompt for a scope
func (h *Handler) promptText(op domain.OperationKind, group, device string) (string, error) {
	switch op {
	case domain.OpAllSystem:
		return "🏭 *Пороги всей системы*\n\nОтправьте значения в формате: `мин макс`\n\nПример: `18 25`", nil
	case domain.OpAllUserGroups:
		return "🌐 *Пороги всех ваших групп*\n\nОтправьте значения в формате: `мин макс`\n\nПример: `18 25`", nil
	case domain.OpWholeGroup:
		return fmt.Sprintf("🔧 *Пороги группы %s*\n\nОтправьте значения в формате: `мин макс`\n\nПример: `18 25`", group), nil
	}

	min, max, err := h.thresholds.Band(group, device)
	if err != nil {
		return "", err
	}
	text := fmt.Sprintf("🌡️ *Датчик %s* (группа %s)\n\nТекущие пороги: %.1f…%.1f°C\n", device, group, min, max)

	reading, err := h.thresholds.LatestReading(device)
	if err != nil {
		return "", err
	}
	if reading != nil {
		text += fmt.Sprintf("Последнее показание: %.1f°C (%s)\n", reading.Temperature, reading.MeasuredAt.Format("02.01 15:04"))
	}
	text += "\nОтправьте новые значения в формате: `мин макс`\n\nПример: `10 35`"
	return text, nil
}

// handleAdminList shows all registered admins (big boss only)
func (h *Handler) handleAdminList(c tele.Context) error {
	userID := c.Sender().ID

	role, err := h.access.Role(userID)
	if err != nil {
		h.logger.Error("Failed to load role", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке данных"})
	}
	if role != domain.RoleBigBoss {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Список администраторов доступен только руководителю",
			ShowAlert: true,
		})
	}

	admins, err := h.access.ListAdmins()
	if err != nil {
		h.logger.Error("Failed to list admins", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке данных"})
	}

	text := "👥 *Администраторы системы*\n\n"
	if len(admins) == 0 {
		text += "Пока никто не зарегистрирован"
	}
	for i, admin := range admins {
		text += fmt.Sprintf("%d. %s — %s (%s)\n", i+1, admin.FullName, admin.Position, strings.Join(admin.Groups, ", "))
	}

	return h.respondAfter(c, h.showLive(userID, c.Chat().ID, domain.MenuAdminList, nil, text, menu.BackToMainKeyboard()))
}

// handleStats shows a short system summary
func (h *Handler) handleStats(c tele.Context) error {
	userID := c.Sender().ID

	groups, err := h.access.AllGroups()
	if err != nil {
		h.logger.Error("Failed to load groups", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке данных"})
	}

	text := fmt.Sprintf(
		"📈 *Статистика системы*\n\n🏷 Групп датчиков: %d\n💬 Активных меню: %d",
		len(groups),
		h.sessions.ActiveCount(),
	)

	return h.respondAfter(c, h.showLive(userID, c.Chat().ID, domain.MenuStats, nil, text, menu.BackToMainKeyboard()))
}

func roleTitle(role domain.Role) string {
	switch role {
	case domain.RoleBigBoss:
		return "Руководитель"
	case domain.RoleAdmin:
		return "Администратор"
	default:
		return "Не зарегистрирован"
	}
}
