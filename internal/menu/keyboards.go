package menu

import (
	"fmt"

	"thermobot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// Callback uniques. Dynamic arguments ride in the payload part of the
// callback data ("unique|arg|arg").
const (
	CbBackToMain     = "back_to_main"
	CbHelp           = "help"
	CbMyData         = "my_data"
	CbSelectGroup    = "select_group"
	CbGroupInfo      = "grp"
	CbSensor         = "sensor"
	CbThresholds     = "settings_thresholds"
	CbThresholdGroup = "thr_group"
	CbThresholdSet   = "thr_set"
	CbToggleGroup    = "toggle_group"
	CbFinishGroups   = "finish_groups"
	CbNeedGroup      = "need_select_group"
	CbListAdmins     = "list_admins"
	CbSystemStats    = "system_stats"
)

// Pseudo group/device keys for the wider threshold scopes
const (
	GroupUser = "USER"
	GroupSys  = "SYS"
	DeviceAll = "ALL"
)

// MainKeyboard builds the role-aware main menu
func MainKeyboard(role domain.Role) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	if role != domain.RoleAdmin && role != domain.RoleBigBoss {
		// Unregistered users get no menu buttons
		markup.Inline()
		return markup
	}

	rows := []tele.Row{
		markup.Row(
			markup.Data("📊 Мои данные", CbMyData),
			markup.Data("🌡️ Выбрать группу", CbSelectGroup),
		),
		markup.Row(
			markup.Data("⚙️ Пороговые значения", CbThresholds),
			markup.Data("📈 Статистика", CbSystemStats),
		),
	}
	if role == domain.RoleBigBoss {
		rows = append(rows, markup.Row(
			markup.Data("👥 Список администраторов", CbListAdmins),
		))
	}
	rows = append(rows, markup.Row(markup.Data("❓ Помощь", CbHelp)))

	markup.Inline(rows...)
	return markup
}

// HelpKeyboard builds the help menu
func HelpKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("📖 Руководство", "help_manual"),
			markup.Data("🔧 Техподдержка", "help_support"),
		),
		markup.Row(markup.Data("⬅️ Главное меню", CbBackToMain)),
	)
	return markup
}

// BackToMainKeyboard builds the single back control used by flat menus
func BackToMainKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("⬅️ Главное меню", CbBackToMain)))
	return markup
}

// GroupListKeyboard builds the group overview menu, three groups per row
func GroupListKeyboard(groups []string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	if len(groups) == 0 {
		rows = append(rows, markup.Row(markup.Data("⚠️ Нет доступных групп", CbBackToMain)))
	}
	for i := 0; i < len(groups); i += 3 {
		row := tele.Row{}
		for j := i; j < i+3 && j < len(groups); j++ {
			row = append(row, markup.Data(groups[j], CbGroupInfo, groups[j]))
		}
		rows = append(rows, row)
	}
	rows = append(rows, markup.Row(markup.Data("⬅️ Главное меню", CbBackToMain)))

	markup.Inline(rows...)
	return markup
}

// GroupInfoKeyboard builds the controls of a single group view
func GroupInfoKeyboard(group string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("🔄 Обновить", CbGroupInfo, group)),
		markup.Row(
			markup.Data("⬅️ Назад к группам", CbSelectGroup),
			markup.Data("🏠 Главное меню", CbBackToMain),
		),
	)
	return markup
}

// ThresholdGroupListKeyboard builds the threshold settings entry menu
func ThresholdGroupListKeyboard(groups []string, role domain.Role) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	for i := 0; i < len(groups); i += 2 {
		row := tele.Row{}
		for j := i; j < i+2 && j < len(groups); j++ {
			row = append(row, markup.Data("🔧 "+groups[j], CbThresholdGroup, groups[j]))
		}
		rows = append(rows, row)
	}
	if len(groups) > 0 {
		rows = append(rows, markup.Row(
			markup.Data("🌐 Все мои группы", CbThresholdSet, GroupUser, DeviceAll),
		))
	}
	if role == domain.RoleBigBoss {
		rows = append(rows, markup.Row(
			markup.Data("🏭 Вся система", CbThresholdSet, GroupSys, DeviceAll),
		))
	}
	rows = append(rows, markup.Row(markup.Data("⬅️ Главное меню", CbBackToMain)))

	markup.Inline(rows...)
	return markup
}

// ThresholdDeviceListKeyboard builds the device picker of one group
func ThresholdDeviceListKeyboard(group string, devices []string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{
		markup.Row(markup.Data(fmt.Sprintf("🔧 Вся группа %s", group), CbThresholdSet, group, DeviceAll)),
	}
	for _, device := range devices {
		rows = append(rows, markup.Row(markup.Data("🌡️ "+device, CbThresholdSet, group, device)))
	}
	rows = append(rows, markup.Row(
		markup.Data("🔙 Назад к группам", CbThresholds),
		markup.Data("🏠 Главное меню", CbBackToMain),
	))

	markup.Inline(rows...)
	return markup
}

// ThresholdPromptKeyboard builds the back control of a numeric-pair prompt
func ThresholdPromptKeyboard(group, device string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	if group == GroupUser || group == GroupSys {
		markup.Inline(
			markup.Row(markup.Data("🔙 Назад к группам", CbThresholds)),
			markup.Row(markup.Data("🏠 Главное меню", CbBackToMain)),
		)
		return markup
	}
	markup.Inline(
		markup.Row(markup.Data("🔙 Назад к устройствам", CbThresholdGroup, group)),
		markup.Row(markup.Data("🏠 Главное меню", CbBackToMain)),
	)
	return markup
}

// WizardGroupsKeyboard builds the multi-select group picker of the
// registration wizard, selected groups marked with a check.
func WizardGroupsKeyboard(available, selected []string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	selectedSet := make(map[string]struct{}, len(selected))
	for _, g := range selected {
		selectedSet[g] = struct{}{}
	}

	for i := 0; i < len(available); i += 3 {
		row := tele.Row{}
		for j := i; j < i+3 && j < len(available); j++ {
			group := available[j]
			text := group
			if _, ok := selectedSet[group]; ok {
				text = "✅ " + group
			}
			row = append(row, markup.Data(text, CbToggleGroup, group))
		}
		rows = append(rows, row)
	}

	if len(selected) > 0 {
		rows = append(rows, markup.Row(markup.Data(
			fmt.Sprintf("✅ Завершить выбор (%d)", len(selected)),
			CbFinishGroups,
		)))
	} else {
		rows = append(rows, markup.Row(markup.Data(
			"⚠️ Выберите минимум одну группу",
			CbNeedGroup,
		)))
	}

	markup.Inline(rows...)
	return markup
}

// Reconstruct rebuilds the default control set of a tracked menu as a pure
// function of its kind, context and the caller's access. The registry never
// stores rendered controls, only the semantics needed to derive them.
func Reconstruct(session *domain.UserSession, dir Directory) (*tele.ReplyMarkup, error) {
	role, err := dir.Role(session.ChatID)
	if err != nil {
		return nil, err
	}

	switch session.Kind {
	case domain.MenuHelp:
		return HelpKeyboard(), nil

	case domain.MenuMyData, domain.MenuAdminList, domain.MenuStats:
		return BackToMainKeyboard(), nil

	case domain.MenuGroupList:
		groups, err := dir.AccessibleGroups(session.ChatID)
		if err != nil {
			return nil, err
		}
		return GroupListKeyboard(groups), nil

	case domain.MenuGroupInfo:
		return GroupInfoKeyboard(session.Ctx(domain.CtxGroup)), nil

	case domain.MenuThresholdGroupList:
		groups, err := dir.AccessibleGroups(session.ChatID)
		if err != nil {
			return nil, err
		}
		return ThresholdGroupListKeyboard(groups, role), nil

	case domain.MenuThresholdDeviceList:
		group := session.Ctx(domain.CtxGroup)
		devices, err := dir.GroupDevices(group)
		if err != nil {
			return nil, err
		}
		return ThresholdDeviceListKeyboard(group, devices), nil

	case domain.MenuThresholdDevicePrompt:
		return ThresholdPromptKeyboard(session.Ctx(domain.CtxGroup), session.Ctx(domain.CtxDevice)), nil

	case domain.MenuWizardStep:
		// The group step must keep its picker even when the registry does
		// not know the selection: rebuild it unselected rather than strip
		// the buttons from the live message. Text-input steps carry none.
		if session.Ctx(domain.CtxWizardStep) == string(domain.StepGroups) {
			available, err := dir.AllGroups()
			if err != nil {
				return nil, err
			}
			return WizardGroupsKeyboard(available, nil), nil
		}
		return nil, nil

	default:
		return MainKeyboard(role), nil
	}
}
