package menu

import (
	"fmt"

	"thermobot/internal/domain"
)

// composeFeedback renders the event headline into context-appropriate
// guidance for the menu the user is currently looking at.
func composeFeedback(session *domain.UserSession, ev Event) string {
	switch session.Kind {
	case domain.MenuThresholdDevicePrompt:
		return thresholdPromptFeedback(session, ev)
	case domain.MenuWizardStep:
		return wizardStepFeedback(session, ev)
	default:
		return genericFeedback(ev)
	}
}

func thresholdPromptFeedback(session *domain.UserSession, ev Event) string {
	if ev.Success {
		return ev.Headline
	}

	group := session.Ctx(domain.CtxGroup)
	device := session.Ctx(domain.CtxDevice)

	text := fmt.Sprintf("❌ *%s*\n\n", ev.Headline)
	if ev.ContentType != "" {
		text += fmt.Sprintf("Обнаружен: %s\n\n", ev.ContentType)
	}

	switch {
	case group == GroupUser && device == DeviceAll:
		text += "Для установки порогов всем вашим датчикам отправьте значения в формате: `мин макс`\n\nПример: `18 25`"
	case group == GroupSys && device == DeviceAll:
		text += "Для установки порогов всей системе отправьте значения в формате: `мин макс`\n\nПример: `18 25`"
	case device == DeviceAll:
		text += fmt.Sprintf("Для группы `%s` отправьте пороги в формате: `мин макс`\n\nПример: `18 25`", group)
	default:
		text += fmt.Sprintf("Для устройства `%s` отправьте пороги в формате: `мин макс`\n\nПример: `10 35`", device)
	}
	return text
}

func wizardStepFeedback(session *domain.UserSession, ev Event) string {
	if ev.Success {
		return ev.Headline
	}

	text := fmt.Sprintf("❌ *%s*\n\n", ev.Headline)
	if ev.ContentType != "" {
		text += fmt.Sprintf("Обнаружен: %s\n\n", ev.ContentType)
	}

	switch domain.WizardStep(session.Ctx(domain.CtxWizardStep)) {
	case domain.StepName:
		text += "Для регистрации введите полное ФИО: Фамилия Имя Отчество"
	case domain.StepGroups:
		text += "Выберите рабочие группы кнопками и нажмите «Завершить выбор»"
	case domain.StepPosition:
		text += "Введите вашу должность (например: Директор, Менеджер)"
	default:
		text += "Продолжите процесс регистрации"
	}
	return text
}

func genericFeedback(ev Event) string {
	if ev.Success {
		return ev.Headline
	}

	text := fmt.Sprintf("❌ *%s*\n\n", ev.Headline)
	if ev.ContentType != "" {
		text += fmt.Sprintf("Обнаружен: %s\n\n", ev.ContentType)
	}
	text += "Используйте кнопки меню для навигации."
	return text
}
