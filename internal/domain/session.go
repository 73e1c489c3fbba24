package domain

import "time"

// MenuKind identifies the semantic type of the live interactive message.
// Context keys below carry the rest of what is needed to rebuild its controls.
type MenuKind string

const (
	MenuMain                  MenuKind = "main"
	MenuHelp                  MenuKind = "help"
	MenuMyData                MenuKind = "my_data"
	MenuGroupList             MenuKind = "group_list"
	MenuGroupInfo             MenuKind = "group_info"
	MenuThresholdGroupList    MenuKind = "threshold_group_list"
	MenuThresholdDeviceList   MenuKind = "threshold_device_list"
	MenuThresholdDevicePrompt MenuKind = "threshold_device_prompt"
	MenuWizardStep            MenuKind = "wizard_step"
	MenuAdminList             MenuKind = "admin_list"
	MenuStats                 MenuKind = "stats"
)

// Context keys used in UserSession.Context.
const (
	CtxGroup      = "group"
	CtxDevice     = "device"
	CtxWizardStep = "step"
)

// MessageRef locates one message in one chat
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// UserSession tracks the single live interactive message of a user.
// It is unconditionally overwritten on every render.
type UserSession struct {
	UserID    int64
	ChatID    int64
	Ref       MessageRef
	Kind      MenuKind
	Context   map[string]string
	UpdatedAt time.Time
}

// Ctx returns a context value or the empty string
func (s *UserSession) Ctx(key string) string {
	if s == nil || s.Context == nil {
		return ""
	}
	return s.Context[key]
}
