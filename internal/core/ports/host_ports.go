package ports

import (
	"context"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
)

type PopupButtonType string

const (
	ButtonDefault     PopupButtonType = "default"
	ButtonOK          PopupButtonType = "ok"
	ButtonClose       PopupButtonType = "close"
	ButtonCancel      PopupButtonType = "cancel"
	ButtonDestructive PopupButtonType = "destructive"
)

type PopupButton struct {
	ID   string          `json:"id"`
	Type PopupButtonType `json:"type"`
	Text string          `json:"text,omitempty"`
}

type Popup struct {
	Title   string        `json:"title,omitempty"`
	Message string        `json:"message"`
	Buttons []PopupButton `json:"buttons"`
}

type HapticKind string

const (
	HapticSuccess HapticKind = "success"
	HapticWarning HapticKind = "warning"
	HapticError   HapticKind = "error"
)

// Session is the unverified part of the launch payload.
type Session struct {
	User       domain.User
	StartParam string
}

type MainButton interface {
	SetText(text string)
	Show()
	Hide()
	ShowProgress()
	HideProgress()
}

// HostBridge is the chrome of the app's host. Alert, Confirm and Popup
// block until the user answers or ctx is done.
type HostBridge interface {
	Alert(ctx context.Context, message string) error
	Confirm(ctx context.Context, message string) (bool, error)
	// Popup returns the ID of the pressed button, or "" when the popup was
	// dismissed without one.
	Popup(ctx context.Context, p Popup) (string, error)

	IsVersionAtLeast(version string) bool
	InitData() string
	InitDataUnsafe() Session
	ColorScheme() string

	Close()
	Expand()
	OpenLink(url string)
	SwitchInlineQuery(query string, chatTypes []string)
	EnableClosingConfirmation()
	Haptic(kind HapticKind)
	MainButton() MainButton
}
