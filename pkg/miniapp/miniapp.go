// Package miniapp defines the boundary to the chat-app shell hosting the
// web view. The shell owns the native header, main button, popups and
// haptics; the Go side only talks to it through these injected interfaces
// so nothing here depends on ambient globals.
package miniapp

type (
	HapticStyle string

	MainButtonParams struct {
		Text      string `json:"text"`
		Color     string `json:"color,omitempty"`
		TextColor string `json:"text_color,omitempty"`
		IsEnabled bool   `json:"is_active"`
		IsVisible bool   `json:"is_visible"`
	}

	PopupButton struct {
		ID   string `json:"id"`
		Type string `json:"type"` // "ok", "cancel", "destructive", ...
	}

	PopupParams struct {
		Title   string        `json:"title"`
		Message string        `json:"message"`
		Buttons []PopupButton `json:"buttons"`
	}

	// MainButton mirrors the host chrome button under the web view.
	// OnClick returns an unsubscribe func; callers release their handler
	// when the view leaves the screen.
	MainButton interface {
		SetParams(params MainButtonParams)
		Show()
		Hide()
		Enable()
		Disable()
		OnClick(fn func()) (off func())
	}

	// Popup shows a native confirmation dialog. OnClosed delivers the id
	// of the pressed button.
	Popup interface {
		Open(params PopupParams)
		OnClosed(fn func(buttonID string)) (off func())
	}

	Haptic interface {
		NotificationOccurred(style HapticStyle)
	}

	// Shell bundles the chrome surfaces for one active view. Release
	// detaches every subscription the view still holds.
	Shell interface {
		MainButton() MainButton
		Popup() Popup
		Haptic() Haptic
		Release()
	}
)

const (
	HapticSuccess HapticStyle = "success"
	HapticWarning HapticStyle = "warning"
	HapticError   HapticStyle = "error"
)
