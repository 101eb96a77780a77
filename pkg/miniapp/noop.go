package miniapp

import (
	"sync"
)

type (
	noopShell struct {
		button *noopMainButton
		popup  *noopPopup
		haptic noopHaptic
	}

	noopMainButton struct {
		mu     sync.Mutex
		params MainButtonParams
		click  func()
	}

	noopPopup struct {
		mu     sync.Mutex
		closed func(buttonID string)
	}

	noopHaptic struct{}
)

// NewNoopShell returns a shell with no host behind it: buttons record
// their params, popups resolve immediately with their first button, and
// haptics do nothing. Used when the backend runs outside the mini-app
// host and in tests.
func NewNoopShell() Shell {
	return &noopShell{
		button: &noopMainButton{},
		popup:  &noopPopup{},
	}
}

func (s *noopShell) MainButton() MainButton { return s.button }
func (s *noopShell) Popup() Popup           { return s.popup }
func (s *noopShell) Haptic() Haptic         { return s.haptic }

func (s *noopShell) Release() {
	s.button.mu.Lock()
	s.button.click = nil
	s.button.mu.Unlock()

	s.popup.mu.Lock()
	s.popup.closed = nil
	s.popup.mu.Unlock()
}

func (b *noopMainButton) SetParams(params MainButtonParams) {
	b.mu.Lock()
	b.params = params
	b.mu.Unlock()
}

func (b *noopMainButton) Show()    {}
func (b *noopMainButton) Hide()    {}
func (b *noopMainButton) Enable()  {}
func (b *noopMainButton) Disable() {}

func (b *noopMainButton) OnClick(fn func()) (off func()) {
	b.mu.Lock()
	b.click = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		b.click = nil
		b.mu.Unlock()
	}
}

func (p *noopPopup) Open(params PopupParams) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()

	// Without a host there is nobody to press a button; resolve with the
	// first one so confirmation flows keep moving.
	if closed != nil && len(params.Buttons) > 0 {
		closed(params.Buttons[0].ID)
	}
}

func (p *noopPopup) OnClosed(fn func(buttonID string)) (off func()) {
	p.mu.Lock()
	p.closed = fn
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		p.closed = nil
		p.mu.Unlock()
	}
}

func (noopHaptic) NotificationOccurred(HapticStyle) {}
