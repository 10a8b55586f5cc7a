//go:build js && wasm

// Package telegram binds the app screens to window.Telegram.WebApp.
package telegram

import (
	"context"
	"encoding/json"
	"strings"
	"syscall/js"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
)

type Bridge struct {
	webApp js.Value
	button *mainButton
}

// New returns the bridge of the running page, or false outside Telegram.
func New() (*Bridge, bool) {
	tg := js.Global().Get("Telegram")
	if !tg.Truthy() || !tg.Get("WebApp").Truthy() {
		return nil, false
	}
	webApp := tg.Get("WebApp")
	return &Bridge{
		webApp: webApp,
		button: &mainButton{v: webApp.Get("MainButton")},
	}, true
}

// Ready tells the host the page finished loading.
func (b *Bridge) Ready() {
	b.webApp.Call("ready")
}

func (b *Bridge) Alert(ctx context.Context, message string) error {
	_, err := await(ctx, func(cb js.Func) {
		b.webApp.Call("showAlert", message, cb)
	})
	return err
}

func (b *Bridge) Confirm(ctx context.Context, message string) (bool, error) {
	v, err := await(ctx, func(cb js.Func) {
		b.webApp.Call("showConfirm", message, cb)
	})
	if err != nil {
		return false, err
	}
	return v.Type() == js.TypeBoolean && v.Bool(), nil
}

func (b *Bridge) Popup(ctx context.Context, p ports.Popup) (string, error) {
	buttons := make([]any, len(p.Buttons))
	for i, btn := range p.Buttons {
		o := map[string]any{"id": btn.ID, "type": string(btn.Type)}
		if btn.Text != "" {
			o["text"] = btn.Text
		}
		buttons[i] = o
	}
	params := map[string]any{"message": p.Message, "buttons": buttons}
	if p.Title != "" {
		params["title"] = p.Title
	}

	v, err := await(ctx, func(cb js.Func) {
		b.webApp.Call("showPopup", params, cb)
	})
	if err != nil {
		return "", err
	}
	if v.Type() != js.TypeString {
		return "", nil
	}
	return v.String(), nil
}

func (b *Bridge) IsVersionAtLeast(version string) bool {
	return b.webApp.Call("isVersionAtLeast", version).Bool()
}

func (b *Bridge) InitData() string {
	return b.webApp.Get("initData").String()
}

func (b *Bridge) InitDataUnsafe() ports.Session {
	unsafe := b.webApp.Get("initDataUnsafe")
	if !unsafe.Truthy() {
		return ports.Session{}
	}

	var s ports.Session
	if sp := unsafe.Get("start_param"); sp.Type() == js.TypeString {
		s.StartParam = sp.String()
	}
	if u := unsafe.Get("user"); u.Truthy() {
		raw := js.Global().Get("JSON").Call("stringify", u).String()
		var user domain.User
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			s.User = user
		}
	}
	return s
}

func (b *Bridge) ColorScheme() string {
	return b.webApp.Get("colorScheme").String()
}

func (b *Bridge) Close() {
	b.webApp.Call("close")
}

func (b *Bridge) Expand() {
	b.webApp.Call("expand")
}

// OpenLink keeps t.me links inside Telegram.
func (b *Bridge) OpenLink(url string) {
	if strings.HasPrefix(url, "https://t.me/") {
		b.webApp.Call("openTelegramLink", url)
		return
	}
	b.webApp.Call("openLink", url)
}

func (b *Bridge) SwitchInlineQuery(query string, chatTypes []string) {
	types := make([]any, len(chatTypes))
	for i, t := range chatTypes {
		types[i] = t
	}
	b.webApp.Call("switchInlineQuery", query, types)
}

func (b *Bridge) EnableClosingConfirmation() {
	b.webApp.Call("enableClosingConfirmation")
}

func (b *Bridge) Haptic(kind ports.HapticKind) {
	b.webApp.Get("HapticFeedback").Call("notificationOccurred", string(kind))
}

func (b *Bridge) MainButton() ports.MainButton {
	return b.button
}

// OnMainButton registers fn as the main button click handler.
func (b *Bridge) OnMainButton(fn func()) js.Func {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	b.button.v.Call("onClick", f)
	return f
}

// await runs call with a one-shot callback and blocks until the host invokes
// it or ctx is done. A callback abandoned on ctx is never released since the
// host may still invoke it.
func await(ctx context.Context, call func(cb js.Func)) (js.Value, error) {
	result := make(chan js.Value, 1)
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		v := js.Undefined()
		if len(args) > 0 {
			v = args[0]
		}
		result <- v
		cb.Release()
		return nil
	})
	call(cb)

	select {
	case v := <-result:
		return v, nil
	case <-ctx.Done():
		return js.Undefined(), ctx.Err()
	}
}

type mainButton struct {
	v js.Value
}

func (m *mainButton) SetText(text string) { m.v.Call("setText", text) }
func (m *mainButton) Show()               { m.v.Call("show") }
func (m *mainButton) Hide()               { m.v.Call("hide") }
func (m *mainButton) ShowProgress()       { m.v.Call("showProgress", false) }
func (m *mainButton) HideProgress()       { m.v.Call("hideProgress") }
