// Package terminal hosts the app screens in a terminal: popups become
// numbered prompts on the output and answers are read line by line.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
	"github.com/vncsmyrnk/dayfinder/internal/initdata"
)

// DefaultVersion is the host version reported when none is configured.
const DefaultVersion = "7.0"

type Options struct {
	In  io.Reader
	Out io.Writer

	// Version is the host version reported to feature checks.
	Version string

	// InitData is the raw launch payload.
	InitData string

	ColorScheme string

	// AssumeYes answers every prompt with its first option without reading
	// input.
	AssumeYes bool
}

type Bridge struct {
	out       io.Writer
	version   string
	initData  string
	session   ports.Session
	scheme    string
	assumeYes bool
	button    *mainButton

	lines    chan string
	readOnce sync.Once
	in       io.Reader

	mu                  sync.Mutex
	closed              bool
	closingConfirmation bool
	opened              []string
}

func New(opts Options) *Bridge {
	b := &Bridge{
		in:        opts.In,
		out:       opts.Out,
		version:   opts.Version,
		initData:  opts.InitData,
		scheme:    opts.ColorScheme,
		assumeYes: opts.AssumeYes,
		lines:     make(chan string),
	}
	if b.out == nil {
		b.out = io.Discard
	}
	if b.version == "" {
		b.version = DefaultVersion
	}
	if b.scheme == "" {
		b.scheme = "light"
	}
	if d, err := initdata.Parse(opts.InitData); err == nil {
		b.session = ports.Session{User: d.User, StartParam: d.StartParam}
	}
	b.button = &mainButton{out: b.out}
	return b
}

func (b *Bridge) Alert(ctx context.Context, message string) error {
	fmt.Fprintln(b.out, message)
	if b.assumeYes {
		return nil
	}
	fmt.Fprint(b.out, "[press enter] ")
	_, err := b.readLine(ctx)
	return err
}

func (b *Bridge) Confirm(ctx context.Context, message string) (bool, error) {
	if b.assumeYes {
		fmt.Fprintln(b.out, message)
		return true, nil
	}
	fmt.Fprintf(b.out, "%s [y/N] ", message)
	line, err := b.readLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Popup lists the buttons by number. An empty answer dismisses the popup.
func (b *Bridge) Popup(ctx context.Context, p ports.Popup) (string, error) {
	if p.Title != "" {
		fmt.Fprintln(b.out, p.Title)
	}
	fmt.Fprintln(b.out, p.Message)
	for i, btn := range p.Buttons {
		fmt.Fprintf(b.out, "  %d) %s\n", i+1, buttonText(btn))
	}
	if len(p.Buttons) == 0 {
		return "", nil
	}
	if b.assumeYes {
		return p.Buttons[0].ID, nil
	}

	for {
		fmt.Fprint(b.out, "> ")
		line, err := b.readLine(ctx)
		if err != nil {
			return "", err
		}
		if line == "" {
			return "", nil
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(p.Buttons) {
			return p.Buttons[n-1].ID, nil
		}
		fmt.Fprintf(b.out, "enter a number between 1 and %d\n", len(p.Buttons))
	}
}

// Choose prompts for one of options and returns it, or "" on an empty
// answer. It serves the controls a terminal has no widget for, such as the
// vote radios. A single letter picks the option it starts.
func (b *Bridge) Choose(ctx context.Context, label string, options []string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}
	if b.assumeYes {
		return options[0], nil
	}
	for {
		fmt.Fprintf(b.out, "%s [%s] ", label, strings.Join(options, "/"))
		line, err := b.readLine(ctx)
		if err != nil {
			return "", err
		}
		if line == "" {
			return "", nil
		}
		for _, o := range options {
			if strings.EqualFold(line, o) || (len(line) == 1 && strings.HasPrefix(o, strings.ToLower(line))) {
				return o, nil
			}
		}
	}
}

func (b *Bridge) IsVersionAtLeast(version string) bool {
	return domain.VersionAtLeast(b.version, version)
}

func (b *Bridge) InitData() string {
	return b.initData
}

func (b *Bridge) InitDataUnsafe() ports.Session {
	return b.session
}

func (b *Bridge) ColorScheme() string {
	return b.scheme
}

func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

// Closed reports whether a screen asked to close the app.
func (b *Bridge) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *Bridge) Expand() {}

func (b *Bridge) OpenLink(url string) {
	b.mu.Lock()
	b.opened = append(b.opened, url)
	b.mu.Unlock()
	fmt.Fprintf(b.out, "Open %s\n", url)
}

// OpenedLinks returns every link the screens opened, oldest first.
func (b *Bridge) OpenedLinks() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.opened...)
}

func (b *Bridge) SwitchInlineQuery(query string, chatTypes []string) {
	fmt.Fprintf(b.out, "Share %q with %s\n", query, strings.Join(chatTypes, ", "))
}

func (b *Bridge) EnableClosingConfirmation() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closingConfirmation = true
}

// ClosingConfirmation reports whether leaving would lose unsaved input.
func (b *Bridge) ClosingConfirmation() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closingConfirmation
}

func (b *Bridge) Haptic(kind ports.HapticKind) {
	if kind == ports.HapticError {
		fmt.Fprint(b.out, "\a")
	}
}

func (b *Bridge) MainButton() ports.MainButton {
	return b.button
}

// readLine returns the next trimmed input line. All reads go through a single
// goroutine so a prompt abandoned on ctx does not swallow the next answer.
func (b *Bridge) readLine(ctx context.Context) (string, error) {
	b.readOnce.Do(func() {
		go b.scan()
	})
	select {
	case line, ok := <-b.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (b *Bridge) scan() {
	defer close(b.lines)
	if b.in == nil {
		return
	}
	scanner := bufio.NewScanner(b.in)
	for scanner.Scan() {
		b.lines <- strings.TrimSpace(scanner.Text())
	}
}

func buttonText(btn ports.PopupButton) string {
	if btn.Text != "" {
		return btn.Text
	}
	switch btn.Type {
	case ports.ButtonOK:
		return "OK"
	case ports.ButtonClose:
		return "Close"
	case ports.ButtonCancel:
		return "Cancel"
	}
	return btn.ID
}

type mainButton struct {
	out io.Writer

	mu      sync.Mutex
	text    string
	visible bool
}

func (m *mainButton) SetText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
}

func (m *mainButton) Show() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = true
}

func (m *mainButton) Hide() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = false
}

func (m *mainButton) ShowProgress() {
	m.mu.Lock()
	text, visible := m.text, m.visible
	m.mu.Unlock()
	if visible {
		fmt.Fprintf(m.out, "%s...\n", text)
	}
}

func (m *mainButton) HideProgress() {}
