package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dshills/pixelcalc/internal/calc"
	"github.com/dshills/pixelcalc/internal/config"
	"github.com/dshills/pixelcalc/internal/config/watcher"
	"github.com/dshills/pixelcalc/internal/input/key"
	"github.com/dshills/pixelcalc/internal/renderer/backend"
	"github.com/dshills/pixelcalc/internal/ui"
)

// syncBuffer is a bytes.Buffer safe to read while the app logs.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// newTestApp builds an application over an empty config file and a
// 40x24 NullBackend.
func newTestApp(t *testing.T, opts Options) (*Application, *backend.NullBackend, *syncBuffer) {
	t.Helper()

	if opts.ConfigPath == "" {
		opts.ConfigPath = filepath.Join(t.TempDir(), "config.toml")
		writeConfig(t, opts.ConfigPath, "")
	}
	if opts.Environ == nil {
		opts.Environ = map[string]string{}
	}
	logs := &syncBuffer{}
	if opts.LogOutput == nil {
		opts.LogOutput = logs
	}

	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(app.Shutdown)

	b := backend.NewNullBackend(40, 24)
	if err := app.SetBackend(b); err != nil {
		t.Fatalf("SetBackend() failed: %v", err)
	}
	return app, b, logs
}

func keyRune(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
}

func keySpecial(k backend.Key) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k}
}

func click(x, y int) []backend.Event {
	return []backend.Event{
		{Type: backend.EventMouse, MouseButton: backend.MouseLeft, MouseX: x, MouseY: y},
		{Type: backend.EventMouse, MouseButton: backend.MouseNone, MouseX: x, MouseY: y},
	}
}

// runWith queues events followed by q and runs the app to completion.
func runWith(t *testing.T, app *Application, b *backend.NullBackend, events ...backend.Event) {
	t.Helper()

	for _, ev := range events {
		b.PostEvent(ev)
	}
	b.PostEvent(keyRune('q'))

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrQuit) {
			t.Fatalf("Run() = %v, want ErrQuit", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return")
	}
}

// shownDisplay returns the words of the display row on screen.
func shownDisplay(app *Application, b *backend.NullBackend) []string {
	fields := strings.Fields(b.Row(app.Screen().DisplayRect().Y + 1))
	return fields[1 : len(fields)-1]
}

func TestNewApplication(t *testing.T) {
	app, _, _ := newTestApp(t, Options{})

	if app.config == nil {
		t.Error("expected config to be initialized")
	}
	if app.engine == nil {
		t.Error("expected engine to be initialized")
	}
	if app.keymap == nil {
		t.Error("expected keymap to be initialized")
	}
	if app.screen == nil {
		t.Error("expected screen to be initialized")
	}
	if app.SessionID() == "" {
		t.Error("expected a session ID")
	}
	if app.IsRunning() {
		t.Error("expected IsRunning() to be false before Run()")
	}
}

func TestNew_ConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := New(Options{ConfigPath: filepath.Join(dir, "missing.toml"), Environ: map[string]string{}})
	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "config" {
		t.Fatalf("New() error = %v, want config InitError", err)
	}
	if !errors.Is(err, config.ErrFileNotFound) {
		t.Errorf("New() error = %v, want ErrFileNotFound", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	writeConfig(t, bad, "[keymap]\n\"x\" = \"sqrt\"\n")
	_, err = New(Options{ConfigPath: bad, Environ: map[string]string{}})
	if !errors.As(err, &ie) || ie.Component != "keymap" {
		t.Errorf("New() error = %v, want keymap InitError", err)
	}
}

func TestApplication_ShutdownIdempotent(t *testing.T) {
	app, _, _ := newTestApp(t, Options{})

	// Should be safe to call multiple times
	app.Shutdown()
	app.Shutdown()
	app.Shutdown()
}

func TestRun_NoBackend(t *testing.T) {
	app, _, _ := newTestApp(t, Options{})
	if err := app.SetBackend(nil); err != nil {
		t.Fatal(err)
	}

	if err := app.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run() = %v, want ErrNoBackend", err)
	}
}

func TestRun_ShutdownFromAnotherGoroutine(t *testing.T) {
	app, b, _ := newTestApp(t, Options{})

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run() }()

	deadline := time.Now().Add(2 * time.Second)
	for !app.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if err := app.Run(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() = %v, want ErrAlreadyRunning", err)
	}
	if err := app.SetBackend(b); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("SetBackend() while running = %v, want ErrAlreadyRunning", err)
	}

	app.Shutdown()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() after Shutdown = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after Shutdown")
	}
}

func TestRun_TypedDigitsShowOnScreen(t *testing.T) {
	app, b, _ := newTestApp(t, Options{})

	runWith(t, app, b,
		keyRune('1'), keyRune('2'), keyRune('+'), keyRune('3'), keySpecial(backend.KeyEnter),
	)

	if got := shownDisplay(app, b); len(got) != 1 || got[0] != "15" {
		t.Errorf("display = %q, want 15", got)
	}
	if !b.MouseEnabled() {
		t.Error("mouse should be enabled by default")
	}
	if b.CursorVisible() {
		t.Error("cursor should be hidden")
	}
}

func TestRun_PendingOperatorShown(t *testing.T) {
	app, b, _ := newTestApp(t, Options{})

	runWith(t, app, b, keyRune('9'), keyRune('/'))

	if got := shownDisplay(app, b); strings.Join(got, " ") != "/ 9" {
		t.Errorf("display = %q, want pending divide of 9", got)
	}
}

func TestRun_KeyboardEditing(t *testing.T) {
	tests := []struct {
		name   string
		events []backend.Event
		want   string
	}{
		{"backspace", []backend.Event{keyRune('1'), keyRune('2'), keySpecial(backend.KeyBackspace)}, "1"},
		{"escape clears", []backend.Event{keyRune('1'), keyRune('+'), keyRune('2'), keySpecial(backend.KeyEscape)}, "0"},
		{"delete clears entry", []backend.Event{keyRune('4'), keyRune('*'), keyRune('5'), keySpecial(backend.KeyDelete), keyRune('2'), keyRune('=')}, "8"},
		{"decimal", []backend.Event{keyRune('.'), keyRune('5'), keyRune('+'), keyRune('.'), keyRune('5'), keyRune('=')}, "1"},
		{"unbound key ignored", []backend.Event{keyRune('7'), keyRune('x'), keySpecial(backend.KeyF5)}, "7"},
		{"shifted plus", []backend.Event{keyRune('2'), {Type: backend.EventKey, Key: backend.KeyRune, Rune: '+', Mod: backend.ModShift}, keyRune('2'), keyRune('=')}, "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, b, _ := newTestApp(t, Options{})
			runWith(t, app, b, tt.events...)

			if got := shownDisplay(app, b); len(got) != 1 || got[0] != tt.want {
				t.Errorf("display = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRun_CtrlCQuits(t *testing.T) {
	app, b, _ := newTestApp(t, Options{})
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'c', Mod: backend.ModCtrl})

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrQuit) {
			t.Errorf("Run() = %v, want ErrQuit", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return")
	}
}

func TestRun_MouseClicks(t *testing.T) {
	app, b, _ := newTestApp(t, Options{})

	// Same geometry the app computes for 40x24.
	layout := ui.NewScreen(ui.Theme{})
	layout.Layout(40, 24)
	centers := make(map[string][2]int)
	for _, btn := range layout.Buttons() {
		centers[btn.Label] = [2]int{btn.Rect.X + btn.Rect.Width/2, btn.Rect.Y + btn.Rect.Height/2}
	}

	var events []backend.Event
	for _, label := range []string{"7", "*", "6", "="} {
		c := centers[label]
		events = append(events, click(c[0], c[1])...)
	}
	// A click on no button does nothing.
	events = append(events, click(0, 0)...)

	runWith(t, app, b, events...)

	if got := shownDisplay(app, b); len(got) != 1 || got[0] != "42" {
		t.Errorf("display = %q, want 42", got)
	}
}

func TestRun_MouseHeldDoesNotRepeat(t *testing.T) {
	app, b, _ := newTestApp(t, Options{})

	layout := ui.NewScreen(ui.Theme{})
	layout.Layout(40, 24)
	var seven backend.Rect
	for _, btn := range layout.Buttons() {
		if btn.Label == "7" {
			seven = btn.Rect
		}
	}

	press := backend.Event{Type: backend.EventMouse, MouseButton: backend.MouseLeft, MouseX: seven.X, MouseY: seven.Y}
	runWith(t, app, b, press, press, press)

	if got := shownDisplay(app, b); len(got) != 1 || got[0] != "7" {
		t.Errorf("display = %q, want a single 7", got)
	}
}

func TestRun_DivideByZeroBeeps(t *testing.T) {
	app, b, _ := newTestApp(t, Options{})

	runWith(t, app, b, keyRune('5'), keyRune('/'), keyRune('0'), keyRune('='), keyRune('='))

	if got := shownDisplay(app, b); len(got) != 1 || got[0] != calc.ErrorToken {
		t.Errorf("display = %q, want %s", got, calc.ErrorToken)
	}
	if b.Beeps() != 1 {
		t.Errorf("Beeps() = %d, want 1", b.Beeps())
	}
}

func TestRun_ResizeTooSmall(t *testing.T) {
	app, b, _ := newTestApp(t, Options{})

	runWith(t, app, b, backend.Event{Type: backend.EventResize, Width: 10, Height: 5})

	if !app.Screen().TooSmall() {
		t.Error("screen should be too small after resize")
	}
	if got := b.Row(0); got != "terminal t" {
		t.Errorf("row 0 = %q, want truncated notice", got)
	}
}

func TestRun_NoMouseOverride(t *testing.T) {
	app, b, _ := newTestApp(t, Options{Overrides: config.Overrides{NoMouse: true}})

	runWith(t, app, b)

	if b.MouseEnabled() {
		t.Error("mouse enabled despite NoMouse")
	}
}

func TestRun_LogsReadyWithSession(t *testing.T) {
	app, b, logs := newTestApp(t, Options{Overrides: config.Overrides{LogLevel: "debug"}})

	runWith(t, app, b, keyRune('3'))

	out := logs.String()
	if !strings.Contains(out, "[INFO] pixelcalc: ready") {
		t.Errorf("log missing ready line:\n%s", out)
	}
	if !strings.Contains(out, "session="+app.SessionID()) {
		t.Errorf("log missing session field:\n%s", out)
	}
	if !strings.Contains(out, `display "3"`) {
		t.Errorf("log missing engine display line:\n%s", out)
	}
}

func TestRun_UserKeymap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "[keymap]\n\"x\" = \"*\"\n\"q\" = \"none\"\n\"Ctrl+D\" = \"quit\"\n")

	app, b, _ := newTestApp(t, Options{ConfigPath: path})

	// q is unbound here, so quit with Ctrl+D.
	for _, ev := range []backend.Event{keyRune('6'), keyRune('x'), keyRune('7'), keyRune('q'), keyRune('=')} {
		b.PostEvent(ev)
	}
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'd', Mod: backend.ModCtrl})

	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() = %v, want ErrQuit", err)
	}
	if got := shownDisplay(app, b); len(got) != 1 || got[0] != "42" {
		t.Errorf("display = %q, want 42", got)
	}
}

func TestApplyConfig_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "[ui]\ntheme = \"amber\"\n")

	app, b, logs := newTestApp(t, Options{ConfigPath: path})
	b.EnableMouse()

	writeConfig(t, path, "[ui]\ntheme = \"mono\"\nmouse = false\n\n[keymap]\n\"x\" = \"*\"\n")
	app.onConfigChange(watcher.Event{Path: path, Op: watcher.OpWrite})
	app.applyPendingConfig()

	if app.Config().UI.Theme != "mono" {
		t.Errorf("Config().UI.Theme = %q, want mono", app.Config().UI.Theme)
	}
	if app.Screen().Theme().Name != "mono" {
		t.Errorf("screen theme = %q, want mono", app.Screen().Theme().Name)
	}
	if binding, ok := app.Keymap().Lookup(key.NewRuneEvent('x', key.ModNone)); !ok || binding.Input != calc.Operate(calc.OpMultiply) {
		t.Errorf("x binding = %+v, %v, want multiply", binding, ok)
	}
	if b.MouseEnabled() {
		t.Error("mouse should be disabled after reload")
	}
	if !strings.Contains(logs.String(), "config applied") {
		t.Errorf("log missing reload line:\n%s", logs.String())
	}
}

func TestApplyConfig_BadReloadKeepsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "[ui]\ntheme = \"mono\"\n")

	app, _, logs := newTestApp(t, Options{ConfigPath: path})

	writeConfig(t, path, "[ui\ntheme = \n")
	app.onConfigChange(watcher.Event{Path: path, Op: watcher.OpWrite})
	app.applyPendingConfig()

	if app.Config().UI.Theme != "mono" {
		t.Errorf("Config().UI.Theme = %q, want previous mono", app.Config().UI.Theme)
	}
	if !strings.Contains(logs.String(), "keeping previous config") {
		t.Errorf("log missing warning:\n%s", logs.String())
	}
}

func TestApplyConfig_BadKeymapKeepsKeymap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "")

	app, _, logs := newTestApp(t, Options{ConfigPath: path})

	writeConfig(t, path, "[keymap]\n\"x\" = \"sqrt\"\n")
	app.onConfigChange(watcher.Event{Path: path, Op: watcher.OpWrite})
	app.applyPendingConfig()

	if _, ok := app.Keymap().Lookup(key.NewRuneEvent('7', key.ModNone)); !ok {
		t.Error("default keymap lost after bad reload")
	}
	if !strings.Contains(logs.String(), "keeping previous keymap") {
		t.Errorf("log missing warning:\n%s", logs.String())
	}
}

func TestRun_WatchedConfigReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "")

	app, b, logs := newTestApp(t, Options{ConfigPath: path, WatchConfig: true})
	if app.watcher == nil {
		t.Fatal("watcher not created")
	}

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run() }()

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(logs.String(), "ready") && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	writeConfig(t, path, "[ui]\ntheme = \"mono\"\n")

	deadline = time.Now().Add(5 * time.Second)
	for !strings.Contains(logs.String(), "config applied") && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	b.PostEvent(keyRune('q'))
	select {
	case err := <-errCh:
		if !errors.Is(err, ErrQuit) {
			t.Fatalf("Run() = %v, want ErrQuit", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return")
	}

	if !strings.Contains(logs.String(), "config applied") {
		t.Fatalf("config was not reloaded:\n%s", logs.String())
	}
	if app.Config().UI.Theme != "mono" {
		t.Errorf("Config().UI.Theme = %q, want mono", app.Config().UI.Theme)
	}
}

func TestConvertToKeyEvent(t *testing.T) {
	tests := []struct {
		ev   backend.Event
		want key.Event
	}{
		{keyRune('7'), key.NewRuneEvent('7', key.ModNone)},
		{backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'C', Mod: backend.ModShift}, key.NewRuneEvent('C', key.ModNone)},
		{backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'c', Mod: backend.ModCtrl}, key.NewRuneEvent('c', key.ModCtrl)},
		{keySpecial(backend.KeyEnter), key.NewSpecialEvent(key.KeyEnter, key.ModNone)},
		{keySpecial(backend.KeyBacktab), key.NewSpecialEvent(key.KeyTab, key.ModShift)},
		{keySpecial(backend.KeyF12), key.NewSpecialEvent(key.KeyF12, key.ModNone)},
		{backend.Event{Type: backend.EventKey, Key: backend.KeyDelete, Mod: backend.ModAlt}, key.NewSpecialEvent(key.KeyDelete, key.ModAlt)},
	}

	for _, tt := range tests {
		if got := convertToKeyEvent(tt.ev); got != tt.want {
			t.Errorf("convertToKeyEvent(%+v) = %v, want %v", tt.ev, got, tt.want)
		}
	}
}
