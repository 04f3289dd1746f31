package app

import (
	"github.com/dshills/pixelcalc/internal/calc"
	"github.com/dshills/pixelcalc/internal/input/key"
	"github.com/dshills/pixelcalc/internal/input/keymap"
	"github.com/dshills/pixelcalc/internal/renderer/backend"
	"github.com/dshills/pixelcalc/internal/ui"
)

// eventLoop handles one backend event at a time until quit or shutdown.
func (app *Application) eventLoop() error {
	for {
		ev := app.backend.PollEvent()

		select {
		case <-app.done:
			return nil
		default:
		}

		if ev.Type == backend.EventNone {
			// The terminal was finalized underneath us.
			return nil
		}

		if err := app.handleBackendEvent(ev); err != nil {
			return err
		}
		app.redraw()
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	// A highlight lasts until the next event.
	if ev.Type != backend.EventInterrupt {
		app.screen.Release()
	}

	switch ev.Type {
	case backend.EventResize:
		app.handleResize(ev)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		app.handleMouseEvent(ev)
	case backend.EventInterrupt:
		app.applyPendingConfig()
	}
	return nil
}

// handleResize processes terminal resize events.
func (app *Application) handleResize(ev backend.Event) {
	app.screen.Layout(ev.Width, ev.Height)
	app.logger.Debug("resize %dx%d", ev.Width, ev.Height)
}

// handleKeyEvent looks the key up in the keymap and runs its binding.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	keyEv := convertToKeyEvent(ev)

	binding, ok := app.keymap.Lookup(keyEv)
	if !ok {
		app.logger.Debug("unbound key %s", keyEv)
		return nil
	}

	if binding.IsCommand() {
		if binding.Command == keymap.CommandQuit {
			app.logger.Info("quit requested by %s", keyEv)
			return ErrQuit
		}
		return nil
	}

	app.screen.Press(binding.Input)
	app.apply(binding.Input)
	return nil
}

// handleMouseEvent presses the button under a left click.
func (app *Application) handleMouseEvent(ev backend.Event) {
	if ev.MouseButton != backend.MouseLeft {
		app.mouseDown = false
		return
	}
	if app.mouseDown {
		return
	}
	app.mouseDown = true

	btn, ok := app.screen.HitTest(ev.MouseX, ev.MouseY)
	if !ok {
		return
	}
	app.screen.Press(btn.Input)
	app.apply(btn.Input)
}

// apply feeds one input to the engine.
func (app *Application) apply(in calc.Input) {
	before := app.engine.Display()
	after := app.engine.Apply(in)
	if after == calc.ErrorToken && before != calc.ErrorToken {
		app.backend.Beep()
	}
}

// redraw draws the engine state.
func (app *Application) redraw() {
	app.screen.Draw(app.backend, ui.View{
		Display: app.engine.Display(),
		Pending: app.engine.State().Operator,
	})
}

// convertToKeyEvent converts a backend.Event to a key.Event.
func convertToKeyEvent(ev backend.Event) key.Event {
	mods := key.ModNone
	if ev.Mod.Has(backend.ModCtrl) {
		mods = mods.With(key.ModCtrl)
	}
	if ev.Mod.Has(backend.ModAlt) {
		mods = mods.With(key.ModAlt)
	}
	if ev.Mod.Has(backend.ModShift) {
		mods = mods.With(key.ModShift)
	}
	if ev.Mod.Has(backend.ModMeta) {
		mods = mods.With(key.ModMeta)
	}

	if ev.Key == backend.KeyRune {
		return key.NewRuneEvent(ev.Rune, mods).Normalize()
	}
	if ev.Key == backend.KeyBacktab {
		return key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift))
	}
	return key.NewSpecialEvent(mapBackendKey(ev.Key), mods)
}

// mapBackendKey maps a special backend.Key to a key.Key.
func mapBackendKey(bk backend.Key) key.Key {
	switch bk {
	case backend.KeyEscape:
		return key.KeyEscape
	case backend.KeyEnter:
		return key.KeyEnter
	case backend.KeyTab:
		return key.KeyTab
	case backend.KeyBackspace:
		return key.KeyBackspace
	case backend.KeyDelete:
		return key.KeyDelete
	case backend.KeyInsert:
		return key.KeyInsert
	case backend.KeyHome:
		return key.KeyHome
	case backend.KeyEnd:
		return key.KeyEnd
	case backend.KeyUp:
		return key.KeyUp
	case backend.KeyDown:
		return key.KeyDown
	case backend.KeyLeft:
		return key.KeyLeft
	case backend.KeyRight:
		return key.KeyRight
	}

	if bk >= backend.KeyF1 && bk <= backend.KeyF12 {
		return key.KeyF1 + key.Key(bk-backend.KeyF1)
	}
	return key.KeyNone
}
