//go:build js && wasm

// Command miniapp runs inside the Telegram client as a WebAssembly module. It
// reads the page the server rendered, binds the DOM events to a screen and
// re-renders the fragments the screen changes.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"syscall/js"
	"time"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/dayfinder/internal/adapters/bridge/telegram"
	client "github.com/vncsmyrnk/dayfinder/internal/adapters/client/http"
	"github.com/vncsmyrnk/dayfinder/internal/adapters/page"
	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
	"github.com/vncsmyrnk/dayfinder/internal/core/services"
	"github.com/vncsmyrnk/dayfinder/internal/view"
)

var document = js.Global().Get("document")

type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

type app struct {
	bridge *telegram.Bridge
	api    ports.PollAPI
	runner *services.TaskRunner
	logger *slog.Logger
	ctx    context.Context
	funcs  []js.Func
}

func main() {
	logger := slog.New(slog.NewTextHandler(consoleWriter{}, nil))

	bridge, ok := telegram.New()
	if !ok {
		logger.Error("telegram web app api not available")
		return
	}

	origin := js.Global().Get("location").Get("origin").String()
	a := &app{
		bridge: bridge,
		api:    client.NewPollClient(origin, &http.Client{Timeout: 15 * time.Second}),
		runner: services.NewTaskRunner(logger),
		logger: logger,
		ctx:    context.Background(),
	}

	kind := document.Get("body").Get("dataset").Get("page").String()
	var err error
	switch kind {
	case view.PageCreate:
		a.create()
	case view.PageVote:
		err = a.vote()
	case view.PageResults:
		err = a.results()
	default:
		logger.Info("nothing to bind", "page", kind)
	}
	if err != nil {
		logger.Error("failed to read page", "page", kind, "error", err)
		return
	}

	bridge.Ready()
	select {}
}

func (a *app) create() {
	s := services.NewCreateScreen(a.bridge, a.api, nil)
	s.SetLogger(a.logger)
	s.Open(a.ctx)
	dark := a.bridge.ColorScheme() == "dark"

	renderDays := func() {
		v := s.View()
		setOuterHTML("selectedDaysList", view.DayList(v.Entries, dark))
		setClass("createForm", view.CreateFormClass(v))
		setClass("addDayButton", view.AddDayButtonClass(v))
		setClass("eventTitle", view.TitleClass(v))
		if id, ok := s.TakePickerRequest(); ok {
			openPicker(id.String())
		}
	}
	renderForm := func() {
		setInnerHTML("app", view.CreateForm(s.View(), dark))
	}

	a.on("input", func(target js.Value) {
		switch target.Get("id").String() {
		case "eventTitle":
			s.SetTitle(target.Get("value").String())
		case "eventDescription":
			s.SetDescription(target.Get("value").String())
		}
	})
	a.on("change", func(target js.Value) {
		if target.Get("id").String() == "eventNotification" {
			s.SetNotification(target.Get("checked").Bool())
			return
		}
		item := target.Call("closest", ".day-item")
		if !item.Truthy() || target.Get("type").String() != "date" {
			return
		}
		id, err := uuid.Parse(item.Get("dataset").Get("entryId").String())
		if err != nil {
			return
		}
		if err := s.ChangeDay(id, target.Get("value").String()); err != nil {
			a.logger.Warn("day not changed", "error", err)
		}
		renderDays()
	})
	a.on("click", func(target js.Value) {
		if target.Get("id").String() == "addDayButton" {
			s.AddDay()
			renderDays()
			return
		}
		if remove := target.Get("dataset").Get("remove"); remove.Truthy() {
			if id, err := uuid.Parse(remove.String()); err == nil {
				_ = s.RemoveDay(id)
				renderDays()
			}
		}
	})
	a.funcs = append(a.funcs, a.bridge.OnMainButton(func() {
		a.runner.Go(a.ctx, "create poll", func(ctx context.Context) error {
			defer renderForm()
			return s.Submit(ctx)
		})
	}))
}

func (a *app) vote() error {
	poll, days, err := page.ParseVotePage(strings.NewReader(outerHTML()))
	if err != nil {
		return err
	}

	s := services.NewVoteScreen(a.bridge, a.api, nil, days)
	s.SetLogger(a.logger)
	render := func() {
		setInnerHTML("app", view.VoteForm(*poll, s.View()))
	}

	a.runner.Go(a.ctx, "load vote", func(ctx context.Context) error {
		defer render()
		return s.Load(ctx)
	})

	a.on("change", func(target js.Value) {
		choice := target.Get("dataset").Get("choice")
		item := target.Call("closest", ".day-item")
		if !choice.Truthy() || !item.Truthy() {
			return
		}
		day, err := domain.ParseDay(item.Get("dataset").Get("day").String())
		if err != nil {
			return
		}
		if err := s.Select(day, domain.Choice(choice.String())); err != nil {
			a.logger.Warn("choice not selected", "error", err)
		}
		if s.View().Validated {
			render()
		}
	})
	a.on("click", func(target js.Value) {
		if target.Get("id").String() == "viewResults" {
			s.Leave(true)
		}
	})
	a.funcs = append(a.funcs, a.bridge.OnMainButton(func() {
		a.runner.Go(a.ctx, "submit vote", func(ctx context.Context) error {
			defer render()
			return s.Submit(ctx)
		})
	}))
	return nil
}

func (a *app) results() error {
	poll, err := page.ParseResultsPage(strings.NewReader(outerHTML()))
	if err != nil {
		return err
	}

	// The share chooser is used when the bot name is unknown to the page.
	s := services.NewResultsScreen(a.bridge, a.api, nil, *poll, "")
	s.SetLogger(a.logger)
	render := func() {
		setInnerHTML("app", view.ResultsBody(s.View()))
	}
	s.Open(a.ctx)
	render()

	a.on("click", func(target js.Value) {
		switch target.Get("id").String() {
		case "expandButton":
			s.ToggleExpandAll()
			render()
		case "deleteButton":
			a.runner.Go(a.ctx, "delete poll", func(ctx context.Context) error {
				err := s.AskDelete(ctx)
				if errors.Is(err, domain.ErrCancelled) {
					return nil
				}
				return err
			})
		}
	})
	a.funcs = append(a.funcs, a.bridge.OnMainButton(s.Share))
	return nil
}

// on delegates DOM events of type name under #app to fn.
func (a *app) on(name string, fn func(target js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(args[0].Get("target"))
		}
		return nil
	})
	a.funcs = append(a.funcs, f)
	document.Call("getElementById", "app").Call("addEventListener", name, f)
}

func outerHTML() string {
	return document.Get("documentElement").Get("outerHTML").String()
}

func setInnerHTML(id, markup string) {
	if el := document.Call("getElementById", id); el.Truthy() {
		el.Set("innerHTML", markup)
	}
}

func setOuterHTML(id, markup string) {
	if el := document.Call("getElementById", id); el.Truthy() {
		el.Set("outerHTML", markup)
	}
}

func setClass(id, class string) {
	if el := document.Call("getElementById", id); el.Truthy() {
		el.Set("className", class)
	}
}

func openPicker(entryID string) {
	input := document.Call("querySelector", `[data-entry-id="`+entryID+`"] input[type="date"]`)
	if !input.Truthy() {
		return
	}
	input.Call("focus")
	if input.Get("showPicker").Type() == js.TypeFunction {
		input.Call("showPicker")
	}
}
