// Package view renders pages and page fragments from screen state. Every
// function is a pure projection: the same state always gives the same
// markup, and nothing here reads or writes the DOM.
package view

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
)

// DateLayout is how a day is labelled on every page.
const DateLayout = "Mon, 02 Jan 2006"

// Page kinds, set as data-page on <body>.
const (
	PageCreate  = "create"
	PageVote    = "vote"
	PageResults = "results"
	PageError   = "error"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown renders a poll description. Raw HTML in src is dropped.
func Markdown(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "<p>" + html.EscapeString(src) + "</p>"
	}
	return buf.String()
}

func FormatDay(d domain.Day) string {
	t := d.Time()
	if t.IsZero() {
		return d.String()
	}
	return t.Format(DateLayout)
}

// displayedDate keeps the ISO form next to the label so the page can be read
// back without knowing the label format.
func displayedDate(b *strings.Builder, d domain.Day) {
	b.WriteString(`<span class="displayed-date"><span class="original-date">`)
	b.WriteString(html.EscapeString(d.String()))
	b.WriteString(`</span><span class="formatted-date">`)
	b.WriteString(html.EscapeString(FormatDay(d)))
	b.WriteString(`</span></span>`)
}

// Document wraps body into a complete page of the given kind.
func Document(kind, title, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	b.WriteString(`<script src="https://telegram.org/js/telegram-web-app.js"></script>` + "\n")
	b.WriteString(`<script src="/static/wasm_exec.js"></script>` + "\n")
	b.WriteString("</head>\n")
	b.WriteString(`<body data-page="` + html.EscapeString(kind) + `">` + "\n")
	b.WriteString(`<main id="app">`)
	b.WriteString(body)
	b.WriteString("</main>\n")
	if kind != PageError {
		b.WriteString(`<script>const go = new Go(); WebAssembly.instantiateStreaming(fetch("/static/miniapp.wasm"), go.importObject).then(r => go.run(r.instance));</script>` + "\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func ErrorPage(message string) string {
	return Document(PageError, "DayFinder", `<div class="alert alert-danger" id="error">`+html.EscapeString(message)+`</div>`)
}

func classes(names ...string) string {
	var out []string
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

func when(cond bool, s string) string {
	if cond {
		return s
	}
	return ""
}
