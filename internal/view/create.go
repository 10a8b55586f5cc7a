package view

import (
	"html"
	"strings"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/services"
)

func controlClass(s domain.ControlState) string {
	switch s {
	case domain.ControlValid:
		return "is-valid"
	case domain.ControlInvalid:
		return "is-invalid"
	}
	return ""
}

// CreateForm renders the create form. dark switches the remove buttons to
// their light variant.
func CreateForm(v services.CreateView, dark bool) string {
	var b strings.Builder

	b.WriteString(`<form id="createForm" class="` + CreateFormClass(v) + `" novalidate>`)

	b.WriteString(`<label for="eventTitle">Title</label>`)
	b.WriteString(`<input type="text" id="eventTitle" class="` + TitleClass(v) + `" value="` + html.EscapeString(v.Title) + `" required>`)
	b.WriteString(`<label for="eventDescription">Description</label>`)
	b.WriteString(`<textarea id="eventDescription" class="form-control">` + html.EscapeString(v.Description) + `</textarea>`)
	b.WriteString(`<input type="checkbox" id="eventNotification"` + when(v.Notification, " checked") + `>`)
	b.WriteString(`<label for="eventNotification">Notify me about new votes</label>`)

	b.WriteString(DayList(v.Entries, dark))

	b.WriteString(`<button type="button" id="addDayButton" class="` + AddDayButtonClass(v) + `">Add day</button>`)
	b.WriteString(`<div class="invalid-feedback">Please add at least two days.</div>`)
	b.WriteString(`</form>`)
	return b.String()
}

// CreateFormClass is the class of #createForm. Validation feedback shows only
// until the day list changes again.
func CreateFormClass(v services.CreateView) string {
	return classes("needs-validation", when(v.Validated, "was-validated"))
}

func TitleClass(v services.CreateView) string {
	return classes("form-control", when(v.Validated && v.MissingTitle, "is-invalid"))
}

func AddDayButtonClass(v services.CreateView) string {
	if !v.Validated {
		return "btn"
	}
	return classes("btn", controlClass(v.AddButton))
}

// DayList renders the proposed days in list order.
func DayList(entries []domain.DayEntry, dark bool) string {
	var b strings.Builder
	b.WriteString(`<ul id="selectedDaysList" class="list-group">`)
	for _, e := range entries {
		id := html.EscapeString(e.ID.String())
		b.WriteString(`<li class="list-group-item d-flex justify-content-between align-items-center day-item" data-entry-id="` + id + `">`)
		b.WriteString(`<label><div class="input-group has-validation"><span class="d-none">Date</span>`)
		b.WriteString(`<input type="date" class="` + classes("form-control", when(e.Invalid, "is-invalid")) +
			`" value="` + html.EscapeString(e.Value.String()) + `" min="` + html.EscapeString(e.Min.String()) + `" required>`)
		b.WriteString(`<div class="invalid-feedback">Please enter a date that is unique and after today.</div></div></label>`)
		b.WriteString(`<button type="button" class="` + classes("btn-close", when(dark, "btn-close-white")) +
			`" aria-label="Delete" data-remove="` + id + `"></button>`)
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
	return b.String()
}

// CreatePage renders the empty create page.
func CreatePage() string {
	return Document(PageCreate, "Create poll", CreateForm(services.CreateView{}, false))
}
