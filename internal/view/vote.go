package view

import (
	"html"
	"strings"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/services"
)

// VoteForm renders the vote form of poll with the selection held by v.
func VoteForm(poll domain.Poll, v services.VoteView) string {
	var b strings.Builder

	b.WriteString(`<input type="hidden" id="pollId" value="` + html.EscapeString(poll.ID.String()) + `">`)
	b.WriteString(`<h1 id="pollTitle">` + html.EscapeString(poll.Title) + `</h1>`)
	b.WriteString(`<div id="pollDescription">` + Markdown(poll.Description) + `</div>`)

	display := "none"
	if v.AlreadyVoted {
		display = "block"
	}
	b.WriteString(`<div id="alreadyVoted" class="alert alert-info" style="display: ` + display + `">`)
	b.WriteString(`You have already voted on this poll. You can change your vote below or `)
	b.WriteString(`<a href="#" id="viewResults">view the results</a>.</div>`)

	b.WriteString(`<form id="voteForm" class="` + classes("needs-validation", when(v.Validated, "was-validated")) + `" novalidate>`)
	b.WriteString(`<ul class="list-group">`)
	for _, opts := range v.Days {
		day := html.EscapeString(opts.Day.String())
		b.WriteString(`<li class="list-group-item day-item" data-day="` + day + `">`)
		displayedDate(&b, opts.Day)
		b.WriteString(`<div class="btn-group" role="group">`)
		selected := v.Selected[opts.Day]
		for _, c := range opts.Choices {
			choice := html.EscapeString(string(c))
			id := day + "-" + choice
			b.WriteString(`<input type="radio" class="` + classes("btn-check", when(v.Invalid[opts.Day], "is-invalid")) +
				`" name="options-` + day + `" id="` + id + `" data-choice="` + choice + `" autocomplete="off" required` +
				when(selected == c, " checked") + `>`)
			b.WriteString(`<label class="btn btn-outline-` + choiceStyle(c) + `" for="` + id + `">` + choice + `</label>`)
		}
		b.WriteString(`</div></li>`)
	}
	b.WriteString(`</ul></form>`)
	return b.String()
}

// VotePage renders the vote page as first served, before any vote is loaded.
func VotePage(poll domain.Poll, days []domain.DayOptions) string {
	return Document(PageVote, poll.Title, VoteForm(poll, services.VoteView{Days: days}))
}

func choiceStyle(c domain.Choice) string {
	switch c {
	case domain.ChoiceYes:
		return "success"
	case domain.ChoiceMaybe:
		return "warning"
	case domain.ChoiceNo:
		return "danger"
	}
	return "secondary"
}
