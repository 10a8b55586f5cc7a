package view

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/services"
)

// ResultsBody renders the tally of a poll. Best days are bold and the delete
// button is only visible to the owner.
func ResultsBody(v services.ResultsView) string {
	var b strings.Builder
	poll := v.Poll

	b.WriteString(`<div class="` + classes("results", when(v.DarkTheme, "dark")) + `">`)
	b.WriteString(`<input type="hidden" id="pollId" value="` + html.EscapeString(poll.ID.String()) + `">`)
	b.WriteString(`<input type="hidden" id="ownerId" value="` + strconv.FormatInt(poll.OwnerID, 10) + `">`)
	b.WriteString(`<h1 id="pollTitle">` + html.EscapeString(poll.Title) + `</h1>`)
	b.WriteString(`<div id="pollDescription">` + Markdown(poll.Description) + `</div>`)

	label := "Expand all"
	if v.Expanded {
		label = "Collapse all"
	}
	b.WriteString(`<button type="button" id="expandButton" class="btn btn-link">` + label + `</button>`)

	b.WriteString(`<ul id="resultList" class="list-group">`)
	for _, s := range v.Summary {
		day := html.EscapeString(s.Day.String())
		b.WriteString(fmt.Sprintf(`<li class="%s" data-day="%s" data-yes="%d" data-maybe="%d" data-no="%d">`,
			classes("list-group-item", "result-item", when(s.Best, "best")), day, s.Yes, s.Maybe, s.No))
		if s.Best {
			b.WriteString("<b>")
		}
		displayedDate(&b, s.Day)
		if s.Best {
			b.WriteString("</b>")
		}
		b.WriteString(fmt.Sprintf(`<span class="counts">%d yes, %d maybe, %d no</span>`, s.Yes, s.Maybe, s.No))

		b.WriteString(`<div class="` + classes("collapse", when(v.Expanded, "show")) + `" data-parent="#resultList">`)
		for _, c := range domain.DefaultChoices {
			for i, voter := range s.Voters[c] {
				name := html.EscapeString(voter)
				b.WriteString(`<span class="badge bg-` + choiceStyle(c) + `" data-choice="` + html.EscapeString(string(c)) +
					`"` + ballotAttr(s, c, i) + ` data-voter="` + name + `">` + name + `</span>`)
			}
		}
		b.WriteString(`</div></li>`)
	}
	b.WriteString(`</ul>`)

	display := "none"
	if v.Owner {
		display = "block"
	}
	b.WriteString(`<button type="button" id="deleteButton" class="btn btn-danger" style="display: ` + display + `">Delete poll</button>`)
	b.WriteString(`</div>`)
	return b.String()
}

// ballotAttr keys the i-th voter of choice c to its ballot.
func ballotAttr(s domain.DaySummary, c domain.Choice, i int) string {
	if i >= len(s.Ballots[c]) {
		return ""
	}
	return ` data-ballot="` + strconv.Itoa(s.Ballots[c][i]) + `"`
}

// ResultsPage renders the results page as served, for a viewer that is not
// known yet.
func ResultsPage(poll domain.Poll) string {
	return Document(PageResults, poll.Title, ResultsBody(services.ResultsView{Poll: poll, Summary: domain.Summarize(poll)}))
}

// ResultsText renders a plain text tally, one line per day. bold wraps the
// lines of the best days.
func ResultsText(poll domain.Poll, bold func(string) string) string {
	var b strings.Builder
	b.WriteString("Results for " + poll.Title + "\n\n")
	for _, s := range domain.Summarize(poll) {
		line := fmt.Sprintf("%s: %d yes, %d maybe, %d no", s.Day.Time().Format("02 Jan 2006"), s.Yes, s.Maybe, s.No)
		if s.Best && bold != nil {
			line = bold(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
