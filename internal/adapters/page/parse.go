package page

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
)

// ParseVotePage reads the poll and the options offered per day from a vote
// page. Ballots are not part of the vote page.
func ParseVotePage(r io.Reader) (*domain.Poll, []domain.DayOptions, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse vote page: %w", err)
	}

	poll, err := pollHeader(doc)
	if err != nil {
		return nil, nil, err
	}

	var days []domain.DayOptions
	for _, item := range findAll(doc, func(n *html.Node) bool { return hasClass(n, "day-item") }) {
		day, err := domain.ParseDay(attr(item, "data-day"))
		if err != nil {
			return nil, nil, fmt.Errorf("vote page: %w", err)
		}
		opts := domain.DayOptions{Day: day}
		for _, input := range findAll(item, func(n *html.Node) bool {
			return n.DataAtom == atom.Input && attr(n, "data-choice") != ""
		}) {
			opts.Choices = append(opts.Choices, domain.Choice(attr(input, "data-choice")))
		}
		days = append(days, opts)
		poll.Days = append(poll.Days, day)
	}
	if len(days) == 0 {
		return nil, nil, fmt.Errorf("vote page lists no days")
	}
	return poll, days, nil
}

// ParseResultsPage reads the poll, its owner and every voter's choices from
// a results page.
func ParseResultsPage(r io.Reader) (*domain.Poll, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	poll, err := pollHeader(doc)
	if err != nil {
		return nil, err
	}

	if owner := findByID(doc, "ownerId"); owner != nil {
		id, err := strconv.ParseInt(attr(owner, "value"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("results page: invalid owner id: %w", err)
		}
		poll.OwnerID = id
	}

	// Badges carry the ballot they belong to; pages without it fall back to
	// grouping by name.
	ballots := map[string]int{}
	for _, item := range findAll(doc, func(n *html.Node) bool { return hasClass(n, "result-item") }) {
		day, err := domain.ParseDay(attr(item, "data-day"))
		if err != nil {
			return nil, fmt.Errorf("results page: %w", err)
		}
		poll.Days = append(poll.Days, day)

		for _, badge := range findAll(item, func(n *html.Node) bool { return hasClass(n, "badge") }) {
			voter := attr(badge, "data-voter")
			key := attr(badge, "data-ballot")
			if key == "" {
				key = "voter:" + voter
			}
			idx, ok := ballots[key]
			if !ok {
				idx = len(poll.Ballots)
				ballots[key] = idx
				poll.Ballots = append(poll.Ballots, domain.Ballot{Voter: voter, Choices: domain.VoteState{}})
			}
			poll.Ballots[idx].Choices[day] = domain.Choice(attr(badge, "data-choice"))
		}
	}
	return poll, nil
}

func pollHeader(doc *html.Node) (*domain.Poll, error) {
	idNode := findByID(doc, "pollId")
	if idNode == nil {
		return nil, fmt.Errorf("page has no poll id")
	}
	id, err := domain.ParsePollID(attr(idNode, "value"))
	if err != nil {
		return nil, err
	}

	poll := &domain.Poll{ID: id}
	if n := findByID(doc, "pollTitle"); n != nil {
		poll.Title = strings.TrimSpace(text(n))
	}
	if n := findByID(doc, "pollDescription"); n != nil {
		poll.Description = strings.TrimSpace(text(n))
	}
	return poll, nil
}

// errorMessage returns the message of an error page, if doc is one.
func errorMessage(doc *html.Node) string {
	if n := findByID(doc, "error"); n != nil {
		return strings.TrimSpace(text(n))
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findByID(root *html.Node, id string) *html.Node {
	found := findAll(root, func(n *html.Node) bool { return n.Type == html.ElementNode && attr(n, "id") == id })
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// findAll returns the matching descendants of root in document order.
func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
