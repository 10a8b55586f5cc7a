package domain

import (
	"fmt"
	"sort"
)

// Choice is the opaque token of one vote option for a day.
type Choice string

const (
	ChoiceYes   Choice = "yes"
	ChoiceMaybe Choice = "maybe"
	ChoiceNo    Choice = "no"
)

// DefaultChoices are the options offered for every day of a poll.
var DefaultChoices = []Choice{ChoiceYes, ChoiceMaybe, ChoiceNo}

const (
	LabelConfirmVote = "Confirm vote"
	LabelEditVote    = "Edit vote"
)

// VoteState maps each day of a poll to the chosen option.
type VoteState map[Day]Choice

type DayOptions struct {
	Day     Day
	Choices []Choice
}

func (o DayOptions) offers(c Choice) bool {
	for _, offered := range o.Choices {
		if offered == c {
			return true
		}
	}
	return false
}

// StaleChoice is a prior vote entry that no control on the form matches.
type StaleChoice struct {
	Day    Day
	Choice Choice
}

// VoteForm holds the per-day option selection of the vote screen.
type VoteForm struct {
	days      []DayOptions
	selected  map[Day]Choice
	invalid   map[Day]bool
	edit      bool
	validated bool
}

func NewVoteForm(days []DayOptions) *VoteForm {
	return &VoteForm{
		days:     days,
		selected: make(map[Day]Choice, len(days)),
		invalid:  make(map[Day]bool),
	}
}

// LoadExistingVote preselects the options of a prior vote. A nil or empty
// prior vote leaves every day unselected. Prior entries naming a day or a
// choice the form does not offer are skipped and returned: offered days in
// form order, then unknown days ascending.
func (f *VoteForm) LoadExistingVote(prior VoteState) []StaleChoice {
	f.selected = make(map[Day]Choice, len(f.days))
	f.edit = len(prior) > 0
	if !f.edit {
		return nil
	}

	var stale []StaleChoice
	known := make(map[Day]bool, len(f.days))
	for _, opts := range f.days {
		known[opts.Day] = true
		choice, ok := prior[opts.Day]
		if !ok {
			continue
		}
		if !opts.offers(choice) {
			stale = append(stale, StaleChoice{Day: opts.Day, Choice: choice})
			continue
		}
		f.selected[opts.Day] = choice
	}
	var unknown []StaleChoice
	for day, choice := range prior {
		if !known[day] {
			unknown = append(unknown, StaleChoice{Day: day, Choice: choice})
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i].Day < unknown[j].Day })
	return append(stale, unknown...)
}

// AlreadyVoted reports whether a non-empty prior vote was loaded.
func (f *VoteForm) AlreadyVoted() bool {
	return f.edit
}

func (f *VoteForm) ButtonLabel() string {
	if f.edit {
		return LabelEditVote
	}
	return LabelConfirmVote
}

func (f *VoteForm) Select(day Day, choice Choice) error {
	opts, ok := f.options(day)
	if !ok {
		return fmt.Errorf("select %s: %w", day, ErrUnknownDay)
	}
	if !opts.offers(choice) {
		return fmt.Errorf("select %s=%s: %w", day, choice, ErrUnknownChoice)
	}
	f.selected[day] = choice
	delete(f.invalid, day)
	return nil
}

func (f *VoteForm) Selected(day Day) (Choice, bool) {
	c, ok := f.selected[day]
	return c, ok
}

// Validate flags every day without a selection and returns them in poll order.
func (f *VoteForm) Validate() []Day {
	f.validated = true
	f.invalid = make(map[Day]bool)

	var missing []Day
	for _, opts := range f.days {
		if _, ok := f.selected[opts.Day]; !ok {
			f.invalid[opts.Day] = true
			missing = append(missing, opts.Day)
		}
	}
	return missing
}

func (f *VoteForm) WasValidated() bool {
	return f.validated
}

func (f *VoteForm) IsInvalid(day Day) bool {
	return f.invalid[day]
}

// Collect reads the selection of every day. A day without a selection is a
// programming error upstream of Validate and fails with ErrMissingChoice.
func (f *VoteForm) Collect() (VoteState, error) {
	vote := make(VoteState, len(f.days))
	for _, opts := range f.days {
		choice, ok := f.selected[opts.Day]
		if !ok {
			return nil, fmt.Errorf("%w %s", ErrMissingChoice, opts.Day)
		}
		vote[opts.Day] = choice
	}
	return vote, nil
}

func (f *VoteForm) Days() []DayOptions {
	out := make([]DayOptions, len(f.days))
	copy(out, f.days)
	return out
}

func (f *VoteForm) options(day Day) (DayOptions, bool) {
	for _, opts := range f.days {
		if opts.Day == day {
			return opts, true
		}
	}
	return DayOptions{}, false
}
