package domain

// DaySummary counts the ballots of one day.
type DaySummary struct {
	Day    Day
	Yes    int
	Maybe  int
	No     int
	Best   bool
	Voters map[Choice][]string
	// Ballots holds the index into Poll.Ballots of every name in Voters, so
	// voters sharing a name stay apart.
	Ballots map[Choice][]int
}

// Summarize tallies every day of the poll in poll order and marks the best
// days: the days with the most "yes" votes, narrowed to those with the most
// "maybe" votes on a tie. No day is best while nobody voted "yes".
func Summarize(p Poll) []DaySummary {
	summaries := make([]DaySummary, len(p.Days))
	for i, day := range p.Days {
		s := DaySummary{Day: day, Voters: make(map[Choice][]string), Ballots: make(map[Choice][]int)}
		for j, b := range p.Ballots {
			choice, ok := b.Choices[day]
			if !ok {
				continue
			}
			switch choice {
			case ChoiceYes:
				s.Yes++
			case ChoiceMaybe:
				s.Maybe++
			case ChoiceNo:
				s.No++
			}
			s.Voters[choice] = append(s.Voters[choice], b.Voter)
			s.Ballots[choice] = append(s.Ballots[choice], j)
		}
		summaries[i] = s
	}

	maxYes := 0
	for _, s := range summaries {
		maxYes = max(maxYes, s.Yes)
	}
	if maxYes == 0 {
		return summaries
	}

	maxMaybe := -1
	for _, s := range summaries {
		if s.Yes == maxYes {
			maxMaybe = max(maxMaybe, s.Maybe)
		}
	}
	for i := range summaries {
		summaries[i].Best = summaries[i].Yes == maxYes && summaries[i].Maybe == maxMaybe
	}
	return summaries
}

func BestDays(p Poll) []Day {
	var best []Day
	for _, s := range Summarize(p) {
		if s.Best {
			best = append(best, s.Day)
		}
	}
	return best
}
