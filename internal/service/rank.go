package service

import (
	"cmp"
	"slices"

	"github.com/avasilyev/football-stats-service/internal/model"
)

// Ranking comparators are kept as explicit ordered chains so the tie-break
// order stays auditable: the first non-zero key decides, later keys only
// break ties. Every chain ends in a unique key, which makes the output order
// independent of map iteration order upstream.

// teamRankOrder: wins desc, draws desc, losses asc, played desc, team id asc.
var teamRankOrder = []func(a, b model.TeamStat) int{
	func(a, b model.TeamStat) int { return cmp.Compare(b.Wins, a.Wins) },
	func(a, b model.TeamStat) int { return cmp.Compare(b.Draws, a.Draws) },
	func(a, b model.TeamStat) int { return cmp.Compare(a.Losses, b.Losses) },
	func(a, b model.TeamStat) int { return cmp.Compare(b.Played, a.Played) },
	func(a, b model.TeamStat) int { return cmp.Compare(a.TeamID, b.TeamID) },
}

// scorerRankOrder: goals desc, family name asc, given name asc. The trailing
// player/team keys never change the advertised ordering — namesakes with
// equal counts are possible, so a unique key still has to close the chain.
var scorerRankOrder = []func(a, b model.TopScorerEntry) int{
	func(a, b model.TopScorerEntry) int { return cmp.Compare(b.Goals, a.Goals) },
	func(a, b model.TopScorerEntry) int { return cmp.Compare(a.LastName, b.LastName) },
	func(a, b model.TopScorerEntry) int { return cmp.Compare(a.FirstName, b.FirstName) },
	func(a, b model.TopScorerEntry) int { return cmp.Compare(a.PlayerID, b.PlayerID) },
	func(a, b model.TopScorerEntry) int { return cmp.Compare(a.TeamID, b.TeamID) },
}

func compareChain[T any](chain []func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		for _, key := range chain {
			if c := key(a, b); c != 0 {
				return c
			}
		}
		return 0
	}
}

// rankTeams sorts the full table, then truncates. Sorting a sample first
// would silently misrank; truncation is always the last step.
func rankTeams(table []model.TeamStat, limit int) []model.TeamStat {
	slices.SortFunc(table, compareChain(teamRankOrder))
	return truncate(table, limit)
}

// rankScorers sorts the full scorer table, then truncates.
func rankScorers(rows []model.TopScorerEntry, limit int) []model.TopScorerEntry {
	slices.SortFunc(rows, compareChain(scorerRankOrder))
	return truncate(rows, limit)
}

// normalizeLimit coerces the optional limit: nil means 10, anything below 1
// becomes 1. Never an error.
func normalizeLimit(limit *int) int {
	if limit == nil {
		return 10
	}
	return max(1, *limit)
}

func truncate[T any](s []T, limit int) []T {
	if limit < 1 {
		limit = 1
	}
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
