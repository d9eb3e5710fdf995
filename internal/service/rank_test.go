package service

import (
	"math/rand"
	"testing"

	"github.com/avasilyev/football-stats-service/internal/model"
)

func TestRankTeams_TieBreakChain(t *testing.T) {
	table := []model.TeamStat{
		{TeamID: 4, Played: 3, Wins: 2, Draws: 0, Losses: 1},
		{TeamID: 1, Played: 4, Wins: 2, Draws: 1, Losses: 1},
		{TeamID: 3, Played: 2, Wins: 2, Draws: 0, Losses: 0},
		{TeamID: 2, Played: 3, Wins: 3, Draws: 0, Losses: 0},
	}
	ranked := rankTeams(table, 10)

	// wins first (team 2), then draws (team 1 over 3 and 4), then fewer
	// losses (team 3 over 4).
	want := []int64{2, 1, 3, 4}
	for i, id := range want {
		if ranked[i].TeamID != id {
			t.Fatalf("position %d: got team %d, want %d (full: %+v)", i, ranked[i].TeamID, id, ranked)
		}
	}
}

func TestRankTeams_IdenticalRecordsFallBackToID(t *testing.T) {
	table := []model.TeamStat{
		{TeamID: 7, Played: 1, Wins: 1},
		{TeamID: 3, Played: 1, Wins: 1},
		{TeamID: 5, Played: 1, Wins: 1},
	}
	ranked := rankTeams(table, 10)
	want := []int64{3, 5, 7}
	for i, id := range want {
		if ranked[i].TeamID != id {
			t.Fatalf("position %d: got %d, want %d", i, ranked[i].TeamID, id)
		}
	}
}

func TestRankTeams_InputOrderIrrelevant(t *testing.T) {
	base := []model.TeamStat{
		{TeamID: 1, Played: 5, Wins: 3, Draws: 1, Losses: 1},
		{TeamID: 2, Played: 5, Wins: 3, Draws: 1, Losses: 1},
		{TeamID: 3, Played: 5, Wins: 3, Draws: 0, Losses: 2},
		{TeamID: 4, Played: 4, Wins: 2, Draws: 2, Losses: 0},
		{TeamID: 5, Played: 6, Wins: 2, Draws: 2, Losses: 2},
	}
	want := rankTeams(append([]model.TeamStat(nil), base...), 10)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]model.TeamStat(nil), base...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := rankTeams(shuffled, 10)
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("shuffle %d position %d: %+v != %+v", i, j, got[j], want[j])
			}
		}
	}
}

func TestRankScorers_OrderAndTruncation(t *testing.T) {
	rows := []model.TopScorerEntry{
		{PlayerID: 1, FirstName: "Luca", LastName: "Moro", TeamID: 1, Goals: 4},
		{PlayerID: 2, FirstName: "Jan", LastName: "Beck", TeamID: 2, Goals: 7},
		{PlayerID: 3, FirstName: "Ivo", LastName: "Beck", TeamID: 1, Goals: 7},
		{PlayerID: 4, FirstName: "Tom", LastName: "Abel", TeamID: 3, Goals: 4},
	}
	ranked := rankScorers(rows, 3)

	if len(ranked) != 3 {
		t.Fatalf("got %d rows, want 3", len(ranked))
	}
	// 7-goal pair first, Ivo before Jan (same last name); then Abel before
	// Moro among the 4-goal pair — but Moro is cut by the limit.
	want := []int64{3, 2, 4}
	for i, id := range want {
		if ranked[i].PlayerID != id {
			t.Fatalf("position %d: got player %d, want %d", i, ranked[i].PlayerID, id)
		}
	}
}

func TestNormalizeLimit(t *testing.T) {
	if got := normalizeLimit(nil); got != 10 {
		t.Fatalf("nil limit: got %d, want 10", got)
	}
	zero, neg, five := 0, -3, 5
	if got := normalizeLimit(&zero); got != 1 {
		t.Fatalf("zero limit: got %d, want 1", got)
	}
	if got := normalizeLimit(&neg); got != 1 {
		t.Fatalf("negative limit: got %d, want 1", got)
	}
	if got := normalizeLimit(&five); got != 5 {
		t.Fatalf("limit 5: got %d", got)
	}
}
