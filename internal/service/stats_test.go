package service_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/avasilyev/football-stats-service/internal/model"
	"github.com/avasilyev/football-stats-service/internal/repository"
	"github.com/avasilyev/football-stats-service/internal/service"
)

// fakeTeamLookup serves GetByID only; everything else is unused by stats.
type fakeTeamLookup struct{ ok map[int64]bool }

func (f *fakeTeamLookup) Create(context.Context, model.Team) (model.Team, error) {
	return model.Team{}, nil
}
func (f *fakeTeamLookup) GetByID(_ context.Context, id int64) (model.Team, error) {
	if f.ok[id] {
		return model.Team{ID: id}, nil
	}
	return model.Team{}, repository.ErrNotFound
}
func (f *fakeTeamLookup) List(context.Context, repository.Page) (repository.PageResult[model.Team], error) {
	return repository.PageResult[model.Team]{}, nil
}
func (f *fakeTeamLookup) Update(context.Context, model.Team) (model.Team, error) {
	return model.Team{}, nil
}
func (f *fakeTeamLookup) Delete(context.Context, int64) error      { return nil }
func (f *fakeTeamLookup) Exists(context.Context, int64) (bool, error) {
	return false, nil
}

var _ repository.TeamRepository = (*fakeTeamLookup)(nil)

type fakePlayerLookup struct{ players map[int64]model.Player }

func (f *fakePlayerLookup) Create(context.Context, model.Player) (model.Player, error) {
	return model.Player{}, nil
}
func (f *fakePlayerLookup) GetByID(_ context.Context, id int64) (model.Player, error) {
	if p, ok := f.players[id]; ok {
		return p, nil
	}
	return model.Player{}, repository.ErrNotFound
}
func (f *fakePlayerLookup) List(context.Context, repository.Page) (repository.PageResult[model.Player], error) {
	return repository.PageResult[model.Player]{}, nil
}
func (f *fakePlayerLookup) ListByTeam(context.Context, int64, repository.Page) (repository.PageResult[model.Player], error) {
	return repository.PageResult[model.Player]{}, nil
}
func (f *fakePlayerLookup) Update(context.Context, model.Player) (model.Player, error) {
	return model.Player{}, nil
}
func (f *fakePlayerLookup) Delete(context.Context, int64) error { return nil }

var _ repository.PlayerRepository = (*fakePlayerLookup)(nil)

// fakeMatchStore filters its fixed match list by the requested window,
// mirroring what the SQL range queries do.
type fakeMatchStore struct{ matches []model.Match }

func (f *fakeMatchStore) Create(context.Context, model.Match) (model.Match, error) {
	return model.Match{}, nil
}
func (f *fakeMatchStore) GetByID(_ context.Context, id int64) (model.Match, error) {
	for _, m := range f.matches {
		if m.ID == id {
			return m, nil
		}
	}
	return model.Match{}, repository.ErrNotFound
}
func (f *fakeMatchStore) List(context.Context, repository.Page) (repository.PageResult[model.Match], error) {
	return repository.PageResult[model.Match]{}, nil
}
func (f *fakeMatchStore) Update(context.Context, model.Match) (model.Match, error) {
	return model.Match{}, nil
}
func (f *fakeMatchStore) Delete(context.Context, int64) error { return nil }
func (f *fakeMatchStore) ExistsByTeamsAndDate(context.Context, int64, int64, time.Time) (bool, error) {
	return false, nil
}
func (f *fakeMatchStore) ListByDateRange(_ context.Context, from, to time.Time) ([]model.Match, error) {
	var out []model.Match
	for _, m := range f.matches {
		if !m.MatchDate.Before(from) && m.MatchDate.Before(to) {
			out = append(out, m)
		}
	}
	return out, nil
}
func (f *fakeMatchStore) ListByTeamAndDateRange(_ context.Context, teamID int64, from, to time.Time) ([]model.Match, error) {
	var out []model.Match
	for _, m := range f.matches {
		if m.Team1ID != teamID && m.Team2ID != teamID {
			continue
		}
		if !m.MatchDate.Before(from) && m.MatchDate.Before(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.MatchRepository = (*fakeMatchStore)(nil)

type fakeGoalStore struct {
	goals   []model.Goal
	matches *fakeMatchStore
}

func (f *fakeGoalStore) Create(context.Context, model.Goal) (model.Goal, error) {
	return model.Goal{}, nil
}
func (f *fakeGoalStore) GetByID(context.Context, int64) (model.Goal, error) {
	return model.Goal{}, repository.ErrNotFound
}
func (f *fakeGoalStore) List(context.Context, repository.Page) (repository.PageResult[model.Goal], error) {
	return repository.PageResult[model.Goal]{}, nil
}
func (f *fakeGoalStore) Update(context.Context, model.Goal) (model.Goal, error) {
	return model.Goal{}, nil
}
func (f *fakeGoalStore) Delete(context.Context, int64) error          { return nil }
func (f *fakeGoalStore) DeleteByMatch(context.Context, int64) error   { return nil }
func (f *fakeGoalStore) ListByPlayer(context.Context, int64) ([]model.Goal, error) {
	return nil, nil
}
func (f *fakeGoalStore) inWindow(g model.Goal, from, to time.Time) bool {
	m, err := f.matches.GetByID(context.Background(), g.MatchID)
	if err != nil {
		return false
	}
	return !m.MatchDate.Before(from) && m.MatchDate.Before(to)
}
func (f *fakeGoalStore) ListByDateRange(_ context.Context, from, to time.Time) ([]model.Goal, error) {
	var out []model.Goal
	for _, g := range f.goals {
		if f.inWindow(g, from, to) {
			out = append(out, g)
		}
	}
	return out, nil
}
func (f *fakeGoalStore) CountByPlayerInRange(_ context.Context, playerID int64, from, to time.Time) (int, error) {
	n := 0
	for _, g := range f.goals {
		if g.PlayerID == playerID && f.inWindow(g, from, to) {
			n++
		}
	}
	return n, nil
}

var _ repository.GoalRepository = (*fakeGoalStore)(nil)

type partKey struct{ matchID, playerID int64 }

type fakeLineupStore struct {
	parts   map[partKey]model.Participation
	matches *fakeMatchStore
}

func (f *fakeLineupStore) Upsert(context.Context, model.Participation) (model.Participation, error) {
	return model.Participation{}, nil
}
func (f *fakeLineupStore) Get(_ context.Context, matchID, playerID int64) (model.Participation, error) {
	if p, ok := f.parts[partKey{matchID, playerID}]; ok {
		return p, nil
	}
	return model.Participation{}, repository.ErrNotFound
}
func (f *fakeLineupStore) Exists(_ context.Context, matchID, playerID int64) (bool, error) {
	_, ok := f.parts[partKey{matchID, playerID}]
	return ok, nil
}
func (f *fakeLineupStore) DeleteByMatch(context.Context, int64) error { return nil }
func (f *fakeLineupStore) DeleteByMatchAndTeam(context.Context, int64, int64) error {
	return nil
}
func (f *fakeLineupStore) CountByPlayerInRange(_ context.Context, playerID int64, from, to time.Time) (int, error) {
	n := 0
	for k := range f.parts {
		if k.playerID != playerID {
			continue
		}
		m, err := f.matches.GetByID(context.Background(), k.matchID)
		if err != nil {
			continue
		}
		if !m.MatchDate.Before(from) && m.MatchDate.Before(to) {
			n++
		}
	}
	return n, nil
}

var _ repository.ParticipationRepository = (*fakeLineupStore)(nil)

// capturingPublisher records what was published so tests can assert the
// fire-and-forget handoff happens with the final result.
type capturingPublisher struct {
	teamStats   []model.TeamStat
	playerStats []model.PlayerStat
	topTeams    [][]model.TeamStat
	topScorers  [][]model.TopScorerEntry
}

func (p *capturingPublisher) PublishTeamStats(_ context.Context, stat model.TeamStat) {
	p.teamStats = append(p.teamStats, stat)
}
func (p *capturingPublisher) PublishPlayerStats(_ context.Context, stat model.PlayerStat) {
	p.playerStats = append(p.playerStats, stat)
}
func (p *capturingPublisher) PublishTopTeams(_ context.Context, table []model.TeamStat, _, _ *int) {
	p.topTeams = append(p.topTeams, table)
}
func (p *capturingPublisher) PublishTopScorers(_ context.Context, rows []model.TopScorerEntry, _ *int64, _, _ *int) {
	p.topScorers = append(p.topScorers, rows)
}

var _ service.StatsPublisher = (*capturingPublisher)(nil)

func date(y int, month time.Month, d int) time.Time {
	return time.Date(y, month, d, 15, 0, 0, 0, time.UTC)
}

type statsFixture struct {
	svc service.StatsService
	pub *capturingPublisher
}

// newStatsFixture wires a small season:
//
//	match 1 (2023): team 1 beats team 2, 2:0 — both goals by player 10
//	match 2 (2023): team 1 draws team 3, 1:1 — goals by players 10 and 30
//	match 3 (2024): team 2 beats team 1, 1:0 — goal by player 20
//
// Player 10 has participations for matches 1 and 2; player 20 scored in
// match 3 WITHOUT a participation row; player 30 participated in match 2.
func newStatsFixture() statsFixture {
	matches := &fakeMatchStore{matches: []model.Match{
		{ID: 1, Team1ID: 1, Team2ID: 2, Team1Score: 2, Team2Score: 0, MatchDate: date(2023, time.March, 5)},
		{ID: 2, Team1ID: 3, Team2ID: 1, Team1Score: 1, Team2Score: 1, MatchDate: date(2023, time.October, 12)},
		{ID: 3, Team1ID: 2, Team2ID: 1, Team1Score: 1, Team2Score: 0, MatchDate: date(2024, time.April, 20)},
	}}
	goals := &fakeGoalStore{
		matches: matches,
		goals: []model.Goal{
			{ID: 1, MatchID: 1, PlayerID: 10, Minute: 12},
			{ID: 2, MatchID: 1, PlayerID: 10, Minute: 77},
			{ID: 3, MatchID: 2, PlayerID: 10, Minute: 30},
			{ID: 4, MatchID: 2, PlayerID: 30, Minute: 55},
			{ID: 5, MatchID: 3, PlayerID: 20, Minute: 88},
		},
	}
	lineups := &fakeLineupStore{
		matches: matches,
		parts: map[partKey]model.Participation{
			{1, 10}: {MatchID: 1, PlayerID: 10, TeamID: 1, Starting: true},
			{2, 10}: {MatchID: 2, PlayerID: 10, TeamID: 1, Starting: true},
			{2, 30}: {MatchID: 2, PlayerID: 30, TeamID: 3, Starting: true},
		},
	}
	teams := &fakeTeamLookup{ok: map[int64]bool{1: true, 2: true, 3: true}}
	players := &fakePlayerLookup{players: map[int64]model.Player{
		10: {ID: 10, FirstName: "Erik", LastName: "Larsen"},
		20: {ID: 20, FirstName: "Marco", LastName: "Bruno"},
		30: {ID: 30, FirstName: "Pavel", LastName: "Orlov"},
	}}

	pub := &capturingPublisher{}
	svc := service.NewStatsService(teams, players, matches, goals, lineups, pub, zerolog.New(io.Discard))
	return statsFixture{svc: svc, pub: pub}
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestStatsService_TeamStats(t *testing.T) {
	f := newStatsFixture()
	ctx := context.Background()

	t.Run("year window", func(t *testing.T) {
		stat, err := f.svc.TeamStats(ctx, 1, intPtr(2023))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := model.TeamStat{TeamID: 1, Year: intPtr(2023), Played: 2, Wins: 1, Draws: 1, Losses: 0}
		if stat.Played != want.Played || stat.Wins != want.Wins || stat.Draws != want.Draws || stat.Losses != want.Losses {
			t.Fatalf("got %+v, want %+v", stat, want)
		}
		if stat.Played != stat.Wins+stat.Draws+stat.Losses {
			t.Fatalf("played %d != wins+draws+losses", stat.Played)
		}
	})

	t.Run("all time", func(t *testing.T) {
		stat, err := f.svc.TeamStats(ctx, 1, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stat.Played != 3 || stat.Wins != 1 || stat.Draws != 1 || stat.Losses != 1 {
			t.Fatalf("got %+v", stat)
		}
	})

	t.Run("empty window is zeroes not error", func(t *testing.T) {
		stat, err := f.svc.TeamStats(ctx, 1, intPtr(1999))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stat.Played != 0 || stat.Wins != 0 || stat.Draws != 0 || stat.Losses != 0 {
			t.Fatalf("got %+v, want zeroes", stat)
		}
	})

	t.Run("unknown team", func(t *testing.T) {
		if _, err := f.svc.TeamStats(ctx, 99, nil); err != repository.ErrNotFound {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("published after compute", func(t *testing.T) {
		before := len(f.pub.teamStats)
		stat, err := f.svc.TeamStats(ctx, 2, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.pub.teamStats) != before+1 {
			t.Fatalf("expected one publish")
		}
		if f.pub.teamStats[len(f.pub.teamStats)-1] != stat {
			t.Fatalf("published stat differs from returned")
		}
	})
}

func TestStatsService_TeamStats_WindowBoundary(t *testing.T) {
	// A match dated exactly January 1 of year+1 falls in the next window.
	matches := &fakeMatchStore{matches: []model.Match{
		{ID: 1, Team1ID: 1, Team2ID: 2, Team1Score: 1, Team2Score: 0,
			MatchDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}}
	teams := &fakeTeamLookup{ok: map[int64]bool{1: true, 2: true}}
	pub := &capturingPublisher{}
	svc := service.NewStatsService(teams, &fakePlayerLookup{}, matches,
		&fakeGoalStore{matches: matches}, &fakeLineupStore{matches: matches}, pub, zerolog.New(io.Discard))

	s2023, err := svc.TeamStats(context.Background(), 1, intPtr(2023))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s2023.Played != 0 {
		t.Fatalf("midnight Jan 1 match leaked into previous year: %+v", s2023)
	}
	s2024, err := svc.TeamStats(context.Background(), 1, intPtr(2024))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s2024.Played != 1 || s2024.Wins != 1 {
		t.Fatalf("got %+v, want the match in 2024", s2024)
	}
}

func TestStatsService_PlayerStats(t *testing.T) {
	f := newStatsFixture()
	ctx := context.Background()

	t.Run("appearances and goals", func(t *testing.T) {
		stat, err := f.svc.PlayerStats(ctx, 10, intPtr(2023))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stat.MatchesPlayed != 2 || stat.Goals != 3 {
			t.Fatalf("got %+v", stat)
		}
		if stat.AvgGoalsPerMatch != 1.5 {
			t.Fatalf("avg = %v, want 1.5", stat.AvgGoalsPerMatch)
		}
	})

	t.Run("goal without participation still counts", func(t *testing.T) {
		stat, err := f.svc.PlayerStats(ctx, 20, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stat.MatchesPlayed != 0 {
			t.Fatalf("player 20 has no participation rows, got %d", stat.MatchesPlayed)
		}
		if stat.Goals != 1 {
			t.Fatalf("goals = %d, want 1", stat.Goals)
		}
		// zero appearances never divide
		if stat.AvgGoalsPerMatch != 0.0 {
			t.Fatalf("avg = %v, want 0.0", stat.AvgGoalsPerMatch)
		}
	})

	t.Run("unknown player", func(t *testing.T) {
		if _, err := f.svc.PlayerStats(ctx, 99, nil); err != repository.ErrNotFound {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestStatsService_TopTeams(t *testing.T) {
	f := newStatsFixture()
	ctx := context.Background()

	t.Run("rank order", func(t *testing.T) {
		table, err := f.svc.TopTeams(ctx, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(table) != 3 {
			t.Fatalf("got %d rows", len(table))
		}
		// team 1: 1W 1D 1L; team 2: 1W 0D 1L; team 3: 0W 1D 0L
		// wins desc puts 1 and 2 first; draws desc breaks the tie for team 1.
		gotOrder := []int64{table[0].TeamID, table[1].TeamID, table[2].TeamID}
		wantOrder := []int64{1, 2, 3}
		for i := range wantOrder {
			if gotOrder[i] != wantOrder[i] {
				t.Fatalf("order %v, want %v", gotOrder, wantOrder)
			}
		}
		for _, row := range table {
			if row.Played != row.Wins+row.Draws+row.Losses {
				t.Fatalf("row %+v violates played = wins+draws+losses", row)
			}
		}
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		first, err := f.svc.TopTeams(ctx, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 0; i < 10; i++ {
			again, err := f.svc.TopTeams(ctx, nil, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for j := range first {
				if again[j] != first[j] {
					t.Fatalf("run %d row %d: %+v != %+v", i, j, again[j], first[j])
				}
			}
		}
	})

	t.Run("limit coercion", func(t *testing.T) {
		table, err := f.svc.TopTeams(ctx, nil, intPtr(-5))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(table) != 1 {
			t.Fatalf("limit -5 should coerce to 1, got %d rows", len(table))
		}
		if table[0].TeamID != 1 {
			t.Fatalf("truncation must keep the top row, got team %d", table[0].TeamID)
		}
	})

	t.Run("empty window", func(t *testing.T) {
		table, err := f.svc.TopTeams(ctx, intPtr(1999), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(table) != 0 {
			t.Fatalf("got %d rows, want empty", len(table))
		}
	})
}

func TestStatsService_TopScorers(t *testing.T) {
	f := newStatsFixture()
	ctx := context.Background()

	t.Run("goal without participation is excluded", func(t *testing.T) {
		rows, err := f.svc.TopScorers(ctx, nil, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// players 10 and 30 have attributed goals; player 20's goal has no
		// participation row and silently drops out.
		if len(rows) != 2 {
			t.Fatalf("got %d rows: %+v", len(rows), rows)
		}
		if rows[0].PlayerID != 10 || rows[0].Goals != 3 {
			t.Fatalf("top row %+v", rows[0])
		}
		if rows[1].PlayerID != 30 || rows[1].Goals != 1 {
			t.Fatalf("second row %+v", rows[1])
		}
		if rows[0].FirstName != "Erik" || rows[0].LastName != "Larsen" {
			t.Fatalf("names not resolved: %+v", rows[0])
		}
	})

	t.Run("team filter", func(t *testing.T) {
		rows, err := f.svc.TopScorers(ctx, int64Ptr(3), nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 1 || rows[0].PlayerID != 30 || rows[0].TeamID != 3 {
			t.Fatalf("got %+v", rows)
		}
	})

	t.Run("year window", func(t *testing.T) {
		rows, err := f.svc.TopScorers(ctx, nil, intPtr(2024), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// the only 2024 goal belongs to player 20, which has no participation
		if len(rows) != 0 {
			t.Fatalf("got %+v, want empty", rows)
		}
	})

	t.Run("published rows match returned rows", func(t *testing.T) {
		before := len(f.pub.topScorers)
		rows, err := f.svc.TopScorers(ctx, nil, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.pub.topScorers) != before+1 {
			t.Fatalf("expected one publish")
		}
		published := f.pub.topScorers[len(f.pub.topScorers)-1]
		if len(published) != len(rows) {
			t.Fatalf("published %d rows, returned %d", len(published), len(rows))
		}
	})
}

func TestStatsService_TopScorers_NamesakeOrder(t *testing.T) {
	// Two players with equal goals sort by last then first name.
	matches := &fakeMatchStore{matches: []model.Match{
		{ID: 1, Team1ID: 1, Team2ID: 2, Team1Score: 2, Team2Score: 0, MatchDate: date(2023, time.May, 1)},
	}}
	goals := &fakeGoalStore{matches: matches, goals: []model.Goal{
		{ID: 1, MatchID: 1, PlayerID: 11, Minute: 10},
		{ID: 2, MatchID: 1, PlayerID: 12, Minute: 20},
	}}
	lineups := &fakeLineupStore{matches: matches, parts: map[partKey]model.Participation{
		{1, 11}: {MatchID: 1, PlayerID: 11, TeamID: 1},
		{1, 12}: {MatchID: 1, PlayerID: 12, TeamID: 1},
	}}
	players := &fakePlayerLookup{players: map[int64]model.Player{
		11: {ID: 11, FirstName: "Ben", LastName: "Adler"},
		12: {ID: 12, FirstName: "Adam", LastName: "Adler"},
	}}
	svc := service.NewStatsService(&fakeTeamLookup{}, players, matches, goals, lineups,
		&capturingPublisher{}, zerolog.New(io.Discard))

	rows, err := svc.TopScorers(context.Background(), nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].FirstName != "Adam" || rows[1].FirstName != "Ben" {
		t.Fatalf("namesakes out of order: %+v", rows)
	}
}
