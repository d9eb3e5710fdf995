package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/avasilyev/football-stats-service/internal/model"
	"github.com/avasilyev/football-stats-service/internal/repository"
	"github.com/avasilyev/football-stats-service/internal/service"
)

type recGoalRepo struct {
	created []model.Goal
	nextID  int64
}

func (r *recGoalRepo) Create(_ context.Context, g model.Goal) (model.Goal, error) {
	r.nextID++
	g.ID = r.nextID
	r.created = append(r.created, g)
	return g, nil
}
func (r *recGoalRepo) GetByID(_ context.Context, id int64) (model.Goal, error) {
	for _, g := range r.created {
		if g.ID == id {
			return g, nil
		}
	}
	return model.Goal{}, repository.ErrNotFound
}
func (r *recGoalRepo) List(context.Context, repository.Page) (repository.PageResult[model.Goal], error) {
	return repository.PageResult[model.Goal]{}, nil
}
func (r *recGoalRepo) ListByPlayer(context.Context, int64) ([]model.Goal, error) { return nil, nil }
func (r *recGoalRepo) Update(_ context.Context, g model.Goal) (model.Goal, error) {
	for i, existing := range r.created {
		if existing.ID == g.ID {
			r.created[i] = g
			return g, nil
		}
	}
	return model.Goal{}, repository.ErrNotFound
}
func (r *recGoalRepo) Delete(context.Context, int64) error        { return nil }
func (r *recGoalRepo) DeleteByMatch(context.Context, int64) error { return nil }
func (r *recGoalRepo) ListByDateRange(context.Context, time.Time, time.Time) ([]model.Goal, error) {
	return nil, nil
}
func (r *recGoalRepo) CountByPlayerInRange(context.Context, int64, time.Time, time.Time) (int, error) {
	return 0, nil
}

var _ repository.GoalRepository = (*recGoalRepo)(nil)

type recLineupStore struct {
	parts    map[partKey]model.Participation
	upserted []model.Participation
}

func (r *recLineupStore) Upsert(_ context.Context, p model.Participation) (model.Participation, error) {
	if r.parts == nil {
		r.parts = make(map[partKey]model.Participation)
	}
	r.parts[partKey{p.MatchID, p.PlayerID}] = p
	r.upserted = append(r.upserted, p)
	return p, nil
}
func (r *recLineupStore) Get(_ context.Context, matchID, playerID int64) (model.Participation, error) {
	if p, ok := r.parts[partKey{matchID, playerID}]; ok {
		return p, nil
	}
	return model.Participation{}, repository.ErrNotFound
}
func (r *recLineupStore) Exists(_ context.Context, matchID, playerID int64) (bool, error) {
	_, ok := r.parts[partKey{matchID, playerID}]
	return ok, nil
}
func (r *recLineupStore) DeleteByMatch(context.Context, int64) error { return nil }
func (r *recLineupStore) DeleteByMatchAndTeam(context.Context, int64, int64) error {
	return nil
}
func (r *recLineupStore) CountByPlayerInRange(context.Context, int64, time.Time, time.Time) (int, error) {
	return 0, nil
}

var _ repository.ParticipationRepository = (*recLineupStore)(nil)

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn repository.TxFunc) error { return fn(ctx) }

var _ repository.TxManager = fakeTx{}

type goalFixture struct {
	svc     service.GoalService
	goals   *recGoalRepo
	lineups *recLineupStore
}

func newGoalFixture() goalFixture {
	matches := &fakeMatchStore{matches: []model.Match{
		{ID: 1, Team1ID: 1, Team2ID: 2, MatchDate: date(2023, time.June, 10)},
	}}
	players := &fakePlayerLookup{players: map[int64]model.Player{
		10: {ID: 10, FirstName: "Erik", LastName: "Larsen", TeamID: int64Ptr(1)},
		20: {ID: 20, FirstName: "Marco", LastName: "Bruno", TeamID: int64Ptr(3)}, // not in this match
		30: {ID: 30, FirstName: "Free", LastName: "Agent"},                       // no team
	}}
	goals := &recGoalRepo{}
	lineups := &recLineupStore{}
	svc := service.NewGoalService(goals, matches, players, lineups, fakeTx{}, zerolog.New(io.Discard))
	return goalFixture{svc: svc, goals: goals, lineups: lineups}
}

func TestGoalService_CreateGoal_BackfillsParticipation(t *testing.T) {
	f := newGoalFixture()

	goal, err := f.svc.CreateGoal(context.Background(), 1, 10, 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal.ID == 0 || goal.Minute != 45 {
		t.Fatalf("got %+v", goal)
	}
	if len(f.lineups.upserted) != 1 {
		t.Fatalf("expected one backfilled participation, got %d", len(f.lineups.upserted))
	}
	part := f.lineups.upserted[0]
	if part.MatchID != 1 || part.PlayerID != 10 || part.TeamID != 1 {
		t.Fatalf("backfill wrong: %+v", part)
	}
	if part.Starting {
		t.Fatalf("backfilled participation must not be marked starting")
	}
}

func TestGoalService_CreateGoal_ExistingParticipationUntouched(t *testing.T) {
	f := newGoalFixture()
	existing := model.Participation{MatchID: 1, PlayerID: 10, TeamID: 1, Starting: true}
	f.lineups.parts = map[partKey]model.Participation{{1, 10}: existing}

	if _, err := f.svc.CreateGoal(context.Background(), 1, 10, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.lineups.upserted) != 0 {
		t.Fatalf("existing lineup row must not be overwritten")
	}
	if got := f.lineups.parts[partKey{1, 10}]; !got.Starting {
		t.Fatalf("starting flag lost: %+v", got)
	}
}

func TestGoalService_CreateGoal_Rejections(t *testing.T) {
	f := newGoalFixture()
	ctx := context.Background()

	cases := []struct {
		name     string
		matchID  int64
		playerID int64
		minute   int
		wantInv  bool
	}{
		{"minute above bound", 1, 10, 121, true},
		{"negative minute", 1, 10, -1, true},
		{"player without team", 1, 30, 10, true},
		{"player from third team", 1, 20, 10, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreateGoal(ctx, tc.matchID, tc.playerID, tc.minute)
			if !errors.Is(err, service.ErrInvalidInput) {
				t.Fatalf("want invalid input, got %v", err)
			}
		})
	}

	if _, err := f.svc.CreateGoal(ctx, 99, 10, 10); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("unknown match: want ErrNotFound, got %v", err)
	}
	if _, err := f.svc.CreateGoal(ctx, 1, 99, 10); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("unknown player: want ErrNotFound, got %v", err)
	}
	if len(f.goals.created) != 0 {
		t.Fatalf("no goal should have been stored, got %d", len(f.goals.created))
	}
}

func TestGoalService_PatchGoal_RevalidatesParticipation(t *testing.T) {
	f := newGoalFixture()
	ctx := context.Background()

	goal, err := f.svc.CreateGoal(ctx, 1, 10, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	minute := 90
	patched, err := f.svc.PatchGoal(ctx, goal.ID, service.GoalPatch{Minute: &minute})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patched.Minute != 90 {
		t.Fatalf("got %+v", patched)
	}

	// re-pointing the goal at a player outside the match must fail
	outsider := int64(20)
	if _, err := f.svc.PatchGoal(ctx, goal.ID, service.GoalPatch{PlayerID: &outsider}); !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("want invalid input, got %v", err)
	}
}
