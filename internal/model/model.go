// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// Coach represents a team coach.
type Coach struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Team represents a football club.
type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country,omitempty"`
	CoachID   *int64    `json:"coach_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Player represents an athlete. TeamID is nullable: free agents exist, and the
// current team is not the authority for historical stats (see Participation).
type Player struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	TeamID    *int64    `json:"team_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Championship represents a competition matches may belong to.
type Championship struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Match represents a fixture between two distinct teams.
// Scores stay 0 until a result is recorded.
type Match struct {
	ID             int64     `json:"id"`
	Team1ID        int64     `json:"team1_id"`
	Team2ID        int64     `json:"team2_id"`
	Team1Score     int       `json:"team1_score"`
	Team2Score     int       `json:"team2_score"`
	MatchDate      time.Time `json:"match_date"`
	ChampionshipID *int64    `json:"championship_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Goal represents a single goal event; Minute is bounded to [0,120].
type Goal struct {
	ID        int64     `json:"id"`
	MatchID   int64     `json:"match_id"`
	PlayerID  int64     `json:"player_id"`
	Minute    int       `json:"minute"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Participation records which team a player represented in a specific match.
// Composite key (MatchID, PlayerID). This is the authority for "which team did
// this player score for", because team affiliation can change after the match.
type Participation struct {
	MatchID       int64     `json:"match_id"`
	PlayerID      int64     `json:"player_id"`
	TeamID        int64     `json:"team_id"`
	Starting      bool      `json:"starting"`
	MinutesPlayed *int      `json:"minutes_played,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TeamStat holds a team's record for an optional year window.
// Computed on demand, never persisted. Played = Wins + Draws + Losses.
type TeamStat struct {
	TeamID int64 `json:"team_id"`
	Year   *int  `json:"year"` // nil = all time
	Played int   `json:"played"`
	Wins   int   `json:"wins"`
	Draws  int   `json:"draws"`
	Losses int   `json:"losses"`
}

// PlayerStat holds a player's appearance and scoring record for an optional
// year window. MatchesPlayed and Goals are independent counters queried from
// different stores and may diverge on inconsistent data.
type PlayerStat struct {
	PlayerID         int64   `json:"player_id"`
	Year             *int    `json:"year"` // nil = all time
	MatchesPlayed    int     `json:"matches_played"`
	Goals            int     `json:"goals"`
	AvgGoalsPerMatch float64 `json:"avg_goals_per_match"`
}

// TopScorerEntry is one row of the scorer table, keyed by (player, team at
// goal time) — a transferred player appears once per team they scored for.
type TopScorerEntry struct {
	PlayerID  int64  `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	TeamID    int64  `json:"team_id"`
	Goals     int    `json:"goals"`
}
