package model

import "errors"

// Common errors used across the application
var (
	// Team errors
	ErrTeamNotFound = errors.New("team not found")
	ErrInvalidTeam  = errors.New("team id is required")

	// Fixture errors
	ErrFixtureNotFound      = errors.New("fixture not found")
	ErrMissingFixtureFields = errors.New("tournament, home team, away team and date are required")
	ErrSameTeam             = errors.New("a team cannot play itself")
	ErrInvalidDate          = errors.New("invalid fixture date")
	ErrScheduleConflict     = errors.New("team already has a fixture at that time")
	ErrVenueConflict        = errors.New("venue is already booked at that time")
	ErrInvalidScore         = errors.New("invalid score")

	// Registration errors
	ErrInvalidTournament = errors.New("tournament name is required")
	ErrAlreadyRegistered = errors.New("team is already registered for tournament")
	ErrNotRegistered     = errors.New("team is not registered for tournament")

	// Session errors
	ErrNoSession = errors.New("no active session")
)
