package session

import "errors"

var (
	// ErrNoActiveSession is returned by End when there is nothing to finish.
	ErrNoActiveSession = errors.New("no active workout session")
	// ErrWorkoutInProgress is returned when starting a session while one
	// is already running. The running session is never silently replaced.
	ErrWorkoutInProgress = errors.New("a workout is already in progress")
	// ErrDayOutOfRange is returned when a plan start references a day
	// index the plan does not have.
	ErrDayOutOfRange = errors.New("plan day index out of range")
)
