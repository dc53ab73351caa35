// Package config centralizes all tunable game parameters.
package config

import "time"

// Paddles
const (
	PaddleWidth  = 25.0
	PaddleHeight = 130.0
	PaddleSpeed  = 6.0 // Units per tick
)

// Ball
const (
	BallRadius    = 15.0
	BallServeX    = 5.0 // Horizontal serve speed, sign picked at random
	BallServeYMax = 2.0 // Vertical serve speed drawn from [-BallServeYMax, BallServeYMax]
)

// Computer opponent
const (
	AIErrorMargin = 200.0 // Aim error drawn from [-AIErrorMargin, AIErrorMargin]
	AIDeadZone    = 20.0  // No movement while the paddle centre is this close to the target
)

// Scoring
const (
	WinningScore = 10
)

// Layout (logical units)
const (
	NetDashSpacing = 20.0
	NetDashWidth   = 2.0
	NetDashLength  = 10.0
	ScoreTextY     = 50.0
	ScoreTextSize  = 30.0
	WinnerTextSize = 40.0
)

// Surface sizing: the drawable area is a fixed fraction of the viewport.
const (
	SurfaceWidthFraction  = 0.8
	SurfaceHeightFraction = 0.6
)

// Terminal mapping: one column is CellWidth logical units wide, one row is
// CellHeight units tall (two half-block sub-pixels of CellHeight/2 each).
const (
	CellWidth  = 10.0
	CellHeight = 20.0
)

// Input
const (
	KeyHoldDuration = 80 * time.Millisecond // Terminals send no key-up; repeats refresh the hold
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
	ShutdownWait           = 15 * time.Second
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
