package core

// GameState represents the current state of a game.
// Returned by State() to communicate status to the platform.
type GameState struct {
	Score    int64 // Current score
	Best     int64 // Best score seen
	GameOver bool  // Whether no move is left
	Won      bool  // Whether the target tile was reached
}

// StepResult is returned by Step() after each tick.
type StepResult struct {
	State GameState
	// Warning carries a non-fatal problem from this tick, such as a failed save.
	Warning error
}
