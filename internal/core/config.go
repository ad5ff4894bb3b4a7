package core

// RuntimeConfig is passed to a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // screen width in characters
	ScreenH  int   // screen height in characters
	TickRate int   // simulation ticks per second
	Seed     int64 // RNG seed; 0 lets the platform pick one
}

// DefaultConfig returns an 80x24 screen at 30 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the platform-facing summary of a running game.
type GameState struct {
	Score    int  // current score
	GameOver bool // the game has ended
	Elapsed  int  // seconds on the game clock
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
