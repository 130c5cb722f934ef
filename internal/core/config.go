package core

// RuntimeConfig is handed to a game when it starts or restarts.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed; 0 lets the platform pick one
}

// DefaultConfig returns an 80x24 config with no fixed seed.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState is the summary a front end needs after each action.
type GameState struct {
	Score    int
	GameOver bool
}
