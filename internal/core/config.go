package core

// RuntimeConfig contains the settings a simulation is started with.
type RuntimeConfig struct {
	ViewW    int   // Viewport width in pixels (camera window)
	ViewH    int   // Viewport height in pixels
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed handed to actor kinds that want randomness

	MarginX float64 // Camera follow margin as a fraction of the view
	MarginY float64

	Bindings        Bindings // Terminal key name to button name
	KeyReleaseTicks int      // Ticks a key press is held before its release is synthesized
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ViewW:    320,
		ViewH:    192,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		MarginX:  0.3,
		MarginY:  0.3,
		Bindings: Bindings{
			"left":  "left",
			"a":     "left",
			"right": "right",
			"d":     "right",
			"up":    "jump",
			"w":     "jump",
			"space": "jump",
		},
		KeyReleaseTicks: 8,
	}
}
