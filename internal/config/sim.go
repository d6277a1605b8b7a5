package config

// SimConfig controls the Monte Carlo finish-probability job.
type SimConfig struct {
	Iterations int
	// RoundStdDev is the stroke spread applied to each simulated round.
	RoundStdDev float64
	// Seed fixes the RNG when non-zero; zero seeds from the clock.
	Seed int64
}

func loadSim() SimConfig {
	return SimConfig{
		Iterations:  intEnvOrDefault(envSimIterations, defaultSimIterations),
		RoundStdDev: floatEnvOrDefault(envSimStdDev, defaultSimStdDev),
		Seed:        int64EnvOrDefault(envSimSeed, 0),
	}
}
