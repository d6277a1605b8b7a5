package config

// DatabaseConfig holds the Postgres connection settings. An empty URL selects
// the in-memory store.
type DatabaseConfig struct {
	URL string
}

func loadDatabase() DatabaseConfig {
	return DatabaseConfig{
		URL: envOrDefault(envDatabaseURL, ""),
	}
}
