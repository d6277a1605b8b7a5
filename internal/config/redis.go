package config

// RedisConfig holds the connection settings for the live leaderboard layer.
// An empty Addr disables Redis-backed caching, streaming and websockets.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

func loadRedis() RedisConfig {
	return RedisConfig{
		Addr:     envOrDefault(envRedisAddr, ""),
		Password: envOrDefault(envRedisPassword, ""),
		DB:       intEnvOrDefault(envRedisDB, 0),
	}
}
