package config

// Config holds runtime configuration for the server.
type Config struct {
	Port        string
	Provider    string
	CORSOrigins []string
	DataGolf    DataGolfConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Metrics     MetricsConfig
	Cron        CronConfig
	Groups      GroupsConfig
	Sim         SimConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:        envOrDefault(envPort, defaultPort),
		Provider:    envOrDefault(envProvider, defaultProvider),
		CORSOrigins: stringListEnvOrDefault(envCORSOrigins, []string{"*"}),
		DataGolf:    loadDataGolf(),
		Database:    loadDatabase(),
		Redis:       loadRedis(),
		Metrics:     loadMetrics(),
		Cron:        loadCron(),
		Groups:      loadGroups(),
		Sim:         loadSim(),
	}
}
