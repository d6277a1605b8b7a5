package config

import "time"

const (
	envPort             = "PORT"
	envProvider         = "PROVIDER"
	envCORSOrigins      = "CORS_ORIGINS"
	envDataGolfBaseURL  = "DATAGOLF_BASE_URL"
	envDataGolfAPIKey   = "DATAGOLF_API_KEY"
	envDataGolfTimeout  = "DATAGOLF_TIMEOUT"
	envDatabaseURL      = "DATABASE_URL"
	envRedisAddr        = "REDIS_ADDR"
	envRedisPassword    = "REDIS_PASSWORD"
	envRedisDB          = "REDIS_DB"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"
	envCronSecret       = "CRON_SECRET"
	envCronBatchSize    = "CRON_BATCH_SIZE"
	envCronBatchDelay   = "CRON_BATCH_DELAY"
	envCronScheduleOn   = "CRON_SCHEDULE_ENABLED"
	envCronScheduleRate = "CRON_SCHEDULE_INTERVAL"
	envGroupOverflow    = "GROUP_OVERFLOW_POLICY"
	envGroupExcludeIDs  = "GROUP_EXCLUDE_IDS"
	envSimIterations    = "SIM_ITERATIONS"
	envSimStdDev        = "SIM_ROUND_STDDEV"
	envSimSeed          = "SIM_SEED"

	defaultPort            = "4000"
	defaultProvider        = "fixture"
	defaultDataGolfBaseURL = "https://feeds.datagolf.com"
	defaultDataGolfTimeout = 10 * Duration(time.Second)
	defaultMetricsPort     = "9090"
	// Batch sizing keeps per-entity store round trips bounded while the
	// inter-batch delay spaces writes away from provider polling bursts.
	defaultBatchSize  = 10
	defaultBatchDelay = 200 * Duration(time.Millisecond)
	// Scheduler cadence when in-process scheduling is enabled; production
	// deployments drive the triggers from external cron instead.
	defaultScheduleInterval = 5 * Duration(time.Minute)
	defaultOverflowPolicy   = "alternate"
	defaultSimIterations    = 1000
	// Stroke spread per simulated round, tuned against historical scoring
	// distributions on par-72 setups.
	defaultSimStdDev = 2.75
)
