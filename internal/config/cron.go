package config

import "time"

// CronConfig controls the batch jobs and the optional in-process scheduler.
type CronConfig struct {
	// Secret gates the /cron/* triggers when set. Empty leaves them open,
	// which is the expected local/dev posture.
	Secret           string
	BatchSize        int
	BatchDelay       time.Duration
	ScheduleEnabled  bool
	ScheduleInterval time.Duration
}

func loadCron() CronConfig {
	return CronConfig{
		Secret:           envOrDefault(envCronSecret, ""),
		BatchSize:        intEnvOrDefault(envCronBatchSize, defaultBatchSize),
		BatchDelay:       durationEnvOrDefault(envCronBatchDelay, defaultBatchDelay),
		ScheduleEnabled:  boolEnvOrDefault(envCronScheduleOn, false),
		ScheduleInterval: durationEnvOrDefault(envCronScheduleRate, defaultScheduleInterval),
	}
}
