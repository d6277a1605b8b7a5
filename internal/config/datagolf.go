package config

import "time"

// DataGolfConfig controls how we talk to the Data Golf feeds API.
type DataGolfConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func loadDataGolf() DataGolfConfig {
	return DataGolfConfig{
		BaseURL: envOrDefault(envDataGolfBaseURL, defaultDataGolfBaseURL),
		APIKey:  envOrDefault(envDataGolfAPIKey, ""),
		Timeout: durationEnvOrDefault(envDataGolfTimeout, defaultDataGolfTimeout),
	}
}
