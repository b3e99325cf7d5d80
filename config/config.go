package config

import "time"

// Config for application setup
type Config interface {
	StorageDriver() string
	StoragePath() (string, error)
	PushoverAPIToken() (string, error)
	PushoverUserKey() (string, error)
	PushoverDevice() string
	PushoverRatePerSecond() float64
	PollInterval() time.Duration
	Location() (*time.Location, error)
	LogLevel() string
}
