package config

const (
	// ConfigFileEnv names an optional YAML config file
	ConfigFileEnv = "FOLLOWUP_CONFIG"
	// StorageDriverEnv name
	StorageDriverEnv = "FOLLOWUP_STORAGE_DRIVER"
	// StoragePathEnv name
	StoragePathEnv = "FOLLOWUP_STORAGE_PATH"
	// PushoverAPITokenEnv name
	PushoverAPITokenEnv = "PUSHOVER_API_TOKEN"
	// PushoverUserKeyEnv name
	PushoverUserKeyEnv = "PUSHOVER_USER_KEY"
	// PushoverDeviceEnv name
	PushoverDeviceEnv = "PUSHOVER_DEVICE"
	// PollIntervalEnv name
	PollIntervalEnv = "FOLLOWUP_POLL_INTERVAL"
	// TimezoneEnv name
	TimezoneEnv = "FOLLOWUP_TIMEZONE"
	// LogLevelEnv name
	LogLevelEnv = "FOLLOWUP_LOG_LEVEL"
)

// envKeys maps environment variables onto config keys
var envKeys = map[string]string{
	StorageDriverEnv:    "storage.driver",
	StoragePathEnv:      "storage.path",
	PushoverAPITokenEnv: "pushover.api_token",
	PushoverUserKeyEnv:  "pushover.user_key",
	PushoverDeviceEnv:   "pushover.device",
	PollIntervalEnv:     "scheduler.interval",
	TimezoneEnv:         "timezone",
	LogLevelEnv:         "log.level",
}

func envKey(name string) string {
	return envKeys[name]
}
