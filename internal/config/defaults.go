package config

const (
	defaultBaseURL        = "http://127.0.0.1:5000"
	defaultRequestTimeout = 15
	defaultQueueInterval  = 2
	defaultJobInterval    = 1
	defaultReleaseLimit   = 9
	defaultCompletedTail  = 3
	defaultColor          = "auto"
	defaultHistoryPath    = "~/.local/share/showsaver/history.db"
	defaultLogDir         = "~/.local/share/showsaver/logs"
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			BaseURL:        defaultBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Polling: Polling{
			QueueInterval: defaultQueueInterval,
			JobInterval:   defaultJobInterval,
		},
		Display: Display{
			ReleaseLimit:  defaultReleaseLimit,
			CompletedTail: defaultCompletedTail,
			Color:         defaultColor,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		LogDir:    defaultLogDir,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}
