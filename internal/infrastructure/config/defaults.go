package config

import "time"

const (
	DefaultHTTPPort          = "3000"
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultPushInterval      = 60 * time.Second
	DefaultUpstreamTimeout   = 5 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultPGMaxConns        = 5
	DefaultPGMinConns        = 1
	DefaultMigrateAttempts   = 30
	DefaultMigrateRetryEvery = 500 * time.Millisecond
)
