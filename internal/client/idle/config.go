package idle

import (
	"errors"
	"time"
)

const (
	DefaultWarningTime   = 5 * time.Minute
	DefaultLogoutTime    = 30 * time.Minute
	DefaultCheckInterval = 30 * time.Second
)

// Config is the idle-timeout policy.
//
// WarningTime is accepted but nothing fires on it yet; only a negative value
// is rejected.
type Config struct {
	WarningTime   time.Duration
	LogoutTime    time.Duration
	CheckInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		WarningTime:   DefaultWarningTime,
		LogoutTime:    DefaultLogoutTime,
		CheckInterval: DefaultCheckInterval,
	}
}

func (c Config) Validate() error {
	if c.LogoutTime <= 0 {
		return errors.New("idle: logout time must be positive")
	}
	if c.CheckInterval <= 0 {
		return errors.New("idle: check interval must be positive")
	}
	if c.WarningTime < 0 {
		return errors.New("idle: warning time must not be negative")
	}
	return nil
}
