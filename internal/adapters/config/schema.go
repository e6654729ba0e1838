package config

import (
	"time"

	"go.trai.ch/gbfsync/internal/core/domain"
)

// File is the on-disk shape of gbfsync.yaml.
type File struct {
	Wiki   WikiDTO   `mapstructure:"wiki"`
	CDN    CDNDTO    `mapstructure:"cdn"`
	Sync   SyncDTO   `mapstructure:"sync"`
	Ledger LedgerDTO `mapstructure:"ledger"`
	Log    LogDTO    `mapstructure:"log"`
}

// WikiDTO configures the MediaWiki client.
type WikiDTO struct {
	APIURL      string        `mapstructure:"api_url"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	UserAgent   string        `mapstructure:"user_agent"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	RetryDelay  time.Duration `mapstructure:"retry_delay"`
}

// CDNDTO configures the asset fetcher.
type CDNDTO struct {
	Host         string        `mapstructure:"host"`
	UserAgent    string        `mapstructure:"user_agent"`
	ProxyURL     string        `mapstructure:"proxy_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	Concurrency  int           `mapstructure:"concurrency"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
}

// SyncDTO configures the driver.
type SyncDTO struct {
	Delay      time.Duration `mapstructure:"delay"`
	Concurrent bool          `mapstructure:"concurrent"`
}

// LedgerDTO configures the run ledger.
type LedgerDTO struct {
	Path string `mapstructure:"path"`
}

// LogDTO configures logging.
type LogDTO struct {
	JSON bool `mapstructure:"json"`
}

func (f *File) toDomain() *domain.Config {
	return &domain.Config{
		Wiki: domain.WikiConfig{
			APIURL:      f.Wiki.APIURL,
			Username:    f.Wiki.Username,
			Password:    f.Wiki.Password,
			UserAgent:   f.Wiki.UserAgent,
			MaxAttempts: f.Wiki.MaxAttempts,
			RetryDelay:  f.Wiki.RetryDelay,
		},
		CDN: domain.CDNConfig{
			Host:         f.CDN.Host,
			UserAgent:    f.CDN.UserAgent,
			ProxyURL:     f.CDN.ProxyURL,
			Timeout:      f.CDN.Timeout,
			MaxRetries:   f.CDN.MaxRetries,
			Concurrency:  f.CDN.Concurrency,
			BatchTimeout: f.CDN.BatchTimeout,
		},
		Sync: domain.SyncConfig{
			Delay:      f.Sync.Delay,
			Concurrent: f.Sync.Concurrent,
		},
		Ledger: domain.LedgerConfig{Path: f.Ledger.Path},
		Log:    domain.LogConfig{JSON: f.Log.JSON},
	}
}
