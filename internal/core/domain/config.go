package domain

import "time"

// Default CDN and wiki endpoints.
const (
	DefaultCDNHost     = "prd-game-a-granbluefantasy.akamaized.net"
	DefaultWikiAPIURL  = "https://gbf.wiki/api.php"
	DefaultCDNAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36"
	DefaultWikiAgent   = "gbfsync/1.0"
	DefaultSyncDelay   = 25 * time.Second
	DefaultCDNTimeout  = 30 * time.Second
	DefaultBatchWindow = 300 * time.Second
)

// Config is the resolved runtime configuration.
type Config struct {
	Wiki   WikiConfig
	CDN    CDNConfig
	Sync   SyncConfig
	Ledger LedgerConfig
	Log    LogConfig
}

// WikiConfig configures the MediaWiki API client.
type WikiConfig struct {
	APIURL      string
	Username    string
	Password    string
	UserAgent   string
	MaxAttempts int
	// RetryDelay is the base of the linear rate-limit backoff.
	RetryDelay time.Duration
}

// CDNConfig configures the asset fetcher.
type CDNConfig struct {
	Host         string
	UserAgent    string
	ProxyURL     string
	Timeout      time.Duration
	MaxRetries   int
	Concurrency  int
	BatchTimeout time.Duration
}

// SyncConfig configures the synchronization driver.
type SyncConfig struct {
	Delay      time.Duration
	Concurrent bool
}

// LedgerConfig configures the run ledger.
type LedgerConfig struct {
	Path string
}

// LogConfig configures logging output.
type LogConfig struct {
	JSON bool
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		Wiki: WikiConfig{
			APIURL:      DefaultWikiAPIURL,
			UserAgent:   DefaultWikiAgent,
			MaxAttempts: 5,
			RetryDelay:  DefaultSyncDelay,
		},
		CDN: CDNConfig{
			Host:         DefaultCDNHost,
			UserAgent:    DefaultCDNAgent,
			Timeout:      DefaultCDNTimeout,
			MaxRetries:   3,
			Concurrency:  8,
			BatchTimeout: DefaultBatchWindow,
		},
		Sync: SyncConfig{
			Delay:      DefaultSyncDelay,
			Concurrent: true,
		},
		Ledger: LedgerConfig{
			Path: DefaultLedgerPath(),
		},
	}
}
