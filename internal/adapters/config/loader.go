// Package config loads the gbfsync runtime configuration.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvPrefix prefixes every environment override, e.g. GBFSYNC_CDN_HOST.
const EnvPrefix = "GBFSYNC"

// legacyEnv binds the unprefixed variable names used by existing deployments.
var legacyEnv = map[string]string{
	"wiki.username": "WIKI_USERNAME",
	"wiki.password": "WIKI_PASSWORD",
	"cdn.proxy_url": "PROXY_URL",
}

// Loader implements ports.ConfigLoader with viper.
type Loader struct {
	// Home overrides the user home directory. Used in tests.
	Home string
}

// Load resolves the configuration for cwd. gbfsync.yaml is searched in cwd,
// then each parent directory, then $HOME/.config/gbfsync. A missing file is
// not an error. Environment variables take precedence over the file.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	v := viper.New()
	setDefaults(v, domain.DefaultConfig())

	v.SetConfigName(domain.ConfigFileName)
	v.SetConfigType("yaml")
	for _, dir := range searchPaths(cwd) {
		v.AddConfigPath(dir)
	}
	if home := l.home(); home != "" {
		v.AddConfigPath(filepath.Join(home, ".config", domain.ConfigFileName))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, zerr.Wrap(err, domain.ErrConfigLoadFailed.Error())
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigLoadFailed.Error()), "cwd", cwd)
		}
	}

	var file File
	if err := v.Unmarshal(&file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigLoadFailed.Error())
	}

	cfg := file.toDomain()
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if used := v.ConfigFileUsed(); used != "" && !filepath.IsAbs(cfg.Ledger.Path) {
		cfg.Ledger.Path = filepath.Join(filepath.Dir(used), cfg.Ledger.Path)
	}
	return cfg, nil
}

func (l *Loader) home() string {
	if l.Home != "" {
		return l.Home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// searchPaths returns cwd followed by each of its parents up to the root.
func searchPaths(cwd string) []string {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return []string{cwd}
	}

	var paths []string
	for dir := abs; ; dir = filepath.Dir(dir) {
		paths = append(paths, dir)
		if filepath.Dir(dir) == dir {
			return paths
		}
	}
}

func setDefaults(v *viper.Viper, d *domain.Config) {
	v.SetDefault("wiki.api_url", d.Wiki.APIURL)
	v.SetDefault("wiki.username", d.Wiki.Username)
	v.SetDefault("wiki.password", d.Wiki.Password)
	v.SetDefault("wiki.user_agent", d.Wiki.UserAgent)
	v.SetDefault("wiki.max_attempts", d.Wiki.MaxAttempts)
	v.SetDefault("wiki.retry_delay", d.Wiki.RetryDelay)

	v.SetDefault("cdn.host", d.CDN.Host)
	v.SetDefault("cdn.user_agent", d.CDN.UserAgent)
	v.SetDefault("cdn.proxy_url", d.CDN.ProxyURL)
	v.SetDefault("cdn.timeout", d.CDN.Timeout)
	v.SetDefault("cdn.max_retries", d.CDN.MaxRetries)
	v.SetDefault("cdn.concurrency", d.CDN.Concurrency)
	v.SetDefault("cdn.batch_timeout", d.CDN.BatchTimeout)

	v.SetDefault("sync.delay", d.Sync.Delay)
	v.SetDefault("sync.concurrent", d.Sync.Concurrent)

	v.SetDefault("ledger.path", d.Ledger.Path)
	v.SetDefault("log.json", d.Log.JSON)
}

func validate(cfg *domain.Config) error {
	switch {
	case cfg.Wiki.APIURL == "":
		return zerr.With(domain.ErrConfigInvalid, "field", "wiki.api_url")
	case cfg.Wiki.MaxAttempts < 1:
		return zerr.With(domain.ErrConfigInvalid, "field", "wiki.max_attempts")
	case cfg.CDN.Host == "":
		return zerr.With(domain.ErrConfigInvalid, "field", "cdn.host")
	case cfg.CDN.MaxRetries < 0:
		return zerr.With(domain.ErrConfigInvalid, "field", "cdn.max_retries")
	case cfg.CDN.Concurrency < 1:
		return zerr.With(domain.ErrConfigInvalid, "field", "cdn.concurrency")
	case cfg.Sync.Delay < 0:
		return zerr.With(domain.ErrConfigInvalid, "field", "sync.delay")
	}
	return nil
}
