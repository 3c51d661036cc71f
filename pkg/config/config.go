// Package config loads cipher-suite preferences from a YAML file, the
// environment and command-line flags.
//
// Preferences are stored as comma-separated strings under the tls section:
//
//	tls:
//	  whitelisted_ciphersuites: TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256
//	  blacklisted_ciphersuites: TLS_RSA_WITH_AES_128_CBC_SHA,TLS_RSA_WITH_AES_256_CBC_SHA
//	  ciphersuites_order: ""
//	  adjust_by_recommendation: true
//
// An empty or missing string means the preference is not configured. YAML
// sequences are accepted in place of comma-separated strings. Environment
// variables use the SUITEPOLICY_ prefix with dots replaced by underscores,
// e.g. SUITEPOLICY_TLS_CIPHERSUITES_ORDER.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pzverkov/suitepolicy/internal/constants"
	qerrors "github.com/pzverkov/suitepolicy/internal/errors"
	"github.com/pzverkov/suitepolicy/pkg/ciphersuite"
	"github.com/pzverkov/suitepolicy/pkg/provider"
)

// Flag names bound onto configuration keys by Load.
const (
	FlagWhitelist = "whitelist"
	FlagBlacklist = "blacklist"
	FlagOrdering  = "order"
	FlagAdjust    = "adjust"
)

var flagKeys = map[string]string{
	FlagWhitelist: constants.ConfigKeyWhitelist,
	FlagBlacklist: constants.ConfigKeyBlacklist,
	FlagOrdering:  constants.ConfigKeyOrdering,
	FlagAdjust:    constants.ConfigKeyAdjust,
}

// Preferences are the user-configured inputs to resolution. Nil fields are
// not configured.
type Preferences struct {
	Whitelist              ciphersuite.Set
	Blacklist              ciphersuite.Set
	Ordering               []string
	AdjustByRecommendation bool
}

// Default returns preferences with nothing configured and recommendation
// adjustment enabled.
func Default() Preferences {
	return Preferences{AdjustByRecommendation: true}
}

// Input combines p with the suites reported by src.
func (p Preferences) Input(src provider.Provider) ciphersuite.Input {
	return provider.Input(src, p.Blacklist, p.Whitelist, p.Ordering, p.AdjustByRecommendation)
}

// file mirrors the on-disk layout.
type file struct {
	TLS tlsSection `yaml:"tls"`
}

type tlsSection struct {
	Whitelist              string `yaml:"whitelisted_ciphersuites"`
	Blacklist              string `yaml:"blacklisted_ciphersuites"`
	Ordering               string `yaml:"ciphersuites_order"`
	AdjustByRecommendation bool   `yaml:"adjust_by_recommendation"`
}

// Encode renders p in the configuration file format. Unconfigured
// preferences are written as empty strings.
func (p Preferences) Encode() ([]byte, error) {
	return yaml.Marshal(file{TLS: tlsSection{
		Whitelist:              FormatSet(p.Whitelist),
		Blacklist:              FormatSet(p.Blacklist),
		Ordering:               FormatList(p.Ordering),
		AdjustByRecommendation: p.AdjustByRecommendation,
	}})
}

// WriteFile writes p to path, creating parent directories as needed.
func (p Preferences) WriteFile(path string) error {
	data, err := p.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ParseList splits a comma-separated string into trimmed names. An empty
// string yields nil. Empty items are dropped.
func ParseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, constants.ListSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseSet is ParseList collected into a Set. An empty string yields nil.
func ParseSet(s string) ciphersuite.Set {
	list := ParseList(s)
	if list == nil {
		return nil
	}
	return ciphersuite.NewSet(list...)
}

// FormatList joins names with commas.
func FormatList(list []string) string {
	return strings.Join(list, constants.ListSeparator)
}

// FormatSet joins the names of s in lexical order.
func FormatSet(s ciphersuite.Set) string {
	return FormatList(s.Sorted())
}

// Load reads preferences. An explicit path must exist; without one,
// suitepolicy.yaml is searched for in the user config directory,
// /etc/suitepolicy and the working directory, and a missing file is not an
// error. Environment variables override the file and flags override both.
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Preferences, error) {
	v := viper.New()
	v.SetDefault(constants.ConfigKeyAdjust, true)

	v.SetConfigName(constants.ProjectName)
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, constants.ProjectName))
		}
		v.AddConfigPath(filepath.Join("/etc", constants.ProjectName))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Preferences{}, qerrors.NewConfigError("", fmt.Errorf("%w: %v", qerrors.ErrConfigRead, err))
		}
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Preferences{}, qerrors.NewConfigError(key, err)
				}
			}
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Preferences, error) {
	var p Preferences
	var err error

	if p.Whitelist, err = setValue(v, constants.ConfigKeyWhitelist); err != nil {
		return Preferences{}, err
	}
	if p.Blacklist, err = setValue(v, constants.ConfigKeyBlacklist); err != nil {
		return Preferences{}, err
	}
	if p.Ordering, err = listValue(v, constants.ConfigKeyOrdering); err != nil {
		return Preferences{}, err
	}

	adjust, err := cast.ToBoolE(v.Get(constants.ConfigKeyAdjust))
	if err != nil {
		return Preferences{}, qerrors.NewConfigError(constants.ConfigKeyAdjust, fmt.Errorf("%w: %v", qerrors.ErrInvalidConfig, err))
	}
	p.AdjustByRecommendation = adjust

	return p, nil
}

func listValue(v *viper.Viper, key string) ([]string, error) {
	switch raw := v.Get(key).(type) {
	case nil:
		return nil, nil
	case string:
		return ParseList(raw), nil
	case []interface{}:
		items, err := cast.ToStringSliceE(raw)
		if err != nil {
			return nil, qerrors.NewConfigError(key, fmt.Errorf("%w: %v", qerrors.ErrInvalidConfig, err))
		}
		return ParseList(FormatList(items)), nil
	case []string:
		return ParseList(FormatList(raw)), nil
	default:
		return nil, qerrors.NewConfigError(key, fmt.Errorf("%w: expected string or list, got %T", qerrors.ErrInvalidConfig, raw))
	}
}

func setValue(v *viper.Viper, key string) (ciphersuite.Set, error) {
	list, err := listValue(v, key)
	if err != nil || list == nil {
		return nil, err
	}
	return ciphersuite.NewSet(list...), nil
}
