package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hasbyte1/go-hashing/hashing"
)

const envPrefix = "PASSHASH"

// Settings is the passhash configuration.  Sources in order of precedence:
// command-line flags, PASSHASH_* environment variables, the config file,
// then defaults.
type Settings struct {
	Env       string         `mapstructure:"env"`
	LogLevel  string         `mapstructure:"log_level"`
	Algorithm string         `mapstructure:"algorithm"`
	Timeout   time.Duration  `mapstructure:"timeout"`
	Bcrypt    BcryptSettings `mapstructure:"bcrypt"`
	Argon2    Argon2Settings `mapstructure:"argon2"`
}

// BcryptSettings configures bcrypt hashing.
type BcryptSettings struct {
	Cost int `mapstructure:"cost"`
}

// Argon2Settings configures Argon2i and Argon2id hashing.
type Argon2Settings struct {
	TimeCost   int `mapstructure:"time_cost"`
	MemoryCost int `mapstructure:"memory_cost"`
	Threads    int `mapstructure:"threads"`
}

var keys = []string{
	"config",
	"env",
	"log_level",
	"algorithm",
	"timeout",
	"bcrypt.cost",
	"argon2.time_cost",
	"argon2.memory_cost",
	"argon2.threads",
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"config":      "config",
	"log-level":   "log_level",
	"algorithm":   "algorithm",
	"timeout":     "timeout",
	"cost":        "bcrypt.cost",
	"time-cost":   "argon2.time_cost",
	"memory-cost": "argon2.memory_cost",
	"threads":     "argon2.threads",
}

// Load resolves the settings.  flags may be nil; only flags that exist in
// the set are bound.  A config file is read when the "config" key is set.
func Load(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(envPrefix)

	setDefaults(v)

	if err := bindEnvs(v, keys); err != nil {
		return nil, err
	}
	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Settings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Options returns the configured algorithm and its option set.
func (s *Settings) Options() (hashing.Algorithm, hashing.Options, error) {
	alg, err := hashing.ParseAlgorithm(s.Algorithm)
	if err != nil {
		return "", nil, err
	}
	if alg == hashing.Bcrypt {
		return alg, hashing.Options{hashing.OptionCost: s.Bcrypt.Cost}, nil
	}
	return alg, hashing.Options{
		hashing.OptionTimeCost:   s.Argon2.TimeCost,
		hashing.OptionMemoryCost: s.Argon2.MemoryCost,
		hashing.OptionThreads:    s.Argon2.Threads,
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config", "")
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("algorithm", string(hashing.DefaultAlgorithm))
	v.SetDefault("timeout", "0s")

	v.SetDefault("bcrypt.cost", hashing.DefaultBcryptCost)

	v.SetDefault("argon2.time_cost", hashing.DefaultArgon2TimeCost)
	v.SetDefault("argon2.memory_cost", hashing.DefaultArgon2MemoryCost)
	v.SetDefault("argon2.threads", hashing.DefaultArgon2Threads)
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envPrefix+"_"+envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}
