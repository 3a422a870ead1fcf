package config

import (
	"cattrap/searcher/agent"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the command's settings. Values come from defaults, then the
// config file (cattrap.yaml), then CATTRAP_* environment variables such as
// CATTRAP_AGENT_TIME_BUDGET.
type Config struct {
	Size          int          `mapstructure:"size"`
	Blocker       string       `mapstructure:"blocker"`
	Addr          string       `mapstructure:"addr"`
	RemoteURL     string       `mapstructure:"remote_url"`
	LogLevel      string       `mapstructure:"log_level"`
	ExperimentDir string       `mapstructure:"experiment_dir"`
	Games         int          `mapstructure:"games"`
	Parallel      int          `mapstructure:"parallel"`
	Agent         agent.Config `mapstructure:"agent"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("size", 7)
	v.SetDefault("blocker", "random")
	v.SetDefault("addr", ":8080")
	v.SetDefault("remote_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("experiment_dir", "experiments")
	v.SetDefault("games", 30)
	v.SetDefault("parallel", 0)

	v.SetDefault("agent.random", false)
	v.SetDefault("agent.alpha_beta", true)
	v.SetDefault("agent.depth_limited", false)
	v.SetDefault("agent.max_depth", 4)
	v.SetDefault("agent.iterative_deepening", true)
	v.SetDefault("agent.time_budget", agent.DefaultTimeBudget.Seconds())
	v.SetDefault("agent.evaluation", "proximity")
}

// Load reads the configuration. An empty path looks for cattrap.yaml in the
// working directory and is fine without one.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("cattrap")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("cattrap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Size < 1 || c.Size%2 == 0 {
		return fmt.Errorf("board size must be odd and positive, got %d", c.Size)
	}
	if c.Games < 0 {
		return fmt.Errorf("negative number of games %d", c.Games)
	}
	return c.Agent.Validate()
}
