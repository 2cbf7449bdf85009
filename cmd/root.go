package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sharanb/careerforge-cli/internal/careerforge"
	"github.com/sharanb/careerforge-cli/internal/logger"
	"github.com/sharanb/careerforge-cli/internal/session"
)

const (
	app = "careerforge-cli"
)

type Config struct {
	ProfileURL string        `mapstructure:"profile-url"`
	JobsURL    string        `mapstructure:"jobs-url"`
	UserAgent  string        `mapstructure:"user-agent"`
	UserIDFile string        `mapstructure:"user-id-file"`
	Resume     string        `mapstructure:"resume"`
	Search     *SearchConfig `mapstructure:"search"`
}

type SearchConfig struct {
	MinRelevance float64 `mapstructure:"min-relevance"`
	Location     string  `mapstructure:"location"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "careerforge-cli is a terminal client for the careerforge career-guidance product",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("user-id-file", "CAREERFORGE_USER_ID_FILE"); err != nil {
		log.Fatalf("binding CAREERFORGE_USER_ID_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is careerforge-cli.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A config file is optional; every setting has a usable default.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

func newLogger() (*zap.Logger, error) {
	return logger.New(viper.GetBool("json"), viper.GetBool("debug"))
}

// newClient builds the API client with any configured overrides applied.
func newClient(ctx context.Context, log *zap.Logger, config *Config) *careerforge.Client {
	client := careerforge.New(ctx, log)

	if config.ProfileURL != "" {
		client.ProfileURL = config.ProfileURL
	}
	if config.JobsURL != "" {
		client.JobsURL = config.JobsURL
	}
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	return client
}

func newSessionStore(config *Config) *session.Store {
	path := config.UserIDFile
	if path == "" {
		path = viper.GetString("user-id-file")
	}
	return session.New(path)
}
