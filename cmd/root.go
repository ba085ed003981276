package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/sesctl/internal/logger"
	"github.com/spigell/sesctl/internal/secrets"
	"github.com/spigell/sesctl/internal/ses"
)

const (
	app = "sesctl"
)

type Config struct {
	APIURL    string    `mapstructure:"api-url"`
	Token     string    `mapstructure:"token"`
	TokenFile string    `mapstructure:"token-file"`
	UserAgent string    `mapstructure:"user-agent"`
	Output    string    `mapstructure:"output"`
	AI        *AIConfig `mapstructure:"ai"`
}

type AIConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Notes       string        `mapstructure:"notes"`
	Concurrency int           `mapstructure:"concurrency"`
	Gemini      *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "sesctl is a cli for the SES engineer management backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	envs := map[string]string{
		"api-url":                "SES_API_URL",
		"token":                  "SES_TOKEN",
		"token-file":             "SES_TOKEN_FILE",
		"ai.gemini.api-key":      "GEMINI_API_KEY",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("api-url", ses.DefaultAPIURL)
	viper.SetDefault("output", formatTable)
	viper.SetDefault("ai.concurrency", 2)
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 200)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is sesctl.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("log-file", "", "also write logs to the file")
	rootCmd.PersistentFlags().StringP("output", "o", formatTable, "output format: table or json")
	rootCmd.PersistentFlags().String("api-url", ses.DefaultAPIURL, "base url of the SES backend")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	// Variables already set in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless set explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
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

// session holds everything a command needs to talk to the backend.
type session struct {
	config *Config
	logger *zap.Logger
	client *ses.Client
	out    *printer
}

func newSession(cmd *cobra.Command) (*session, error) {
	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}

	base, err := logger.New(logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
		File:  viper.GetString("log-file"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	out, err := newPrinter(cmd.OutOrStdout(), config.Output)
	if err != nil {
		return nil, err
	}

	token, err := resolveToken(config)
	if err != nil {
		return nil, fmt.Errorf("loading api token: %w", err)
	}

	log := logger.ForCommand(base, cmd.CommandPath(), config.APIURL)
	client := ses.New(log, config.APIURL, token)

	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	log.Debug("starting", zap.String("version", version))
	checkToken(log, token)

	return &session{
		config: config,
		logger: log,
		client: client,
		out:    out,
	}, nil
}

// run adapts a session-aware handler to cobra.
func run(fn func(ctx context.Context, cmd *cobra.Command, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.logger.Sync()

		if err := fn(cmd.Context(), cmd, s, args); err != nil {
			s.logger.Debug("command failed", zap.Error(err), zap.Int("status", ses.StatusCode(err)))
			return err
		}
		return nil
	}
}

func resolveToken(config *Config) (string, error) {
	if config == nil {
		return "", errors.New("config is required")
	}

	return secrets.Load(secrets.Source{
		Name:     "api token",
		Value:    config.Token,
		File:     strings.TrimSpace(config.TokenFile),
		Optional: true,
	})
}

// checkToken warns about an expired bearer token. Opaque tokens are passed
// through as is.
func checkToken(log *zap.Logger, token string) {
	if token == "" {
		return
	}

	expiresAt, ok, err := secrets.TokenExpiry(token)
	if err != nil {
		log.Debug("api token is not a jwt", zap.Error(err))
		return
	}

	if ok && time.Now().After(expiresAt) {
		log.Warn("api token is expired", zap.Time("expired_at", expiresAt))
	}
}
