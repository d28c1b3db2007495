package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/course-registration/coursereg-web/internal/appconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
	apiBaseURL string
	envFile    string
	host       string
	port       int

	appCfg *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "coursereg",
	Short: "Course Registration",
	Long:  `Course Registration is a web front-end for managing course listings and student registrations held by the course registration service.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn",
		"sets the log level")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api-base-url", "",
		"base URL of the course registration service (overrides "+appconfig.EnvBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"dotenv file loaded before reading the environment")
}

// commonSetUp sets up logging and resolves the configuration.
func commonSetUp(cmd *cobra.Command) error {
	setLogging(logLevel)

	if err := appconfig.LoadEnvFiles(envFile); err != nil {
		return err
	}

	cfg, err := appconfig.LoadConfig(configPath)
	if err != nil {
		return err
	}
	cfg.ResolveBaseURL(apiBaseURL, cmd.Flags().Changed("api-base-url"))

	if err := cfg.Validate(); err != nil {
		return err
	}

	appCfg = cfg
	log.Debug().
		Str("config", configPath).
		Str("api_base_url", appCfg.API.BaseURL).
		Msg("configuration loaded")
	return nil
}

func setLogging(level string) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
