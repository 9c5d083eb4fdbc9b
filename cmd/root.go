package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	envFile  string
	logLevel string

	logger = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Survey data-quality triage CLI",
	Long: `A data-quality triage tool for delimited survey files:
normalizes ad-hoc missing-value encodings into a canonical marker
and reports on the prevalence and position of complete records.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadEnvironment()
		setupLogging()
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"Path to .env file")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "",
		"Log level (debug, info, warn, error)")
}

func loadEnvironment() {
	if _, err := os.Stat(envFile); err != nil {
		return
	}
	if err := godotenv.Load(envFile); err != nil {
		logger.Warningf("Error loading %s file: %v", envFile, err)
	}
}

func setupLogging() {
	levelStr := logLevel
	if levelStr == "" {
		levelStr = os.Getenv("TRIAGE_LOG_LEVEL")
		if levelStr == "" {
			levelStr = "info"
		}
	}

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}

	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stderr)
}
