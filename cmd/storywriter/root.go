package main

import (
	"log/slog"
	"os"

	"github.com/gdoct/ai-storywriter-sub001/internal/config"
	"github.com/gdoct/ai-storywriter-sub001/pkg/slogx"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	endpointName string
	modelName    string
	logLevel     string
	natsURL      string
	verbose      bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "storywriter",
	Short: "Stream story text from OpenAI compatible endpoints",
	Long: `storywriter sends chat-completion requests to an OpenAI compatible endpoint
and prints the reply while it streams. Press Ctrl-C to cancel a generation.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "storywriter.yaml", "config file path")
	flags.StringVarP(&endpointName, "endpoint", "e", "", "endpoint to use (overrides config)")
	flags.StringVarP(&modelName, "model", "m", "", "model to use (overrides config)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&natsURL, "nats", "", "publish generation events to this NATS server")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}
	cfg = loaded

	level, err := slogx.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slogx.NewHandler(os.Stderr, level, cfg.LogPretty)))
	return nil
}
