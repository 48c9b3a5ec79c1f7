package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/backend"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/batch"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/logger"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/pipeline"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/prompt"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app       = "pitchscore"
	envPrefix = "PITCHSCORE"
)

type Config struct {
	ExtractionModel string `mapstructure:"extraction-model"`
	EvaluationModel string `mapstructure:"evaluation-model"`
	PromptVersion   string `mapstructure:"prompt-version"`
	OutputDir       string `mapstructure:"output-dir"`
	NoSave          bool   `mapstructure:"no-save"`
	Workers         int    `mapstructure:"workers"`
	MaxPages        int    `mapstructure:"max-pages"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "pitchscore scores startup pitch decks against the fund investment rubric",
		Long:          "pitchscore scores startup pitch decks against the fund investment rubric.\n\n" + backend.Describe(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "a config file (default is pitchscore.yaml in current directory)")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")
	flags.String("extraction-model", backend.DefaultName, "backend used to extract facts ("+strings.Join(backend.Keys(), ", ")+")")
	flags.String("evaluation-model", backend.DefaultName, "backend used to score the extracted facts")
	flags.String("prompt-version", prompt.DefaultVersion, "prompt version ("+strings.Join(prompt.Versions(), ", ")+")")
	flags.String("output-dir", "Outputs", "directory for result JSON files")
	flags.Bool("no-save", false, "do not write result files")
	flags.Int("max-pages", 0, "page cap when rendering decks for image-only backends (0 uses the default)")
	flags.IntP("workers", "w", batch.DefaultWorkers, "documents evaluated in parallel by batch and compare")

	for _, name := range []string{"debug", "json", "extraction-model", "evaluation-model", "prompt-version", "output-dir", "no-save", "max-pages", "workers"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func initConfig() {
	// Provider credentials usually live in .env; a missing file is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}
}

// setup reads the config file, if any, and builds the logger.
func setup() (*Config, *zap.Logger, error) {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("reading config: %w", err)
		}
	}

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, log, fmt.Errorf("getting a config: %w", err)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("config file loaded", zap.String("path", used))
	}
	return &config, log, nil
}

// newPipeline builds a pipeline for config, overriding the prompt version
// when promptVersion is non-empty.
func newPipeline(ctx context.Context, config *Config, log *zap.Logger, promptVersion string) (*pipeline.Pipeline, error) {
	if promptVersion == "" {
		promptVersion = config.PromptVersion
	}
	p, err := pipeline.New(ctx, pipeline.Config{
		ExtractionModel: config.ExtractionModel,
		EvaluationModel: config.EvaluationModel,
		PromptVersion:   promptVersion,
	}, pipeline.WithLogger(log), pipeline.WithMaxPages(config.MaxPages))
	if err != nil {
		return nil, err
	}
	log.Info("using backends",
		zap.String("extraction", p.ExtractionBackend().Key),
		zap.String("evaluation", p.EvaluationBackend().Key),
		zap.String(logger.FieldPromptVersion, p.PromptVersion()),
	)
	return p, nil
}
