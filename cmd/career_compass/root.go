package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ShreekarSeelavantula/career-compass/config"
	"github.com/ShreekarSeelavantula/career-compass/internal/logger"
)

const app = "career-compass"

var (
	cfgFile string

	// Set by PersistentPreRunE for every subcommand.
	appConfig *config.AppConfig
	log       *zap.Logger

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-compass matches job seekers and job postings with hybrid ranking",
		Long: "career-compass ranks candidates against job postings (and postings against candidates) " +
			"by combining BM25 keyword relevance, embedding similarity and structured rules.",
		SilenceUsage:      true,
		PersistentPreRunE: initApp,
		PersistentPostRun: func(*cobra.Command, []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-compass.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json"))
}

func initApp(cmd *cobra.Command, _ []string) error {
	if cmd == versionCmd {
		return nil
	}

	cfg, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}

	l, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	appConfig, log = cfg, l
	log.Debug("configuration loaded",
		zap.String("storage", cfg.Storage.Backend),
		zap.String("embedding", cfg.Embedding.Provider),
		zap.String("idf_mode", cfg.Ranking.IDFMode))
	return nil
}
