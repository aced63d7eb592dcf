package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/BerylCAtieno/growthpro-dashboard/internal/client"
	"github.com/BerylCAtieno/growthpro-dashboard/internal/config"
	"github.com/BerylCAtieno/growthpro-dashboard/internal/logging"
	"github.com/BerylCAtieno/growthpro-dashboard/internal/orchestrator"
)

var v *viper.Viper

var rootCmd = &cobra.Command{
	Use:           "growthpro",
	Short:         "See how a local business appears online",
	Long:          "growthpro drives the Business Dashboard API: submit a business, regenerate its SEO headline, reset.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		v, err = config.New()
		if err != nil {
			return err
		}
		if err := bindFlags(v, cmd); err != nil {
			return err
		}
		return logging.SetLogLevel(v.GetString(config.KeyLogLevel))
	},
}

func init() {
	rootCmd.PersistentFlags().String("url", "", "base URL of the API (default http://localhost:5001, env API_URL)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "", "log level: debug, info, warn, error, fatal")

	rootCmd.AddCommand(snapshotCmd, shellCmd)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlag(config.KeyAPIURL, cmd.Flags().Lookup("url")); err != nil {
		return fmt.Errorf("failed to bind url flag: %w", err)
	}
	if err := v.BindPFlag(config.KeyLogLevel, cmd.Flags().Lookup("loglevel")); err != nil {
		return fmt.Errorf("failed to bind loglevel flag: %w", err)
	}
	return nil
}

func newOrchestrator(onChange func(orchestrator.Session)) (*orchestrator.Orchestrator, string, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, "", err
	}
	opts := []orchestrator.Option{orchestrator.WithLogger(logging.Log)}
	if onChange != nil {
		opts = append(opts, orchestrator.WithOnChange(onChange))
	}
	return orchestrator.New(client.New(cfg.APIURL, nil), opts...), cfg.APIURL, nil
}
