package cli

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/information-sharing-networks/esign-gateway/app/internal/config"
	"github.com/information-sharing-networks/esign-gateway/app/internal/logger"
	"github.com/information-sharing-networks/esign-gateway/app/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfg       *config.ServerEnvironment
	appLogger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "esign",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "e-signature gateway CLI",
	Long:              `CLI for the e-signature gateway: generate assertion signing keys and send documents for signature from the command line`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.NewServerConfig()
		if err != nil {
			log.Printf("failed to load configuration: %v", err.Error())
			return err
		}

		appLogger = logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
		return nil
	},
}

func Execute() {
	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
