package main

import (
	"fmt"
	"os"

	intconfig "cmsadmin/internal/config"
	"cmsadmin/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configFile string

	env    intconfig.Env
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cmsadmin",
	Short: "Admin back office for the content service",
	Long: `cmsadmin serves the operator dashboard API. It keeps per-operator
list screens in memory and talks to the content service over GraphQL
and its REST upload endpoint.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		env, err = intconfig.LoadEnv(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err = utils.NewLogger(env.LogLevel)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		if env.GinMode != "" {
			gin.SetMode(env.GinMode)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./cmsadmin.yaml or /etc/cmsadmin/cmsadmin.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
