package main

import (
	"CommandCenter/internal/api/config"
	"CommandCenter/internal/pkg/logger"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	serveCmd := newServeCommand()

	rootCmd := &cobra.Command{
		Use:           "command-center",
		Short:         "Command Center backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadConfig(configFlag); err != nil {
				return err
			}
			logger.InitLogger()
			return nil
		},
		// 默认启动服务
		RunE: serveCmd.RunE,
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newHealthCommand())
	rootCmd.AddCommand(newTokenCommand())

	return rootCmd
}
