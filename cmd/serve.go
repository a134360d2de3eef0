package cmd

import (
	"github.com/authorshaven/content/internal/config"
	"github.com/authorshaven/content/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var httpPort string

	command := &cobra.Command{
		Use:   "serve",
		Short: "start the http server",
		Run: func(cmd *cobra.Command, args []string) {
			if httpPort == "" {
				httpPort = config.LoadConfig().HTTPPort
			}

			server.NewServer(httpPort).Start()
		},
	}

	command.Flags().StringVarP(&httpPort, "http-port", "p", "", "http port")

	return command
}
