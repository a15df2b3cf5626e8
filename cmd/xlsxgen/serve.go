package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aerissecure/xlsxgen"
	"github.com/aerissecure/xlsxgen/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves POST /export over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debugCmd(cmd)
			logger := log.StandardLogger()
			srv := server.New(xlsxgen.NewConverter(xlsxgen.WithLogger(logger)), logger)
			return srv.ListenAndServe(cmd.Context(), viper.GetString("addr"))
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address.")
	viper.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}
