package main

import (
	"fmt"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

func init() {
	cobra.OnInitialize(initConfig)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "xlsxgen",
		Short: "Converts records into xlsx workbooks",
		Long: `Converts JSON, YAML or SQL query results into single sheet xlsx workbooks.

Values that look like percentages, currency amounts, bracketed negatives or
ISO dates are stored as numbers with a matching number format. Cell styles
can be set per row and column in the config file ($HOME/.xlsxgen.yaml):

  styles:
    - column: total
      code: 5
    - row: 1
      style: {bold: true, bgColor: "#DDEEFF"}`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.xlsxgen.yaml)")
	root.PersistentFlags().BoolP("debug", "d", false, "Show debug output, including the resolved flags.")
	root.PersistentFlags().BoolP("verbose", "v", false, "Verbose mode. Produce more output about what the program does.")

	root.AddCommand(newConvertCmd(), newPreviewCmd(), newServeCmd())
	return root
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			log.Warnf("Failed to find the home directory: %s", err)
		} else {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".xlsxgen")
	}

	viper.SetEnvPrefix("xlsxgen")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Info("Using config file: ", viper.ConfigFileUsed())
	}
}

func flagString(cmd *cobra.Command, name string) string {
	if value := cmd.Flag(name).Value.String(); value != "" {
		return value
	}
	return viper.GetString(name)
}

func flagBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		log.Fatal(err)
	}
	return val
}

func debugCmd(cmd *cobra.Command) {
	debug := flagBool(cmd, "debug")
	verbose := flagBool(cmd, "verbose")

	switch {
	case debug:
		log.SetLevel(log.DebugLevel)
		title := fmt.Sprintf("Command %q called with flags:", cmd.Name())
		log.Info(title)
		log.Info(strings.Repeat("=", len(title)))
		cmd.DebugFlags()
	case verbose:
		log.SetLevel(log.InfoLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}
}
