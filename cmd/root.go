// Package cmd for parsing command line arguments
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootCmd represents the root base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "grid-workloads",
	Short: "Encode, validate and serve grid workload descriptors",
	Long: fmt.Sprintf(`Welcome to grid-workloads (%v). It reads workload descriptors in json or yaml,
validates them and serves a node agent api that applies them in version order.`, Version),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, err := cmd.Flags().GetBool("debug")
		if err != nil {
			return errors.Wrapf(err, "invalid log debug mode input '%v'", debug)
		}

		setLogLevel(debug)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(serveCmd)

	err := rootCmd.Execute()
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "by setting this flag debug logs are printed too")

	encodeCmd.Flags().StringP("file", "f", "", "workload file, json or yaml")
	encodeCmd.Flags().StringP("output", "o", "json", "output format, json or yaml")
	_ = encodeCmd.MarkFlagRequired("file")

	validateCmd.Flags().StringP("file", "f", "", "workload file, json or yaml")
	_ = validateCmd.MarkFlagRequired("file")

	describeCmd.Flags().StringP("file", "f", "", "workload file, json or yaml")
	_ = describeCmd.MarkFlagRequired("file")

	serveCmd.Flags().StringP("env", "e", "", "env file holding the server configurations")
	serveCmd.Flags().StringP("listen", "l", "", "listen address, overrides LISTEN_ADDR")
}

func setLogLevel(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
