package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	log "github.com/flyingsilverfin/grakn-client-go/internal/logging"
	"github.com/flyingsilverfin/grakn-client-go/pkg/cmd"
	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
)

func main() {
	// Set up root logger
	// This will typically be overwritten by the logging setup for a given command.
	log.SetGlobalLogger(zerolog.New(os.Stderr).Level(zerolog.InfoLevel))

	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		var graknErr *graknerrors.Error
		if errors.As(err, &graknErr) {
			log.Error().Object("error", graknErr).Msg("request failed")
		} else {
			log.Error().Err(err).Msg("terminated with errors")
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := cmd.NewRootCommand("grakn")
	cmd.RegisterRootFlags(rootCmd)

	var testingConfig cmd.TestingConfig
	testingCmd := cmd.NewTestingCommand(rootCmd.Use, &testingConfig)
	cmd.RegisterTestingFlags(testingCmd, &testingConfig)
	rootCmd.AddCommand(testingCmd)

	var databaseConfig cmd.ClientConfig
	rootCmd.AddCommand(cmd.NewDatabaseCommand(&databaseConfig))

	var typeConfig cmd.TypeConfig
	rootCmd.AddCommand(cmd.NewTypeCommand(&typeConfig))

	return rootCmd
}
