package cmd

import (
	"github.com/go-logr/zerologr"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/jzelinskie/cobrautil/v2/cobraotel"
	"github.com/jzelinskie/cobrautil/v2/cobrazerolog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/flyingsilverfin/grakn-client-go/internal/logging"
)

func RegisterRootFlags(cmd *cobra.Command) {
	cobrazerolog.New().RegisterFlags(cmd.PersistentFlags())
	cobraotel.New(cmd.Use).RegisterFlags(cmd.PersistentFlags())
}

// DefaultPreRunE reads flags from the environment and grakn.env, then sets up
// logging and tracing.
func DefaultPreRunE(programName string) cobrautil.CobraRunFunc {
	return cobrautil.CommandStack(
		cobrautil.SyncViperDotEnvPreRunE(programName, "grakn.env", zerologr.New(&logging.Logger)),
		cobrazerolog.New(
			cobrazerolog.WithTarget(func(logger zerolog.Logger) {
				logging.SetGlobalLogger(logger)
			}),
		).RunE(),
		cobraotel.New(programName,
			cobraotel.WithLogger(zerologr.New(&logging.Logger)),
		).RunE(),
	)
}

func NewRootCommand(programName string) *cobra.Command {
	return &cobra.Command{
		Use:               programName,
		Short:             "A client for the Grakn knowledge graph",
		Long:              "A client for managing the databases and inspecting the schema of a Grakn server",
		Example:           rootExample(programName),
		PersistentPreRunE: DefaultPreRunE(programName),
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
}

func rootExample(programName string) string {
	return programName + ` database create social
  ` + programName + ` type owns person --database social
  ` + programName + ` serve-testing --grpc-addr :1729`
}
