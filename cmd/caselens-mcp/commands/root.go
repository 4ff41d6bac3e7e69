package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"caselens-mcp/internal/analysis"
	"caselens-mcp/internal/config"
	"caselens-mcp/internal/logging"
	"caselens-mcp/internal/mcp"
	"caselens-mcp/internal/narrative"
	"caselens-mcp/internal/store"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "caselens-mcp",
	Short: "CaseLens is a case-management analytics MCP server",
	Long: `An MCP server that imports municipal case spreadsheets, resolves their
loosely-standardized column schemas, and provides time/space/source/type,
duplicate and monthly-comparison analyses plus department performance scoring.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("CaseLens starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer st.Close()

		rosters, err := cfg.LoadRosters()
		if err != nil {
			return err
		}

		var assembler narrative.Assembler = narrative.Disabled{}
		if cfg.NarrativeConfigured() {
			assembler = narrative.NewClient(cfg.Narrative)
		} else {
			log.Warn().Str("provider", cfg.Narrative.Provider).
				Msg("Narrative provider not configured, commentary disabled")
		}

		engine := analysis.NewEngine(assembler, rosters)

		log.Info().Msg("MCP Server starting Stdio loop")
		return mcp.NewServer(st, engine).Serve()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
