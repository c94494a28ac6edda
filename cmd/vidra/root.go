package vidra

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vidra-player/vidra/internal/version"
	"github.com/vidra-player/vidra/pkg/logging"
	"github.com/vidra-player/vidra/pkg/paths"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	p := paths.New()

	rootCmd := &cobra.Command{
		Use:   "vidra",
		Short: "A desktop media-player shell",
		Long: `vidra is a thin shell around an external media-playback engine (libmpv)
with a typed, versioned configuration store. It manages playback, subtitle,
audio and video preferences and applies named presets on top of them.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity, p.LogFile())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(p))
	rootCmd.AddCommand(newPresetCmd(p))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vidra %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
