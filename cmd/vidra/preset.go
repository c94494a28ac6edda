package vidra

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/vidra-player/vidra/pkg/config"
	"github.com/vidra-player/vidra/pkg/errors"
	"github.com/vidra-player/vidra/pkg/paths"
)

func newPresetCmd(p *paths.Paths) *cobra.Command {
	presetCmd := &cobra.Command{
		Use:   "preset",
		Short: "List and apply configuration presets",
	}

	presetCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := config.LoadPresets(afero.NewOsFs(), p.PresetsFile())
			if err != nil {
				return err
			}
			for _, name := range config.PresetNames(presets) {
				fmt.Println(name)
			}
			return nil
		},
	})

	presetCmd.AddCommand(&cobra.Command{
		Use:   "apply <name>",
		Short: "Apply a preset onto the current configuration and persist it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := config.LoadPresets(afero.NewOsFs(), p.PresetsFile())
			if err != nil {
				return err
			}
			preset, ok := presets[args[0]]
			if !ok {
				return errors.Newf(errors.ErrPresetNotFound, "unknown preset %q", args[0]).
					WithDetail("available", config.PresetNames(presets))
			}
			if _, err := config.NewStore(p.ConfigFile()).UpdateAndSave(preset); err != nil {
				return err
			}
			fmt.Printf("applied preset %s\n", args[0])
			return nil
		},
	})

	return presetCmd
}
