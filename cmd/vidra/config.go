package vidra

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/vidra-player/vidra/pkg/config"
	"github.com/vidra-player/vidra/pkg/errors"
	"github.com/vidra-player/vidra/pkg/paths"
)

func newConfigCmd(p *paths.Paths) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change vidra settings",
	}

	configCmd.AddCommand(newConfigShowCmd(p))
	configCmd.AddCommand(newConfigGetCmd(p))
	configCmd.AddCommand(newConfigSetCmd(p))
	configCmd.AddCommand(newConfigPathCmd(p))

	return configCmd
}

func newConfigShowCmd(p *paths.Paths) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewStore(p.ConfigFile()).Load()
			if err != nil {
				return err
			}
			fmt.Print(renderConfig(cfg))
			return nil
		},
	}
}

func newConfigGetCmd(p *paths.Paths) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Print one setting by dotted path (e.g. audio.volume)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewStore(p.ConfigFile()).Load()
			if err != nil {
				return err
			}
			data, err := json.Marshal(cfg.ToRecord())
			if err != nil {
				return err
			}
			result := gjson.GetBytes(data, args[0])
			if !result.Exists() {
				return errors.Newf(errors.ErrUnknown, "no such setting: %s", args[0])
			}
			if result.IsObject() || result.IsArray() {
				fmt.Println(result.Raw)
			} else {
				fmt.Println(result.String())
			}
			return nil
		},
	}
}

func newConfigSetCmd(p *paths.Paths) *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Change one setting and persist it (e.g. set audio.volume 85)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := buildOverride(args[0], args[1])
			if err != nil {
				return err
			}
			if _, err := config.NewStore(p.ConfigFile()).UpdateAndSave(overrides); err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newConfigPathCmd(p *paths.Paths) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(p.ConfigFile())
		},
	}
}

// buildOverride turns a dotted path and a raw CLI value into a partial
// override record. The path must start with a known section (or "version");
// values that parse as JSON keep their type (85, true, null, 1.5), anything
// else is taken as a plain string.
func buildOverride(path, raw string) (config.Record, error) {
	if err := validateOverridePath(path); err != nil {
		return nil, err
	}
	value := parseValue(raw)
	doc, err := sjson.Set("{}", path, value)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "invalid setting path %q", path)
	}
	var overrides config.Record
	if err := json.Unmarshal([]byte(doc), &overrides); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to build override record")
	}
	return overrides, nil
}

// validateOverridePath rejects paths whose first segment is not a section
// ApplyOverrides would look at, so "set" never reports a write it didn't make.
func validateOverridePath(path string) error {
	segment, _, _ := strings.Cut(path, ".")
	if segment == "version" {
		return nil
	}
	for _, name := range config.SectionNames() {
		if segment == name {
			return nil
		}
	}
	return errors.Newf(errors.ErrUnknown, "no such setting: %s", path).
		WithDetail("sections", strings.Join(config.SectionNames(), ", "))
}

func parseValue(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	return value
}
