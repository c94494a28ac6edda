package vidra

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/vidra-player/vidra/pkg/config"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	keyStyle    = lipgloss.NewStyle().Faint(true)
)

// styledOutput reports whether stdout is a terminal worth styling.
func styledOutput() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func renderHeader(s string) string {
	if !styledOutput() {
		return strings.ToUpper(s)
	}
	return headerStyle.Render(strings.ToUpper(s))
}

func renderKey(s string) string {
	if !styledOutput() {
		return s
	}
	return keyStyle.Render(s)
}

// renderConfig formats a configuration for terminal display, one section per
// block with sorted keys.
func renderConfig(cfg config.Config) string {
	record := cfg.ToRecord()

	var b strings.Builder
	fmt.Fprintf(&b, "%s %v\n", renderKey("version:"), record["version"])

	for _, section := range config.SectionNames() {
		fields := record[section].(map[string]any)
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintf(&b, "\n%s\n", renderHeader(section))
		for _, k := range keys {
			v := fields[k]
			if v == nil {
				v = "(not set)"
			}
			fmt.Fprintf(&b, "  %s %v\n", renderKey(k+":"), v)
		}
	}
	return b.String()
}
