package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stafne/somno/internal/bootstrap"
	somnoerrors "github.com/stafne/somno/internal/errors"
	"github.com/stafne/somno/internal/locate"
	"github.com/stafne/somno/internal/logging"
	"github.com/stafne/somno/pkg/fileutil"
)

var (
	setupJSON    bool
	setupReport  string
	dataDirFlag  string
	resourceFlag string
	runtimeFlag  string
	devRootFlag  string
)

func init() {
	setupCmd.Flags().BoolVar(&setupJSON, "json", false, "output the outcome as JSON")
	setupCmd.Flags().StringVar(&setupReport, "report", "", "write the decision trail to FILE as YAML")
	addRootFlags(setupCmd)
	rootCmd.AddCommand(setupCmd)
}

// addRootFlags registers the root-hint override flags shared by setup
// and status.
func addRootFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&dataDirFlag, "data-dir", "", "user data directory (default: platform config home)")
	cmd.Flags().StringVar(&resourceFlag, "resource-dir", "", "packaged-resource directory")
	cmd.Flags().StringVar(&runtimeFlag, "runtime-dir", "", "runtime-extraction directory")
	cmd.Flags().StringVar(&devRootFlag, "dev-root", "", "development source root")
}

// resolveRoots layers flag overrides on top of config-file overrides on
// top of platform defaults.
func resolveRoots() locate.Roots {
	roots := cfg.Roots()
	if dataDirFlag != "" {
		roots.UserDataDir = dataDirFlag
	}
	if resourceFlag != "" {
		roots.ResourceDir = resourceFlag
	}
	if runtimeFlag != "" {
		roots.RuntimeDir = runtimeFlag
	}
	if devRootFlag != "" {
		roots.DevRoot = devRootFlag
	}
	return roots
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Resolve or install the active Somno config",
	Long: `Run the configuration bootstrap once.

The search order is fixed: the active config wins outright; otherwise
the newest legacy config is migrated; otherwise the first valid template
(user-maintained before bundled before development) is installed; as a
last resort built-in defaults are written. An existing config is never
modified.`,
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, _ []string) error {
	roots := resolveRoots()
	log := logging.FromContext(cmd.Context())

	resolver := bootstrap.New(roots, bootstrap.WithLogger(log))
	out, runErr := resolver.Run()

	if setupReport != "" {
		report := struct {
			Outcome string           `yaml:"outcome"`
			Source  string           `yaml:"source,omitempty"`
			Config  string           `yaml:"config"`
			Trail   []bootstrap.Step `yaml:"trail"`
		}{
			Outcome: string(out.Kind),
			Source:  out.SourcePath,
			Config:  roots.PrimaryConfigPath(),
			Trail:   out.Trail,
		}
		if err := fileutil.AtomicWriteYAML(setupReport, report); err != nil {
			log.Warn("could not write report", "path", setupReport, "error", err)
		}
	}

	if setupJSON {
		if err := printSetupJSON(cmd.OutOrStdout(), roots, out); err != nil {
			return err
		}
	} else {
		printSetupHuman(cmd.OutOrStdout(), roots, out)
	}

	if runErr != nil {
		return somnoerrors.NewSystemError(runErr,
			"Check that the data directory is writable, or pass --data-dir")
	}
	return nil
}

func printSetupJSON(w io.Writer, roots locate.Roots, out *bootstrap.Outcome) error {
	payload := struct {
		Outcome    string           `json:"outcome"`
		SourceRole string           `json:"source_role,omitempty"`
		SourcePath string           `json:"source_path,omitempty"`
		ConfigPath string           `json:"config_path"`
		Trail      []bootstrap.Step `json:"trail"`
	}{
		Outcome:    string(out.Kind),
		SourceRole: string(out.SourceRole),
		SourcePath: out.SourcePath,
		ConfigPath: roots.PrimaryConfigPath(),
		Trail:      out.Trail,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func printSetupHuman(w io.Writer, roots locate.Roots, out *bootstrap.Outcome) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	for _, step := range out.Trail {
		switch step.Action {
		case bootstrap.ActionNotFound:
			fmt.Fprintf(w, "  - %s: %s (absent)\n", step.Role, step.Path)
		case bootstrap.ActionSkipped, bootstrap.ActionSeedFailed:
			yellow.Fprintf(w, "  ! %s: %s (%s)\n", step.Role, step.Path, step.Detail)
		case bootstrap.ActionWriteFailed:
			red.Fprintf(w, "  x %s: %s (%s)\n", step.Role, step.Path, step.Detail)
		default:
			green.Fprintf(w, "  * %s: %s (%s)\n", step.Role, step.Path, step.Action)
		}
	}

	switch out.Kind {
	case bootstrap.KindLoaded:
		bold.Fprintf(w, "Existing configuration loaded: %s\n", out.SourcePath)
	case bootstrap.KindMigrated:
		bold.Fprintf(w, "Configuration migrated from %s to %s\n", out.SourcePath, roots.PrimaryConfigPath())
		fmt.Fprintln(w, "The legacy file was left in place.")
	case bootstrap.KindInstalled:
		bold.Fprintf(w, "Configuration installed from template: %s\n", out.SourcePath)
		fmt.Fprintf(w, "Event types: %d, state types: %d\n",
			out.Doc.EventTypes.Len(), out.Doc.StateTypes.Len())
	case bootstrap.KindDefaulted:
		bold.Fprintln(w, "No configuration or template found; built-in defaults written.")
		fmt.Fprintf(w, "Defaults written to %s\n", roots.PrimaryConfigPath())
	case bootstrap.KindFailed:
		red.Fprintln(w, "Configuration could not be persisted.")
		fmt.Fprintln(w, "Somno will start with defaults, but settings will not be saved.")
	}
}
