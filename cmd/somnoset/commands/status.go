package commands

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	somnoerrors "github.com/stafne/somno/internal/errors"
	"github.com/stafne/somno/internal/loader"
	"github.com/stafne/somno/internal/locate"
)

func init() {
	addRootFlags(statusCmd)
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Inspect every candidate location without writing anything",
	Long: `List each config and template candidate in search order together
with its state: valid, absent, malformed, schema-invalid, or unreadable.
Nothing is created or modified.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		roots := resolveRoots()
		w := cmd.OutOrStdout()

		bold := color.New(color.Bold)
		bold.Fprintln(w, "Config candidates:")
		printCandidates(w, roots.ConfigCandidates())
		bold.Fprintln(w, "Template candidates:")
		printCandidates(w, roots.TemplateCandidates())
		return nil
	},
}

func printCandidates(w io.Writer, candidates []locate.Candidate) {
	if len(candidates) == 0 {
		fmt.Fprintln(w, "  (none: no roots available)")
		return
	}

	for _, c := range candidates {
		state, painter := candidateState(c.Path)
		if painter == nil {
			fmt.Fprintf(w, "  - %-24s %s (absent)\n", c.Role, c.Path)
			continue
		}
		painter.Fprintf(w, "  * %-24s %s (%s)\n", c.Role, c.Path, state)
	}
}

// candidateState classifies one candidate the same way the bootstrap
// would, without acting on it.
func candidateState(path string) (string, *color.Color) {
	_, err := loader.Load(path)
	switch {
	case err == nil:
		return "valid", color.New(color.FgGreen)
	case errors.Is(err, somnoerrors.ErrNotFound):
		return "absent", nil
	case errors.Is(err, somnoerrors.ErrUnreadable):
		return "unreadable", color.New(color.FgRed)
	case errors.Is(err, somnoerrors.ErrMalformed):
		return "malformed", color.New(color.FgYellow)
	default:
		return "schema-invalid", color.New(color.FgYellow)
	}
}
