package commands

import (
	"strings"
	"testing"

	"github.com/stafne/somno/cmd"
)

func TestVersionCommand_Metadata(t *testing.T) {
	if versionCmd.Use != "version" {
		t.Errorf("Use = %q, want %q", versionCmd.Use, "version")
	}
	if versionCmd.Short == "" {
		t.Error("Short description should not be empty")
	}
}

func TestVersionCommand_Output(t *testing.T) {
	c, buf := testCommand(t)
	versionCmd.Run(c, nil)

	out := buf.String()
	if !strings.Contains(out, "somnoset version "+cmd.Version) {
		t.Errorf("output missing version line: %q", out)
	}
	if !strings.Contains(out, cmd.Commit) {
		t.Errorf("output missing commit: %q", out)
	}
}
