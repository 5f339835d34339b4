package locate

import (
	"path/filepath"
	"testing"
)

func TestConfigCandidates_Order(t *testing.T) {
	r := Roots{UserDataDir: "/home/u/.config/somno"}

	got := r.ConfigCandidates()
	want := []Candidate{
		{Role: RoleActivePrimary, Path: "/home/u/.config/somno/somno_config.json", Format: FormatJSON},
		{Role: RoleActiveLegacy, Path: "/home/u/.config/somno/config.json", Format: FormatJSON},
		{Role: RoleActiveLegacy, Path: "/home/u/.config/somno-viewer/somno_config.json", Format: FormatJSON},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d candidates, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestConfigCandidates_NoUserDataDir(t *testing.T) {
	var r Roots
	if got := r.ConfigCandidates(); len(got) != 0 {
		t.Errorf("expected no candidates without a user data dir, got %v", got)
	}
}

func TestTemplateCandidates_FullRoots(t *testing.T) {
	r := Roots{
		UserDataDir:   "/data",
		ExecutableDir: "/app/bin",
		ResourceDir:   "/app/Resources",
		RuntimeDir:    "/tmp/extract",
		DevRoot:       "/src/somno",
	}

	got := r.TemplateCandidates()

	wantRoles := []Role{
		RoleTemplateUser,
		RoleTemplateUser,
		RoleTemplateBundled,
		RoleTemplateBundledAlt,
		RoleTemplateBundledAlt,
		RoleTemplateBundledAlt,
		RoleTemplateDev,
	}
	if len(got) != len(wantRoles) {
		t.Fatalf("got %d candidates, want %d: %v", len(got), len(wantRoles), got)
	}
	for i, role := range wantRoles {
		if got[i].Role != role {
			t.Errorf("candidate[%d].Role = %s, want %s", i, got[i].Role, role)
		}
	}

	// User template first, dev checkout last.
	if got[0].Path != filepath.Join("/data", TemplateFileName) {
		t.Errorf("first candidate = %s", got[0].Path)
	}
	if got[1].Format != FormatTOML {
		t.Errorf("second user candidate should be TOML, got %s", got[1].Format)
	}
	if got[len(got)-1].Path != filepath.Join("/src/somno", DevTemplateDir, TemplateFileName) {
		t.Errorf("last candidate = %s", got[len(got)-1].Path)
	}
}

func TestTemplateCandidates_OmitsEmptyRoots(t *testing.T) {
	r := Roots{UserDataDir: "/data"}

	got := r.TemplateCandidates()
	for _, c := range got {
		if c.Role != RoleTemplateUser {
			t.Errorf("unexpected candidate for empty roots: %+v", c)
		}
	}
	if len(got) != 2 {
		t.Errorf("got %d candidates, want 2", len(got))
	}
}

func TestTemplateCandidates_Recomputed(t *testing.T) {
	r := Roots{UserDataDir: "/data"}
	first := r.TemplateCandidates()

	r.DevRoot = "/src"
	second := r.TemplateCandidates()

	if len(second) != len(first)+1 {
		t.Errorf("candidates not recomputed from roots: %d then %d", len(first), len(second))
	}
}

func TestPrimaryConfigPath(t *testing.T) {
	r := Roots{UserDataDir: "/data"}
	if got := r.PrimaryConfigPath(); got != filepath.Join("/data", ConfigFileName) {
		t.Errorf("PrimaryConfigPath() = %s", got)
	}

	var empty Roots
	if got := empty.PrimaryConfigPath(); got != "" {
		t.Errorf("PrimaryConfigPath() with no roots = %q, want empty", got)
	}
}
