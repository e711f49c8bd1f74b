package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPermissions(t *testing.T) {
	content := `roles:
  CLINICIAN:
    - treatment:submit
    - treatment:view
  RECEPTION:
    - attendance:create
`
	path := filepath.Join(t.TempDir(), "permissions.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	perms, err := LoadPermissions(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(perms) != 2 {
		t.Fatalf("Expected 2 roles, got %d", len(perms))
	}
	if len(perms["CLINICIAN"]) != 2 || perms["CLINICIAN"][0] != "treatment:submit" {
		t.Errorf("Expected clinician permissions, got %v", perms["CLINICIAN"])
	}
	if len(perms["RECEPTION"]) != 1 {
		t.Errorf("Expected 1 reception permission, got %v", perms["RECEPTION"])
	}
}

func TestLoadPermissions_FileMissing(t *testing.T) {
	if _, err := LoadPermissions(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("Expected an error for a missing file, got nil")
	}
}

func TestLoadPermissions_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	if err := os.WriteFile(path, []byte("roles: [not: a: map"), 0o600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if _, err := LoadPermissions(path); err == nil {
		t.Error("Expected an error for malformed YAML, got nil")
	}
}
