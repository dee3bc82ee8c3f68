//go:build integration

package secretstore_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jeremyhahn/go-twofa/pkg/secretstore"
)

// fakePass puts a pass script on PATH that prints the secret for
// github/alice and fails for anything else.
func fakePass(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	script := `#!/bin/sh
if [ "$1" = "github/alice" ]; then
	echo JBSWY3DPEHPK3PXP
	exit 0
fi
echo "Error: $1 is not in the password store." >&2
exit 1
`
	if err := os.WriteFile(filepath.Join(dir, "pass"), []byte(script), 0o755); err != nil {
		t.Fatalf("Failed to write fake pass: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestIntegration_PassStore(t *testing.T) {
	fakePass(t)
	store := secretstore.NewPass(nil)
	ctx := context.Background()

	secret, err := store.Get(ctx, "alice", "github")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if secret != "JBSWY3DPEHPK3PXP" {
		t.Errorf("Get = %q, want JBSWY3DPEHPK3PXP", secret)
	}

	_, err = store.Get(ctx, "bob", "github")
	if !errors.Is(err, secretstore.ErrSecretNotFound) {
		t.Errorf("Expected ErrSecretNotFound, got %v", err)
	}
}
