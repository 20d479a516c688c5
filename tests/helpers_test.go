package tests

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func buildDietaBinary(t *testing.T) string {
	t.Helper()
	repoRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("resolve repo root: %v", err)
	}
	binPath := filepath.Join(t.TempDir(), "dieta")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = repoRoot
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build dieta binary: %v\n%s", err, string(out))
	}
	return binPath
}

func runDieta(t *testing.T, binPath, dbPath string, args ...string) (string, string, int) {
	t.Helper()
	allArgs := append([]string{"--db", dbPath}, args...)
	cmd := exec.Command(binPath, allArgs...)
	// Keep a developer's USDA key or .env out of the run.
	cmd.Dir = t.TempDir()
	cmd.Env = []string{"HOME=" + t.TempDir(), "XDG_CONFIG_HOME=" + t.TempDir()}
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("run dieta command: %v", err)
	}
	return stdout.String(), stderr.String(), exitErr.ExitCode()
}

func mustRun(t *testing.T, binPath, dbPath string, args ...string) string {
	t.Helper()
	stdout, stderr, exit := runDieta(t, binPath, dbPath, args...)
	if exit != 0 {
		t.Fatalf("%s failed: exit=%d stderr=%s", strings.Join(args, " "), exit, stderr)
	}
	return stdout
}

func initDB(t *testing.T, binPath, dbPath string) {
	t.Helper()
	mustRun(t, binPath, dbPath, "init")
}

// createdID extracts the id from "Created <noun> <id>" output.
func createdID(t *testing.T, stdout string) string {
	t.Helper()
	fields := strings.Fields(stdout)
	if len(fields) < 3 || fields[0] != "Created" {
		t.Fatalf("unexpected create output: %q", stdout)
	}
	return fields[len(fields)-1]
}
