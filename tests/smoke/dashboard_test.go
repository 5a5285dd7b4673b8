//go:build smoke

package smoke

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// stubBackend serves the handful of API routes the dashboard session hits,
// with fixture data sized so the expected metrics are easy to eyeball.
func stubBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(v); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}

	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"token": "smoke-token", "user_id": "1"})
	})
	mux.HandleFunc("/api/centers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"centers": []map[string]string{
			{"id": "c1", "name": "Smoke Clinic"},
		}})
	})
	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]string{
			{"user_id": "1", "user_type": "patient", "first_name": "Alice", "last_name": "Smith"},
			{"user_id": "2", "user_type": "patient", "first_name": "Bob", "last_name": "Jones"},
			{"user_id": "3", "user_type": "admin", "first_name": "Ada", "last_name": "Admin"},
			{"user_id": "4", "user_type": "patient", "first_name": "Charlie", "last_name": "Brown"},
		})
	})
	mux.HandleFunc("/api/appointments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]string{
			{"appointment_id": "a1", "user_id": "1", "service_id": "s1", "booking_status": "Completed", "appointment_date": "2025-01-15T10:00:00Z"},
			{"appointment_id": "a2", "user_id": "1", "service_id": "s2", "booking_status": "Upcoming", "appointment_date": "2025-02-20T10:00:00Z"},
			{"appointment_id": "a3", "user_id": "2", "service_id": "s1", "booking_status": "Cancelled", "appointment_date": "2025-03-10T10:00:00Z"},
			{"appointment_id": "a4", "user_id": "4", "service_id": "s1", "booking_status": "Completed", "appointment_date": "2025-01-05T10:00:00Z"},
		})
	})
	mux.HandleFunc("/api/services", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]string{
			{"service_id": "s1", "service_name": "ARV Refills", "status": "Available"},
			{"service_id": "s2", "service_name": "Counselling", "status": "Available"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestDashboardSessionSmoke(t *testing.T) {
	repoRoot := findRepoRoot(t)
	tempDir := t.TempDir()

	binPath := filepath.Join(tempDir, "clinicdash")
	buildCmd := exec.Command("go", "build", "-o", binPath, "./cmd/clinicdash")
	buildCmd.Dir = repoRoot
	buildOutput, err := buildCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build clinicdash: %v\n%s", err, buildOutput)
	}

	backend := stubBackend(t)

	configPath := filepath.Join(tempDir, "config.yaml")
	configBody := fmt.Sprintf(`app:
  name: "clinicdash"
  environment: "development"

api:
  base_url: "%s"

credentials:
  filename: "%s"
`, backend.URL, filepath.ToSlash(filepath.Join(tempDir, "credentials.db")))

	if err := os.WriteFile(configPath, []byte(configBody), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cmd := exec.Command(binPath,
		"-config", configPath,
		"-phone", "1234567890",
		"-password", "smokePass123",
	)
	cmd.Dir = tempDir
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("clinicdash exited with error: %v\nstdout:\n%s\nstderr:\n%s", err, stdout.String(), stderr.String())
	}

	// 3 distinct patients hold appointments; the admin account does not count.
	expected := []string{
		"Total Patients: 3",
		"Appointments by status:",
		"Service usage:",
		"ARV Refills",
		"Number of patients by month:",
		"Jan 2025",
		"Appointments (page 1 of 1):",
		"Alice Smith",
	}
	for _, needle := range expected {
		if !strings.Contains(stdout.String(), needle) {
			t.Fatalf("output missing %q\nstdout:\n%s\nstderr:\n%s", needle, stdout.String(), stderr.String())
		}
	}
}

func TestStoredTokenModeRequiresUser(t *testing.T) {
	repoRoot := findRepoRoot(t)
	tempDir := t.TempDir()

	binPath := filepath.Join(tempDir, "clinicdash")
	buildCmd := exec.Command("go", "build", "-o", binPath, "./cmd/clinicdash")
	buildCmd.Dir = repoRoot
	buildOutput, err := buildCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build clinicdash: %v\n%s", err, buildOutput)
	}

	backend := stubBackend(t)

	configPath := filepath.Join(tempDir, "config.yaml")
	configBody := fmt.Sprintf(`app:
  name: "clinicdash"
  environment: "development"

api:
  base_url: "%s"

credentials:
  filename: "%s"
`, backend.URL, filepath.ToSlash(filepath.Join(tempDir, "credentials.db")))

	if err := os.WriteFile(configPath, []byte(configBody), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cmd := exec.Command(binPath, "-config", configPath)
	cmd.Dir = tempDir
	cmd.Env = append(os.Environ(), "HALICARE_ACCESS_TOKEN=preissued-token")
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected failure without -user, output:\n%s", output)
	}
	if !strings.Contains(string(output), "requires -user") {
		t.Fatalf("unexpected failure output:\n%s", output)
	}
}

func findRepoRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	t.Fatal("failed to locate repo root with go.mod")
	return ""
}
