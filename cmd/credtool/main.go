// cmd/credtool/main.go

// credtool is a maintenance tool for the credential store database: apply
// or roll back its schema migrations and inspect or wipe the stored token
// without starting a dashboard session.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	var (
		dbPath         = flag.String("db", "", "Path to the credential store database")
		migrationsPath = flag.String("migrations", "internal/credstore/migrations", "Path to migrations directory")
		command        = flag.String("command", "", "Command to run (up, down, version, show, clear)")
		key            = flag.String("key", "token", "Storage key the token is kept under")
	)
	flag.Parse()

	if *dbPath == "" || *command == "" {
		flag.Usage()
		os.Exit(1)
	}

	switch *command {
	case "up", "down", "version":
		runMigration(*dbPath, *migrationsPath, *command)
	case "show":
		showToken(*dbPath, *key)
	case "clear":
		clearToken(*dbPath, *key)
	default:
		log.Fatalf("Unknown command: %s", *command)
	}
}

func runMigration(dbPath, migrationsPath, command string) {
	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		fmt.Sprintf("sqlite3://%s", dbPath),
	)
	if err != nil {
		log.Fatalf("Migration init failed: %v", err)
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Migration up failed: %v", err)
		}
	case "down":
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Migration down failed: %v", err)
		}
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("Get version failed: %v", err)
		}
		fmt.Printf("Version: %d, Dirty: %v\n", version, dirty)
	}
}

func showToken(dbPath, key string) {
	db := openDB(dbPath)
	defer db.Close()

	var token string
	var updatedAt time.Time
	err := db.QueryRow(
		"SELECT token, updated_at FROM credentials WHERE key = ?", key,
	).Scan(&token, &updatedAt)
	if err == sql.ErrNoRows {
		fmt.Println("No stored credential")
		return
	}
	if err != nil {
		log.Fatalf("Read credential failed: %v", err)
	}

	fmt.Printf("Key:        %s\n", key)
	fmt.Printf("Updated at: %s\n", updatedAt.Format(time.RFC3339))
	fmt.Printf("Expiry:     %s\n", describeExpiry(token))
}

// describeExpiry inspects the token's exp claim without verifying the
// signature; the tool has no access to the server's signing key.
func describeExpiry(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "opaque token, no client-side expiry"
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "no exp claim"
	}
	if exp.Before(time.Now()) {
		return fmt.Sprintf("expired at %s", exp.Format(time.RFC3339))
	}
	return fmt.Sprintf("valid until %s", exp.Format(time.RFC3339))
}

func clearToken(dbPath, key string) {
	db := openDB(dbPath)
	defer db.Close()

	result, err := db.Exec("DELETE FROM credentials WHERE key = ?", key)
	if err != nil {
		log.Fatalf("Clear credential failed: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		fmt.Println("No stored credential")
		return
	}
	fmt.Println("Credential cleared")
}

func openDB(dbPath string) *sql.DB {
	if _, err := os.Stat(dbPath); err != nil {
		log.Fatalf("Credential database not found: %v", err)
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatalf("Open database failed: %v", err)
	}
	return db
}
