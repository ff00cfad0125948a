package main

import (
	"bufio"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"homeacc/internal/config"
	"homeacc/internal/db"

	"github.com/jmoiron/sqlx"
)

const downMarker = "-- +migrate Down"

func main() {
	dir := flag.String("dir", "migrations", "directory holding *.sql migrations")
	down := flag.Bool("down", false, "roll back the most recently applied migration")
	flag.Parse()

	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	if _, err := database.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (filename text primary key, applied_at timestamptz default now())`); err != nil {
		log.Fatalf("failed to ensure schema_migrations: %v", err)
	}

	if *down {
		if err := rollbackLatest(database, *dir); err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
		return
	}

	files, err := filepath.Glob(filepath.Join(*dir, "*.sql"))
	if err != nil {
		log.Fatalf("failed to read migrations: %v", err)
	}
	sort.Strings(files)

	for _, file := range files {
		filename := filepath.Base(file)
		var exists bool
		if err := database.Get(&exists, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE filename = $1)`, filename); err != nil {
			log.Fatalf("failed to read migration state: %v", err)
		}
		if exists {
			continue
		}
		if err := applySection(database, file, true); err != nil {
			log.Fatalf("failed to apply %s: %v", filename, err)
		}
		if _, err := database.Exec(`INSERT INTO schema_migrations (filename) VALUES ($1)`, filename); err != nil {
			log.Fatalf("failed to record migration %s: %v", filename, err)
		}
		fmt.Printf("applied %s\n", filename)
	}
}

func rollbackLatest(database *sqlx.DB, dir string) error {
	var filename string
	err := database.Get(&filename, `SELECT filename FROM schema_migrations ORDER BY filename DESC LIMIT 1`)
	if err == sql.ErrNoRows {
		fmt.Println("nothing to roll back")
		return nil
	}
	if err != nil {
		return err
	}
	if err := applySection(database, filepath.Join(dir, filename), false); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	if _, err := database.Exec(`DELETE FROM schema_migrations WHERE filename = $1`, filename); err != nil {
		return err
	}
	fmt.Printf("rolled back %s\n", filename)
	return nil
}

// applySection runs the Up half of the file, or the Down half when up is false.
func applySection(db execer, path string, up bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	upPart, downPart, _ := strings.Cut(string(content), downMarker)
	section := upPart
	if !up {
		section = downPart
	}
	for _, stmt := range splitSQL(section) {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func splitSQL(sqlText string) []string {
	var statements []string
	var current strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(sqlText))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		current.WriteString(line)
		current.WriteRune('\n')
		if strings.HasSuffix(strings.TrimSpace(line), ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}
	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}
	return statements
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}
