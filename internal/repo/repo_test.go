package repo

import (
	"reflect"
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryDB returns a handle that builds SQL without touching a server.
func dryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=urbanvibe dbname=urbanvibe sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

type built struct {
	SQL  string
	Vars []any
}

func capture(tx *gorm.DB) built {
	return built{SQL: tx.Statement.SQL.String(), Vars: tx.Statement.Vars}
}

// whereOf returns the predicate between WHERE and ORDER BY (or the end).
func whereOf(t *testing.T, sql string) string {
	t.Helper()
	i := strings.Index(sql, " WHERE ")
	if i < 0 {
		t.Fatalf("no WHERE clause in %q", sql)
	}
	w := sql[i+len(" WHERE "):]
	if j := strings.Index(w, " ORDER BY "); j >= 0 {
		w = w[:j]
	}
	return strings.TrimSpace(w)
}

func assertVarsPrefix(t *testing.T, prefix, vars []any) {
	t.Helper()
	if len(vars) < len(prefix) {
		t.Fatalf("vars %v shorter than prefix %v", vars, prefix)
	}
	if !reflect.DeepEqual(prefix, vars[:len(prefix)]) {
		t.Fatalf("bindings diverge: %v vs %v", prefix, vars[:len(prefix)])
	}
}
