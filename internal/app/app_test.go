package app

import (
	"context"
	"strings"
	"testing"

	"github.com/BlqckRiad/CepteMotivasyon/internal/config"
)

// Неверный AUTH_MODE отклоняется до подключения к БД и Firestore:
// адреса ниже недостижимы, и до них дело доходить не должно.
func TestNew_BadAuthModeOpensNothing(t *testing.T) {
	cfg := &config.Config{
		AuthMode:             "bogus",
		DBHost:               "db.invalid",
		DBPort:               5432,
		FeatureQuotesEnabled: true,
		FirestoreProjectID:   "unused",
	}

	app, err := New(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "AUTH_MODE") {
		t.Fatalf("err=%v, want AUTH_MODE error", err)
	}
	if app != nil {
		t.Fatalf("app=%v, want nil", app)
	}
}

func TestMigrations_Ordered(t *testing.T) {
	for i, m := range migrations {
		if m.Version != i+1 {
			t.Fatalf("migrations[%d].Version=%d, want %d", i, m.Version, i+1)
		}
		if strings.TrimSpace(m.SQL) == "" {
			t.Fatalf("migration %d is empty", m.Version)
		}
	}

	last := migrations[len(migrations)-1].SQL
	for _, table := range []string{"education_content", "contact"} {
		if !strings.Contains(last, "CREATE TABLE IF NOT EXISTS "+table+" ") {
			t.Fatalf("table %s missing from last migration", table)
		}
	}
}
