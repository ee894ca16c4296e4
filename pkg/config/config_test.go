package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != AppEnvDev {
		t.Fatalf("expected App.Env to default to dev, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("unexpected default port %q", cfg.App.Port)
	}
	if cfg.Data.LicenseFile != "data/bhopal_weapon_licenses.csv" {
		t.Fatalf("unexpected default license file %q", cfg.Data.LicenseFile)
	}
	if cfg.Data.StrictDuplicateKeys {
		t.Fatal("strict duplicate keys should default off")
	}
	if cfg.Notify.DeadlineDays != 7 || cfg.Notify.ReturnDays != 30 {
		t.Fatalf("unexpected notify defaults: %+v", cfg.Notify)
	}
	if cfg.Notify.RecentLimit != 10 {
		t.Fatalf("unexpected recent limit %d", cfg.Notify.RecentLimit)
	}
	if cfg.Report.ConcentrationPercent != 15 {
		t.Fatalf("unexpected concentration threshold %d", cfg.Report.ConcentrationPercent)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ARMORY_APP_ENV", "production")
	t.Setenv("ARMORY_LICENSE_FILE", "/srv/data/licenses.csv")
	t.Setenv("ARMORY_STRICT_DUPLICATE_KEYS", "true")
	t.Setenv("ARMORY_NOTIFY_RECENT_LIMIT", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if !cfg.App.IsProd() {
		t.Fatalf("expected production env, got %q", cfg.App.Env)
	}
	if cfg.Data.LicenseFile != "/srv/data/licenses.csv" {
		t.Fatalf("unexpected license file %q", cfg.Data.LicenseFile)
	}
	if !cfg.Data.StrictDuplicateKeys {
		t.Fatal("expected strict duplicate keys on")
	}
	if cfg.Notify.RecentLimit != 25 {
		t.Fatalf("unexpected recent limit %d", cfg.Notify.RecentLimit)
	}
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("ARMORY_NOTIFY_DEADLINE_DAYS", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-integer deadline days")
	}
}
