package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SIGNCALC_ENV",
		"SIGNCALC_LOG_LEVEL",
		"SIGNCALC_CACHE_SIZE",
		"SIGNCALC_SOIL_BEARING_PSF",
		"SIGNCALC_CATALOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.CacheSize != 256 {
		t.Errorf("CacheSize = %d, want 256", cfg.CacheSize)
	}
	if cfg.SoilBearingPSF != 3000 {
		t.Errorf("SoilBearingPSF = %g, want 3000", cfg.SoilBearingPSF)
	}
	if cfg.CatalogFile != "" {
		t.Errorf("CatalogFile = %q, want empty", cfg.CatalogFile)
	}
	if cfg.Production() {
		t.Error("development config should not report production")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIGNCALC_ENV", "production")
	t.Setenv("SIGNCALC_LOG_LEVEL", "debug")
	t.Setenv("SIGNCALC_CACHE_SIZE", "64")
	t.Setenv("SIGNCALC_SOIL_BEARING_PSF", "1500")
	t.Setenv("SIGNCALC_CATALOG_FILE", "/data/sections.json")

	cfg := Load()
	if !cfg.Production() {
		t.Error("Production() = false for SIGNCALC_ENV=production")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.CacheSize != 64 {
		t.Errorf("CacheSize = %d, want 64", cfg.CacheSize)
	}
	if cfg.SoilBearingPSF != 1500 {
		t.Errorf("SoilBearingPSF = %g, want 1500", cfg.SoilBearingPSF)
	}
	if cfg.CatalogFile != "/data/sections.json" {
		t.Errorf("CatalogFile = %q", cfg.CatalogFile)
	}
}

func TestLoadBadNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIGNCALC_CACHE_SIZE", "many")
	t.Setenv("SIGNCALC_SOIL_BEARING_PSF", "soft")

	cfg := Load()
	if cfg.CacheSize != 256 {
		t.Errorf("CacheSize = %d, want the 256 fallback", cfg.CacheSize)
	}
	if cfg.SoilBearingPSF != 3000 {
		t.Errorf("SoilBearingPSF = %g, want the 3000 fallback", cfg.SoilBearingPSF)
	}
}
