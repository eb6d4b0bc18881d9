package roster

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Threshold != 0.75 || cfg.SkippedColumns[0] != "Last" || cfg.Address != DefaultAddressColumns {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	raw := "similarity_threshold: 0.9\nskipped_cols: [L, F, M]\naddress:\n  zip: POSTCODE\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigEnv, path)
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Threshold != 0.9 || cfg.SkippedColumns[2] != "M" {
		t.Fatalf("config not applied: %#v", cfg)
	}
	if cfg.Address.Zip != "POSTCODE" || cfg.Address.Line1 != "ADDRESS_LINE1" {
		t.Fatalf("partial address override lost defaults: %#v", cfg.Address)
	}
	if cfg.AllBroadstripesColumns[0] != "Last Name" {
		t.Fatalf("unset fields should keep defaults: %#v", cfg.AllBroadstripesColumns)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("similarity_threshold: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("expected ErrInvalidThreshold, got %v", err)
	}
	cols := filepath.Join(dir, "cols.yaml")
	if err := os.WriteFile(cols, []byte("all_bs_cols: [Name]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(cols); !errors.Is(err, ErrInvalidNameColumnSpec) {
		t.Fatalf("expected ErrInvalidNameColumnSpec, got %v", err)
	}
}
