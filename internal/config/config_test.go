package config

import "testing"

func TestParseBool(t *testing.T) {
	t.Setenv("FLAG_SET", "true")
	t.Setenv("FLAG_ONE", "1")
	t.Setenv("FLAG_BAD", "yes please")

	if !ParseBool("FLAG_SET", false) {
		t.Fatalf("FLAG_SET should parse true")
	}
	if !ParseBool("FLAG_ONE", false) {
		t.Fatalf("FLAG_ONE should parse true")
	}
	if ParseBool("FLAG_BAD", false) {
		t.Fatalf("invalid value should fall back to default")
	}
	if !ParseBool("FLAG_MISSING", true) {
		t.Fatalf("missing var should keep default")
	}
}

func TestParseInt(t *testing.T) {
	t.Setenv("DPI_OK", "150")
	t.Setenv("DPI_BAD", "lots")

	if got := ParseInt("DPI_OK", 300); got != 150 {
		t.Fatalf("ParseInt = %d, want 150", got)
	}
	if got := ParseInt("DPI_BAD", 300); got != 300 {
		t.Fatalf("invalid value: ParseInt = %d, want 300", got)
	}
	if got := ParseInt("DPI_MISSING", 300); got != 300 {
		t.Fatalf("missing var: ParseInt = %d, want 300", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("PDF_PRINT_DPI", "")
	cfg := Load()
	if cfg.Port == "" || cfg.DatabaseDSN == "" {
		t.Fatalf("missing defaults: %+v", cfg)
	}
	if cfg.PrintDPI != 300 {
		t.Fatalf("PrintDPI = %d, want 300", cfg.PrintDPI)
	}
}
