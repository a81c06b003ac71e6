package internal

import (
	"strings"
	"testing"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestLinkerConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Linker.QualityThreshold != 0.6 {
		t.Errorf("quality threshold = %v, want 0.6", cfg.Linker.QualityThreshold)
	}
	if cfg.Linker.MaxSuggestions != 5 {
		t.Errorf("max suggestions = %d, want 5", cfg.Linker.MaxSuggestions)
	}
	if cfg.Linker.BackupDir != ".backups" {
		t.Errorf("backup dir = %q, want .backups", cfg.Linker.BackupDir)
	}
}

func TestLinkerConfig_ThresholdOutOfRange(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Linker.QualityThreshold = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("quality threshold above 1 should fail validation")
	}
}

func TestLinkerConfig_ZeroMaxSuggestions(t *testing.T) {
	cfg := LinkerConfig{QualityThreshold: 0.6, MaxSuggestions: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero max suggestions should fail validation")
	}
}

func TestLinkerConfig_SuggestConfigOverrides(t *testing.T) {
	lc := LinkerConfig{QualityThreshold: 0.8, MaxSuggestions: 3, SimilarityThreshold: 0.4}
	sc := lc.SuggestConfig()
	if sc.QualityThreshold != 0.8 || sc.MaxSuggestions != 3 || sc.SimilarityThreshold != 0.4 {
		t.Errorf("SuggestConfig = %+v", sc)
	}

	// Zero values fall back to the engine defaults.
	sc = (&LinkerConfig{MaxSuggestions: 5}).SuggestConfig()
	if sc.QualityThreshold != 0.6 {
		t.Errorf("zero quality threshold should fall back, got %v", sc.QualityThreshold)
	}
}
