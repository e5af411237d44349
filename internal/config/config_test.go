package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("POWER_TRIALS", "")
	t.Setenv("POWER_SEED", "")
	t.Setenv("POWER_MAX_PARALLEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("default port: got %q, want 8080", cfg.Server.Port)
	}
	if cfg.Simulation.DefaultTrials != 1000 {
		t.Errorf("default trials: got %d, want 1000", cfg.Simulation.DefaultTrials)
	}
	if cfg.Simulation.DefaultSeed != 42 {
		t.Errorf("default seed: got %d, want 42", cfg.Simulation.DefaultSeed)
	}
	if cfg.Simulation.MaxParallel != 4 {
		t.Errorf("default max parallel: got %d, want 4", cfg.Simulation.MaxParallel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("POWER_TRIALS", "250")
	t.Setenv("POWER_SEED", "7")
	t.Setenv("PORT", "9900")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.DefaultTrials != 250 {
		t.Errorf("trials override: got %d, want 250", cfg.Simulation.DefaultTrials)
	}
	if cfg.Simulation.DefaultSeed != 7 {
		t.Errorf("seed override: got %d, want 7", cfg.Simulation.DefaultSeed)
	}
	if cfg.Server.Port != "9900" {
		t.Errorf("port override: got %q, want 9900", cfg.Server.Port)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("POWER_MAX_PARALLEL", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for POWER_MAX_PARALLEL=0")
	}
}
