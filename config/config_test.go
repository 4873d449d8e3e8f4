package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
size = "gigantic"
idle_timeout_ms = -5
enable_bark = false
bark_delay_ms = 2500
death_cooldown_ms = 4000
asset_dir = "/tmp/frames"
mute = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Size != "medium" {
		t.Errorf("unknown size not normalized: %q", cfg.Size)
	}
	if cfg.IdleTimeoutMs != 0 {
		t.Errorf("negative idle timeout not clamped: %d", cfg.IdleTimeoutMs)
	}
	if cfg.EnableBark {
		t.Error("enable_bark not applied")
	}
	if cfg.BarkDelayMs != 2500 || cfg.DeathCooldownMs != 4000 {
		t.Errorf("durations not applied: %d, %d", cfg.BarkDelayMs, cfg.DeathCooldownMs)
	}
	if cfg.AssetDir != "/tmp/frames" || !cfg.Mute {
		t.Errorf("asset_dir/mute not applied: %+v", cfg)
	}
}

func TestLoadMalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("size = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Fatal("malformed file should report an error")
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults on parse failure", cfg)
	}
}

func TestSaveRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	want := Default()
	want.Size = "large"
	want.BarkDelayMs = 1234
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("round trip: got %+v, want %+v", got, want)
	}
}

func TestSettingsConversion(t *testing.T) {
	cfg := Default()
	cfg.IdleTimeoutMs = 12000
	cfg.BarkDelayMs = 5000
	cfg.DeathCooldownMs = 8000

	s := cfg.settings()
	if s.IdleTimeout != 12*time.Second {
		t.Errorf("IdleTimeout = %v", s.IdleTimeout)
	}
	if s.BarkDelay != 5*time.Second || s.DeathCooldown != 8*time.Second {
		t.Errorf("durations = %v, %v", s.BarkDelay, s.DeathCooldown)
	}
	if s.Size != cfg.Size || s.EnableBark != cfg.EnableBark {
		t.Errorf("flags not carried: %+v", s)
	}
}

func TestStoreServesSnapshotsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	defer s.Close()
	if s.Settings().Size != "medium" {
		t.Fatalf("initial size = %q", s.Settings().Size)
	}

	next := Default()
	next.Size = "small"
	if err := Save(path, next); err != nil {
		t.Fatal(err)
	}
	s.reload()
	if s.Settings().Size != "small" {
		t.Fatalf("reload not applied: %q", s.Settings().Size)
	}
}

func TestStoreKeepsPreviousOnBadReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	good := Default()
	good.Size = "large"
	if err := Save(path, good); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	defer s.Close()

	if err := os.WriteFile(path, []byte("= broken ="), 0o644); err != nil {
		t.Fatal(err)
	}
	s.reload()
	if s.Config().Size != "large" {
		t.Fatalf("bad reload replaced snapshot: %+v", s.Config())
	}
}
