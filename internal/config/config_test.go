package config

import (
	"log/slog"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Fatalf("unexpected ListenAddr %q", cfg.ListenAddr)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Fatalf("unexpected PollInterval %s", cfg.PollInterval)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("unexpected LogLevel %v", cfg.LogLevel)
	}
	if cfg.SysfsRoot != "/sys" {
		t.Fatalf("unexpected SysfsRoot %q", cfg.SysfsRoot)
	}
	if cfg.DebugfsRoot != "/sys/kernel/debug" {
		t.Fatalf("unexpected DebugfsRoot %q", cfg.DebugfsRoot)
	}
	if cfg.EnablePrometheus {
		t.Fatal("expected Prometheus disabled by default")
	}
	if cfg.WS.MaxClients != 1024 {
		t.Fatalf("unexpected WS.MaxClients %d", cfg.WS.MaxClients)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GPUINFO_LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("GPUINFO_POLL_INTERVAL", "500ms")
	t.Setenv("GPUINFO_ALLOWED_ORIGINS", "https://example.com, https://other.test")
	t.Setenv("GPUINFO_ENABLE_PROMETHEUS", "true")
	t.Setenv("GPUINFO_ENABLE_PPROF", "true")
	t.Setenv("GPUINFO_LOG_LEVEL", "debug")
	t.Setenv("GPUINFO_SYSFS_ROOT", "/tmp/sys")
	t.Setenv("GPUINFO_DEBUGFS_ROOT", "/tmp/debug")
	t.Setenv("GPUINFO_WS_MAX_CLIENTS", "2048")
	t.Setenv("GPUINFO_WS_WRITE_TIMEOUT", "10s")
	t.Setenv("GPUINFO_WS_READ_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ListenAddr != "127.0.0.1:9000" {
		t.Fatalf("ListenAddr override failed, got %q", cfg.ListenAddr)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Fatalf("PollInterval override failed, got %s", cfg.PollInterval)
	}
	wantOrigins := []string{"https://example.com", "https://other.test"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, wantOrigins) {
		t.Fatalf("AllowedOrigins mismatch: %+v", cfg.AllowedOrigins)
	}
	if !cfg.EnablePrometheus {
		t.Fatal("EnablePrometheus override failed")
	}
	if !cfg.EnablePprof {
		t.Fatal("EnablePprof override failed")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("LogLevel override failed, got %v", cfg.LogLevel)
	}
	if cfg.SysfsRoot != "/tmp/sys" {
		t.Fatalf("SysfsRoot override failed, got %q", cfg.SysfsRoot)
	}
	if cfg.DebugfsRoot != "/tmp/debug" {
		t.Fatalf("DebugfsRoot override failed, got %q", cfg.DebugfsRoot)
	}
	if cfg.WS.MaxClients != 2048 {
		t.Fatalf("WS.MaxClients override failed, got %d", cfg.WS.MaxClients)
	}
	if cfg.WS.WriteTimeout != 10*time.Second {
		t.Fatalf("WS.WriteTimeout override failed, got %s", cfg.WS.WriteTimeout)
	}
	if cfg.WS.ReadTimeout != 45*time.Second {
		t.Fatalf("WS.ReadTimeout override failed, got %s", cfg.WS.ReadTimeout)
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	testCases := []struct {
		name string
		key  string
		val  string
	}{
		{"NegativePollInterval", "GPUINFO_POLL_INTERVAL", "-1s"},
		{"InvalidPollInterval", "GPUINFO_POLL_INTERVAL", "soon"},
		{"InvalidOrigins", "GPUINFO_ALLOWED_ORIGINS", ","},
		{"InvalidPrometheusBool", "GPUINFO_ENABLE_PROMETHEUS", "maybe"},
		{"InvalidPprofBool", "GPUINFO_ENABLE_PPROF", "maybe"},
		{"InvalidLogLevel", "GPUINFO_LOG_LEVEL", "loud"},
		{"InvalidWSMaxClients", "GPUINFO_WS_MAX_CLIENTS", "zero"},
		{"NonPositiveWSMaxClients", "GPUINFO_WS_MAX_CLIENTS", "0"},
		{"InvalidWSWriteTimeout", "GPUINFO_WS_WRITE_TIMEOUT", "nope"},
		{"NegativeWSWriteTimeout", "GPUINFO_WS_WRITE_TIMEOUT", "-1s"},
		{"InvalidWSReadTimeout", "GPUINFO_WS_READ_TIMEOUT", "later"},
		{"NonPositiveWSReadTimeout", "GPUINFO_WS_READ_TIMEOUT", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.val)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			level, err := ParseLogLevel(tc.input)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected an error")
			}
			if tc.ok && level != tc.want {
				t.Errorf("expected %v, got %v", tc.want, level)
			}
		})
	}
}
