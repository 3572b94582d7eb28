package main

import (
	"os"
	"path/filepath"
	"testing"
)

// resetFlags restores global flag state after each test.
func resetFlags(t *testing.T) {
	t.Helper()
	orig := struct{ url, key, fmt string }{flagURL, flagKey, flagFmt}
	t.Cleanup(func() {
		flagURL = orig.url
		flagKey = orig.key
		flagFmt = orig.fmt
	})
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".wikipath")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestResolveConfigEnv(t *testing.T) {
	resetFlags(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WIKIPATH_URL", "http://env-server:9090")
	t.Setenv("WIKIPATH_API_KEY", "key-from-env")

	flagURL = defaultURL
	flagKey = ""
	resolveConfig()

	if flagURL != "http://env-server:9090" {
		t.Errorf("flagURL: got %q", flagURL)
	}
	if flagKey != "key-from-env" {
		t.Errorf("flagKey: got %q", flagKey)
	}
}

func TestResolveConfigFlagWins(t *testing.T) {
	resetFlags(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WIKIPATH_URL", "http://env-server:9090")
	t.Setenv("WIKIPATH_API_KEY", "key-from-env")

	flagURL = "http://flag-server:1234"
	flagKey = "key-from-flag"
	resolveConfig()

	if flagURL != "http://flag-server:1234" || flagKey != "key-from-flag" {
		t.Errorf("flags overridden: url %q key %q", flagURL, flagKey)
	}
}

func TestResolveConfigFlatFile(t *testing.T) {
	resetFlags(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("WIKIPATH_URL", "")
	t.Setenv("WIKIPATH_API_KEY", "")
	writeConfig(t, home, "url: http://file-server:7000\napi_key: key-from-file\n")

	flagURL = defaultURL
	flagKey = ""
	resolveConfig()

	if flagURL != "http://file-server:7000" || flagKey != "key-from-file" {
		t.Errorf("got url %q key %q", flagURL, flagKey)
	}
}

func TestResolveConfigProfiles(t *testing.T) {
	resetFlags(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("WIKIPATH_URL", "")
	t.Setenv("WIKIPATH_API_KEY", "")
	writeConfig(t, home, `url: http://flat:1
active_profile: prod
profiles:
  default:
    url: http://default:2
  prod:
    url: http://prod:3
    api_key: prod-key
`)

	flagURL = defaultURL
	flagKey = ""
	resolveConfig()

	if flagURL != "http://prod:3" || flagKey != "prod-key" {
		t.Errorf("got url %q key %q", flagURL, flagKey)
	}
}

func TestResolveConfigEnvBeatsFile(t *testing.T) {
	resetFlags(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("WIKIPATH_URL", "http://env:4")
	t.Setenv("WIKIPATH_API_KEY", "")
	writeConfig(t, home, "url: http://file:5\napi_key: file-key\n")

	flagURL = defaultURL
	flagKey = ""
	resolveConfig()

	if flagURL != "http://env:4" {
		t.Errorf("flagURL: got %q", flagURL)
	}
	if flagKey != "file-key" {
		t.Errorf("flagKey: got %q", flagKey)
	}
}

func TestResolveConfigMalformedFile(t *testing.T) {
	resetFlags(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("WIKIPATH_URL", "")
	t.Setenv("WIKIPATH_API_KEY", "")
	writeConfig(t, home, "url: [unclosed\n")

	flagURL = defaultURL
	flagKey = ""
	resolveConfig()

	if flagURL != defaultURL || flagKey != "" {
		t.Errorf("malformed file changed flags: url %q key %q", flagURL, flagKey)
	}
}
