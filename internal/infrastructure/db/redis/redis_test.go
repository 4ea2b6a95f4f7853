package redis

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestConfig_Options(t *testing.T) {
	opts := Config{Addr: "cache:6379", Password: "s3cret", DB: 2, Timeout: 750 * time.Millisecond}.options()

	if opts.Addr != "cache:6379" || opts.DB != 2 {
		t.Fatalf("unexpected address %s db %d", opts.Addr, opts.DB)
	}
	if opts.Password != "s3cret" {
		t.Fatalf("password not passed through, got %q", opts.Password)
	}
	for name, got := range map[string]time.Duration{
		"dial":  opts.DialTimeout,
		"read":  opts.ReadTimeout,
		"write": opts.WriteTimeout,
	} {
		if got != 750*time.Millisecond {
			t.Fatalf("%s timeout: expected 750ms, got %s", name, got)
		}
	}
}

func TestConfig_Options_DefaultTimeout(t *testing.T) {
	opts := Config{Addr: "cache:6379"}.options()
	if opts.DialTimeout != defaultDialTimeout {
		t.Fatalf("expected %s, got %s", defaultDialTimeout, opts.DialTimeout)
	}
	if opts.Password != "" {
		t.Fatalf("expected no password, got %q", opts.Password)
	}
}

func TestConnect_UnreachableServer(t *testing.T) {
	start := time.Now()
	client, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if err == nil {
		_ = client.Close()
		t.Fatal("expected connect to fail")
	}
	if client != nil {
		t.Fatal("failed connect must not return a client")
	}
	if !strings.Contains(err.Error(), "127.0.0.1:1") {
		t.Fatalf("error should name the address, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("connect ignored the configured timeout, took %s", time.Since(start))
	}
}
