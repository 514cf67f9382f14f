package config

import (
	"net/netip"
	"testing"
)

func TestValidateAppliesDefaults(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() err = %v", err)
	}
	if cfg.MaxQueries != defaultMaxQueries {
		t.Errorf("MaxQueries = %d, want default", cfg.MaxQueries)
	}
	if cfg.SessionTimeout != defaultSessionTimeout {
		t.Errorf("SessionTimeout = %v, want default", cfg.SessionTimeout)
	}
}

func TestValidateRejectsBadStatusAPIPort(t *testing.T) {
	cfg := &Config{StatusAPI: StatusAPIConfig{Enabled: true, Port: 0}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid status api port")
	}
}

func TestSkipTableMembership(t *testing.T) {
	cfg := &Config{SkipAuthNets: []string{"10.0.0.0/8"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() err = %v", err)
	}
	in := netip.MustParseAddr("10.1.2.3")
	out := netip.MustParseAddr("192.168.1.1")
	if !cfg.AuthSkipTable().Contains(in) {
		t.Error("expected 10.1.2.3 to be in skip table")
	}
	if cfg.AuthSkipTable().Contains(out) {
		t.Error("expected 192.168.1.1 to not be in skip table")
	}
}
