package geoip

import (
	"errors"
	"testing"
)

func TestNewResolverEmptyPathDisablesLookups(t *testing.T) {
	resolver, err := NewResolver("  ")
	if err != nil {
		t.Fatalf("NewResolver returned error: %v", err)
	}
	if resolver != nil {
		t.Fatalf("expected nil resolver for empty path, got %#v", resolver)
	}
}

func TestNewResolverMissingDatabase(t *testing.T) {
	if _, err := NewResolver("/nonexistent/GeoLite2-Country.mmdb"); err == nil {
		t.Fatal("expected error for missing database file")
	}
}

func TestCountryCodeOnNilResolver(t *testing.T) {
	var r *Resolver
	if _, err := r.CountryCode("203.0.113.9"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
