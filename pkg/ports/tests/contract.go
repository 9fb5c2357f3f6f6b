package tests

import (
	"testing"

	"github.com/aretw0/claimform/pkg/domain"
	"github.com/aretw0/claimform/pkg/ports"
)

// MessageSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.MessageSource.
// setupData must be what the adapter was loaded with.
func MessageSourceContractTest(t *testing.T, source ports.MessageSource, setupData map[string]string) {
	t.Helper()

	t.Run("Message_Success", func(t *testing.T) {
		for key, expected := range setupData {
			got, ok := source.Message(key)
			if !ok {
				t.Fatalf("message %s not found", key)
			}
			if got != expected {
				t.Errorf("message mismatch for %s. got %q, want %q", key, got, expected)
			}
		}
	})

	t.Run("Message_NotFound", func(t *testing.T) {
		if _, ok := source.Message("non.existent.key"); ok {
			t.Error("expected no message for non-existent key")
		}
	})
}

// MappingLoaderContractTest verifies that an adapter complies with ports.MappingLoader.
func MappingLoaderContractTest(t *testing.T, loader ports.MappingLoader, name string, expected domain.MappingList) {
	t.Helper()

	t.Run("LoadMappings_Success", func(t *testing.T) {
		got, err := loader.LoadMappings(name)
		if err != nil {
			t.Fatalf("unexpected error loading %s: %v", name, err)
		}
		if len(got) != len(expected) {
			t.Fatalf("expected %d mappings, got %d", len(expected), len(got))
		}
		// Order is significant.
		for i := range expected {
			if got[i] != expected[i] {
				t.Errorf("mapping %d mismatch. got %+v, want %+v", i, got[i], expected[i])
			}
		}
	})

	t.Run("LoadMappings_NotFound", func(t *testing.T) {
		if _, err := loader.LoadMappings("non-existent-mapping"); err == nil {
			t.Error("expected error for non-existent mapping, got nil")
		}
	})
}
