package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveProductKey(t *testing.T) {
	expiration := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	key := DeriveProductKey("ABC123", "SupplierA", expiration)
	assert.Equal(t, "ABC123SupplierA20241231", key)

	// deterministic: same triple, same key, every call
	for i := 0; i < 10; i++ {
		assert.Equal(t, key, DeriveProductKey("ABC123", "SupplierA", expiration))
	}
}

func TestDeriveProductKey_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	local := time.Date(2025, 1, 1, 3, 0, 0, 0, loc)

	// 2025-01-01T03:00+05:00 is 2024-12-31T22:00 UTC
	assert.Equal(t, "XSup20241231", DeriveProductKey("X", "Sup", local))
}

func TestDeriveProductKey_DistinctTriplesDistinctKeys(t *testing.T) {
	expiration := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	otherDate := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	keys := map[string]string{}
	fixtures := []struct {
		name     string
		code     string
		supplier string
		date     time.Time
	}{
		{"base", "ABC123", "SupplierA", expiration},
		{"other supplier", "ABC123", "SupplierB", expiration},
		{"other date", "ABC123", "SupplierA", otherDate},
		{"other code", "XYZ999", "SupplierA", expiration},
		{"all different", "XYZ999", "SupplierB", otherDate},
	}

	for _, f := range fixtures {
		key := DeriveProductKey(f.code, f.supplier, f.date)
		if prev, ok := keys[key]; ok {
			t.Fatalf("key collision between %q and %q: %s", prev, f.name, key)
		}
		keys[key] = f.name
	}
}
