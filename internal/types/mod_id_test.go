package types

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeModID(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected ModID
	}{
		{name: "plain string", raw: "2392709985", expected: "2392709985"},
		{name: "padded string", raw: "  123 ", expected: "123"},
		{name: "float string", raw: "2392709985.0", expected: "2392709985"},
		{name: "exponent string", raw: "2.5e3", expected: "2500"},
		{name: "float64 cell", raw: float64(2392709985), expected: "2392709985"},
		{name: "fractional float truncates", raw: 12.9, expected: "12"},
		{name: "int", raw: 42, expected: "42"},
		{name: "int64", raw: int64(7), expected: "7"},
		{name: "uint64", raw: uint64(9), expected: "9"},
		{name: "leading zeros", raw: "007", expected: "7"},
		{name: "negative zero", raw: "-0", expected: "0"},
		{name: "mod id passthrough", raw: ModID("55.0"), expected: "55"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeModID(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeModIDRejects(t *testing.T) {
	inputs := []any{nil, "", "   ", "abc", "-5", -5, -1.5, math.NaN(), math.Inf(1)}
	for _, raw := range inputs {
		_, err := NormalizeModID(raw)
		assert.Error(t, err, "expected error for %v", raw)
	}
}

func TestDedupModIDs(t *testing.T) {
	got := DedupModIDs([]ModID{"100", "100", "200", "100", "300", "200"})
	if diff := cmp.Diff([]ModID{"100", "200", "300"}, got); diff != "" {
		t.Fatalf("unexpected dedup result (-want +got):\n%s", diff)
	}
}

func TestMustModIDPanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustModID("nope") })
	assert.Equal(t, ModID("1"), MustModID(1.0))
}

func TestInstallReportTotal(t *testing.T) {
	report := InstallReport{Succeeded: 3, Failed: 2}
	assert.Equal(t, 5, report.Total())
	assert.True(t, AttemptResult{Status: AttemptSucceeded}.Succeeded())
	assert.False(t, AttemptResult{Status: AttemptTimedOut}.Succeeded())
}
