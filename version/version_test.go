package version

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal", "5.14.0", "5.14.0", 0},
		{"patch greater", "5.14.1", "5.14.0", 1},
		{"minor less", "5.9.9", "5.14.0", -1}, // numeric, not lexical: 9 < 14
		{"major greater", "6.2.0", "5.15.2", 1},
		{"shorter prefix sorts first", "5.14", "5.14.0", -1},
		{"build suffix compares numerically", "5.14.0-0-201912110806", "5.14.0-0-201911220923", 1},
		{"release segment", "7.3.0-1-201903151311", "7.3.0-2-201903151311", -1},
		{"equal with suffix", "5.14.0-0", "5.14.0-0", 0},
		{"non-numeric segments lexical", "5.14.0-beta", "5.14.0-rc", -1},
		{"mixed numeric and text", "5.14.rc", "5.14.0", 1}, // "rc" vs "0" is lexical
		{"empty versions equal", "", "", 0},
		{"empty sorts first", "", "1.0", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
			assert.Equal(t, -tt.want, Compare(tt.b, tt.a))
		})
	}
}

func TestLess(t *testing.T) {
	assert.True(t, Less("5.12.11", "5.14.0"))
	assert.False(t, Less("5.14.0", "5.14.0"))
	assert.False(t, Less("6.0.0", "5.15.2"))
}

func TestMax(t *testing.T) {
	tests := []struct {
		name     string
		versions []string
		want     string
	}{
		{"empty", nil, ""},
		{"single", []string{"5.14.0"}, "5.14.0"},
		{"picks highest", []string{"5.12.11", "5.15.2", "5.9.9"}, "5.15.2"},
		{"build metadata breaks ties", []string{"5.14.0-0-201911", "5.14.0-0-201912"}, "5.14.0-0-201912"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Max(tt.versions))
		})
	}
}

func TestProperty_CompareIsAnOrdering(t *testing.T) {
	properties := gopter.NewProperties(nil)

	versionGen := gen.RegexMatch(`[0-9]{1,2}\.[0-9]{1,2}\.[0-9]{1,2}(-[0-9]{1,4})?`)

	properties.Property("comparison is reflexive", prop.ForAll(
		func(v string) bool {
			return Compare(v, v) == 0
		},
		versionGen,
	))

	properties.Property("comparison is antisymmetric", prop.ForAll(
		func(a, b string) bool {
			return Compare(a, b) == -Compare(b, a)
		},
		versionGen,
		versionGen,
	))

	properties.Property("max is one of its inputs and not less than any", prop.ForAll(
		func(vs []string) bool {
			m := Max(vs)
			found := false
			for _, v := range vs {
				if v == m {
					found = true
				}
				if Compare(v, m) > 0 {
					return false
				}
			}
			return found
		},
		gen.SliceOfN(4, versionGen),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
