package postgresindex

import "testing"

func TestPrefixUpperBoundExcludesNonPrefixedTerms(t *testing.T) {
	cases := []struct {
		prefix string
		term   string
		inside bool
	}{
		{"cat", "catalog", true},
		{"cat", "cats", true},
		{"cat", "cat", true},
		{"cat", "catz", true},
		{"cat", "caa", false},
		{"cat", "cau", false},
		{"cat", "dog", false},
	}
	for _, c := range cases {
		upper := prefixUpperBound(c.prefix)
		inside := c.term >= c.prefix && c.term < upper
		if inside != c.inside {
			t.Errorf("prefix %q term %q: got inside=%v, want %v (upper=%q)", c.prefix, c.term, inside, c.inside, upper)
		}
	}
}

func TestPrefixUpperBoundHandlesTrailingMaxByte(t *testing.T) {
	upper := prefixUpperBound("ca\xff")
	if upper <= "ca\xff" && upper != "" {
		t.Errorf("expected carry to produce a larger bound or fallback, got %q", upper)
	}
}
