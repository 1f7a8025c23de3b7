package query

import "testing"

func TestEscapeTermEscapesControlCharsAndBackslash(t *testing.T) {
	got := escapeTerm("a\tb\\c\x00d")
	want := "a\\x09b\\x5cc\\x00d"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEscapeTermEscapesInvalidUTF8ByteAtATime(t *testing.T) {
	got := escapeTerm(string([]byte{0xff, 'a', 0xfe}))
	want := "\\xffa\\xfe"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEscapeTermPassesThroughValidMultibyteUTF8(t *testing.T) {
	got := escapeTerm("héllo")
	if got != "héllo" {
		t.Fatalf("got %q, want unchanged input", got)
	}
}

func TestDescribeRendersScaleWeightBeforeChild(t *testing.T) {
	child := TermDefault("hack")
	scaled, err := Scale(0.5, child)
	if err != nil {
		t.Fatal(err)
	}
	got := Describe(scaled)
	want := "Query(0.5 * hack)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDescribeRendersScaleOverCompoundWithoutDoubleParens(t *testing.T) {
	and := And(TermDefault("hack"), TermDefault("which"))
	scaled, err := Scale(2, and)
	if err != nil {
		t.Fatal(err)
	}
	got := Describe(scaled)
	want := "Query(2 * (hack AND which))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCloneDoesNotMutateOriginalOnSubsequentAccumulate(t *testing.T) {
	original := And(TermDefault("hack"), TermDefault("which"))
	clone := original.Clone()
	beforeClone := Describe(clone)

	original.AndAssign(TermDefault("extra"))

	if Describe(clone) != beforeClone {
		t.Fatalf("clone mutated: got %q, want %q", Describe(clone), beforeClone)
	}
	if Describe(original) == Describe(clone) {
		t.Fatalf("expected original and clone to diverge after AndAssign on original")
	}
}
