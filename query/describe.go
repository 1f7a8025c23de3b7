package query

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Describe produces the canonical textual description of q: a stable
// debug surface and regression oracle. Structurally-equal trees always
// produce identical strings.
func Describe(q Query) string {
	return "Query(" + render(q.n) + ")"
}

func render(n *Node) string {
	switch n.kind {
	case KindMatchAll:
		return "<alldocuments>"
	case KindMatchNothing:
		return ""
	case KindTerm:
		return escapeTerm(n.term)
	case KindPostingSource:
		return "<postingsource>"
	case KindWildcard:
		return escapeTerm(n.pattern)
	case KindEditDistance:
		return escapeTerm(n.target)
	case KindCompound:
		return renderCompound(n)
	}
	return ""
}

func renderCompound(n *Node) string {
	if n.op == OpScaleWeight {
		return formatFactor(n.factor) + " * " + renderChild(n.children[0])
	}

	parts := make([]string, len(n.children))
	for i, c := range n.children {
		parts[i] = render(c)
	}
	body := strings.Join(parts, " "+n.op.String()+" ")

	switch n.op {
	case OpPhrase, OpNear:
		body += " " + strconv.Itoa(n.window)
	case OpEliteSet:
		body += " " + strconv.Itoa(n.eliteK)
	case OpValueGE:
		body += " " + strconv.Itoa(n.slot) + " " + escapeTerm(n.lo)
	case OpValueLE:
		body += " " + strconv.Itoa(n.slot) + " " + escapeTerm(n.hi)
	case OpValueRange:
		body += " " + strconv.Itoa(n.slot) + " " + escapeTerm(n.lo) + " " + escapeTerm(n.hi)
	}
	return "(" + body + ")"
}

// renderChild is used only by SCALE_WEIGHT, which (unlike the other
// compounds) does not wrap its own parens around the child - the
// child's own render already supplies them when it's a compound.
func renderChild(n *Node) string { return render(n) }

func formatFactor(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// escapeTerm renders s the way description() does: valid UTF-8 runes
// pass through unchanged, except ASCII control characters (0x00-0x1F,
// 0x7F) and the backslash itself, which are rendered as lowercase
// \xHH. Bytes that are not part of a valid UTF-8 encoding are likewise
// rendered \xHH, one byte at a time.
func escapeTerm(s string) string {
	var b strings.Builder
	data := []byte(s)
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&b, "\\x%02x", data[i])
			i++
			continue
		}
		if data[i] == '\\' {
			b.WriteString("\\x5c")
			i++
			continue
		}
		if r < 0x20 || r == 0x7f {
			fmt.Fprintf(&b, "\\x%02x", data[i])
			i++
			continue
		}
		b.WriteRune(r)
		i += size
	}
	return b.String()
}
