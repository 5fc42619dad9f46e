package entities

import (
	"sort"
	"strconv"
	"strings"
)

// NaturalRefLess compares two designators in natural alphanumeric order
// so that R2 sorts before R10.
func NaturalRefLess(a, b string) bool {
	ta, tb := splitRefChunks(a), splitRefChunks(b)
	for i := 0; i < len(ta) && i < len(tb); i++ {
		ca, cb := ta[i], tb[i]
		na, aok := parseChunkInt(ca)
		nb, bok := parseChunkInt(cb)
		switch {
		case aok && bok:
			if na != nb {
				return na < nb
			}
		case aok != bok:
			// Numeric chunks sort before text chunks.
			return aok
		default:
			ua, ub := strings.ToUpper(ca), strings.ToUpper(cb)
			if ua != ub {
				return ua < ub
			}
		}
	}
	return len(ta) < len(tb)
}

// DeduplicateRefs removes duplicates and applies natural sorting.
func DeduplicateRefs(refs []string) []string {
	if len(refs) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(refs))
	unique := make([]string, 0, len(refs))
	for _, r := range refs {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		unique = append(unique, r)
	}
	sort.Slice(unique, func(i, j int) bool {
		return NaturalRefLess(unique[i], unique[j])
	})
	return unique
}

func splitRefChunks(s string) []string {
	var chunks []string
	var cur strings.Builder
	curDigit := false
	for _, r := range s {
		isDigit := r >= '0' && r <= '9'
		if cur.Len() > 0 && isDigit != curDigit {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
		curDigit = isDigit
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

func parseChunkInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}
