package ocorren

import (
	"sort"
	"unicode/utf8"
)

// tagLen is the number of leading characters holding a line's record type.
const tagLen = 3

// recordTag returns the first three characters of line.
func recordTag(line string) (string, bool) {
	i, n := 0, 0
	for n < tagLen {
		if i >= len(line) {
			return "", false
		}
		_, size := utf8.DecodeRuneInString(line[i:])
		i += size
		n++
	}
	return line[:i], true
}

// ObservedRecordTypes returns the distinct record-type tags of lines, sorted.
// Lines shorter than a tag are skipped.
func ObservedRecordTypes(lines []string) []string {
	seen := make(map[string]struct{})
	for _, l := range lines {
		if tag, ok := recordTag(l); ok {
			seen[tag] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// DetectLayout picks the first version, in priority order, whose required
// record types all occur in lines. It fails with a DetectionError otherwise.
func DetectLayout(lines []string) (LayoutVersion, error) {
	observed := ObservedRecordTypes(lines)
	set := make(map[string]struct{}, len(observed))
	for _, t := range observed {
		set[t] = struct{}{}
	}
	for _, v := range versionOrder {
		if containsAll(set, versionTable[v].required) {
			return v, nil
		}
	}
	return VersionAuto, &DetectionError{Observed: observed}
}

func containsAll(set map[string]struct{}, want []string) bool {
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}
