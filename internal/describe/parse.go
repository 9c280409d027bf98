package describe

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultPrefix is the version-prefix character stripped from tag names.
const DefaultPrefix = "v"

// DirtySuffix is what git appends with --dirty when the worktree has changes.
const DirtySuffix = "-dirty"

var (
	longForm = regexp.MustCompile(`^(.+)-(\d+)-g([0-9a-f]{4,64})$`)
	hashOnly = regexp.MustCompile(`^[0-9a-f]{4,64}$`)
)

// Description is the parsed form of git describe output.
type Description struct {
	// Tag is the nearest reachable tag, empty when only a commit is known.
	Tag string `json:"tag,omitempty"`
	// Distance is the number of commits between Tag and HEAD.
	Distance int `json:"distance"`
	// Hash is the abbreviated commit name, empty for an exact tag match.
	Hash  string `json:"hash,omitempty"`
	Dirty bool   `json:"dirty"`
}

// Exact reports whether HEAD sits directly on Tag.
func (d Description) Exact() bool {
	return d.Tag != "" && d.Distance == 0 && d.Hash == ""
}

// Parse splits describe output into its parts. Output of the form
// <tag>-<n>-g<hash> yields all fields; a bare hex string is a commit with no
// reachable tag; anything else is treated as an exact tag name.
//
// A tag that itself looks like a hex string (e.g. "cafe") is reported as a
// hash. git gives no way to tell the two apart from the output alone.
func Parse(s string) Description {
	s = strings.TrimSpace(s)
	var d Description
	if strings.HasSuffix(s, DirtySuffix) {
		d.Dirty = true
		s = strings.TrimSuffix(s, DirtySuffix)
	}
	if s == "" {
		return d
	}
	if m := longForm.FindStringSubmatch(s); m != nil {
		d.Tag = m[1]
		d.Distance, _ = strconv.Atoi(m[2])
		d.Hash = m[3]
		return d
	}
	if hashOnly.MatchString(s) {
		d.Hash = s
		return d
	}
	d.Tag = s
	return d
}

// Normalize trims whitespace and strips leading occurrences of prefix.
// An empty prefix leaves the value untouched apart from trimming.
func Normalize(raw, prefix string) string {
	v := strings.TrimSpace(raw)
	if prefix == "" {
		return v
	}
	for strings.HasPrefix(v, prefix) {
		v = strings.TrimPrefix(v, prefix)
	}
	return v
}
