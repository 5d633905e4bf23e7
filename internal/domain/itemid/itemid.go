// Package itemid assigns sequential menu item ids of the form <prefix>-NNN.
package itemid

import (
	"fmt"
	"strconv"
	"strings"
)

// Width is the zero-padded width of the numeric suffix.
const Width = 3

// Split breaks an id into prefix and numeric suffix.
// ok is false when the id has no "-<digits>" tail.
func Split(id string) (prefix string, seq int, ok bool) {
	i := strings.LastIndexByte(id, '-')
	if i <= 0 || i == len(id)-1 {
		return "", 0, false
	}
	tail := id[i+1:]
	for _, r := range tail {
		if r < '0' || r > '9' {
			return "", 0, false
		}
	}
	n, err := strconv.Atoi(tail)
	if err != nil {
		return "", 0, false
	}
	return id[:i], n, true
}

// Highest returns the largest numeric suffix among ids and the prefix it
// was found under. Ids without a numeric suffix are ignored.
func Highest(ids []string) (prefix string, seq int, ok bool) {
	for _, id := range ids {
		p, n, valid := Split(id)
		if !valid {
			continue
		}
		if !ok || n > seq {
			prefix, seq, ok = p, n, true
		}
	}
	return prefix, seq, ok
}

// Next returns the sequence number following the highest existing one, or 1.
func Next(ids []string) int {
	_, seq, _ := Highest(ids)
	return seq + 1
}

// Format renders <prefix>-NNN.
func Format(prefix string, seq int) string {
	return fmt.Sprintf("%s-%0*d", prefix, Width, seq)
}

// Sequence hands out consecutive ids for one category.
type Sequence struct {
	prefix string
	next   int
}

// NewSequence continues after the highest id in existing. fallbackPrefix is
// used when no existing id carries a numeric suffix; an explicit prefix,
// when non-empty, always wins.
func NewSequence(existing []string, explicitPrefix, fallbackPrefix string) *Sequence {
	prefix, seq, ok := Highest(existing)
	if !ok {
		prefix = fallbackPrefix
	}
	if explicitPrefix != "" {
		prefix = explicitPrefix
	}
	return &Sequence{prefix: prefix, next: seq + 1}
}

// Prefix returns the prefix ids are issued under.
func (s *Sequence) Prefix() string { return s.prefix }

// Take issues the next id.
func (s *Sequence) Take() string {
	id := Format(s.prefix, s.next)
	s.next++
	return id
}
