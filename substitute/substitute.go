package substitute

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/Uniswap/lp-action-contracts/types"

	errorsmod "cosmossdk.io/errors"
)

// Options tune how placeholder misses are handled.
type Options struct {
	// AllowMissing turns a placeholder absent from the text into a no-op
	// instead of an error.
	AllowMissing bool
}

// Entry describes the outcome for one placeholder.
type Entry struct {
	Name    string
	Matches int
	Changed bool
}

// Report lists the outcome of every placeholder, sorted by name.
type Report struct {
	Entries []Entry
}

// Changed returns the names whose literal content was replaced by a different value.
func (r Report) Changed() []string {
	var names []string
	for _, e := range r.Entries {
		if e.Changed {
			names = append(names, e.Name)
		}
	}
	return names
}

// Missing returns the names that had no match in the text.
func (r Report) Missing() []string {
	var names []string
	for _, e := range r.Entries {
		if e.Matches == 0 {
			names = append(names, e.Name)
		}
	}
	return names
}

// span is the quoted region of one `<Name> = hex'...'` assignment.
type span struct {
	name       string
	start, end int
}

// Pattern returns the expression matching the assignment of name. The first
// submatch is the quoted hex content, which never spans a line break.
func Pattern(name string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(name) + ` = hex'([^'\n]*)'`)
}

// Apply replaces the quoted content of every `<Name> = hex'...'` assignment
// with values[Name]. Only the quoted spans change; every other byte of text
// is kept. All spans are located in the input before anything is replaced,
// so one placeholder can never alter the region of another.
func Apply(text string, values map[string]string, opts Options) (string, Report, error) {
	names := make([]string, 0, len(values))
	for name, value := range values {
		if name == "" {
			return "", Report{}, errorsmod.Wrap(types.ErrInvalidConfig, "empty placeholder name")
		}
		if err := validateHex(value); err != nil {
			return "", Report{}, errorsmod.Wrapf(types.ErrMalformedArtifact, "%s: replacement: %s", name, err)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		report Report
		spans  []span
	)
	for _, name := range names {
		found := find(text, name)

		switch {
		case len(found) == 0 && !opts.AllowMissing:
			return "", Report{}, errorsmod.Wrapf(types.ErrPatternMiss, "%s = hex'...'", name)
		case len(found) > 1:
			return "", Report{}, errorsmod.Wrapf(types.ErrAmbiguousPattern, "%s = hex'...' occurs %d times", name, len(found))
		}

		entry := Entry{Name: name, Matches: len(found)}
		for _, s := range found {
			if text[s.start:s.end] != values[name] {
				entry.Changed = true
			}
		}
		report.Entries = append(report.Entries, entry)
		spans = append(spans, found...)
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return "", Report{}, errorsmod.Wrapf(
				types.ErrAmbiguousPattern, "%s overlaps %s", spans[i].name, spans[i-1].name,
			)
		}
	}

	var (
		b    strings.Builder
		last int
	)
	b.Grow(len(text))
	for _, s := range spans {
		b.WriteString(text[last:s.start])
		b.WriteString(values[s.name])
		last = s.end
	}
	b.WriteString(text[last:])

	return b.String(), report, nil
}

// find returns the quoted spans of every assignment to name. A match directly
// preceded by an identifier character belongs to a longer identifier and is
// ignored.
func find(text, name string) []span {
	var spans []span
	for _, m := range Pattern(name).FindAllStringSubmatchIndex(text, -1) {
		if m[0] > 0 && isIdentByte(text[m[0]-1]) {
			continue
		}
		spans = append(spans, span{name: name, start: m[2], end: m[3]})
	}
	return spans
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// validateHex applies the same rules the artifact loader does: non-empty,
// even-length hex digits without a prefix.
func validateHex(digits string) error {
	if digits == "" {
		return hexutil.ErrEmptyString
	}
	_, err := hexutil.Decode(types.HexPrefix + digits)
	return err
}
