package search

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Mode selects how a search term is interpreted.
type Mode int

const (
	// Literal matches the term as plain text.
	Literal Mode = iota
	// Pattern matches the term as an RE2 regular expression.
	Pattern
)

func (m Mode) String() string {
	switch m {
	case Literal:
		return "literal"
	case Pattern:
		return "pattern"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "literal" or "pattern" (also "regex") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "literal", "text":
		return Literal, nil
	case "pattern", "regex", "regexp":
		return Pattern, nil
	}
	return Literal, fmt.Errorf("unknown search mode %q", s)
}

// Query describes one search.
type Query struct {
	Term          string
	CaseSensitive bool
	Mode          Mode
}

// Compile builds the regular expression for q.
// An empty term compiles to nil without error.
func Compile(q Query) (*regexp.Regexp, error) {
	if q.Term == "" {
		return nil, nil
	}
	expr := q.Term
	if q.Mode == Literal {
		expr = regexp.QuoteMeta(expr)
	}
	if !q.CaseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile %s %q: %w", q.Mode, q.Term, err)
	}
	return re, nil
}

// Match returns the ranges of every occurrence of q in runs.
// Results are ordered by From and never empty or whitespace-only.
// An invalid pattern yields no matches.
func Match(runs []TextRun, q Query) []Range {
	re, err := Compile(q)
	if err != nil || re == nil {
		return nil
	}
	return MatchRegexp(runs, re)
}

// MatchRegexp is Match with an already compiled expression.
func MatchRegexp(runs []TextRun, re *regexp.Regexp) []Range {
	var out []Range
	for _, run := range runs {
		locs := re.FindAllStringIndex(run.Text, -1)
		if len(locs) == 0 {
			continue
		}
		// Regexp offsets are bytes; positions are runes.
		runeAt, byteAt := 0, 0
		for _, loc := range locs {
			matched := run.Text[loc[0]:loc[1]]
			if strings.TrimSpace(matched) == "" {
				continue
			}
			runeAt += utf8.RuneCountInString(run.Text[byteAt:loc[0]])
			byteAt = loc[0]
			from := run.Pos + runeAt
			out = append(out, Range{From: from, To: from + utf8.RuneCountInString(matched)})
		}
	}
	return out
}
