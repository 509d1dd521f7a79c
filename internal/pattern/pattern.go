// Package pattern compiles user-supplied "magic" search patterns.
//
// A pattern wrapped in slashes, like /^git (push|pull)/, is a regular
// expression. Anything else matches as a literal substring.
package pattern

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"slices"
	"strings"

	hgreperrors "github.com/chazuruo/hgrep/internal/errors"
)

// Delimiter marks a pattern as a regular expression when it is both the
// first and the last character.
const Delimiter = "/"

// CaseMode selects case-sensitive or case-insensitive matching.
type CaseMode int

const (
	// Insensitive ignores case when matching.
	Insensitive CaseMode = iota
	// Sensitive matches case exactly.
	Sensitive
)

// CaseModeFromSensitive maps a --case-sensitive style flag to a CaseMode.
func CaseModeFromSensitive(sensitive bool) CaseMode {
	if sensitive {
		return Sensitive
	}
	return Insensitive
}

// ParseCaseMode parses "sensitive" or "insensitive".
func ParseCaseMode(s string) (CaseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sensitive":
		return Sensitive, nil
	case "insensitive", "":
		return Insensitive, nil
	default:
		return Insensitive, fmt.Errorf("case mode must be one of: sensitive, insensitive; got %q: %w", s, hgreperrors.ErrInvalid)
	}
}

func (m CaseMode) String() string {
	if m == Sensitive {
		return "sensitive"
	}
	return "insensitive"
}

// Pattern is a compiled search pattern. It is safe for concurrent use.
type Pattern struct {
	raw     string
	isRegex bool
	mode    CaseMode
	re      *regexp.Regexp
}

// Compile compiles raw under mode. A raw string of at least two characters
// that starts and ends with Delimiter is compiled as a regular expression
// from its interior, unchanged. Every other string is escaped and matches
// only literally. A malformed regular expression yields a *PatternError.
func Compile(raw string, mode CaseMode) (*Pattern, error) {
	expr, isRegex := regexBody(raw)
	if !isRegex {
		expr = regexp.QuoteMeta(raw)
	}
	if isRegex {
		var err error
		if expr, err = unicodeClasses(expr, mode); err != nil {
			return nil, &hgreperrors.PatternError{Pattern: raw, Err: err}
		}
	}
	re, err := build(expr, mode)
	if err != nil {
		return nil, &hgreperrors.PatternError{Pattern: raw, Err: err}
	}
	return &Pattern{raw: raw, isRegex: isRegex, mode: mode, re: re}, nil
}

// Literal compiles word as a literal substring pattern, ignoring any
// delimiters. It cannot fail.
func Literal(word string, mode CaseMode) *Pattern {
	re, err := build(regexp.QuoteMeta(word), mode)
	if err != nil {
		// QuoteMeta output is always a valid expression.
		panic(fmt.Sprintf("pattern: literal %q did not compile: %v", word, err))
	}
	return &Pattern{raw: word, mode: mode, re: re}
}

// CompileAll compiles every raw string in order and stops at the first failure.
func CompileAll(raws []string, mode CaseMode) ([]*Pattern, error) {
	patterns := make([]*Pattern, 0, len(raws))
	for _, raw := range raws {
		p, err := Compile(raw, mode)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// Words splits text on whitespace and compiles each word as a literal.
// An empty or blank text yields no patterns.
func Words(text string, mode CaseMode) []*Pattern {
	fields := strings.Fields(text)
	patterns := make([]*Pattern, 0, len(fields))
	for _, word := range fields {
		patterns = append(patterns, Literal(word, mode))
	}
	return patterns
}

// MatchString reports whether the pattern matches anywhere in s.
func (p *Pattern) MatchString(s string) bool {
	return p.re.MatchString(s)
}

// String returns the raw pattern as supplied.
func (p *Pattern) String() string { return p.raw }

// IsRegex reports whether the pattern was compiled as a regular expression.
func (p *Pattern) IsRegex() bool { return p.isRegex }

// CaseMode returns the case mode the pattern was compiled with.
func (p *Pattern) CaseMode() CaseMode { return p.mode }

// Expr returns the expression handed to the regexp engine.
func (p *Pattern) Expr() string { return p.re.String() }

func regexBody(raw string) (string, bool) {
	if len(raw) >= 2 && strings.HasPrefix(raw, Delimiter) && strings.HasSuffix(raw, Delimiter) {
		return raw[1 : len(raw)-1], true
	}
	return "", false
}

func build(expr string, mode CaseMode) (*regexp.Regexp, error) {
	return regexp.Compile(modePrefix(mode) + expr)
}

func modePrefix(mode CaseMode) string {
	if mode == Insensitive {
		return "(?i)"
	}
	return ""
}

// classRewrite replaces a parsed character class with the given runes.
type classRewrite struct {
	from []rune
	to   []rune
}

// perlClasses maps the ASCII-only Perl classes to their Unicode meaning.
var perlClasses = [][2]string{
	{`\w`, `[\p{L}\p{N}\p{Mn}\p{Pc}]`},
	{`\W`, `[^\p{L}\p{N}\p{Mn}\p{Pc}]`},
	{`\d`, `\p{Nd}`},
	{`\D`, `\P{Nd}`},
	{`\s`, `[\t\n\v\f\r \x{85}\p{Z}]`},
	{`\S`, `[^\t\n\v\f\r \x{85}\p{Z}]`},
}

var classRewrites = map[CaseMode][]classRewrite{
	Sensitive:   newClassRewrites(Sensitive),
	Insensitive: newClassRewrites(Insensitive),
}

func newClassRewrites(mode CaseMode) []classRewrite {
	out := make([]classRewrite, 0, len(perlClasses))
	for _, pc := range perlClasses {
		out = append(out, classRewrite{
			from: classRunes(modePrefix(mode) + pc[0]),
			to:   classRunes(modePrefix(mode) + pc[1]),
		})
	}
	return out
}

func classRunes(expr string) []rune {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil || re.Op != syntax.OpCharClass {
		panic(fmt.Sprintf("pattern: %q is not a character class", expr))
	}
	return slices.Clone(re.Rune)
}

// unicodeClasses rewrites \w, \d, \s and their negations in expr to match
// Unicode letters, digits and spaces. RE2 defines them over ASCII only.
// A class that the parser merged with other characters, such as [\w-],
// keeps its ASCII meaning, and \b stays ASCII-based.
func unicodeClasses(expr string, mode CaseMode) (string, error) {
	re, err := syntax.Parse(modePrefix(mode)+expr, syntax.Perl)
	if err != nil {
		return "", err
	}
	if !widenClasses(re, classRewrites[mode]) {
		return expr, nil
	}
	// The printed expression carries its own case flags.
	if mode == Insensitive {
		return "(?-i:" + re.String() + ")", nil
	}
	return re.String(), nil
}

func widenClasses(re *syntax.Regexp, rewrites []classRewrite) bool {
	changed := false
	if re.Op == syntax.OpCharClass {
		for _, rw := range rewrites {
			if slices.Equal(re.Rune, rw.from) {
				re.Rune = slices.Clone(rw.to)
				changed = true
				break
			}
		}
	}
	for _, sub := range re.Sub {
		if widenClasses(sub, rewrites) {
			changed = true
		}
	}
	return changed
}
