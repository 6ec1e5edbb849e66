// Package validator implements spec §4.5's semantic validator: a pass over
// a parsed AST that checks meaning rather than grammar — group name
// resolution, reference bounds, lookbehind length, quantifier and range
// sanity, flag consistency, and version gating — producing a structured
// ValidationResult rather than raising on every finding.
package validator

import (
	"strconv"
	"strings"

	"github.com/yoeunes/regexlab/internal/ast"
	"github.com/yoeunes/regexlab/internal/diag"
	"github.com/yoeunes/regexlab/internal/probe"
)

const scriptRunMinVersion = "10.34"

type validator struct {
	root  *ast.Regex
	body  []byte
	cfg   Config
	reg   *nameRegistry
	diags []Diagnostic
}

// Validate runs every rule in spec §4.5 against root and returns a
// structured Result. body is the original source (delimiters included) so
// diagnostics can render a caret snippet at the right offset.
func Validate(root *ast.Regex, body []byte, cfg Config) Result {
	v := &validator{root: root, body: body, cfg: cfg}
	v.reg = buildNameRegistry(root)

	v.checkNames()
	v.checkNumericRefs()
	v.checkLookbehinds()
	v.checkQuantifierBounds()
	v.checkRanges()
	v.checkFlags()
	v.checkVersionGating()

	if cfg.RuntimeProbe && v.firstError() == nil {
		v.checkRuntimeProbe()
	}

	complexity := complexityScore(root)
	return buildResult(v.diags, complexity)
}

func (v *validator) firstError() *Diagnostic {
	for i := range v.diags {
		if v.diags[i].Severity == SeverityError {
			return &v.diags[i]
		}
	}
	return nil
}

func (v *validator) report(sev Severity, cat diag.Category, code string, offset int, hint, message string) {
	// v.body still carries the one-byte opening delimiter; AST offsets are
	// relative to the pattern body that follows it.
	v.diags = append(v.diags, Diagnostic{
		Code:     code,
		Severity: sev,
		Category: cat,
		Offset:   offset,
		Snippet:  diag.Snippet(v.body, offset+1),
		Hint:     hint,
		Message:  message,
	})
}

func (v *validator) allowsDuplicateNames() bool {
	if strings.Contains(v.root.Flags, "J") {
		return true
	}
	found := false
	ast.Walk(v.root, func(n ast.Node) bool {
		if found {
			return false
		}
		if g, ok := n.(*ast.Group); ok && g.GroupType == ast.GroupInlineFlags && strings.Contains(g.FlagsSet, "J") {
			found = true
			return false
		}
		return true
	})
	return found
}

// checkNames enforces the group-name registry rules: duplicate names are
// rejected unless J is set, and every \k<name>/\g<name>/(?&name) reference
// must resolve, with an edit-distance-1 suggestion when it doesn't.
func (v *validator) checkNames() {
	if !v.allowsDuplicateNames() {
		for name, infos := range v.reg.byName {
			if len(infos) > 1 {
				for _, dup := range infos[1:] {
					v.report(SeverityError, diag.CategorySemantic, "regex.semantic.duplicate-group-name",
						dup.offset, "set the J flag or (?J) to allow duplicate names",
						"duplicate capture group name "+strconv.Quote(name))
				}
			}
		}
	}

	ast.Walk(v.root, func(n ast.Node) bool {
		var name string
		var offset int
		switch x := n.(type) {
		case *ast.Backref:
			if x.Name == "" {
				return true
			}
			name, offset = x.Name, x.Span().Start
		case *ast.Subroutine:
			if x.Name == "" || x.Whole {
				return true
			}
			name, offset = x.Name, x.Span().Start
		default:
			return true
		}
		if !v.reg.has(name) {
			hint := ""
			if s := v.reg.suggest(name); s != "" {
				hint = "did you mean " + strconv.Quote(s) + "?"
			}
			v.report(SeverityError, diag.CategorySemantic, "regex.semantic.unknown-group-name",
				offset, hint, "reference to undefined group name "+strconv.Quote(name))
		}
		return true
	})
}

// checkNumericRefs checks that every numeric reference names an existing
// capture group: \N and \g{N} against the total capture count, \g{-n}
// against the groups opened before the reference. The parser has already
// turned \g{+n} into an absolute number.
func (v *validator) checkNumericRefs() {
	opened := 0
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		if b, ok := n.(*ast.Backref); ok && b.Name == "" {
			resolved := b.Number
			if resolved < 0 {
				resolved = opened + 1 + resolved
			}
			if resolved < 1 || resolved > v.reg.maxNumber {
				v.report(SeverityError, diag.CategorySemantic, "regex.semantic.unknown-group-number",
					b.Span().Start, "", "reference to undefined capture group "+strconv.Itoa(b.Number))
			}
		}
		if g, ok := n.(*ast.Group); ok && g.Number > 0 {
			opened++
		}
		for _, c := range ast.Children(n) {
			walk(c)
		}
	}
	walk(v.root)
}

// checkLookbehinds enforces spec §4.5's statically-computed length bound
// on every lookbehind alternative.
func (v *validator) checkLookbehinds() {
	limit := v.cfg.MaxLookbehindLength
	lim, explicit := explicitLookbehindLimit(v.root)
	if explicit {
		limit = lim
	}
	ast.Walk(v.root, func(n ast.Node) bool {
		g, ok := n.(*ast.Group)
		if !ok {
			return true
		}
		if g.GroupType != ast.GroupLookbehindPositive && g.GroupType != ast.GroupLookbehindNegative {
			return true
		}
		branches := []ast.Node{g.Child}
		if alt, ok := g.Child.(*ast.Alternation); ok {
			branches = alt.Alternatives
		}
		for _, branch := range branches {
			length, bounded, disqualifier := lookbehindLength(branch)
			if !bounded {
				if explicit {
					continue
				}
				offset := g.Span().Start
				if disqualifier != nil {
					offset = disqualifier.Span().Start
				}
				v.report(SeverityError, diag.CategorySemantic, "regex.semantic.unbounded-lookbehind",
					offset, "precede the pattern with (*LIMIT_LOOKBEHIND=n) or bound the quantifier",
					"lookbehind alternative has no statically computable maximum length")
				continue
			}
			if length > limit {
				v.report(SeverityError, diag.CategorySemantic, "regex.semantic.lookbehind-too-long",
					g.Span().Start, "", "lookbehind alternative length "+strconv.Itoa(length)+
						" exceeds the configured limit "+strconv.Itoa(limit))
			}
		}
		return true
	})
}

// explicitLookbehindLimit looks for a leading (*LIMIT_LOOKBEHIND=n) verb.
func explicitLookbehindLimit(root *ast.Regex) (int, bool) {
	found := false
	limit := 0
	ast.Walk(root, func(n ast.Node) bool {
		if found {
			return false
		}
		if verb, ok := n.(*ast.PcreVerb); ok && verb.Name == "LIMIT_LOOKBEHIND" {
			if n, err := strconv.Atoi(verb.Arg); err == nil {
				limit = n
				found = true
				return false
			}
		}
		return true
	})
	return limit, found
}

// checkQuantifierBounds enforces {m,n} with m <= n, flagging {0,0} as
// informational rather than an error.
func (v *validator) checkQuantifierBounds() {
	ast.Walk(v.root, func(n ast.Node) bool {
		q, ok := n.(*ast.Quantifier)
		if !ok {
			return true
		}
		if q.Max >= 0 && q.Min > q.Max {
			v.report(SeverityError, diag.CategorySemantic, "regex.semantic.bad-quantifier-bounds",
				q.Span().Start, "", "quantifier lower bound "+strconv.Itoa(q.Min)+
					" exceeds upper bound "+strconv.Itoa(q.Max))
			return true
		}
		if q.Min == 0 && q.Max == 0 {
			v.report(SeverityInfo, diag.CategorySemantic, "regex.semantic.empty-quantifier",
				q.Span().Start, "", "{0,0} always matches the empty string")
		}
		return true
	})
}

// checkRanges enforces start <= end in class ranges, and warns on ranges
// that cross an ASCII case boundary like [A-z].
func (v *validator) checkRanges() {
	ast.Walk(v.root, func(n ast.Node) bool {
		r, ok := n.(*ast.Range)
		if !ok {
			return true
		}
		startCp, startOk := codepointOf(r.Start)
		endCp, endOk := codepointOf(r.End)
		if !startOk || !endOk {
			return true
		}
		if startCp > endCp {
			v.report(SeverityError, diag.CategorySemantic, "regex.semantic.invalid-range",
				r.Span().Start, "", "character range start exceeds its end")
			return true
		}
		if crossesCaseBoundary(startCp, endCp) {
			v.report(SeverityWarn, diag.CategorySemantic, "regex.semantic.range-crosses-case",
				r.Span().Start, "did you mean two separate ranges?",
				"range spans non-alphabetic characters between uppercase and lowercase letters")
		}
		return true
	})
}

func codepointOf(n ast.Node) (rune, bool) {
	switch x := n.(type) {
	case *ast.Literal:
		if len(x.Bytes) == 0 {
			return 0, false
		}
		return rune(x.Bytes[0]), true
	case *ast.CharLiteral:
		return x.CodePoint, true
	}
	return 0, false
}

func crossesCaseBoundary(start, end rune) bool {
	isUpper := func(r rune) bool { return r >= 'A' && r <= 'Z' }
	isLower := func(r rune) bool { return r >= 'a' && r <= 'z' }
	return (isUpper(start) && isLower(end)) || (isLower(start) && isUpper(end))
}

var knownFlags = map[byte]bool{
	'i': true, 'm': true, 's': true, 'x': true, 'u': true,
	'U': true, 'J': true, 'n': true, 'X': true, 'A': true, 'D': true,
}

// checkFlags rejects unknown flag bytes and inline-flag scopes that both
// set and unset the same flag.
func (v *validator) checkFlags() {
	for i := 0; i < len(v.root.Flags); i++ {
		f := v.root.Flags[i]
		if !knownFlags[f] {
			v.report(SeverityError, diag.CategorySyntax, "regex.semantic.unknown-flag",
				v.root.Span().Start, "", "unknown pattern flag "+strconv.QuoteRune(rune(f)))
		}
	}
	ast.Walk(v.root, func(n ast.Node) bool {
		g, ok := n.(*ast.Group)
		if !ok || g.GroupType != ast.GroupInlineFlags {
			return true
		}
		for i := 0; i < len(g.FlagsSet); i++ {
			f := g.FlagsSet[i]
			if !knownFlags[f] {
				v.report(SeverityError, diag.CategorySyntax, "regex.semantic.unknown-flag",
					g.Span().Start, "", "unknown inline flag "+strconv.QuoteRune(rune(f)))
			}
			if strings.IndexByte(g.FlagsUnset, f) >= 0 {
				v.report(SeverityError, diag.CategorySemantic, "regex.semantic.flag-set-and-unset",
					g.Span().Start, "", "flag "+strconv.QuoteRune(rune(f))+" is both set and unset in the same scope")
			}
		}
		return true
	})
}

// checkVersionGating rejects version-dependent constructs — script runs
// and explicit (?(VERSION...)) conditions — newer than cfg.TargetVersion.
func (v *validator) checkVersionGating() {
	ast.Walk(v.root, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.ScriptRun:
			if versionLess(v.cfg.TargetVersion, scriptRunMinVersion) {
				v.report(SeverityError, diag.CategorySemantic, "regex.semantic.version-gated-feature",
					x.Span().Start, "", "script-run groups require PCRE2 >= "+scriptRunMinVersion)
			}
		case *ast.VersionCondition:
			if x.Operator == ">=" && versionLess(v.cfg.TargetVersion, x.Version) {
				v.report(SeverityInfo, diag.CategorySemantic, "regex.semantic.version-condition-false",
					x.Span().Start, "", "target version "+v.cfg.TargetVersion+" does not satisfy >= "+x.Version)
			}
		}
		return true
	})
}

// versionLess compares two "major.minor" strings; malformed input compares
// as not-less so gating fails open rather than spuriously rejecting.
func versionLess(a, b string) bool {
	pa, oka := parseVersion(a)
	pb, okb := parseVersion(b)
	if !oka || !okb {
		return false
	}
	if pa[0] != pb[0] {
		return pa[0] < pb[0]
	}
	return pa[1] < pb[1]
}

func parseVersion(s string) ([2]int, bool) {
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return [2]int{}, false
	}
	major, err1 := strconv.Atoi(parts[0])
	minor, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return [2]int{}, false
	}
	return [2]int{major, minor}, true
}

// checkRuntimeProbe submits the whole pattern to the host engine as a
// compile-only oracle, surfacing a category=runtime diagnostic on
// rejection. Only runs once the static passes already agree the pattern
// is otherwise clean, matching spec's "optional cross-check" framing.
func (v *validator) checkRuntimeProbe() {
	if err := probe.RuntimePcreValidation(v.root.Body, v.root.Flags); err != nil {
		v.report(SeverityError, diag.CategoryRuntime, "regex.runtime.host-engine-rejected",
			v.root.Span().Start, "", err.Error())
	}
}

// complexityScore is a coarse structural size metric: total node count
// plus one extra point per quantifier (three for an unbounded one) and per
// capturing group, since both
// are the dominant contributors to parse/automaton cost.
func complexityScore(root *ast.Regex) int {
	score := 0
	ast.Walk(root, func(n ast.Node) bool {
		score++
		switch x := n.(type) {
		case *ast.Quantifier:
			score++
			if x.Max < 0 {
				score += 2 // unbounded repetition weighs more
			}
		case *ast.Group:
			if x.Number > 0 {
				score++
			}
		}
		return true
	})
	return score
}
