package policies

import (
	"fmt"
	"path"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"efr32-build/internal/types"
)

// OptionPolicy derives configure flags from target names. Every rule flag is
// emitted, ON when at least one target matches one of the flag's rules.
type OptionPolicy struct {
	Rules []types.OptionRule
	flags []string
	rules []compiledRule
}

type compiledRule struct {
	kind    patternKind
	pattern string
	flag    int
}

type patternKind int

const (
	patternExact patternKind = iota
	patternPrefix
	patternSuffix
	patternWildcard
	patternGlob
	patternInvalid
)

func NewOptionPolicy(rules []types.OptionRule) (OptionPolicy, error) {
	policy := OptionPolicy{Rules: rules}
	if err := policy.compile(); err != nil {
		return OptionPolicy{}, err
	}
	return policy, nil
}

// Enabled reports, per flag, whether any target matches a rule for it.
// Flags combine by OR, so adding a target never turns a flag off.
func (p OptionPolicy) Enabled(targets []string) map[string]bool {
	enabled := make(map[string]bool, len(p.flags))
	for _, flag := range p.flags {
		enabled[flag] = false
	}
	for _, rule := range p.rules {
		flag := p.flags[rule.flag]
		if enabled[flag] {
			continue
		}
		for _, target := range targets {
			if rule.matches(target) {
				enabled[flag] = true
				break
			}
		}
	}
	return enabled
}

// Options renders the rule flags as -D<flag>=ON|OFF definitions.
func (p OptionPolicy) Options(targets []string) []string {
	enabled := p.Enabled(targets)
	options := make([]string, 0, len(p.flags))
	for _, flag := range p.flags {
		options = append(options, Define(flag, enabled[flag]))
	}
	return options
}

func Define(flag string, on bool) string {
	if on {
		return fmt.Sprintf("-D%s=ON", flag)
	}
	return fmt.Sprintf("-D%s=OFF", flag)
}

func (r compiledRule) matches(target string) bool {
	switch r.kind {
	case patternExact:
		return target == r.pattern
	case patternPrefix:
		return strings.HasPrefix(target, r.pattern)
	case patternSuffix:
		return strings.HasSuffix(target, r.pattern)
	case patternWildcard:
		return true
	case patternGlob:
		ok, err := path.Match(r.pattern, target)
		return err == nil && ok
	default:
		return false
	}
}

func (p *OptionPolicy) compile() error {
	index := map[string]int{}
	p.flags = nil
	p.rules = nil
	for _, rule := range p.Rules {
		flag := strings.TrimSpace(rule.Flag)
		if flag == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("option rule %q has no flag", rule.Match))
		}
		pattern, kind := parseTargetPattern(rule.Match)
		if kind == patternInvalid {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid target pattern %q for %s", rule.Match, flag))
		}
		idx, ok := index[flag]
		if !ok {
			idx = len(p.flags)
			index[flag] = idx
			p.flags = append(p.flags, flag)
		}
		p.rules = append(p.rules, compiledRule{kind: kind, pattern: pattern, flag: idx})
	}
	return nil
}

func parseTargetPattern(value string) (string, patternKind) {
	pattern := strings.TrimSpace(value)
	if pattern == "" {
		return "", patternInvalid
	}
	if pattern == "*" {
		return "", patternWildcard
	}
	inner := strings.Trim(pattern, "*")
	if !strings.ContainsAny(inner, "*?[\\") {
		switch {
		case strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*"):
			return pattern, validGlob(pattern)
		case strings.HasPrefix(pattern, "*"):
			return inner, patternSuffix
		case strings.HasSuffix(pattern, "*"):
			return inner, patternPrefix
		case !strings.ContainsAny(pattern, "?["):
			return pattern, patternExact
		}
	}
	return pattern, validGlob(pattern)
}

func validGlob(pattern string) patternKind {
	if _, err := path.Match(pattern, ""); err != nil {
		return patternInvalid
	}
	return patternGlob
}
