package policy

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNotCompiled indicates a RuleSet was used before Compile.
var ErrNotCompiled = errors.New("policy: rule set not compiled")

// Rule is one exclusion entry: either an exact path or an anchored regular
// expression pattern. Exactly one of the two fields is set.
type Rule struct {
	// Exact matches the request path verbatim.
	Exact string

	// Pattern is a regular expression matched against the request path.
	Pattern string

	re *regexp.Regexp
}

// Exact creates an exact-path exclusion rule.
func Exact(path string) Rule {
	return Rule{Exact: path}
}

// Pattern creates a pattern exclusion rule. The expression is compiled by
// RuleSet.Compile; a malformed expression is a startup error.
func Pattern(expr string) Rule {
	return Rule{Pattern: expr}
}

// Class is the authentication mode a path resolves to.
type Class int

const (
	// ClassMandatory requires a valid user access token.
	ClassMandatory Class = iota

	// ClassExcluded skips authentication entirely.
	ClassExcluded

	// ClassOptional verifies a token when present but does not require one.
	ClassOptional

	// ClassAPIKey requires a service api-key credential instead of a user
	// token.
	ClassAPIKey
)

// String returns the class name for logs and metrics.
func (c Class) String() string {
	switch c {
	case ClassExcluded:
		return "excluded"
	case ClassOptional:
		return "optional"
	case ClassAPIKey:
		return "api_key"
	case ClassMandatory:
		return "mandatory"
	default:
		return "unknown"
	}
}

// RuleSet is the process-wide path classification and role permission
// configuration.
//
// Contract:
// - Concurrency: safe for concurrent reads after Compile; never mutated afterwards.
// - Errors: Compile reports malformed patterns; Classify never errors.
type RuleSet struct {
	// Exclusions are evaluated in declared order; first match wins. Exact
	// rules are additionally indexed for O(1) lookup.
	Exclusions []Rule

	// OptionalPaths are exact-match paths where authentication is
	// attempted but not required.
	OptionalPaths []string

	// APIKeyPrefixes are path prefixes requiring a service api-key.
	APIKeyPrefixes []string

	// RolePermissions maps a role name to its permission set.
	RolePermissions map[string][]string

	compiled bool
	exact    map[string]struct{}
	patterns []*regexp.Regexp
	optional map[string]struct{}
}

// Compile validates the rule set and builds the lookup structures. A
// malformed pattern or an empty rule is a configuration error and must
// abort startup.
func (rs *RuleSet) Compile() error {
	rs.exact = make(map[string]struct{}, len(rs.Exclusions))
	rs.patterns = rs.patterns[:0]

	for i, rule := range rs.Exclusions {
		switch {
		case rule.Exact != "" && rule.Pattern != "":
			return fmt.Errorf("policy: exclusion %d sets both exact and pattern", i)
		case rule.Exact != "":
			rs.exact[rule.Exact] = struct{}{}
		case rule.Pattern != "":
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return fmt.Errorf("policy: exclusion pattern %q: %w", rule.Pattern, err)
			}
			rs.Exclusions[i].re = re
			rs.patterns = append(rs.patterns, re)
		default:
			return fmt.Errorf("policy: exclusion %d is empty", i)
		}
	}

	rs.optional = make(map[string]struct{}, len(rs.OptionalPaths))
	for _, p := range rs.OptionalPaths {
		rs.optional[p] = struct{}{}
	}

	rs.compiled = true
	return nil
}

// Compiled reports whether Compile has run successfully.
func (rs *RuleSet) Compiled() bool {
	return rs.compiled
}

// Classify resolves a request path to its authentication mode. Precedence
// is fixed: excluded, then optional, then api-key, then mandatory.
// Classify panics if the rule set was not compiled; that is a programming
// error, not a request error.
func (rs *RuleSet) Classify(path string) Class {
	if !rs.compiled {
		panic(ErrNotCompiled)
	}

	if _, ok := rs.exact[path]; ok {
		return ClassExcluded
	}
	for _, re := range rs.patterns {
		if re.MatchString(path) {
			return ClassExcluded
		}
	}

	if _, ok := rs.optional[path]; ok {
		return ClassOptional
	}

	for _, prefix := range rs.APIKeyPrefixes {
		if strings.HasPrefix(path, prefix) {
			return ClassAPIKey
		}
	}

	return ClassMandatory
}

// Default returns the stock rule set: health and login/registration
// endpoints excluded, public resources and docs excluded by pattern, the
// profile endpoint optional, and system administration behind api keys.
func Default() *RuleSet {
	return &RuleSet{
		Exclusions: []Rule{
			Exact("/health"),
			Exact("/db/status"),
			Exact("/app/user/login/email"),
			Exact("/app/user/login/phone"),
			Exact("/app/user/login/wechat"),
			Exact("/app/user/register/email"),
			Exact("/app/user/register/phone"),
			Exact("/app/user/forgot-password"),
			Exact("/app/user/reset-password"),
			Pattern(`^/public/`),
			Pattern(`^/docs/`),
			Pattern(`^/api-docs`),
		},
		OptionalPaths:  []string{"/app/user/profile"},
		APIKeyPrefixes: []string{"/admin/system"},
		RolePermissions: map[string][]string{
			RoleAdmin: {Wildcard},
			RoleUser:  {"user:read", "user:update"},
			RoleGuest: {"user:read"},
		},
	}
}
