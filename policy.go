package html2doc

import (
	"fmt"
	"strings"
)

// UnknownTagPolicy selects what happens to an element no converter claims.
type UnknownTagPolicy int

const (
	// PassThrough keeps the element's serialized markup as a RawBlock or RawInline.
	PassThrough UnknownTagPolicy = iota
	// Drop discards the element and its children.
	Drop
	// Bypass ignores the wrapping tag and converts its children in place.
	Bypass
)

// String returns the policy name used in configuration files and flags.
func (p UnknownTagPolicy) String() string {
	switch p {
	case PassThrough:
		return "pass-through"
	case Drop:
		return "drop"
	case Bypass:
		return "bypass"
	default:
		return fmt.Sprintf("UnknownTagPolicy(%d)", int(p))
	}
}

// PolicyNames lists the accepted policy names.
var PolicyNames = []string{"pass-through", "drop", "bypass"}

// ParseUnknownTagPolicy converts a policy name to its value.
// Matching ignores case, and "passthrough" is accepted as an alias.
func ParseUnknownTagPolicy(s string) (UnknownTagPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pass-through", "passthrough":
		return PassThrough, nil
	case "drop":
		return Drop, nil
	case "bypass":
		return Bypass, nil
	default:
		return 0, fmt.Errorf("%w: %q (must be one of %s)", ErrInvalidPolicy, s, strings.Join(PolicyNames, ", "))
	}
}
