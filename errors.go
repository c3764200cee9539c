package html2doc

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"
)

// Sentinel errors for library operations.
var (
	ErrHTMLParse      = errors.New("HTML parsing failed")
	ErrMarkdownEngine = errors.New("markdown engine failed")
	ErrInvalidBaseURL = errors.New("invalid base URL")
	ErrInvalidAsset   = errors.New("invalid asset root")

	// Registry errors.
	ErrNilConverter = errors.New("converter cannot be nil")
	ErrNoTagNames   = errors.New("converter declares no tag names")
	ErrNoCapability = errors.New("converter implements no conversion method")

	// Dispatch errors.
	ErrUnrecognizedTag = errors.New("unrecognized tag")

	// Policy parsing errors.
	ErrInvalidPolicy = errors.New("invalid unknown-tag policy")
)

// UnrecognizedTagError is returned when no converter matched a node and the
// configured UnknownTagPolicy is not one of the known values.
type UnrecognizedTagError struct {
	Node   *html.Node
	Policy UnknownTagPolicy
}

// Error implements the error interface.
func (e *UnrecognizedTagError) Error() string {
	return fmt.Sprintf("%v: <%s> (policy %d)", ErrUnrecognizedTag, tagName(e.Node), int(e.Policy))
}

// Is reports ErrUnrecognizedTag as the error's kind.
func (e *UnrecognizedTagError) Is(target error) bool {
	return target == ErrUnrecognizedTag
}
