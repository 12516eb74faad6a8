package rewrite

import (
	"errors"
	"fmt"
)

var (
	// Reasons a tag or attribute name is rejected. TagNameError and
	// AttributeNameError unwrap to one of these.
	ErrNameEmpty         = errors.New("name is empty")
	ErrNameFirstChar     = errors.New("name must start with an ascii letter")
	ErrNameForbiddenChar = errors.New("name contains a forbidden character")
	ErrNameUnencodable   = errors.New("name is not representable in the document encoding")

	ErrTokenize = errors.New("tokenize")
)

// NameErrorKind classifies a rejected name.
type NameErrorKind int

const (
	NameEmpty NameErrorKind = iota
	InvalidFirstCharacter
	ForbiddenCharacter
	UnencodableCharacter
)

func (k NameErrorKind) sentinel() error {
	switch k {
	case NameEmpty:
		return ErrNameEmpty
	case InvalidFirstCharacter:
		return ErrNameFirstChar
	case ForbiddenCharacter:
		return ErrNameForbiddenChar
	default:
		return ErrNameUnencodable
	}
}

// TagNameError is returned when renaming a tag fails. The tag keeps its
// previous name.
type TagNameError struct {
	Kind NameErrorKind
	Name string
	// Char is the offending rune for ForbiddenCharacter and
	// UnencodableCharacter.
	Char rune
}

func (e *TagNameError) Error() string {
	return nameErrorString("tag", e.Kind, e.Name, e.Char)
}

func (e *TagNameError) Unwrap() error {
	return e.Kind.sentinel()
}

// AttributeNameError is returned when setting an attribute fails because of
// its name. The attribute set is unchanged.
type AttributeNameError struct {
	Kind NameErrorKind
	Name string
	Char rune
}

func (e *AttributeNameError) Error() string {
	return nameErrorString("attribute", e.Kind, e.Name, e.Char)
}

func (e *AttributeNameError) Unwrap() error {
	return e.Kind.sentinel()
}

func nameErrorString(what string, k NameErrorKind, name string, c rune) string {
	switch k {
	case ForbiddenCharacter, UnencodableCharacter:
		return fmt.Sprintf("invalid %s name %q: %s: %q", what, name, k.sentinel(), c)
	}
	return fmt.Sprintf("invalid %s name %q: %s", what, name, k.sentinel())
}
