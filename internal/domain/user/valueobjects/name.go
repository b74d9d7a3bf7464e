package valueobjects

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// Name is a display name with collapsed whitespace, title-cased.
type Name struct {
	value string
}

func NewName(value string) (*Name, error) {
	normalized := strings.Join(strings.Fields(value), " ")

	n := utf8.RuneCountInString(normalized)
	if n == 0 {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if n < 2 {
		return nil, fmt.Errorf("name must be at least 2 characters long")
	}
	if n > 100 {
		return nil, fmt.Errorf("name cannot exceed 100 characters")
	}
	for _, r := range normalized {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && !strings.ContainsRune("-'.", r) {
			return nil, fmt.Errorf("name contains invalid characters: %s", value)
		}
	}

	return &Name{value: titleCaser.String(normalized)}, nil
}

func (n *Name) String() string {
	return n.value
}
