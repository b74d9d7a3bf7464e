package fileorg

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
)

type Tag struct {
	id        uint
	name      string
	color     string
	createdAt time.Time
}

func NewTag(name, color string) (*Tag, error) {
	normalized, err := NormalizeTagName(name)
	if err != nil {
		return nil, err
	}
	color, err = normalizeColor(color)
	if err != nil {
		return nil, err
	}
	return &Tag{name: normalized, color: color, createdAt: biztime.NowUTC()}, nil
}

func ReconstructTag(id uint, name, color string, createdAt time.Time) *Tag {
	return &Tag{id: id, name: name, color: color, createdAt: createdAt}
}

func (t *Tag) ID() uint             { return t.id }
func (t *Tag) Name() string         { return t.name }
func (t *Tag) Color() string        { return t.color }
func (t *Tag) CreatedAt() time.Time { return t.createdAt }

func (t *Tag) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("tag ID is already set")
	}
	t.id = id
	return nil
}

// NormalizeTagName lower-cases and trims a tag, allowing letters, digits,
// '-', '_' and single inner spaces.
func NormalizeTagName(name string) (string, error) {
	normalized := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if normalized == "" {
		return "", fmt.Errorf("tag name is required")
	}
	if utf8.RuneCountInString(normalized) > 50 {
		return "", fmt.Errorf("tag name exceeds maximum length of 50 characters")
	}
	for _, r := range normalized {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' && r != ' ' {
			return "", fmt.Errorf("tag name contains invalid character %q", r)
		}
	}
	return normalized, nil
}

// NormalizeTagNames normalizes and de-duplicates, keeping first-seen order.
func NormalizeTagNames(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		normalized, err := NormalizeTagName(n)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out, nil
}
