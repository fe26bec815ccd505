package category

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrEmptyName   = errors.New("category name cannot be empty")
	ErrNameTooLong = errors.New("category name is too long (max 100 characters)")
)

const MaxNameLength = 100

type Category struct {
	id          uuid.UUID
	name        string
	description string
	createdAt   time.Time
}

func NewCategory(name, description string, now time.Time) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}
	return &Category{
		id:          uuid.New(),
		name:        name,
		description: strings.TrimSpace(description),
		createdAt:   now,
	}, nil
}

func ReconstructCategory(id uuid.UUID, name, description string, createdAt time.Time) *Category {
	return &Category{id: id, name: name, description: description, createdAt: createdAt}
}

func (c *Category) ID() uuid.UUID        { return c.id }
func (c *Category) Name() string         { return c.name }
func (c *Category) Description() string  { return c.description }
func (c *Category) CreatedAt() time.Time { return c.createdAt }
