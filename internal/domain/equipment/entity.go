package equipment

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("equipment name cannot be empty")
	ErrNameTooLong     = errors.New("equipment name is too long (max 200 characters)")
	ErrNegativeStock   = errors.New("total quantity cannot be negative")
	ErrAlreadyDeleted  = errors.New("equipment is already deleted")
	ErrNotReservable   = errors.New("equipment is not available for reservation")
	ErrDescriptionSize = errors.New("equipment description is too long")
)

const (
	MaxNameLength        = 200
	MaxDescriptionLength = 4000
)

// Stock is the capacity view handed to the availability engine.
type Stock struct {
	Total     int
	Unlimited bool
}

type Equipment struct {
	id            uuid.UUID
	name          string
	description   string
	categoryID    *uuid.UUID
	totalQuantity int
	isUnlimited   bool
	isActive      bool
	isDeleted     bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewEquipment(name, description string, categoryID *uuid.UUID, stock Stock, now time.Time) (*Equipment, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if stock.Total < 0 {
		return nil, ErrNegativeStock
	}

	return &Equipment{
		id:            uuid.New(),
		name:          name,
		description:   strings.TrimSpace(description),
		categoryID:    categoryID,
		totalQuantity: stock.Total,
		isUnlimited:   stock.Unlimited,
		isActive:      true,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructEquipment(
	id uuid.UUID,
	name, description string,
	categoryID *uuid.UUID,
	stock Stock,
	isActive, isDeleted bool,
	createdAt, updatedAt time.Time,
) *Equipment {
	return &Equipment{
		id:            id,
		name:          name,
		description:   description,
		categoryID:    categoryID,
		totalQuantity: stock.Total,
		isUnlimited:   stock.Unlimited,
		isActive:      isActive,
		isDeleted:     isDeleted,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (e *Equipment) ID() uuid.UUID          { return e.id }
func (e *Equipment) Name() string           { return e.name }
func (e *Equipment) Description() string    { return e.description }
func (e *Equipment) CategoryID() *uuid.UUID { return e.categoryID }
func (e *Equipment) TotalQuantity() int     { return e.totalQuantity }
func (e *Equipment) IsUnlimited() bool      { return e.isUnlimited }
func (e *Equipment) IsActive() bool         { return e.isActive }
func (e *Equipment) IsDeleted() bool        { return e.isDeleted }
func (e *Equipment) CreatedAt() time.Time   { return e.createdAt }
func (e *Equipment) UpdatedAt() time.Time   { return e.updatedAt }

func (e *Equipment) Stock() Stock {
	return Stock{Total: e.totalQuantity, Unlimited: e.isUnlimited}
}

func (e *Equipment) IsReservable() bool {
	return e.isActive && !e.isDeleted
}

func (e *Equipment) Rename(name, description string, categoryID *uuid.UUID, now time.Time) error {
	if e.isDeleted {
		return ErrAlreadyDeleted
	}
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	if err := validateDescription(description); err != nil {
		return err
	}
	e.name = name
	e.description = strings.TrimSpace(description)
	e.categoryID = categoryID
	e.updatedAt = now
	return nil
}

// SetStock changes capacity. Existing reservations are left untouched even if they now exceed it.
func (e *Equipment) SetStock(stock Stock, now time.Time) error {
	if e.isDeleted {
		return ErrAlreadyDeleted
	}
	if stock.Total < 0 {
		return ErrNegativeStock
	}
	e.totalQuantity = stock.Total
	e.isUnlimited = stock.Unlimited
	e.updatedAt = now
	return nil
}

func (e *Equipment) SetActive(active bool, now time.Time) error {
	if e.isDeleted {
		return ErrAlreadyDeleted
	}
	e.isActive = active
	e.updatedAt = now
	return nil
}

func (e *Equipment) SoftDelete(now time.Time) error {
	if e.isDeleted {
		return ErrAlreadyDeleted
	}
	e.isDeleted = true
	e.isActive = false
	e.updatedAt = now
	return nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return ErrDescriptionSize
	}
	return nil
}
