package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ItemType is a named unit of shared rental stock with a total capacity.
// Every reservation line references an item type by id only.
type ItemType struct {
	ID         string
	Name       string
	TotalStock int
}

func NewItemType(name string, totalStock int) (ItemType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ItemType{}, ErrItemTypeNameRequired
	}
	if totalStock < 0 {
		return ItemType{}, ErrInvalidStock
	}
	return ItemType{
		ID:         uuid.NewString(),
		Name:       name,
		TotalStock: totalStock,
	}, nil
}

// UpdateStock replaces the total capacity. Stock never goes negative.
func (t *ItemType) UpdateStock(totalStock int) error {
	if totalStock < 0 {
		return ErrInvalidStock
	}
	t.TotalStock = totalStock
	return nil
}
