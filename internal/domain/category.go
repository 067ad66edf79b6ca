package domain

import (
	"strings"

	"github.com/google/uuid"
)

// CategoryItem is one line of a category's bundle: how many units of an item
// type a reservation of this category consumes.
type CategoryItem struct {
	ID            string
	KitCategoryID string
	ItemTypeID    string
	Quantity      int
}

// KitCategory is a bundle template. Editing it never touches existing
// reservations; their item snapshots were copied at reservation time.
type KitCategory struct {
	ID    string
	Name  string
	Items []CategoryItem
}

func NewKitCategory(name string) (KitCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return KitCategory{}, ErrCategoryNameRequired
	}
	return KitCategory{
		ID:   uuid.NewString(),
		Name: name,
	}, nil
}

// AddOrUpdateItem keeps at most one line per item type: adding an item type
// that is already in the bundle replaces its quantity.
func (c *KitCategory) AddOrUpdateItem(itemTypeID string, quantity int) (CategoryItem, error) {
	if quantity <= 0 {
		return CategoryItem{}, ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ItemTypeID == itemTypeID {
			c.Items[i].Quantity = quantity
			return c.Items[i], nil
		}
	}
	item := CategoryItem{
		ID:            uuid.NewString(),
		KitCategoryID: c.ID,
		ItemTypeID:    itemTypeID,
		Quantity:      quantity,
	}
	c.Items = append(c.Items, item)
	return item, nil
}

// Demands resolves the bundle into item-type demands keyed by id.
func (c KitCategory) Demands() map[string]int {
	demands := make(map[string]int, len(c.Items))
	for _, item := range c.Items {
		demands[item.ItemTypeID] = item.Quantity
	}
	return demands
}

// ItemTypeIDs returns the distinct item type ids in bundle order.
func (c KitCategory) ItemTypeIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ItemTypeID)
	}
	return ids
}
