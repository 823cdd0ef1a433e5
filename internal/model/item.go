package model

import (
	"fmt"

	"go.uber.org/zap"
)

// Item is the domain model for one comparable entry (a course).
// Fields are set once at construction; there are no setters.
type Item struct {
	id   string
	name string
}

// Record is the plain form of an Item, used for persistence.
type Record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewItem builds an Item. A missing id or name is logged through the
// process logger and the field is left empty; construction never fails.
func NewItem(id, name string) *Item {
	it := &Item{}
	if id != "" {
		it.id = id
	} else {
		zap.L().Error("An ID must be provided", zap.String("name", name))
	}
	if name != "" {
		it.name = name
	} else {
		zap.L().Error("A name must be provided", zap.String("id", id))
	}
	return it
}

func (it *Item) ID() string   { return it.id }
func (it *Item) Name() string { return it.name }

// Record returns the {id, name} pair for serialization.
func (it *Item) Record() Record {
	return Record{ID: it.id, Name: it.name}
}

func (it *Item) String() string {
	return fmt.Sprintf("%s (%s)", it.name, it.id)
}
