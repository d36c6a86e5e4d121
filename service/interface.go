package service

import (
	"errors"

	"github.com/mounirtms/showcase/collection"
)

var (
	ErrorCollectionNotFound = errors.New("collection not found")
	ErrorUnknownSection     = errors.New("unknown section")
)

type Servicer interface {
	CreateCollection(name string) (*collection.Collection, error)
	GetCollection(name string) (*collection.Collection, error)
	ListCollections() map[string]*collection.Collection
	DeleteCollection(name string) error

	// Section returns the documents of one presentational section, ordered
	// for display. Sections are created and seeded on first access.
	Section(name string) ([]map[string]any, error)

	// SaveMessage records one contact-form submission and returns the stored
	// document.
	SaveMessage(name, email, text string) (map[string]any, error)
}
