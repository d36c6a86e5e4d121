package service

import (
	"fmt"

	"github.com/mounirtms/showcase/collection"
	"github.com/mounirtms/showcase/database"
	"github.com/mounirtms/showcase/tableview"
	"github.com/mounirtms/showcase/utils"
)

type Service struct {
	db *database.Database
}

func NewService(db *database.Database) *Service {
	return &Service{
		db: db,
	}
}

var ErrorCollectionAlreadyExists = fmt.Errorf("collection already exists")

func (s *Service) CreateCollection(name string) (*collection.Collection, error) {

	_, exist := s.db.Collections[name]
	if exist {
		return nil, ErrorCollectionAlreadyExists
	}

	return s.db.CreateCollection(name)
}

func (s *Service) GetCollection(name string) (*collection.Collection, error) {
	col, exist := s.db.Collections[name]
	if !exist {
		return nil, ErrorCollectionNotFound
	}

	return col, nil
}

func (s *Service) ListCollections() map[string]*collection.Collection {
	return s.db.Collections
}

func (s *Service) DeleteCollection(name string) error {
	return s.db.DropCollection(name)
}

// Section materializes one presentational section, seeded on first access
// and ordered by its `position` field (missing positions keep insertion
// order).
func (s *Service) Section(name string) ([]map[string]any, error) {

	seed, known := sectionSeeds[name]
	if !known {
		return nil, ErrorUnknownSection
	}

	col, err := s.ensureCollection(name, seed)
	if err != nil {
		return nil, err
	}

	documents := col.Documents()

	ordered := tableview.State{
		Pagination: tableview.Pagination{PageSize: len(documents)},
		Sorting:    []tableview.SortKey{{Column: "position", Direction: tableview.Ascending}},
	}
	visible, _ := tableview.Compute(documents, tableview.DocumentColumns(documents), ordered)

	return visible, nil
}

func (s *Service) SaveMessage(name, email, text string) (map[string]any, error) {

	col, err := s.ensureCollection("messages", nil)
	if err != nil {
		return nil, err
	}

	row, err := col.Insert(map[string]any{
		"name":    name,
		"email":   email,
		"message": text,
		"read":    false,
	})
	if err != nil {
		return nil, err
	}

	item := map[string]any{}
	err = utils.Remarshal(row.Payload, &item)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) ensureCollection(name string, seed []map[string]any) (*collection.Collection, error) {

	col, err := s.GetCollection(name)
	if err == nil {
		return col, nil
	}
	if err != ErrorCollectionNotFound {
		return nil, err
	}

	col, err = s.db.CreateCollection(name)
	if err != nil {
		return nil, err
	}

	err = col.SetDefaults(map[string]any{
		"id":      "uuid()",
		"created": "unixnano()",
	})
	if err != nil {
		return nil, err
	}

	for _, item := range seed {
		_, err := col.Insert(item)
		if err != nil {
			return nil, fmt.Errorf("seed '%s': %w", name, err)
		}
	}

	return col, nil
}

