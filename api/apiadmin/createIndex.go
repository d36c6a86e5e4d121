package apiadmin

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fulldump/box"

	"github.com/mounirtms/showcase/collection"
	"github.com/mounirtms/showcase/service"
)

type createIndexRequest struct {
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	Field  string   `json:"field,omitempty"`
	Fields []string `json:"fields,omitempty"`
	Sparse bool     `json:"sparse,omitempty"`
	Unique bool     `json:"unique,omitempty"`
}

func createIndex(ctx context.Context, input *createIndexRequest) (*listIndexesItem, error) {

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")
	col, err := s.GetCollection(collectionName)
	if err == service.ErrorCollectionNotFound {
		col, err = s.CreateCollection(collectionName)
	}
	if err != nil {
		return nil, err
	}

	var options any
	switch input.Kind {
	case "map":
		options = &collection.IndexMapOptions{
			Field:  input.Field,
			Sparse: input.Sparse,
		}
	case "btree":
		options = &collection.IndexBTreeOptions{
			Fields: input.Fields,
			Sparse: input.Sparse,
			Unique: input.Unique,
		}
	}

	optionsData, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}

	err = col.CreateIndex(&collection.CreateIndexCommand{
		Name:    input.Name,
		Kind:    input.Kind,
		Options: optionsData,
	})
	if err != nil {
		return nil, err
	}

	box.GetResponse(ctx).WriteHeader(http.StatusCreated)

	return &listIndexesItem{
		Name:    input.Name,
		Kind:    input.Kind,
		Options: options,
	}, nil
}
