package apiadmin

import (
	"context"
	"encoding/json"

	"github.com/fulldump/box"

	"github.com/mounirtms/showcase/utils"
)

type listIndexesItem struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Options any    `json:"options"`
}

func (l *listIndexesItem) MarshalJSON() ([]byte, error) {

	result := map[string]any{
		"name": l.Name,
		"kind": l.Kind,
	}
	utils.Remarshal(l.Options, &result)

	return json.Marshal(result)
}

func listIndexes(ctx context.Context) ([]*listIndexesItem, error) {

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")
	col, err := s.GetCollection(collectionName)
	if err != nil {
		return nil, err
	}

	result := []*listIndexesItem{}
	for _, name := range utils.GetKeys(col.Indexes) {
		index := col.Indexes[name]
		result = append(result, &listIndexesItem{
			Name:    name,
			Kind:    index.GetKind(),
			Options: index.GetOptions(),
		})
	}

	return result, nil
}
