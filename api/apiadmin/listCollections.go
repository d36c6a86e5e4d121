package apiadmin

import (
	"context"

	"github.com/mounirtms/showcase/utils"
)

func listCollections(ctx context.Context) ([]*CollectionResponse, error) {

	s := GetServicer(ctx)

	collections := s.ListCollections()

	result := []*CollectionResponse{}
	for _, name := range utils.GetKeys(collections) {
		col := collections[name]
		result = append(result, &CollectionResponse{
			Name:    name,
			Total:   len(col.Rows),
			Indexes: len(col.Indexes),
		})
	}

	return result, nil
}
