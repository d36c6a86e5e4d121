package apiadmin

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/mounirtms/showcase/service"
)

func getCollection(ctx context.Context) (*CollectionResponse, error) {

	s := GetServicer(ctx)

	collectionName := box.GetUrlParameter(ctx, "collectionName")

	col, err := s.GetCollection(collectionName)
	if err == service.ErrorCollectionNotFound {
		box.GetResponse(ctx).WriteHeader(http.StatusNotFound)
		return nil, err
	}

	return &CollectionResponse{
		Name:     collectionName,
		Total:    len(col.Rows),
		Indexes:  len(col.Indexes),
		Defaults: col.Defaults,
	}, nil
}
