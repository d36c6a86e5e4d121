package apiadmin

import (
	"context"

	"github.com/fulldump/box"
)

func dropCollection(ctx context.Context) error {

	s := GetServicer(ctx)

	collectionName := box.GetUrlParameter(ctx, "collectionName")

	return s.DeleteCollection(collectionName)
}
