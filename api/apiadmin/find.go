package apiadmin

import (
	"context"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/mounirtms/showcase/collection"
)

// find streams matching documents, one JSON per line. The body selects rows
// by unique index (`index`/`value`) or by fullscan (`filter`/`skip`/`limit`).
func find(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")
	col, err := s.GetCollection(collectionName)
	if err != nil {
		return err
	}

	return traverse(requestBody, col, writeRow(w))
}

func writeRow(w http.ResponseWriter) func(row *collection.Row) bool {
	return func(row *collection.Row) bool {
		w.Write(row.Payload)
		w.Write([]byte("\n"))
		return true
	}
}
