package apiadmin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	jsonv2 "github.com/go-json-experiment/json"

	"github.com/fulldump/box"

	"github.com/mounirtms/showcase/collection"
)

func patch(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")
	col, err := s.GetCollection(collectionName)
	if err != nil {
		return err
	}

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	input := struct {
		Patch any `json:"patch"`
	}{}
	err = jsonv2.Unmarshal(requestBody, &input)
	if err != nil {
		return err
	}

	e := json.NewEncoder(w)

	var result error

	traverse(requestBody, col, func(row *collection.Row) bool {

		row.PatchMutex.Lock()
		defer row.PatchMutex.Unlock()

		err := col.Patch(row, input.Patch)
		if err != nil {
			result = err
			return false
		}

		e.Encode(json.RawMessage(row.Payload))

		return true
	})

	return result
}
