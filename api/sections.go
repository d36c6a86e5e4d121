package api

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/mounirtms/showcase/service"
)

func getSection(s service.Servicer) interface{} {
	return func(ctx context.Context, w http.ResponseWriter) ([]map[string]any, error) {

		sectionName := box.GetUrlParameter(ctx, "sectionName")

		documents, err := s.Section(sectionName)
		if err != nil {
			return nil, err
		}

		return documents, nil
	}
}
