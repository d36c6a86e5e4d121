package apiadmin

import (
	"context"
	"io"
	"net/http"

	jsonv2 "github.com/go-json-experiment/json"

	"github.com/fulldump/box"

	"github.com/mounirtms/showcase/tableview"
)

type queryRequest struct {
	Search   string              `json:"search"`
	Filters  []tableview.Filter  `json:"filters"`
	Sorting  []tableview.SortKey `json:"sorting"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"pageSize"`
	Columns  []string            `json:"columns"`
}

type queryResponse struct {
	Rows       []map[string]any `json:"rows"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
}

// query runs the dashboard table pipeline (search, column filters, multi-key
// sort, pagination) over a snapshot of the collection. Malformed filters
// never fail the request, they just exclude rows.
func query(ctx context.Context, w http.ResponseWriter, r *http.Request) (*queryResponse, error) {

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	input := &queryRequest{
		PageSize: tableview.DefaultPageSize,
	}
	err = jsonv2.Unmarshal(requestBody, input)
	if err != nil {
		return nil, err
	}

	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")
	col, err := s.GetCollection(collectionName)
	if err != nil {
		return nil, err
	}

	documents := col.Documents()

	columns := tableview.DocumentColumns(documents)
	if len(input.Columns) > 0 {
		selected := []tableview.Column[map[string]any]{}
		for _, name := range input.Columns {
			for _, column := range columns {
				if column.Name == name {
					selected = append(selected, column)
					break
				}
			}
		}
		columns = selected
	}

	state := tableview.NewState()
	state.Search = input.Search
	state.Filters = input.Filters
	state.Sorting = input.Sorting
	state.Pagination.Page = input.Page
	if input.PageSize > 0 {
		state.Pagination.PageSize = input.PageSize
	}

	visible, total := tableview.Compute(documents, columns, state)

	state.Pagination.Total = total

	return &queryResponse{
		Rows:       visible,
		Total:      total,
		TotalPages: state.Pagination.TotalPages(),
		Page:       state.Pagination.Page,
		PageSize:   state.Pagination.PageSize,
	}, nil
}
