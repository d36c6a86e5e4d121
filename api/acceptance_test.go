package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"

	"github.com/mounirtms/showcase/database"
	"github.com/mounirtms/showcase/service"
)

type JSON = map[string]interface{}

func bodyTo(resp *apitest.Response, v interface{}) {
	biff.AssertNil(json.Unmarshal(resp.BodyBytes(), v))
}

func TestAcceptance(t *testing.T) {

	biff.Alternative("Setup", func(a *biff.A) {

		db := database.NewDatabase(&database.Config{
			Dir: t.TempDir(),
		})

		biff.AssertNil(db.Load())
		biff.AssertEqual(db.GetStatus(), database.StatusOperating)

		s := service.NewService(db)

		b := Build(s, nil, "", "test", "")
		b.WithInterceptors(
			InterceptorUnavailable(db),
			RecoverFromPanic,
			PrettyErrorInterceptor,
		)

		api := apitest.NewWithHandler(b)

		apiRequest := func(method, path string) *apitest.Request {
			return api.Request(method, "/v1"+path)
		}

		a.Alternative("Get section", func(a *biff.A) {
			resp := apiRequest("GET", "/sections/skills").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			rows := []JSON{}
			bodyTo(resp, &rows)
			biff.AssertEqual(len(rows), 3)
			biff.AssertEqual(rows[0]["name"], "Go")
			biff.AssertEqual(rows[1]["name"], "JavaScript")
			biff.AssertEqual(rows[2]["name"], "SQL")

			a.Alternative("Section edits show up", func(a *biff.A) {
				resp := apiRequest("POST", "/admin/collections/skills:patch").
					WithBodyJson(JSON{
						"filter": JSON{"id": "skill-go"},
						"patch":  JSON{"level": 95},
					}).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				resp = apiRequest("GET", "/sections/skills").Do()
				rows := []JSON{}
				bodyTo(resp, &rows)
				biff.AssertEqual(rows[0]["level"], 95.0)
			})
		})

		a.Alternative("Get unknown section", func(a *biff.A) {
			resp := apiRequest("GET", "/sections/blog").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		})

		a.Alternative("Send contact message", func(a *biff.A) {
			resp := apiRequest("POST", "/contact").
				WithBodyJson(JSON{
					"name":    "Alice",
					"email":   "alice@example.com",
					"message": "Hello!",
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			body := JSON{}
			bodyTo(resp, &body)
			biff.AssertEqual(body["relayed"], false)
			biff.AssertNotEqual(body["id"], "")

			a.Alternative("Message is stored", func(a *biff.A) {
				resp := apiRequest("POST", "/admin/collections/messages:find").
					WithBodyJson(JSON{
						"filter": JSON{"email": "alice@example.com"},
					}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				stored := JSON{}
				bodyTo(resp, &stored)
				biff.AssertEqual(stored["message"], "Hello!")
				biff.AssertEqual(stored["read"], false)
			})
		})

		a.Alternative("Send incomplete contact message", func(a *biff.A) {
			resp := apiRequest("POST", "/contact").
				WithBodyJson(JSON{
					"name": "Alice",
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Create collection", func(a *biff.A) {
			resp := apiRequest("POST", "/admin/collections").
				WithBodyJson(JSON{
					"name": "inventory",
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"name":    "inventory",
				"total":   0,
				"indexes": 0,
			})

			a.Alternative("Create collection again", func(a *biff.A) {
				resp := apiRequest("POST", "/admin/collections").
					WithBodyJson(JSON{
						"name": "inventory",
					}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusConflict)
			})

			a.Alternative("Insert documents", func(a *biff.A) {
				resp := apiRequest("POST", "/admin/collections/inventory:insert").
					WithBodyString(strings.Join([]string{
						`{"id":"a","name":"Zeta","level":90}`,
						`{"id":"b","name":"Alpha","level":90}`,
						`{"id":"c","name":"Beta","level":50}`,
					}, "\n")).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusCreated)

				a.Alternative("Query with multi-key sort", func(a *biff.A) {
					resp := apiRequest("POST", "/admin/collections/inventory:query").
						WithBodyJson(JSON{
							"sorting": []JSON{
								{"column": "level", "direction": "desc"},
								{"column": "name", "direction": "asc"},
							},
						}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					body := JSON{}
					bodyTo(resp, &body)
					biff.AssertEqual(body["total"], 3.0)
					biff.AssertEqual(body["totalPages"], 1.0)
					rows := body["rows"].([]interface{})
					biff.AssertEqual(rows[0].(JSON)["id"], "b")
					biff.AssertEqual(rows[1].(JSON)["id"], "a")
					biff.AssertEqual(rows[2].(JSON)["id"], "c")
				})

				a.Alternative("Query with filter", func(a *biff.A) {
					resp := apiRequest("POST", "/admin/collections/inventory:query").
						WithBodyJson(JSON{
							"filters": []JSON{
								{"column": "level", "operator": "gt", "value": "60"},
							},
							"sorting": []JSON{
								{"column": "name", "direction": "asc"},
							},
						}).Do()

					body := JSON{}
					bodyTo(resp, &body)
					biff.AssertEqual(body["total"], 2.0)
					rows := body["rows"].([]interface{})
					biff.AssertEqual(rows[0].(JSON)["name"], "Alpha")
					biff.AssertEqual(rows[1].(JSON)["name"], "Zeta")
				})

				a.Alternative("Query with search", func(a *biff.A) {
					resp := apiRequest("POST", "/admin/collections/inventory:query").
						WithBodyJson(JSON{
							"search": "bet",
						}).Do()

					body := JSON{}
					bodyTo(resp, &body)
					biff.AssertEqual(body["total"], 1.0)
					rows := body["rows"].([]interface{})
					biff.AssertEqual(rows[0].(JSON)["name"], "Beta")
				})

				a.Alternative("Query second page", func(a *biff.A) {
					resp := apiRequest("POST", "/admin/collections/inventory:query").
						WithBodyJson(JSON{
							"sorting": []JSON{
								{"column": "name", "direction": "asc"},
							},
							"page":     1,
							"pageSize": 2,
						}).Do()

					body := JSON{}
					bodyTo(resp, &body)
					biff.AssertEqual(body["total"], 3.0)
					biff.AssertEqual(body["totalPages"], 2.0)
					biff.AssertEqual(body["page"], 1.0)
					rows := body["rows"].([]interface{})
					biff.AssertEqual(len(rows), 1)
					biff.AssertEqual(rows[0].(JSON)["name"], "Zeta")
				})

				a.Alternative("Query page out of range", func(a *biff.A) {
					resp := apiRequest("POST", "/admin/collections/inventory:query").
						WithBodyJson(JSON{
							"page": 10,
						}).Do()

					body := JSON{}
					bodyTo(resp, &body)
					biff.AssertEqual(body["total"], 3.0)
					rows := body["rows"].([]interface{})
					biff.AssertEqual(len(rows), 0)
				})

				a.Alternative("Remove documents", func(a *biff.A) {
					resp := apiRequest("POST", "/admin/collections/inventory:remove").
						WithBodyJson(JSON{
							"filter": JSON{"id": "a"},
						}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)

					resp = apiRequest("GET", "/admin/collections/inventory").Do()
					total := JSON{}
					bodyTo(resp, &total)
					biff.AssertEqual(total["total"], 2.0)
				})

				a.Alternative("Create index and list", func(a *biff.A) {
					resp := apiRequest("POST", "/admin/collections/inventory:createIndex").
						WithBodyJson(JSON{
							"name":  "by-id",
							"kind":  "map",
							"field": "id",
						}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusCreated)

					resp = apiRequest("POST", "/admin/collections/inventory:listIndexes").Do()
					indexes := []JSON{}
					bodyTo(resp, &indexes)
					biff.AssertEqual(len(indexes), 1)
					biff.AssertEqual(indexes[0]["name"], "by-id")
				})
			})

			a.Alternative("Drop collection", func(a *biff.A) {
				resp := apiRequest("POST", "/admin/collections/inventory:dropCollection").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusNoContent)

				resp = apiRequest("GET", "/admin/collections/inventory").Do()
				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})
		})

		a.Alternative("Get missing collection", func(a *biff.A) {
			resp := apiRequest("GET", "/admin/collections/nope").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		})

		a.Alternative("Release", func(a *biff.A) {
			resp := api.Request("GET", "/release").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
		})
	})
}

func TestAdminAuth(t *testing.T) {

	biff.Alternative("Setup", func(a *biff.A) {

		db := database.NewDatabase(&database.Config{
			Dir: t.TempDir(),
		})
		biff.AssertNil(db.Load())

		s := service.NewService(db)

		b := Build(s, nil, "", "test", "s3cret")
		b.WithInterceptors(
			RecoverFromPanic,
			PrettyErrorInterceptor,
		)

		api := apitest.NewWithHandler(b)

		a.Alternative("Without key", func(a *biff.A) {
			resp := api.Request("GET", "/v1/admin/collections").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusUnauthorized)
		})

		a.Alternative("With wrong key", func(a *biff.A) {
			resp := api.Request("GET", "/v1/admin/collections").
				WithHeader("X-Admin-Key", "nope").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusUnauthorized)
		})

		a.Alternative("With key header", func(a *biff.A) {
			resp := api.Request("GET", "/v1/admin/collections").
				WithHeader("X-Admin-Key", "s3cret").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
		})

		a.Alternative("With bearer token", func(a *biff.A) {
			resp := api.Request("GET", "/v1/admin/collections").
				WithHeader("Authorization", "Bearer s3cret").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
		})

		a.Alternative("Sections stay public", func(a *biff.A) {
			resp := api.Request("GET", "/v1/sections/skills").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
		})
	})
}
