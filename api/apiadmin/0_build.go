package apiadmin

import (
	"github.com/fulldump/box"

	"github.com/mounirtms/showcase/service"
)

// BuildAdmin mounts the content editor API: collection management plus the
// table view query used by the dashboard.
func BuildAdmin(admin *box.R, s service.Servicer) *box.R {

	admin.Resource("/collections").
		WithActions(
			box.Get(listCollections),
			box.Post(createCollection),
		)

	admin.Resource("/collections/{collectionName}").
		WithActions(
			box.Get(getCollection),
			box.ActionPost(insert),
			box.ActionPost(find),
			box.ActionPost(query),
			box.ActionPost(remove),
			box.ActionPost(patch),
			box.ActionPost(dropCollection),
			box.ActionPost(listIndexes),
			box.ActionPost(createIndex),
			box.ActionPost(dropIndex),
		)

	return admin
}
