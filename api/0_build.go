package api

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
	"github.com/fulldump/box/boxopenapi"

	"github.com/mounirtms/showcase/api/apiadmin"
	"github.com/mounirtms/showcase/notify"
	"github.com/mounirtms/showcase/service"
	"github.com/mounirtms/showcase/statics"
)

func Build(s service.Servicer, mailer *notify.Mailer, staticsDir, version, adminKey string) *box.B {

	b := box.NewBox()

	v1 := b.Resource("/v1")

	v1.Resource("/sections/{sectionName}").
		WithActions(
			box.Get(getSection(s)),
		)

	v1.Resource("/contact").
		WithActions(
			box.Post(postContact(s, mailer)),
		)

	admin := v1.Resource("/admin")
	admin.WithInterceptors(
		Authenticate(adminKey),
	)
	apiadmin.BuildAdmin(admin, s).
		WithInterceptors(
			injectServicer(s),
		)

	b.Resource("/release").
		WithActions(box.Get(func() string {
			return version
		}))

	spec := boxopenapi.Spec(b)
	spec.Info.Title = "Showcase"
	spec.Info.Description = "A portfolio site server with an editable admin dashboard."
	b.Handle("GET", "/openapi.json", func(r *http.Request) any {

		spec.Servers = []boxopenapi.Server{
			{
				Url: "http://" + r.Host,
			},
		}

		return spec
	})

	// Mount statics
	b.Resource("/*").
		WithActions(
			box.Get(statics.ServeStatics(staticsDir)).WithName("serveStatics"),
		)

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apiadmin.SetServicer(ctx, s))
		}
	}
}
