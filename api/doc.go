// Package api wraps the individual Likee endpoints.
//
// Each method issues exactly one request through a transport.Transport and
// maps the decoded payload onto models. Pagination is left to the resource
// package; here a call takes an explicit cursor or page.
//
// Basic usage:
//
//	tr, err := transport.New(config.DefaultClient())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer tr.Close()
//
//	a, err := api.New(tr)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	creator, err := a.FindCreator(ctx, "likee_user")
//	if errors.Is(err, api.ErrCreatorNotFound) {
//		// the profile page carried no user info
//	}
//
//	videos, err := a.CreatorVideos(ctx, api.CreatorVideosParams{CreatorID: creator.ID})
//
// Endpoints default to the public Likee hosts and can be pointed elsewhere
// with WithEndpoints, which is how the tests run against httptest servers.
package api
