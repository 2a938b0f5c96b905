// Package resource turns single-page API calls into lazy collections of
// parent-aware handles.
//
// A Collection pages through a fetch function with a cursor, caching every
// page it sees. Once an empty page comes back the collection is exhausted
// and later traversals replay the cache without touching the network:
//
//	videos := creator.Videos()
//	for v, err := range videos.All(ctx) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(v.ID, v.Title)
//	}
//
// Handles embed the decoded entity and keep a lookup-only reference to the
// handle they were reached through. A video reached from a creator returns
// that creator from Creator; a trending video resolves its creator by
// username on first use and keeps the result for the life of the handle.
// Going the other way, Videos and Comments build a fresh collection on
// every call.
package resource
