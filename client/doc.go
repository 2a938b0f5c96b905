// Package client is the entry point for the Likee library.
//
// A Client owns one transport, and with it one connection pool and one
// observability bus. Everything reached from it, handles and collections
// alike, sends its requests through that transport:
//
//	c, err := client.New(config.DefaultClient(), client.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer c.Close()
//
//	c.Bus().Subscribe(instrumentation.LogListener(logger))
//
//	creator, err := c.FindCreator(ctx, "likee_user")
//	if err != nil {
//		log.Fatal(err)
//	}
//	videos, err := creator.Videos().First(ctx, 10)
//
// A Client is meant to be driven by one caller at a time.
package client
