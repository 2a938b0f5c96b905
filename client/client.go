package client

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/likee/api"
	"github.com/s0up4200/likee/config"
	"github.com/s0up4200/likee/instrumentation"
	"github.com/s0up4200/likee/models"
	"github.com/s0up4200/likee/resource"
	"github.com/s0up4200/likee/transport"
)

// Client wires configuration, transport, API and resource graph together.
type Client struct {
	transport *transport.Transport
	api       *api.API
	graph     *resource.Graph
	logger    zerolog.Logger
}

// New creates a Client from cfg.
func New(cfg config.ClientConfig, opts ...Option) (*Client, error) {
	o := options{
		logger: zerolog.Nop(),
		bus:    instrumentation.NewBus(),
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	trOpts := append([]transport.Option{
		transport.WithBus(o.bus),
		transport.WithLogger(o.logger),
	}, o.transport...)
	tr, err := transport.New(cfg, trOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating transport: %w", err)
	}

	apiOpts := []api.Option{api.WithLogger(o.logger)}
	if o.endpoints != nil {
		apiOpts = append(apiOpts, api.WithEndpoints(*o.endpoints))
	}
	a, err := api.New(tr, apiOpts...)
	if err != nil {
		tr.Close()
		return nil, fmt.Errorf("creating api: %w", err)
	}

	graph, err := resource.NewGraph(a,
		resource.WithLogger(o.logger),
		resource.WithLocale(o.country, o.language),
	)
	if err != nil {
		tr.Close()
		return nil, fmt.Errorf("creating resource graph: %w", err)
	}

	o.logger.Debug().
		Str("user_agent", cfg.UserAgent).
		Dur("open_timeout", cfg.OpenTimeout).
		Dur("read_timeout", cfg.ReadTimeout).
		Bool("proxy", cfg.Proxy != "").
		Msg("Likee client initialized")

	return &Client{
		transport: tr,
		api:       a,
		graph:     graph,
		logger:    o.logger,
	}, nil
}

// FindCreator looks a creator up by username.
func (c *Client) FindCreator(ctx context.Context, username string) (*resource.Creator, error) {
	return c.graph.FindCreator(ctx, username)
}

// TrendingVideos returns the trending feed. Empty country or language fall
// back to the client locale; start is the recommendation offset.
func (c *Client) TrendingVideos(country, language string, start int) *resource.Collection[models.Video, *resource.Video] {
	return c.graph.TrendingVideos(country, language, start)
}

// TrendingHashtags returns trending hashtags.
func (c *Client) TrendingHashtags(country, language string) *resource.Collection[models.Hashtag, *resource.Hashtag] {
	return c.graph.TrendingHashtags(country, language)
}

// HashtagVideos returns the videos tagged with the hashtag id.
func (c *Client) HashtagVideos(hashtagID string) *resource.Collection[models.Video, *resource.Video] {
	return c.graph.Hashtag(models.Hashtag{ID: hashtagID}).Videos()
}

// Video returns a parent-less handle for a known video id, enough to page
// through its comments.
func (c *Client) Video(id models.Snowflake) *resource.Video {
	return c.graph.Video(models.Video{ID: id})
}

// API exposes the single-call API for callers that manage cursors themselves.
func (c *Client) API() *api.API {
	return c.api
}

// Bus returns the bus every request event is published on.
func (c *Client) Bus() *instrumentation.Bus {
	return c.transport.Bus()
}

// Close releases pooled connections.
func (c *Client) Close() {
	c.transport.Close()
	c.logger.Debug().Msg("Likee client closed")
}
