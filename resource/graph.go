package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/likee/api"
	"github.com/s0up4200/likee/models"
)

// Graph creates handles and the collections that connect them.
type Graph struct {
	api      LikeeAPI
	logger   zerolog.Logger
	country  string
	language string
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger handed to every collection.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Graph) {
		g.logger = logger
	}
}

// WithLocale sets the country and language used by child collections, such
// as hashtag videos and video comments.
func WithLocale(country, language string) Option {
	return func(g *Graph) {
		if country != "" {
			g.country = country
		}
		if language != "" {
			g.language = language
		}
	}
}

// NewGraph returns a Graph backed by a.
func NewGraph(a LikeeAPI, opts ...Option) (*Graph, error) {
	if a == nil {
		return nil, errors.New("likee api is required")
	}

	g := &Graph{
		api:      a,
		logger:   zerolog.Nop(),
		country:  api.DefaultCountry,
		language: api.DefaultLanguage,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Creator wraps an already decoded creator.
func (g *Graph) Creator(c models.Creator) *Creator {
	return &Creator{Creator: c, graph: g}
}

// Video wraps a video that was not reached through a creator.
func (g *Graph) Video(v models.Video) *Video {
	return &Video{Video: v, graph: g}
}

// Hashtag wraps an already decoded hashtag.
func (g *Graph) Hashtag(h models.Hashtag) *Hashtag {
	return &Hashtag{Hashtag: h, graph: g}
}

// FindCreator looks a creator up by username.
func (g *Graph) FindCreator(ctx context.Context, username string) (*Creator, error) {
	c, err := g.api.FindCreator(ctx, username)
	if err != nil {
		return nil, err
	}
	return g.Creator(c), nil
}

// TrendingVideos returns the trending feed as parent-less video handles.
func (g *Graph) TrendingVideos(country, language string, start int) *Collection[models.Video, *Video] {
	country = orDefault(country, g.country)
	language = orDefault(language, g.language)

	fetch := func(ctx context.Context, cursor uint64) ([]models.Video, error) {
		return g.api.TrendingVideos(ctx, api.TrendingVideosParams{
			Country:  country,
			Language: language,
			Start:    start,
			Cursor:   models.Snowflake(cursor),
		})
	}
	name := fmt.Sprintf("trending videos %s/%s", country, language)
	return NewCollection(name, g.logger, fetch, g.Video, ByLastID(videoID))
}

// TrendingHashtags returns trending hashtags, paged by page number.
func (g *Graph) TrendingHashtags(country, language string) *Collection[models.Hashtag, *Hashtag] {
	country = orDefault(country, g.country)
	language = orDefault(language, g.language)

	fetch := func(ctx context.Context, cursor uint64) ([]models.Hashtag, error) {
		return g.api.TrendingHashtags(ctx, api.TrendingHashtagsParams{
			Country:  country,
			Language: language,
			Page:     int(cursor) + 1,
		})
	}
	name := fmt.Sprintf("trending hashtags %s/%s", country, language)
	return NewCollection(name, g.logger, fetch, g.Hashtag, ByPage[models.Hashtag]())
}

func videoID(v models.Video) uint64 { return uint64(v.ID) }

func commentID(c models.Comment) uint64 { return uint64(c.ID) }

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
