package api

import (
	"errors"

	"github.com/rs/zerolog"
)

// Endpoints holds the URLs each call is sent to.
type Endpoints struct {
	TrendingVideos   string
	CreatorVideos    string
	TrendingHashtags string
	HashtagVideos    string
	VideoComments    string
	// ProfileBase is joined with "@" + username.
	ProfileBase string
}

// DefaultEndpoints returns the public Likee endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		TrendingVideos:   "https://api.like-video.com/likee-activity-flow-micro/videoApi/getSquareVideos",
		CreatorVideos:    "https://api.like-video.com/likee-activity-flow-micro/videoApi/getUserVideo",
		TrendingHashtags: "https://likee.video/official_website/RecommendApi/getRecommendHashtag",
		HashtagVideos:    "https://likee.video/official_website/VideoApi/getEventVideo",
		VideoComments:    "https://likee.video/live/home/comments",
		ProfileBase:      "https://likee.video/",
	}
}

// Option configures an API.
type Option func(*API) error

// WithEndpoints overrides the endpoint URLs.
func WithEndpoints(e Endpoints) Option {
	return func(a *API) error {
		if e.TrendingVideos == "" || e.CreatorVideos == "" || e.TrendingHashtags == "" ||
			e.HashtagVideos == "" || e.VideoComments == "" || e.ProfileBase == "" {
			return errors.New("all endpoints must be set")
		}
		a.endpoints = e
		return nil
	}
}

// WithLogger sets the logger used for per-call debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *API) error {
		a.logger = logger
		return nil
	}
}
