package resource

import (
	"context"

	"github.com/s0up4200/likee/api"
	"github.com/s0up4200/likee/models"
)

// LikeeAPI defines the page fetches the resource graph is built on
type LikeeAPI interface {
	// Video operations
	TrendingVideos(ctx context.Context, p api.TrendingVideosParams) ([]models.Video, error)
	CreatorVideos(ctx context.Context, p api.CreatorVideosParams) ([]models.Video, error)
	HashtagVideos(ctx context.Context, p api.HashtagVideosParams) ([]models.Video, error)

	// Hashtag operations
	TrendingHashtags(ctx context.Context, p api.TrendingHashtagsParams) ([]models.Hashtag, error)

	// Comment operations
	VideoComments(ctx context.Context, p api.VideoCommentsParams) ([]models.Comment, error)

	// Creator lookup
	FindCreator(ctx context.Context, username string) (models.Creator, error)
}

var _ LikeeAPI = (*api.API)(nil)
