package resource

import (
	"context"
	"fmt"

	"github.com/s0up4200/likee/api"
	"github.com/s0up4200/likee/models"
)

// Creator is a creator handle.
type Creator struct {
	models.Creator
	graph *Graph

	videos *Collection[models.Video, *Video]
}

// Videos returns the creator's uploads, each parented to c. The collection
// and its page cache live as long as c.
func (c *Creator) Videos() *Collection[models.Video, *Video] {
	if c.videos != nil {
		return c.videos
	}
	fetch := func(ctx context.Context, cursor uint64) ([]models.Video, error) {
		return c.graph.api.CreatorVideos(ctx, api.CreatorVideosParams{
			CreatorID: c.ID,
			Cursor:    models.Snowflake(cursor),
		})
	}
	wrap := func(v models.Video) *Video {
		return &Video{Video: v, graph: c.graph, parent: c}
	}
	c.videos = NewCollection("creator "+c.ID+" videos", c.graph.logger, fetch, wrap, ByLastID(videoID))
	return c.videos
}

// Video is a video handle. parent is set only when the video was reached
// through its creator and never changes afterwards.
type Video struct {
	models.Video
	graph  *Graph
	parent *Creator

	resolved *Creator
	comments *Collection[models.Comment, *Comment]
}

// Parent returns the creator the video was reached through, or nil.
func (v *Video) Parent() *Creator {
	return v.parent
}

// Creator returns the video's creator. Without a parent the creator is
// looked up by username on first call and kept for the handle's lifetime.
func (v *Video) Creator(ctx context.Context) (*Creator, error) {
	if v.parent != nil {
		return v.parent, nil
	}
	if v.resolved != nil {
		return v.resolved, nil
	}

	c, err := v.graph.FindCreator(ctx, v.CreatorUsername)
	if err != nil {
		return nil, fmt.Errorf("resolving creator of video %s: %w", v.ID, err)
	}
	v.resolved = c
	return c, nil
}

// Comments returns the comments on v, each parented to v. The collection
// and its page cache live as long as v.
func (v *Video) Comments() *Collection[models.Comment, *Comment] {
	if v.comments != nil {
		return v.comments
	}
	fetch := func(ctx context.Context, cursor uint64) ([]models.Comment, error) {
		return v.graph.api.VideoComments(ctx, api.VideoCommentsParams{
			VideoID:  v.ID,
			Language: v.graph.language,
			Cursor:   models.Snowflake(cursor),
		})
	}
	wrap := func(c models.Comment) *Comment {
		return &Comment{Comment: c, video: v}
	}
	v.comments = NewCollection("video "+v.ID.String()+" comments", v.graph.logger, fetch, wrap, ByLastID(commentID))
	return v.comments
}

// Comment is a comment handle.
type Comment struct {
	models.Comment
	video *Video
}

// Video returns the video the comment was left on.
func (c *Comment) Video() *Video {
	return c.video
}

// Hashtag is a hashtag handle.
type Hashtag struct {
	models.Hashtag
	graph *Graph

	videos *Collection[models.Video, *Video]
}

// Videos returns the videos tagged with h as parent-less handles, paged by
// page number. Repeated calls share one collection.
func (h *Hashtag) Videos() *Collection[models.Video, *Video] {
	if h.videos != nil {
		return h.videos
	}
	fetch := func(ctx context.Context, cursor uint64) ([]models.Video, error) {
		return h.graph.api.HashtagVideos(ctx, api.HashtagVideosParams{
			HashtagID: h.ID,
			Country:   h.graph.country,
			Page:      int(cursor) + 1,
		})
	}
	h.videos = NewCollection("hashtag "+h.ID+" videos", h.graph.logger, fetch, h.graph.Video, ByPage[models.Video]())
	return h.videos
}
