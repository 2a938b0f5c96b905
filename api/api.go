package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/s0up4200/likee/config"
	"github.com/s0up4200/likee/models"
	"github.com/s0up4200/likee/transport"
)

// Default page sizes.
const (
	DefaultTrendingVideosLimit = 30
	DefaultCreatorVideosLimit  = 100
	DefaultCommentsLimit       = 49
	DefaultHashtagsPerPage     = 100
	DefaultHashtagVideosPer    = 50

	DefaultCountry  = "US"
	DefaultLanguage = "en"
)

var userInfoPattern = regexp.MustCompile(`"userinfo":(\{.*\}),"`)

// API issues single Likee calls over a shared transport.
type API struct {
	transport *transport.Transport
	cfg       config.ClientConfig
	endpoints Endpoints
	logger    zerolog.Logger
}

// New creates an API on top of t.
func New(t *transport.Transport, opts ...Option) (*API, error) {
	if t == nil {
		return nil, fmt.Errorf("transport is required")
	}

	a := &API{
		transport: t,
		cfg:       t.Config(),
		endpoints: DefaultEndpoints(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, fmt.Errorf("applying api option: %w", err)
		}
	}
	return a, nil
}

// TrendingVideosParams selects a page of the trending feed.
type TrendingVideosParams struct {
	Country  string
	Language string
	// Start is the recommendation offset.
	Start  int
	Cursor models.Snowflake
	Limit  int
	// UserID and DeviceID fall back to the configured ids, then to random ones.
	UserID   string
	DeviceID string
}

// TrendingVideos returns one page of trending videos.
func (a *API) TrendingVideos(ctx context.Context, p TrendingVideosParams) ([]models.Video, error) {
	deviceID := firstSet(p.DeviceID, a.cfg.DeviceID)
	if deviceID == "" {
		deviceID = RandomDeviceID()
	}
	userID := firstSet(p.UserID, a.cfg.UserID)
	if userID == "" {
		userID = RandomUserID()
	}

	body := map[string]any{
		"scene":      "WELOG_POPULAR",
		"fetchNum":   orDefault(p.Limit, DefaultTrendingVideosLimit),
		"startNum":   p.Start,
		"lastPostId": json.Number(p.Cursor.String()),
		"deviceId":   deviceID,
		"uid":        numberOrString(userID),
		"language":   firstSet(p.Language, DefaultLanguage),
		"country":    firstSet(p.Country, DefaultCountry),
	}

	return a.postVideos(ctx, a.endpoints.TrendingVideos, transport.FormatJSON, body)
}

// CreatorVideosParams selects a page of a creator's uploads.
type CreatorVideosParams struct {
	CreatorID string
	Cursor    models.Snowflake
	Limit     int
}

// CreatorVideos returns one page of a creator's videos.
func (a *API) CreatorVideos(ctx context.Context, p CreatorVideosParams) ([]models.Video, error) {
	if p.CreatorID == "" {
		return nil, fmt.Errorf("creator videos: %w", ErrMissingID)
	}

	body := map[string]any{
		"count":      orDefault(p.Limit, DefaultCreatorVideosLimit),
		"lastPostId": json.Number(p.Cursor.String()),
		"tabType":    0,
		"uid":        numberOrString(p.CreatorID),
	}

	return a.postVideos(ctx, a.endpoints.CreatorVideos, transport.FormatJSON, body)
}

// TrendingHashtagsParams selects a page of trending hashtags.
type TrendingHashtagsParams struct {
	Country  string
	Language string
	// Page is 1-based.
	Page int
	Per  int
}

// TrendingHashtags returns one page of trending hashtags.
func (a *API) TrendingHashtags(ctx context.Context, p TrendingHashtagsParams) ([]models.Hashtag, error) {
	body := url.Values{}
	body.Set("pagesize", strconv.Itoa(orDefault(p.Per, DefaultHashtagsPerPage)))
	body.Set("page", strconv.Itoa(orDefault(p.Page, 1)))
	body.Set("language", firstSet(p.Language, DefaultLanguage))
	body.Set("country", firstSet(p.Country, DefaultCountry))

	resp, err := a.transport.Post(ctx, a.endpoints.TrendingHashtags, transport.FormatFormURLEncoded, body)
	if err != nil {
		return nil, fmt.Errorf("trending hashtags: %w", err)
	}

	hashtags, err := models.MapHashtagCollection(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("trending hashtags: %w", err)
	}

	a.logger.Debug().
		Int("page", orDefault(p.Page, 1)).
		Int("count", len(hashtags)).
		Msg("Retrieved trending hashtags from Likee")

	return hashtags, nil
}

// HashtagVideosParams selects a page of videos tagged with a hashtag.
type HashtagVideosParams struct {
	HashtagID string
	Country   string
	// Page is 1-based.
	Page int
	Per  int
}

// HashtagVideos returns one page of a hashtag's videos.
func (a *API) HashtagVideos(ctx context.Context, p HashtagVideosParams) ([]models.Video, error) {
	if p.HashtagID == "" {
		return nil, fmt.Errorf("hashtag videos: %w", ErrMissingID)
	}

	body := url.Values{}
	body.Set("topicId", p.HashtagID)
	body.Set("pageSize", strconv.Itoa(orDefault(p.Per, DefaultHashtagVideosPer)))
	body.Set("page", strconv.Itoa(orDefault(p.Page, 1)))
	body.Set("country", firstSet(p.Country, DefaultCountry))

	return a.postVideos(ctx, a.endpoints.HashtagVideos, transport.FormatFormURLEncoded, body)
}

// FindCreator loads a profile page and extracts the embedded user info.
func (a *API) FindCreator(ctx context.Context, username string) (models.Creator, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return models.Creator{}, fmt.Errorf("find creator: %w", ErrMissingID)
	}

	endpoint := strings.TrimSuffix(a.endpoints.ProfileBase, "/") + "/@" + url.PathEscape(username)
	resp, err := a.transport.Get(ctx, endpoint, nil)
	if err != nil {
		return models.Creator{}, fmt.Errorf("find creator %s: %w", username, err)
	}

	match := userInfoPattern.FindStringSubmatch(resp.Text())
	if match == nil {
		return models.Creator{}, fmt.Errorf("find creator %s: %w", username, ErrCreatorNotFound)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(match[1])))
	dec.UseNumber()
	var info map[string]any
	if err := dec.Decode(&info); err != nil {
		return models.Creator{}, fmt.Errorf("find creator %s: parsing user info: %w", username, err)
	}

	creator, err := models.MapCreator(info)
	if err != nil {
		return models.Creator{}, fmt.Errorf("find creator %s: %w", username, err)
	}

	a.logger.Debug().
		Str("username", username).
		Str("id", creator.ID).
		Msg("Retrieved creator from Likee")

	return creator, nil
}

// VideoCommentsParams selects a page of comments on a video.
type VideoCommentsParams struct {
	VideoID  models.Snowflake
	Language string
	Cursor   models.Snowflake
	Limit    int
}

// VideoComments returns one page of comments.
func (a *API) VideoComments(ctx context.Context, p VideoCommentsParams) ([]models.Comment, error) {
	if p.VideoID == 0 {
		return nil, fmt.Errorf("video comments: %w", ErrMissingID)
	}

	query := url.Values{}
	query.Set("post_id", p.VideoID.String())
	query.Set("lang", firstSet(p.Language, DefaultLanguage))
	query.Set("page_size", strconv.Itoa(orDefault(p.Limit, DefaultCommentsLimit)))
	query.Set("last_comment_id", p.Cursor.String())

	resp, err := a.transport.Get(ctx, a.endpoints.VideoComments, query)
	if err != nil {
		return nil, fmt.Errorf("video comments: %w", err)
	}

	comments, err := models.MapCommentCollection(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("video comments: %w", err)
	}

	a.logger.Debug().
		Stringer("video_id", p.VideoID).
		Stringer("cursor", p.Cursor).
		Int("count", len(comments)).
		Msg("Retrieved video comments from Likee")

	return comments, nil
}

func (a *API) postVideos(ctx context.Context, endpoint, format string, body any) ([]models.Video, error) {
	resp, err := a.transport.Post(ctx, endpoint, format, body)
	if err != nil {
		return nil, fmt.Errorf("fetching videos: %w", err)
	}

	videos, err := models.MapVideoCollection(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("fetching videos: %w", err)
	}

	a.logger.Debug().
		Str("endpoint", endpoint).
		Int("count", len(videos)).
		Msg("Retrieved videos from Likee")

	return videos, nil
}

// RandomDeviceID returns a dashless random UUID.
func RandomDeviceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// RandomUserID returns a 10 digit id made of the digits 1 to 9.
func RandomUserID() string {
	var b strings.Builder
	for range 10 {
		b.WriteByte(byte('1' + rand.IntN(9)))
	}
	return b.String()
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// numberOrString sends numeric ids as JSON numbers without losing precision.
func numberOrString(s string) any {
	if _, err := strconv.ParseUint(s, 10, 64); err == nil {
		return json.Number(s)
	}
	return s
}
