package models

import (
	"errors"
	"fmt"
	"time"
)

// Video is a single Likee post.
type Video struct {
	ID               Snowflake      `json:"id,string"`
	UploadedAt       time.Time      `json:"uploaded_at"`
	CreatorID        string         `json:"creator_id"`
	CreatorUsername  string         `json:"creator_username"`
	CreatorNickname  string         `json:"creator_nickname"`
	CreatorAvatarURL string         `json:"creator_avatar_url"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Height           int            `json:"height"`
	Width            int            `json:"width"`
	ThumbnailURL     string         `json:"thumbnail_url"`
	URL              string         `json:"url"`
	SoundID          string         `json:"sound_id"`
	SoundName        string         `json:"sound_name"`
	SoundOwnerName   string         `json:"sound_owner_name"`
	SoundThumbnail   string         `json:"sound_thumbnail"`
	LikesCount       int64          `json:"likes_count"`
	CommentsCount    int64          `json:"comments_count"`
	PlayCount        int64          `json:"play_count"`
	ShareCount       int64          `json:"share_count"`
	Hashtags         []VideoHashtag `json:"hashtags"`
	Mentions         []Mention      `json:"mentions"`
	Country          string         `json:"country"`
}

// VideoHashtag is a hashtag attached to a video.
type VideoHashtag struct {
	ID   string `json:"id" mapstructure:"ev_id"`
	Name string `json:"name" mapstructure:"hs_tg"`
}

// Mention is a user mentioned in a video description.
type Mention struct {
	ID   string `json:"id" mapstructure:"uid"`
	Name string `json:"name" mapstructure:"name"`
}

type videoPayload struct {
	PostID       Snowflake `mapstructure:"postId"`
	PostTime     int64     `mapstructure:"postTime"`
	PosterUID    string    `mapstructure:"posterUid"`
	LikeeID      string    `mapstructure:"likeeId"`
	Nickname     string    `mapstructure:"nickname"`
	Avatar       string    `mapstructure:"avatar"`
	Title        string    `mapstructure:"title"`
	MsgText      string    `mapstructure:"msgText"`
	VideoHeight  int       `mapstructure:"videoHeight"`
	VideoWidth   int       `mapstructure:"videoWidth"`
	CoverURL     string    `mapstructure:"coverUrl"`
	VideoURL     string    `mapstructure:"videoUrl"`
	Sound        struct {
		SoundID   string `mapstructure:"soundId"`
		SoundName string `mapstructure:"soundName"`
		OwnerName string `mapstructure:"ownerName"`
		Avatar    string `mapstructure:"avatar"`
	} `mapstructure:"sound"`
	CloudMusic struct {
		MusicID   string `mapstructure:"musicId"`
		MusicName string `mapstructure:"musicName"`
		Avatar    string `mapstructure:"avatar"`
	} `mapstructure:"cloudMusic"`
	MusicID      string `mapstructure:"musicId"`
	MusicName    string `mapstructure:"musicName"`
	LikeCount    int64  `mapstructure:"likeCount"`
	CommentCount int64  `mapstructure:"commentCount"`
	PlayCount    int64  `mapstructure:"playCount"`
	ShareCount   int64  `mapstructure:"shareCount"`
	HashtagInfos string `mapstructure:"hashtagInfos"`
	AtUserInfos  string `mapstructure:"atUserInfos"`
	Country      string `mapstructure:"country"`
	VideoCountry string `mapstructure:"videoCountry"`
}

// MapVideo converts one entry of a video list.
func MapVideo(data map[string]any) (Video, error) {
	var p videoPayload
	if err := decodePayload(data, &p); err != nil {
		return Video{}, fmt.Errorf("decoding video: %w", err)
	}
	if p.PostID == 0 {
		return Video{}, errors.New("decoding video: missing postId")
	}

	v := Video{
		ID:               p.PostID,
		CreatorID:        p.PosterUID,
		CreatorUsername:  p.LikeeID,
		CreatorNickname:  p.Nickname,
		CreatorAvatarURL: p.Avatar,
		Title:            p.Title,
		Description:      p.MsgText,
		Height:           p.VideoHeight,
		Width:            p.VideoWidth,
		ThumbnailURL:     p.CoverURL,
		URL:              p.VideoURL,
		SoundID:          firstNonEmpty(p.Sound.SoundID, p.CloudMusic.MusicID, p.MusicID),
		SoundName:        firstNonEmpty(p.Sound.SoundName, p.CloudMusic.MusicName, p.MusicName),
		SoundOwnerName:   p.Sound.OwnerName,
		SoundThumbnail:   firstNonEmpty(p.Sound.Avatar, p.CloudMusic.Avatar),
		LikesCount:       p.LikeCount,
		CommentsCount:    p.CommentCount,
		PlayCount:        p.PlayCount,
		ShareCount:       p.ShareCount,
		Hashtags:         []VideoHashtag{},
		Mentions:         []Mention{},
		Country:          firstNonEmpty(p.Country, p.VideoCountry),
	}
	if p.PostTime != 0 {
		v.UploadedAt = time.Unix(p.PostTime, 0)
	}

	if err := decodeEmbedded(p.HashtagInfos, &v.Hashtags); err != nil {
		return Video{}, fmt.Errorf("decoding video %s hashtags: %w", v.ID, err)
	}
	if err := decodeEmbedded(p.AtUserInfos, &v.Mentions); err != nil {
		return Video{}, fmt.Errorf("decoding video %s mentions: %w", v.ID, err)
	}

	return v, nil
}

// MapVideoCollection reads the videos under data.videoList.
func MapVideoCollection(body any) ([]Video, error) {
	return mapList(body, MapVideo, "data", "videoList")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
