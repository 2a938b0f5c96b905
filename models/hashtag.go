package models

import "fmt"

// Hashtag is a trending topic.
type Hashtag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	VideosCount int64  `json:"videos_count"`
	PlayCount   int64  `json:"play_count"`
}

type hashtagPayload struct {
	EventID string `mapstructure:"eventId"`
	TagName string `mapstructure:"tagName"`
	PostCnt int64  `mapstructure:"postCnt"`
	PlayCnt int64  `mapstructure:"playCnt"`
}

// MapHashtag converts one entry of a hashtag list.
func MapHashtag(data map[string]any) (Hashtag, error) {
	var p hashtagPayload
	if err := decodePayload(data, &p); err != nil {
		return Hashtag{}, fmt.Errorf("decoding hashtag: %w", err)
	}
	return Hashtag{
		ID:          p.EventID,
		Name:        p.TagName,
		VideosCount: p.PostCnt,
		PlayCount:   p.PlayCnt,
	}, nil
}

// MapHashtagCollection reads the hashtags under data.eventList.
func MapHashtagCollection(body any) ([]Hashtag, error) {
	return mapList(body, MapHashtag, "data", "eventList")
}
