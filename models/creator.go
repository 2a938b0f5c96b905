package models

import (
	"fmt"
	"strings"
	"time"
)

// Gender of a creator as reported on the profile page.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

// MarshalText renders the gender name in JSON output.
func (g Gender) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// Creator is a Likee profile.
type Creator struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Nickname       string    `json:"nickname"`
	AvatarURL      string    `json:"avatar_url"`
	Country        string    `json:"country"`
	Gender         Gender    `json:"gender"`
	Birthday       time.Time `json:"birthday,omitzero"`
	StarSign       string    `json:"star_sign"`
	Bio            string    `json:"bio"`
	LikesCount     int64     `json:"likes_count"`
	FansCount      int64     `json:"fans_count"`
	FollowingCount int64     `json:"following_count"`
}

type creatorPayload struct {
	UID              string `mapstructure:"uid"`
	LikeeID          string `mapstructure:"likeeId"`
	NickName         string `mapstructure:"nick_name"`
	BigURL           string `mapstructure:"bigUrl"`
	ExactCountryCode string `mapstructure:"exactCountryCode"`
	Gender           *int   `mapstructure:"gender"`
	Birthday         string `mapstructure:"birthday"`
	Constellation    string `mapstructure:"constellation"`
	Bio              string `mapstructure:"bio"`
	AllLikeCount     int64  `mapstructure:"allLikeCount"`
	FansCount        int64  `mapstructure:"fansCount"`
	FollowCount      int64  `mapstructure:"followCount"`
}

var birthdayLayouts = []string{"2006-01-02", "2006/01/02", "02.01.2006", time.RFC3339}

// MapCreator converts the user info object embedded in a profile page.
func MapCreator(data map[string]any) (Creator, error) {
	var p creatorPayload
	if err := decodePayload(data, &p); err != nil {
		return Creator{}, fmt.Errorf("decoding creator: %w", err)
	}

	c := Creator{
		ID:             p.UID,
		Username:       p.LikeeID,
		Nickname:       p.NickName,
		AvatarURL:      p.BigURL,
		Country:        p.ExactCountryCode,
		Gender:         GenderUnknown,
		StarSign:       p.Constellation,
		Bio:            p.Bio,
		LikesCount:     p.AllLikeCount,
		FansCount:      p.FansCount,
		FollowingCount: p.FollowCount,
	}
	if p.Gender != nil {
		switch *p.Gender {
		case 0:
			c.Gender = GenderMale
		case 1:
			c.Gender = GenderFemale
		}
	}
	c.Birthday = parseBirthday(p.Birthday)

	return c, nil
}

func parseBirthday(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range birthdayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
