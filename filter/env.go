package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/s0up4200/likee/models"
)

// helpers are available in every filter expression.
func helpers() map[string]any {
	return map[string]any{
		// Date helpers
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"hoursSince": func(t time.Time) int {
			return int(time.Since(t).Hours())
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"monthsAgo": func(months int) time.Time {
			return time.Now().AddDate(0, -months, 0)
		},
		"parseDate": func(dateStr string) time.Time {
			t, _ := dateparse.ParseIn(dateStr, time.UTC)
			return t
		},
		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"now":   time.Now,
	}
}

func videoEnv(v models.Video) map[string]any {
	hashtags := make([]string, 0, len(v.Hashtags))
	for _, h := range v.Hashtags {
		hashtags = append(hashtags, h.Name)
	}
	mentions := make([]string, 0, len(v.Mentions))
	for _, m := range v.Mentions {
		mentions = append(mentions, m.Name)
	}

	env := helpers()
	maps.Copy(env, map[string]any{
		"hasHashtag": func(name string) bool {
			name = strings.TrimPrefix(name, "#")
			for _, h := range hashtags {
				if strings.EqualFold(h, name) {
					return true
				}
			}
			return false
		},
		"mentions": func(name string) bool {
			name = strings.TrimPrefix(name, "@")
			for _, m := range mentions {
				if strings.EqualFold(m, name) {
					return true
				}
			}
			return false
		},

		"ID":              v.ID.String(),
		"Title":           v.Title,
		"Description":     v.Description,
		"Creator":         v.CreatorUsername,
		"CreatorNickname": v.CreatorNickname,
		"Uploaded":        v.UploadedAt,
		"Width":           v.Width,
		"Height":          v.Height,
		"Sound":           v.SoundName,
		"SoundOwner":      v.SoundOwnerName,
		"Likes":           v.LikesCount,
		"Comments":        v.CommentsCount,
		"Plays":           v.PlayCount,
		"Shares":          v.ShareCount,
		"Hashtags":        hashtags,
		"Mentions":        mentions,
		"Country":         v.Country,
	})
	return env
}

func commentEnv(c models.Comment) map[string]any {
	env := helpers()
	maps.Copy(env, map[string]any{
		"ID":           c.ID.String(),
		"Content":      c.Content,
		"User":         c.UserUsername,
		"UserNickname": c.UserNickname,
		"Created":      c.CreatedAt,
		"Likes":        c.LikesCount,
		"IsReply":      c.IsReply(),
		"ReplyTo":      c.ReplyUserNickname,
		"ReplyContent": c.ReplyContent,
	})
	return env
}

func creatorEnv(c models.Creator) map[string]any {
	env := helpers()
	maps.Copy(env, map[string]any{
		"age": func() int {
			if c.Birthday.IsZero() {
				return 0
			}
			now := time.Now()
			years := now.Year() - c.Birthday.Year()
			if now.YearDay() < c.Birthday.YearDay() {
				years--
			}
			return years
		},

		"ID":        c.ID,
		"Username":  c.Username,
		"Nickname":  c.Nickname,
		"Country":   c.Country,
		"Gender":    c.Gender.String(),
		"Birthday":  c.Birthday,
		"StarSign":  c.StarSign,
		"Bio":       c.Bio,
		"Likes":     c.LikesCount,
		"Fans":      c.FansCount,
		"Following": c.FollowingCount,
	})
	return env
}
