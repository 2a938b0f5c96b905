package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/s0up4200/likee/filter"
	"github.com/s0up4200/likee/models"
	"github.com/s0up4200/likee/resource"
)

// selectFilter compiles --filter, or the named --preset, for subject.
// It returns nil when neither is set.
func selectFilter[T any](subject filter.Subject[T], expression, preset string) (*filter.Filter[T], error) {
	if expression != "" {
		f, err := filter.Compile(subject, expression)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		return f, nil
	}
	if preset != "" {
		return filter.CompilePreset(presets, subject, preset)
	}
	return nil, nil
}

// take walks coll until limit handles pass keep or maxScan handles were seen.
func take[E, H any](ctx context.Context, coll *resource.Collection[E, H], limit, maxScan int, keep func(H) (bool, error)) ([]H, error) {
	out := make([]H, 0, limit)
	if limit <= 0 {
		return out, nil
	}

	scanned := 0
	for h, err := range coll.All(ctx) {
		if err != nil {
			return out, err
		}
		scanned++

		ok := true
		if keep != nil {
			if ok, err = keep(h); err != nil {
				return out, err
			}
		}
		if ok {
			out = append(out, h)
		}
		if len(out) == limit || (maxScan > 0 && scanned >= maxScan) {
			break
		}
	}
	return out, nil
}

func matchVideo(f *filter.Filter[models.Video]) func(*resource.Video) (bool, error) {
	if f == nil {
		return nil
	}
	return func(v *resource.Video) (bool, error) { return f.Match(v.Video) }
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printVideos(w io.Writer, format string, videos []*resource.Video) error {
	if format == "json" {
		out := make([]models.Video, 0, len(videos))
		for _, v := range videos {
			out = append(out, v.Video)
		}
		return writeJSON(w, out)
	}

	if len(videos) == 0 {
		fmt.Fprintln(w, "No videos found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATOR\tUPLOADED\tLIKES\tCOMMENTS\tPLAYS\tTITLE")
	for _, v := range videos {
		fmt.Fprintf(tw, "%s\t@%s\t%s\t%d\t%d\t%d\t%s\n",
			v.ID, v.CreatorUsername, v.UploadedAt.Format("2006-01-02"),
			v.LikesCount, v.CommentsCount, v.PlayCount, truncate(v.Title, 50))
	}
	return tw.Flush()
}

func printHashtags(w io.Writer, format string, hashtags []*resource.Hashtag) error {
	if format == "json" {
		out := make([]models.Hashtag, 0, len(hashtags))
		for _, h := range hashtags {
			out = append(out, h.Hashtag)
		}
		return writeJSON(w, out)
	}

	if len(hashtags) == 0 {
		fmt.Fprintln(w, "No hashtags found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tVIDEOS\tPLAYS")
	for _, h := range hashtags {
		fmt.Fprintf(tw, "%s\t#%s\t%d\t%d\n", h.ID, h.Name, h.VideosCount, h.PlayCount)
	}
	return tw.Flush()
}

func printComments(w io.Writer, format string, comments []*resource.Comment) error {
	if format == "json" {
		out := make([]models.Comment, 0, len(comments))
		for _, c := range comments {
			out = append(out, c.Comment)
		}
		return writeJSON(w, out)
	}

	if len(comments) == 0 {
		fmt.Fprintln(w, "No comments found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSER\tPOSTED\tLIKES\tCOMMENT")
	for _, c := range comments {
		content := c.Content
		if c.IsReply() {
			content = "@" + c.ReplyUserNickname + " " + content
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			c.ID, c.UserNickname, c.CreatedAt.Format("2006-01-02 15:04"), c.LikesCount, truncate(content, 60))
	}
	return tw.Flush()
}

func printCreator(w io.Writer, format string, c *resource.Creator, videos []*resource.Video) error {
	if format == "json" {
		out := struct {
			models.Creator
			Videos []models.Video `json:"videos,omitempty"`
		}{Creator: c.Creator}
		for _, v := range videos {
			out.Videos = append(out.Videos, v.Video)
		}
		return writeJSON(w, out)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Username:\t@%s\n", c.Username)
	fmt.Fprintf(tw, "Nickname:\t%s\n", c.Nickname)
	fmt.Fprintf(tw, "ID:\t%s\n", c.ID)
	if c.Country != "" {
		fmt.Fprintf(tw, "Country:\t%s\n", c.Country)
	}
	fmt.Fprintf(tw, "Gender:\t%s\n", c.Gender)
	if !c.Birthday.IsZero() {
		fmt.Fprintf(tw, "Birthday:\t%s\n", c.Birthday.Format("2006-01-02"))
	}
	if c.Bio != "" {
		fmt.Fprintf(tw, "Bio:\t%s\n", strings.ReplaceAll(c.Bio, "\n", " "))
	}
	fmt.Fprintf(tw, "Fans:\t%d\n", c.FansCount)
	fmt.Fprintf(tw, "Following:\t%d\n", c.FollowingCount)
	fmt.Fprintf(tw, "Likes:\t%d\n", c.LikesCount)
	if err := tw.Flush(); err != nil {
		return err
	}

	if videos == nil {
		return nil
	}
	fmt.Fprintln(w)
	return printVideos(w, format, videos)
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func describeFilter[T any](f *filter.Filter[T]) string {
	if f == nil {
		return ""
	}
	return f.String()
}
