package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/likee/filter"
	"github.com/s0up4200/likee/models"
	"github.com/s0up4200/likee/resource"
)

var (
	videoID      string
	commentLimit int
)

// commentsCmd lists the comments on a video
var commentsCmd = &cobra.Command{
	Use:   "comments [<creator> <video-id>]",
	Short: "List comments on a video",
	Long: `List comments on a video.

Pass a creator and one of their video ids to find the video through the
creator's uploads, or pass --video to read the comments directly.`,
	Example: `  likee comments dancer 7212345678901234567
  likee comments --video 7212345678901234567 --filter 'Likes > 10'`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && videoID == "" {
			return errors.New("either <creator> <video-id> or --video is required")
		}
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected <creator> <video-id>, got %d arguments", len(args))
		}
		return nil
	},
	RunE: runComments,
}

func init() {
	rootCmd.AddCommand(commentsCmd)

	commentsCmd.Flags().StringVar(&videoID, "video", "", "video id")
	commentsCmd.Flags().IntVarP(&commentLimit, "limit", "n", 20, "number of comments to print")
	commentsCmd.Flags().IntVar(&maxScan, "max-scan", 500, "stop after reading this many comments, 0 for no limit")
	commentsCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	commentsCmd.Flags().StringVarP(&presetName, "preset", "p", "", "use a preset filter from config")
}

func runComments(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	f, err := selectFilter(filter.Comments, filterExpr, presetName)
	if err != nil {
		return err
	}

	var video *resource.Video
	if len(args) == 2 {
		video, err = findCreatorVideo(cmd, args[0], args[1])
	} else {
		video, err = videoByID(videoID)
	}
	if err != nil {
		return err
	}

	var keep func(*resource.Comment) (bool, error)
	if f != nil {
		keep = func(c *resource.Comment) (bool, error) { return f.Match(c.Comment) }
	}

	comments, err := take(ctx, video.Comments(), commentLimit, maxScan, keep)
	if err != nil {
		return err
	}
	return printComments(cmd.OutOrStdout(), cfg.Output.Format, comments)
}

func videoByID(raw string) (*resource.Video, error) {
	id, err := models.ParseSnowflake(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid video id %q: %w", raw, err)
	}
	return likeeClient.Video(id), nil
}

// findCreatorVideo walks the creator's uploads until the video shows up
func findCreatorVideo(cmd *cobra.Command, username, rawID string) (*resource.Video, error) {
	ctx := cmd.Context()

	id, err := models.ParseSnowflake(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid video id %q: %w", rawID, err)
	}

	creator, err := likeeClient.FindCreator(ctx, username)
	if err != nil {
		return nil, err
	}

	for v, err := range creator.Videos().All(ctx) {
		if err != nil {
			return nil, err
		}
		if v.ID == id {
			return v, nil
		}
	}
	return nil, fmt.Errorf("video %s not found in @%s's uploads", id, creator.Username)
}
