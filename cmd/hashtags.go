package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/likee/filter"
)

// hashtagsCmd lists trending hashtags
var hashtagsCmd = &cobra.Command{
	Use:   "hashtags",
	Short: "List trending hashtags",
	RunE:  runHashtags,
}

// hashtagCmd lists the videos of one hashtag
var hashtagCmd = &cobra.Command{
	Use:     "hashtag <id>",
	Short:   "List videos tagged with a hashtag",
	Example: `  likee hashtag 6846564739528433663 --limit 5`,
	Args:    cobra.ExactArgs(1),
	RunE:    runHashtag,
}

func init() {
	rootCmd.AddCommand(hashtagsCmd)
	rootCmd.AddCommand(hashtagCmd)

	hashtagsCmd.Flags().StringVar(&country, "country", "", "two letter country code (default from config)")
	hashtagsCmd.Flags().StringVar(&language, "language", "", "language code (default from config)")
	hashtagsCmd.Flags().IntVarP(&hashtagLimit, "limit", "n", 20, "number of hashtags to print")

	addListFlags(hashtagCmd)
}

func runHashtags(cmd *cobra.Command, args []string) error {
	hashtags, err := likeeClient.TrendingHashtags(country, language).First(cmd.Context(), hashtagLimit)
	if err != nil {
		return err
	}
	return printHashtags(cmd.OutOrStdout(), cfg.Output.Format, hashtags)
}

func runHashtag(cmd *cobra.Command, args []string) error {
	f, err := selectFilter(filter.Videos, filterExpr, presetName)
	if err != nil {
		return err
	}

	videos, err := take(cmd.Context(), likeeClient.HashtagVideos(args[0]), limit, maxScan, matchVideo(f))
	if err != nil {
		return err
	}
	return printVideos(cmd.OutOrStdout(), cfg.Output.Format, videos)
}
