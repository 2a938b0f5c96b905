package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/likee/filter"
)

var (
	country      string
	language     string
	start        int
	limit        int
	maxScan      int
	filterExpr   string
	presetName   string
	hashtagLimit int
)

// trendingCmd lists trending videos
var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List trending videos",
	Long: `List videos from the trending feed.

With --filter or --preset only matching videos are printed; the feed is
scanned until --limit matches are found or --max-scan videos were read.`,
	Example: `  likee trending --country GB --limit 10
  likee trending --filter 'Likes > 10000 and hasHashtag("dance")'`,
	RunE: runTrending,
}

func init() {
	rootCmd.AddCommand(trendingCmd)

	trendingCmd.Flags().StringVar(&country, "country", "", "two letter country code (default from config)")
	trendingCmd.Flags().StringVar(&language, "language", "", "language code (default from config)")
	trendingCmd.Flags().IntVar(&start, "start", 0, "recommendation offset")
	addListFlags(trendingCmd)
}

// addListFlags registers the flags shared by commands that print video lists
func addListFlags(c *cobra.Command) {
	c.Flags().IntVarP(&limit, "limit", "n", 20, "number of videos to print")
	c.Flags().IntVar(&maxScan, "max-scan", 500, "stop after reading this many videos, 0 for no limit")
	c.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	c.Flags().StringVarP(&presetName, "preset", "p", "", "use a preset filter from config")
}

func runTrending(cmd *cobra.Command, args []string) error {
	f, err := selectFilter(filter.Videos, filterExpr, presetName)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("country", country).
		Str("language", language).
		Int("start", start).
		Str("filter", describeFilter(f)).
		Msg("Listing trending videos")

	videos, err := take(cmd.Context(), likeeClient.TrendingVideos(country, language, start), limit, maxScan, matchVideo(f))
	if err != nil {
		return err
	}
	return printVideos(cmd.OutOrStdout(), cfg.Output.Format, videos)
}
