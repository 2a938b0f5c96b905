package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/likee/filter"
	"github.com/s0up4200/likee/resource"
)

var videoCount int

// creatorCmd shows a creator profile and optionally their latest videos
var creatorCmd = &cobra.Command{
	Use:   "creator <username>",
	Short: "Show a creator profile",
	Example: `  likee creator dancer
  likee creator @dancer --videos 10 --filter 'Likes > 500'`,
	Args: cobra.ExactArgs(1),
	RunE: runCreator,
}

func init() {
	rootCmd.AddCommand(creatorCmd)

	creatorCmd.Flags().IntVar(&videoCount, "videos", 0, "also list this many of the creator's videos")
	creatorCmd.Flags().IntVar(&maxScan, "max-scan", 500, "stop after reading this many videos, 0 for no limit")
	creatorCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression for the listed videos")
	creatorCmd.Flags().StringVarP(&presetName, "preset", "p", "", "use a preset filter from config")
}

func runCreator(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	creator, err := likeeClient.FindCreator(ctx, args[0])
	if err != nil {
		return err
	}

	var videos []*resource.Video
	if videoCount > 0 {
		f, err := selectFilter(filter.Videos, filterExpr, presetName)
		if err != nil {
			return err
		}
		videos, err = take(ctx, creator.Videos(), videoCount, maxScan, matchVideo(f))
		if err != nil {
			return err
		}
	}

	return printCreator(cmd.OutOrStdout(), cfg.Output.Format, creator, videos)
}
