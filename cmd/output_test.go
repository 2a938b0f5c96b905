package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/blang/semver"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/likee/api"
	"github.com/s0up4200/likee/filter"
	"github.com/s0up4200/likee/models"
	"github.com/s0up4200/likee/resource"
)

func numbers(pages map[uint64][]int) *resource.Collection[int, int] {
	fetch := func(_ context.Context, cursor uint64) ([]int, error) {
		return pages[cursor], nil
	}
	return resource.NewCollection("numbers", zerolog.Nop(), fetch,
		func(n int) int { return n }, resource.ByPage[int]())
}

func TestTake(t *testing.T) {
	pages := map[uint64][]int{0: {1, 2, 3}, 1: {4, 5, 6}, 2: {7}}
	even := func(n int) (bool, error) { return n%2 == 0, nil }

	tests := []struct {
		name    string
		limit   int
		maxScan int
		keep    func(int) (bool, error)
		want    []int
	}{
		{"no filter", 4, 0, nil, []int{1, 2, 3, 4}},
		{"filtered", 2, 0, even, []int{2, 4}},
		{"runs out", 10, 0, even, []int{2, 4, 6}},
		{"scan cap", 10, 3, even, []int{2}},
		{"zero limit", 0, 0, nil, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := take(context.Background(), numbers(pages), tt.limit, tt.maxScan, tt.keep)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("keep error", func(t *testing.T) {
		boom := errors.New("boom")
		got, err := take(context.Background(), numbers(pages), 5, 0, func(n int) (bool, error) {
			if n == 3 {
				return false, boom
			}
			return true, nil
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []int{1, 2}, got)
	})
}

func TestSelectFilter(t *testing.T) {
	presets = filter.NewPresets(map[string]string{"popular": `Likes > 100`})

	f, err := selectFilter(filter.Videos, "", "")
	require.NoError(t, err)
	assert.Nil(t, f)
	assert.Empty(t, describeFilter(f))

	f, err = selectFilter(filter.Videos, `Likes > 1`, "popular")
	require.NoError(t, err)
	assert.Equal(t, `Likes > 1`, describeFilter(f))

	f, err = selectFilter(filter.Videos, "", "popular")
	require.NoError(t, err)
	assert.Equal(t, `Likes > 100`, f.String())

	_, err = selectFilter(filter.Videos, "", "missing")
	assert.ErrorIs(t, err, filter.ErrUnknownPreset)

	_, err = selectFilter(filter.Videos, `Likes >`, "")
	assert.ErrorContains(t, err, "invalid filter expression")
}

func testVideos(t *testing.T) []*resource.Video {
	t.Helper()
	g, err := resource.NewGraph(nopAPI{})
	require.NoError(t, err)
	return []*resource.Video{
		g.Video(models.Video{
			ID:              7212345678901234567,
			CreatorUsername: "dancer",
			UploadedAt:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Title:           "Morning\nroutine",
			LikesCount:      12,
		}),
	}
}

func TestPrintVideos(t *testing.T) {
	videos := testVideos(t)

	var table bytes.Buffer
	require.NoError(t, printVideos(&table, "table", videos))
	assert.Contains(t, table.String(), "CREATOR")
	assert.Contains(t, table.String(), "@dancer")
	assert.Contains(t, table.String(), "2024-03-01")
	assert.Contains(t, table.String(), "Morning routine")

	var out bytes.Buffer
	require.NoError(t, printVideos(&out, "json", videos))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "7212345678901234567", decoded[0]["id"])

	var empty bytes.Buffer
	require.NoError(t, printVideos(&empty, "table", nil))
	assert.Equal(t, "No videos found.\n", empty.String())
}

func TestPrintCreatorJSON(t *testing.T) {
	g, err := resource.NewGraph(nopAPI{})
	require.NoError(t, err)
	creator := g.Creator(models.Creator{ID: "42", Username: "dancer", Gender: models.GenderMale})

	var out bytes.Buffer
	require.NoError(t, printCreator(&out, "json", creator, testVideos(t)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "dancer", decoded["username"])
	assert.Equal(t, "male", decoded["gender"])
	assert.Len(t, decoded["videos"], 1)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "a b", truncate("a\nb", 5))
}

func TestIsNewer(t *testing.T) {
	current := semver.MustParse("1.2.0")

	newer, err := isNewer(current, "v1.3.0")
	require.NoError(t, err)
	assert.True(t, newer)

	newer, err = isNewer(current, "1.2.0")
	require.NoError(t, err)
	assert.False(t, newer)

	_, err = isNewer(current, "latest")
	assert.Error(t, err)
}

// nopAPI satisfies resource.LikeeAPI for handles that never fetch
type nopAPI struct{}

func (nopAPI) TrendingVideos(context.Context, api.TrendingVideosParams) ([]models.Video, error) {
	return nil, nil
}

func (nopAPI) CreatorVideos(context.Context, api.CreatorVideosParams) ([]models.Video, error) {
	return nil, nil
}

func (nopAPI) HashtagVideos(context.Context, api.HashtagVideosParams) ([]models.Video, error) {
	return nil, nil
}

func (nopAPI) TrendingHashtags(context.Context, api.TrendingHashtagsParams) ([]models.Hashtag, error) {
	return nil, nil
}

func (nopAPI) VideoComments(context.Context, api.VideoCommentsParams) ([]models.Comment, error) {
	return nil, nil
}

func (nopAPI) FindCreator(context.Context, string) (models.Creator, error) {
	return models.Creator{}, nil
}
