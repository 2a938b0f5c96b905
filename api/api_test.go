package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/likee/config"
	"github.com/s0up4200/likee/models"
	"github.com/s0up4200/likee/transport"
)

func testEndpoints(base string) Endpoints {
	return Endpoints{
		TrendingVideos:   base + "/videoApi/getSquareVideos",
		CreatorVideos:    base + "/videoApi/getUserVideo",
		TrendingHashtags: base + "/RecommendApi/getRecommendHashtag",
		HashtagVideos:    base + "/VideoApi/getEventVideo",
		VideoComments:    base + "/live/home/comments",
		ProfileBase:      base + "/",
	}
}

func newTestAPI(t *testing.T, cfg config.ClientConfig, handler http.HandlerFunc) *API {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tr, err := transport.New(cfg, transport.WithEnv(func(string) string { return "" }))
	require.NoError(t, err)
	t.Cleanup(tr.Close)

	a, err := New(tr, WithEndpoints(testEndpoints(server.URL)), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return a
}

func readJSON(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
	var body map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	require.NoError(t, dec.Decode(&body))
	return body
}

func readForm(t *testing.T, r *http.Request) url.Values {
	t.Helper()
	assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
	raw, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	values, err := url.ParseQuery(string(raw))
	require.NoError(t, err)
	return values
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func videoList(ids ...string) map[string]any {
	list := make([]any, 0, len(ids))
	for _, id := range ids {
		list = append(list, map[string]any{"postId": id, "likeeId": "creator"})
	}
	return map[string]any{"code": 0, "data": map[string]any{"videoList": list}}
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	tr, err := transport.New(config.DefaultClient())
	require.NoError(t, err)

	_, err = New(tr, WithEndpoints(Endpoints{}))
	assert.ErrorContains(t, err, "all endpoints must be set")

	a, err := New(tr)
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoints(), a.endpoints)
}

func TestTrendingVideos(t *testing.T) {
	t.Run("explicit ids and defaults", func(t *testing.T) {
		a := newTestAPI(t, config.DefaultClient(), func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/videoApi/getSquareVideos", r.URL.Path)
			body := readJSON(t, r)
			assert.Equal(t, "WELOG_POPULAR", body["scene"])
			assert.Equal(t, json.Number("30"), body["fetchNum"])
			assert.Equal(t, json.Number("0"), body["startNum"])
			assert.Equal(t, json.Number("0"), body["lastPostId"])
			assert.Equal(t, "dev1", body["deviceId"])
			assert.Equal(t, json.Number("1234567890"), body["uid"])
			assert.Equal(t, "en", body["language"])
			assert.Equal(t, "US", body["country"])

			writeJSON(w, videoList("11", "12"))
		})

		videos, err := a.TrendingVideos(context.Background(), TrendingVideosParams{UserID: "1234567890", DeviceID: "dev1"})
		require.NoError(t, err)
		require.Len(t, videos, 2)
		assert.Equal(t, models.Snowflake(11), videos[0].ID)
	})

	t.Run("configured ids and cursor", func(t *testing.T) {
		cfg := config.DefaultClient()
		cfg.DeviceID = "cfgdevice"
		cfg.UserID = "555"

		a := newTestAPI(t, cfg, func(w http.ResponseWriter, r *http.Request) {
			body := readJSON(t, r)
			assert.Equal(t, "cfgdevice", body["deviceId"])
			assert.Equal(t, json.Number("555"), body["uid"])
			assert.Equal(t, json.Number("7212345678901234567"), body["lastPostId"])
			assert.Equal(t, json.Number("10"), body["fetchNum"])
			assert.Equal(t, json.Number("5"), body["startNum"])
			assert.Equal(t, "RU", body["country"])
			assert.Equal(t, "ru", body["language"])

			writeJSON(w, videoList())
		})

		videos, err := a.TrendingVideos(context.Background(), TrendingVideosParams{
			Country:  "RU",
			Language: "ru",
			Start:    5,
			Cursor:   7212345678901234567,
			Limit:    10,
		})
		require.NoError(t, err)
		assert.Empty(t, videos)
	})

	t.Run("random ids", func(t *testing.T) {
		a := newTestAPI(t, config.DefaultClient(), func(w http.ResponseWriter, r *http.Request) {
			body := readJSON(t, r)
			assert.Regexp(t, `^[0-9a-f]{32}$`, body["deviceId"])
			assert.Regexp(t, `^[1-9]{10}$`, string(body["uid"].(json.Number)))
			writeJSON(w, videoList())
		})

		_, err := a.TrendingVideos(context.Background(), TrendingVideosParams{})
		require.NoError(t, err)
	})
}

func TestCreatorVideos(t *testing.T) {
	a := newTestAPI(t, config.DefaultClient(), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videoApi/getUserVideo", r.URL.Path)
		body := readJSON(t, r)
		assert.Equal(t, json.Number("100"), body["count"])
		assert.Equal(t, json.Number("0"), body["tabType"])
		assert.Equal(t, json.Number("42"), body["uid"])
		assert.Equal(t, json.Number("9"), body["lastPostId"])

		writeJSON(w, videoList("8", "7"))
	})

	videos, err := a.CreatorVideos(context.Background(), CreatorVideosParams{CreatorID: "42", Cursor: 9})
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, models.Snowflake(7), videos[1].ID)

	_, err = a.CreatorVideos(context.Background(), CreatorVideosParams{})
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestTrendingHashtags(t *testing.T) {
	a := newTestAPI(t, config.DefaultClient(), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/RecommendApi/getRecommendHashtag", r.URL.Path)
		form := readForm(t, r)
		assert.Equal(t, "100", form.Get("pagesize"))
		assert.Equal(t, "2", form.Get("page"))
		assert.Equal(t, "en", form.Get("language"))
		assert.Equal(t, "US", form.Get("country"))

		writeJSON(w, map[string]any{"data": map[string]any{"eventList": []any{
			map[string]any{"eventId": 1, "tagName": "dance", "postCnt": 10, "playCnt": 20},
		}}})
	})

	hashtags, err := a.TrendingHashtags(context.Background(), TrendingHashtagsParams{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, []models.Hashtag{{ID: "1", Name: "dance", VideosCount: 10, PlayCount: 20}}, hashtags)
}

func TestHashtagVideos(t *testing.T) {
	a := newTestAPI(t, config.DefaultClient(), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/VideoApi/getEventVideo", r.URL.Path)
		form := readForm(t, r)
		assert.Equal(t, "777", form.Get("topicId"))
		assert.Equal(t, "50", form.Get("pageSize"))
		assert.Equal(t, "1", form.Get("page"))
		assert.Equal(t, "BR", form.Get("country"))

		writeJSON(w, videoList("3"))
	})

	videos, err := a.HashtagVideos(context.Background(), HashtagVideosParams{HashtagID: "777", Country: "BR"})
	require.NoError(t, err)
	require.Len(t, videos, 1)

	_, err = a.HashtagVideos(context.Background(), HashtagVideosParams{})
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestFindCreator(t *testing.T) {
	const page = `<html><script>window.data = {"userinfo":{"uid":"100","likeeId":"dancer","nick_name":"Dancer","gender":1,"fansCount":12},"other":1}</script></html>`

	a := newTestAPI(t, config.DefaultClient(), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		switch r.URL.Path {
		case "/@dancer":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(page))
		case "/@empty":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	})

	creator, err := a.FindCreator(context.Background(), "@dancer")
	require.NoError(t, err)
	assert.Equal(t, "100", creator.ID)
	assert.Equal(t, "dancer", creator.Username)
	assert.Equal(t, "Dancer", creator.Nickname)
	assert.Equal(t, models.GenderFemale, creator.Gender)
	assert.Equal(t, int64(12), creator.FansCount)

	_, err = a.FindCreator(context.Background(), "empty")
	assert.ErrorIs(t, err, ErrCreatorNotFound)

	_, err = a.FindCreator(context.Background(), "ghost")
	assert.ErrorIs(t, err, transport.ErrNotFound)

	_, err = a.FindCreator(context.Background(), " ")
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestVideoComments(t *testing.T) {
	a := newTestAPI(t, config.DefaultClient(), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/live/home/comments", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "12", q.Get("post_id"))
		assert.Equal(t, "en", q.Get("lang"))
		assert.Equal(t, "49", q.Get("page_size"))
		assert.Equal(t, "0", q.Get("last_comment_id"))

		writeJSON(w, map[string]any{"data": []any{
			map[string]any{"commentId": "5", "commentTime": 1700000000, "comMsg": `{"txt":"hi"}`},
		}})
	})

	comments, err := a.VideoComments(context.Background(), VideoCommentsParams{VideoID: 12})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "hi", comments[0].Content)

	_, err = a.VideoComments(context.Background(), VideoCommentsParams{})
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestServerErrorPropagates(t *testing.T) {
	a := newTestAPI(t, config.DefaultClient(), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := a.TrendingVideos(context.Background(), TrendingVideosParams{})
	assert.ErrorIs(t, err, transport.ErrServer)

	var herr *transport.HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusBadGateway, herr.StatusCode())
}

func TestRandomIDs(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), RandomDeviceID())
	assert.Regexp(t, regexp.MustCompile(`^[1-9]{10}$`), RandomUserID())
	assert.NotEqual(t, RandomDeviceID(), RandomDeviceID())
}
