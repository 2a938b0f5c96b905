package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Comment is a comment left on a video.
type Comment struct {
	ID                Snowflake `json:"id,string"`
	CreatedAt         time.Time `json:"created_at"`
	UserID            string    `json:"user_id"`
	UserUsername      string    `json:"user_username"`
	UserNickname      string    `json:"user_nickname"`
	UserAvatarURL     string    `json:"user_avatar_url"`
	Content           string    `json:"content"`
	ReplyUserID       string    `json:"reply_user_id,omitempty"`
	ReplyUserNickname string    `json:"reply_user_nickname,omitempty"`
	ReplyContent      string    `json:"reply_content,omitempty"`
	LikesCount        int64     `json:"likes_count"`
}

// IsReply reports whether the comment answers another user.
func (c Comment) IsReply() bool {
	return c.ReplyUserID != ""
}

type commentPayload struct {
	CommentID   Snowflake `mapstructure:"commentId"`
	CommentTime int64     `mapstructure:"commentTime"`
	UID         string    `mapstructure:"uid"`
	UserName    string    `mapstructure:"userName"`
	NickName    string    `mapstructure:"nickName"`
	Avatar      string    `mapstructure:"avatar"`
	ComMsg      string    `mapstructure:"comMsg"`
	LikeCount   int64     `mapstructure:"likeCount"`
}

type commentMessage struct {
	Text      string `mapstructure:"txt"`
	ReplyUID  int64  `mapstructure:"re_uid"`
	ReplyName string `mapstructure:"re_n"`
	ReplyText string `mapstructure:"re_txt"`
}

// MapComment converts one entry of a comment list.
func MapComment(data map[string]any) (Comment, error) {
	var p commentPayload
	if err := decodePayload(data, &p); err != nil {
		return Comment{}, fmt.Errorf("decoding comment: %w", err)
	}
	if p.CommentID == 0 {
		return Comment{}, errors.New("decoding comment: missing commentId")
	}

	var msg commentMessage
	if err := decodeEmbedded(p.ComMsg, &msg); err != nil {
		return Comment{}, fmt.Errorf("decoding comment %s message: %w", p.CommentID, err)
	}

	c := Comment{
		ID:                p.CommentID,
		CreatedAt:         time.Unix(p.CommentTime, 0),
		UserID:            p.UID,
		UserUsername:      p.UserName,
		UserNickname:      p.NickName,
		UserAvatarURL:     p.Avatar,
		Content:           msg.Text,
		ReplyUserNickname: msg.ReplyName,
		ReplyContent:      msg.ReplyText,
		LikesCount:        p.LikeCount,
	}
	// Reply uids overflow into negative values upstream.
	if uid := msg.ReplyUID; uid != 0 {
		if uid < 0 {
			uid = -uid
		}
		c.ReplyUserID = strconv.FormatInt(uid, 10)
	}

	return c, nil
}

// MapCommentCollection reads the comments under data.
func MapCommentCollection(body any) ([]Comment, error) {
	return mapList(body, MapComment, "data")
}
