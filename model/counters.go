package model

import (
	"encoding/json"
	"io"
	"net/http"
)

const (
	LIKE_STATUS_LIKED   = "liked"
	LIKE_STATUS_UNLIKED = "unliked"
)

// PostViewCount is the body returned by the register view endpoint.
type PostViewCount struct {
	ViewsCount int `json:"views_count"`
}

func (o *PostViewCount) ToJson() string {
	b, _ := json.Marshal(o)
	return string(b)
}

func PostViewCountFromJson(data io.Reader) (*PostViewCount, *AppError) {
	var raw struct {
		ViewsCount *int `json:"views_count"`
	}
	if err := json.NewDecoder(data).Decode(&raw); err != nil {
		return nil, NewAppError("PostViewCountFromJson", "model.post_view_count.decode.app_error", nil, err.Error(), http.StatusInternalServerError)
	}

	if raw.ViewsCount == nil {
		return nil, NewAppError("PostViewCountFromJson", "model.post_view_count.missing_field.app_error", map[string]interface{}{"Field": "views_count"}, "", http.StatusInternalServerError)
	}

	return &PostViewCount{ViewsCount: *raw.ViewsCount}, nil
}

// PostLikeStatus is the body returned by the toggle like endpoint. Status is decided by
// the server alone.
type PostLikeStatus struct {
	Status    string `json:"status"`
	LikeCount int    `json:"like_count"`
}

func (o *PostLikeStatus) Liked() bool {
	return o.Status == LIKE_STATUS_LIKED
}

func (o *PostLikeStatus) ToJson() string {
	b, _ := json.Marshal(o)
	return string(b)
}

func PostLikeStatusFromJson(data io.Reader) (*PostLikeStatus, *AppError) {
	var raw struct {
		Status    *string `json:"status"`
		LikeCount *int    `json:"like_count"`
	}
	if err := json.NewDecoder(data).Decode(&raw); err != nil {
		return nil, NewAppError("PostLikeStatusFromJson", "model.post_like_status.decode.app_error", nil, err.Error(), http.StatusInternalServerError)
	}

	if raw.Status == nil || (*raw.Status != LIKE_STATUS_LIKED && *raw.Status != LIKE_STATUS_UNLIKED) {
		return nil, NewAppError("PostLikeStatusFromJson", "model.post_like_status.invalid_status.app_error", nil, "", http.StatusInternalServerError)
	}

	if raw.LikeCount == nil {
		return nil, NewAppError("PostLikeStatusFromJson", "model.post_like_status.missing_field.app_error", map[string]interface{}{"Field": "like_count"}, "", http.StatusInternalServerError)
	}

	return &PostLikeStatus{Status: *raw.Status, LikeCount: *raw.LikeCount}, nil
}
