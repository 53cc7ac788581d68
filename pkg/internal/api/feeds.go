package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/campus-connect/campusctl/pkg/internal/models"
)

type CreateFeedRequest struct {
	Title       string              `json:"title" validate:"required,min=1,max=200"`
	Content     string              `json:"content" validate:"required,min=1"`
	FeedType    models.FeedType     `json:"feed_type" validate:"required,oneof=announcement event general academic"`
	Priority    models.FeedPriority `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	IsPinned    bool                `json:"is_pinned"`
	IsPublic    bool                `json:"is_public"`
	Tags        []string            `json:"tags"`
	Attachments []string            `json:"attachments"`
}

type ListFeedsParams struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string
	FeedType  models.FeedType
	Priority  models.FeedPriority
	Tags      []string
	Search    string
	IsPinned  *bool
}

func (c *Client) ListFeeds(ctx context.Context, params ListFeedsParams) (models.FeedList, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(params.PerPage))
	}
	if params.SortBy != "" {
		query.Set("sort_by", params.SortBy)
	}
	if params.SortOrder != "" {
		query.Set("sort_order", params.SortOrder)
	}
	if params.FeedType != "" {
		query.Set("feed_type", params.FeedType)
	}
	if params.Priority != "" {
		query.Set("priority", params.Priority)
	}
	for _, tag := range params.Tags {
		query.Add("tags", tag)
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.IsPinned != nil {
		query.Set("is_pinned", strconv.FormatBool(*params.IsPinned))
	}

	var list models.FeedList
	err := c.get(ctx, "/feeds", query, &list)
	return list, err
}

func (c *Client) GetFeed(ctx context.Context, feedID string) (models.Feed, error) {
	var feed models.Feed
	err := c.get(ctx, "/feeds/"+feedID, nil, &feed)
	return feed, err
}

func (c *Client) CreateFeed(ctx context.Context, request CreateFeedRequest) (models.Feed, error) {
	var feed models.Feed
	err := c.post(ctx, "/feeds", request, &feed)
	return feed, err
}

type UpdateFeedRequest struct {
	Title    *string              `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content  *string              `json:"content,omitempty" validate:"omitempty,min=1"`
	Priority *models.FeedPriority `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	IsPinned *bool                `json:"is_pinned,omitempty"`
	Tags     []string             `json:"tags,omitempty"`
}

func (c *Client) UpdateFeed(ctx context.Context, feedID string, request UpdateFeedRequest) (models.Feed, error) {
	var feed models.Feed
	err := c.put(ctx, "/feeds/"+feedID, request, &feed)
	return feed, err
}

func (c *Client) DeleteFeed(ctx context.Context, feedID string) error {
	return c.delete(ctx, "/feeds/"+feedID)
}

// LikeFeed toggles the viewer's like on the server and reports the
// resulting state.
func (c *Client) LikeFeed(ctx context.Context, feedID string) (bool, error) {
	var result struct {
		Message string `json:"message"`
		IsLiked bool   `json:"is_liked"`
	}
	err := c.post(ctx, "/feeds/"+feedID+"/like", nil, &result)
	return result.IsLiked, err
}

func (c *Client) ShareFeed(ctx context.Context, feedID string) error {
	return c.post(ctx, "/feeds/"+feedID+"/share", nil, nil)
}

func (c *Client) ListComments(ctx context.Context, feedID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.get(ctx, "/feeds/"+feedID+"/comments", nil, &comments)
	return comments, err
}

func (c *Client) AddComment(ctx context.Context, feedID, content string) (models.Comment, error) {
	payload := map[string]any{"content": content}

	var comment models.Comment
	err := c.post(ctx, "/feeds/"+feedID+"/comment", payload, &comment)
	return comment, err
}
