package models

import "time"

type FeedType = string

const (
	FeedTypeAnnouncement = FeedType("announcement")
	FeedTypeEvent        = FeedType("event")
	FeedTypeGeneral      = FeedType("general")
	FeedTypeAcademic     = FeedType("academic")
)

type FeedPriority = string

const (
	FeedPriorityLow    = FeedPriority("low")
	FeedPriorityNormal = FeedPriority("normal")
	FeedPriorityHigh   = FeedPriority("high")
	FeedPriorityUrgent = FeedPriority("urgent")
)

type FeedAuthor struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	UserType UserRole `json:"user_type"`
}

type Feed struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	FeedType      FeedType     `json:"feed_type"`
	Priority      FeedPriority `json:"priority"`
	IsPinned      bool         `json:"is_pinned"`
	IsPublic      bool         `json:"is_public"`
	Tags          []string     `json:"tags"`
	Attachments   []string     `json:"attachments"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Author        FeedAuthor   `json:"author"`
	LikesCount    int          `json:"likes_count"`
	CommentsCount int          `json:"comments_count"`
	SharesCount   int          `json:"shares_count"`
	IsLiked       bool         `json:"is_liked"`
	IsShared      bool         `json:"is_shared"`
}

type FeedList struct {
	Feeds   []Feed `json:"feeds"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	HasNext bool   `json:"has_next"`
	HasPrev bool   `json:"has_prev"`
}

type Comment struct {
	ID        string     `json:"id"`
	FeedID    string     `json:"feed_id"`
	Content   string     `json:"content"`
	Author    FeedAuthor `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
}
