package models

import (
	"fmt"
	"time"
)

type ChannelType = string

const (
	ChannelTypeGeneral  = ChannelType("general")
	ChannelTypeAcademic = ChannelType("academic")
	ChannelTypeClub     = ChannelType("club")
	ChannelTypeEvent    = ChannelType("event")
)

type ChannelRole = string

const (
	ChannelRoleMember = ChannelRole("member")
	ChannelRoleAdmin  = ChannelRole("admin")
	ChannelRoleOwner  = ChannelRole("owner")
)

// Channel as the directory endpoints return it. UserRole is only
// present when IsMember is true.
type Channel struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   *string      `json:"description,omitempty"`
	ChannelType   ChannelType  `json:"channel_type"`
	IsPrivate     bool         `json:"is_private"`
	IsArchived    bool         `json:"is_archived"`
	MaxMembers    *int         `json:"max_members,omitempty"`
	Tags          []string     `json:"tags"`
	AvatarURL     *string      `json:"avatar_url,omitempty"`
	CreatedByID   string       `json:"created_by_id"`
	CreatedByRole UserRole     `json:"created_by_role"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	MemberCount   int          `json:"member_count"`
	IsMember      bool         `json:"is_member"`
	UserRole      *ChannelRole `json:"user_role,omitempty"`
}

func (c Channel) DisplayText() string {
	if c.IsPrivate {
		return fmt.Sprintf("(private) %s", c.Name)
	}
	return fmt.Sprintf("#%s", c.Name)
}

type ChannelMember struct {
	ID         string    `json:"id"`
	ChannelID  string    `json:"channel_id"`
	MemberID   string    `json:"member_id"`
	MemberName *string   `json:"member_name,omitempty"`
	MemberRole UserRole  `json:"member_role"`
	IsAdmin    bool      `json:"is_admin"`
	JoinedAt   time.Time `json:"joined_at"`
}

type ChannelList struct {
	Channels []Channel `json:"channels"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
}
