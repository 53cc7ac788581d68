package chat

import (
	"time"

	"github.com/samber/lo"

	"github.com/campus-connect/campusctl/pkg/internal/models"
)

// ApplyReaction records the viewer's reaction on a message after the
// server accepted it. Add-only: an existing group for the emoji gains
// the viewer, otherwise a new single-member group is created. The
// group count always equals the size of its user set.
//
// The groups are rebuilt copy-on-write: cache snapshots taken before
// the mutation keep aliasing the old arrays, which are never written
// again.
func ApplyReaction(message *models.Message, emoji string, user models.User) {
	entry := models.ReactionUser{
		UserID:    user.ID,
		UserRole:  user.Role,
		CreatedAt: time.Now(),
	}

	groups := make([]models.Reaction, len(message.Reactions))
	copy(groups, message.Reactions)

	_, index, found := lo.FindIndexOf(groups, func(r models.Reaction) bool {
		return r.Emoji == emoji
	})
	if found {
		group := groups[index]
		users := make([]models.ReactionUser, len(group.Users), len(group.Users)+1)
		copy(users, group.Users)
		group.Users = append(users, entry)
		group.Count = len(group.Users)
		groups[index] = group
	} else {
		groups = append(groups, models.Reaction{
			Emoji: emoji,
			Users: []models.ReactionUser{entry},
			Count: 1,
		})
	}
	message.Reactions = groups
}
