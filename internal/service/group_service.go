package service

import (
	"context"
	"log/slog"

	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/storage"
)

// GroupService manages groups and their membership.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group containing the creator plus the given members.
func (s *GroupService) CreateGroup(ctx context.Context, cur models.CurrentUser, name string, memberIDs []string) (*models.Group, error) {
	if name == "" {
		return nil, models.ErrValidation("group name required")
	}

	members := []string{cur.UserID}
	for _, id := range memberIDs {
		if id != cur.UserID {
			members = append(members, id)
		}
	}

	// Every member must be a registered user before the membership rows are
	// written.
	users, err := s.store.GetUsersByIDs(ctx, members)
	if err != nil {
		return nil, err
	}
	for _, id := range members {
		if _, ok := users[id]; !ok {
			return nil, models.ErrValidation("unknown user: %s", id)
		}
	}

	group := &models.Group{Name: name, Members: members}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "name", name, "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "members", len(members))
	return group, nil
}

// GetGroup retrieves a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, cur models.CurrentUser, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(cur.UserID) {
		return nil, models.ErrAccessDenied("you must be a member of group %s", groupID)
	}
	return group, nil
}

// ListGroups retrieves every group the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, cur models.CurrentUser) ([]*models.Group, error) {
	return s.store.ListGroupsForUser(ctx, cur.UserID)
}

// AddMembers adds registered users to a group the caller belongs to.
func (s *GroupService) AddMembers(ctx context.Context, cur models.CurrentUser, groupID string, userIDs []string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.HasMember(cur.UserID) {
		return models.ErrAccessDenied("you must be a member of group %s", groupID)
	}

	users, err := s.store.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return err
	}
	for _, id := range userIDs {
		if _, ok := users[id]; !ok {
			return models.ErrValidation("unknown user: %s", id)
		}
	}

	return s.store.AddGroupMembers(ctx, groupID, userIDs)
}

// RemoveMember removes a member from a group the caller belongs to.
func (s *GroupService) RemoveMember(ctx context.Context, cur models.CurrentUser, groupID, userID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.HasMember(cur.UserID) {
		return models.ErrAccessDenied("you must be a member of group %s", groupID)
	}
	return s.store.RemoveGroupMember(ctx, groupID, userID)
}
