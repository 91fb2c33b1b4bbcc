package domain

import "time"

// ActivityAction is the operation an activity record describes.
type ActivityAction string

const (
	ActionCreate ActivityAction = "create"
	ActionUpdate ActivityAction = "update"
	ActionDelete ActivityAction = "delete"
	ActionLogin  ActivityAction = "login"
	ActionLogout ActivityAction = "logout"
	ActionView   ActivityAction = "view"
)

// EntityType names the kind of record an activity refers to.
type EntityType string

const (
	EntityClient  EntityType = "client"
	EntityProject EntityType = "project"
	EntityUser    EntityType = "user"
	EntitySystem  EntityType = "system"
)

// ValidActivityAction reports whether a is a known action.
func ValidActivityAction(a ActivityAction) bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionLogin, ActionLogout, ActionView:
		return true
	}
	return false
}

// ValidEntityType reports whether t is a known entity type.
func ValidEntityType(t EntityType) bool {
	switch t {
	case EntityClient, EntityProject, EntityUser, EntitySystem:
		return true
	}
	return false
}

// Activity is an immutable audit record. It is written once by the activity
// recorder (or the login path) and never updated or deleted.
type Activity struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	UserName   string         `json:"user_name,omitempty"`
	Action     ActivityAction `json:"action"`
	EntityType EntityType     `json:"entity_type"`
	EntityID   string         `json:"entity_id,omitempty"`
	EntityName string         `json:"entity_name,omitempty"`
	Details    string         `json:"details"`
	IPAddress  string         `json:"ip_address,omitempty"`
	UserAgent  string         `json:"user_agent,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}
