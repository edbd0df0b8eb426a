package auth

import "uploadhub_backend/internal/models"

// Role classifies an identity for the coarse gates. The role is derived
// once from the pipeline binding and group memberships; there is no
// attribute probing at the call sites.
type Role string

const (
	RoleUploader   Role = "uploader"
	RoleValidator  Role = "validator"
	RoleAutomation Role = "automation"
	RolePlain      Role = "plain"
)

// Actor is the acting identity of one request, resolved by the auth
// middleware and passed explicitly into every service call.
type Actor struct {
	UserID   uint
	Username string
	Groups   []models.Group
	// Pipeline is the uploader binding; nil for validators, automation
	// accounts and plain users.
	Pipeline *models.Pipeline
}

// Role returns the tagged variant of this identity. An uploader binding
// wins over group membership: a bound identity is an uploader even if
// it also sits in a validator group.
func (a *Actor) Role() Role {
	switch {
	case a.Pipeline != nil:
		return RoleUploader
	case a.InGroupNamed(models.GroupValidator):
		return RoleValidator
	case a.InGroupNamed(models.GroupAutomation):
		return RoleAutomation
	default:
		return RolePlain
	}
}

// IsUploader reports whether the identity carries a pipeline binding.
func (a *Actor) IsUploader() bool {
	return a.Pipeline != nil
}

// IsValidator is the coarse gate for the validator task list.
func (a *Actor) IsValidator() bool {
	return a.InGroupNamed(models.GroupValidator)
}

// CanAutomate is the coarse gate for bulk and automation reads.
func (a *Actor) CanAutomate() bool {
	return a.InGroupNamed(models.GroupAutomation)
}

func (a *Actor) InGroupNamed(name string) bool {
	for _, g := range a.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

func (a *Actor) InGroup(groupID uint) bool {
	for _, g := range a.Groups {
		if g.ID == groupID {
			return true
		}
	}
	return false
}

// GroupIDs returns the identity's group IDs in membership order.
func (a *Actor) GroupIDs() []uint {
	ids := make([]uint, 0, len(a.Groups))
	for _, g := range a.Groups {
		ids = append(ids, g.ID)
	}
	return ids
}
