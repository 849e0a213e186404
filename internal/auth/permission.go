package auth

import dbuser "com.martdev.newsroom/internal/database/user"

type Permission string

const PermissionManageNews Permission = "news:manage"

type Authorizer interface {
	Can(caller *Caller, permission Permission) bool
}

// RoleAuthorizer grants permissions by the caller's role.
type RoleAuthorizer struct {
	grants map[string]map[Permission]struct{}
}

func NewRoleAuthorizer(grants map[string][]Permission) *RoleAuthorizer {
	ra := &RoleAuthorizer{grants: make(map[string]map[Permission]struct{}, len(grants))}
	for role, permissions := range grants {
		set := make(map[Permission]struct{}, len(permissions))
		for _, p := range permissions {
			set[p] = struct{}{}
		}
		ra.grants[role] = set
	}
	return ra
}

// DefaultAuthorizer lets only admins manage news.
func DefaultAuthorizer() *RoleAuthorizer {
	return NewRoleAuthorizer(map[string][]Permission{
		dbuser.RoleAdmin: {PermissionManageNews},
	})
}

func (ra *RoleAuthorizer) Can(caller *Caller, permission Permission) bool {
	if caller == nil {
		return false
	}
	_, ok := ra.grants[caller.Role][permission]
	return ok
}
