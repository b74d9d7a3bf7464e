package permission

import "github.com/helpdeskhq/helpdesk/internal/shared/authorization"

const (
	ResourceTicket       = "ticket"
	ResourceComment      = "comment"
	ResourceAttachment   = "attachment"
	ResourceNotification = "notification"
	ResourceDashboard    = "dashboard"
	ResourceFileOrg      = "file_org"
	ResourceUser         = "user"
	ResourceAuditLog     = "audit_log"
)

const (
	ActionCreate       = "create"
	ActionRead         = "read"
	ActionUpdate       = "update"
	ActionDelete       = "delete"
	ActionAssign       = "assign"
	ActionChangeStatus = "change_status"
	ActionManage       = "manage"
)

type Policy struct {
	Role     string
	Resource string
	Action   string
}

// DefaultRoleHierarchy lists (member, parent) links.
func DefaultRoleHierarchy() [][2]string {
	return [][2]string{
		{authorization.RoleAdmin.String(), authorization.RoleAgent.String()},
		{authorization.RoleAgent.String(), authorization.RoleUser.String()},
	}
}

// DefaultPolicies grants each role only what it adds over the role it
// inherits from. Ownership is still checked by the use cases.
func DefaultPolicies() []Policy {
	user := authorization.RoleUser.String()
	agent := authorization.RoleAgent.String()
	admin := authorization.RoleAdmin.String()

	return []Policy{
		{user, ResourceTicket, ActionCreate},
		{user, ResourceTicket, ActionRead},
		{user, ResourceTicket, ActionUpdate},
		{user, ResourceTicket, ActionChangeStatus},
		{user, ResourceComment, ActionCreate},
		{user, ResourceComment, ActionRead},
		{user, ResourceComment, ActionUpdate},
		{user, ResourceComment, ActionDelete},
		{user, ResourceAttachment, ActionCreate},
		{user, ResourceAttachment, ActionRead},
		{user, ResourceAttachment, ActionDelete},
		{user, ResourceNotification, ActionRead},
		{user, ResourceNotification, ActionUpdate},
		{user, ResourceNotification, ActionDelete},
		{user, ResourceDashboard, ActionRead},
		{user, ResourceFileOrg, ActionRead},
		{user, ResourceFileOrg, ActionUpdate},

		{agent, ResourceTicket, ActionAssign},
		{agent, ResourceFileOrg, ActionManage},
		{agent, ResourceUser, ActionRead},

		{admin, ResourceTicket, ActionDelete},
		{admin, ResourceUser, ActionManage},
		{admin, ResourceAuditLog, ActionRead},
	}
}
