package domain

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLead      Role = "lead"
	RoleCandidate Role = "candidate"
	RolePending   Role = "pending" // 自助注册，等待管理员提升
)

// Permission 每个视图/动作对应一个权限
type Permission int

const (
	PermViewDashboard Permission = iota
	PermSubmitRecord
	PermListRecords
	PermViewAnalytics
	PermEditRecords
	PermManageUsers
)

var permNames = map[Permission]string{
	PermViewDashboard: "view_dashboard",
	PermSubmitRecord:  "submit_record",
	PermListRecords:   "list_records",
	PermViewAnalytics: "view_analytics",
	PermEditRecords:   "edit_records",
	PermManageUsers:   "manage_users",
}

func (p Permission) String() string {
	if s, ok := permNames[p]; ok {
		return s
	}
	return "unknown"
}

// ParseRole 只接受封闭集合内的值
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleAdmin, RoleLead, RoleCandidate, RolePending:
		return r, true
	}
	return "", false
}

// Elevated admin/lead 才能看列表与统计
func (r Role) Elevated() bool { return r == RoleAdmin || r == RoleLead }

// Can 未知角色按 candidate 级别处理
func (r Role) Can(p Permission) bool {
	switch p {
	case PermViewDashboard, PermSubmitRecord:
		return true
	case PermListRecords, PermViewAnalytics:
		return r.Elevated()
	case PermEditRecords, PermManageUsers:
		return r == RoleAdmin
	}
	return false
}
