// file: internals/constants/roles.go
package constants

// Application roles carried in the JWT and on the users table.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

// AllRoles is the closed set accepted by the role middleware.
var AllRoles = []string{RoleAdmin, RoleTeacher}
