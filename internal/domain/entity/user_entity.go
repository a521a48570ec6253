package entity

// Roles a user can be provisioned with. The role is fixed when an
// administrator creates the record and never changes through the
// self-service flow.
const (
	RoleAdmin    = "admin"
	RoleDealer   = "dealer"
	RoleSalesRep = "sales_rep"
)

// User is the aggregate root for the portal account domain.
// Records are pre-provisioned with email and role only; Username and
// Password (a bcrypt hash) stay empty until account setup completes.
type User struct {
	UserID   int64
	Email    string
	Username string
	Password string
	Role     string
	DealerID *int64
}

// Completed reports whether account setup has bound credentials to
// this record.
func (u *User) Completed() bool {
	return u.Username != "" && u.Password != ""
}
