package domain

// AdminUser is a privileged account permitted to log in and manage employee
// records. Accounts are provisioned externally; only the password is ever
// mutated through the API.
type AdminUser struct {
	ID       int64
	Username string
	Email    string
	Password string
}
