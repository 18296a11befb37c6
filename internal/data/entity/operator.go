package entity

type OperatorRole string

const (
	RoleCashier OperatorRole = "cashier"
	RoleAdmin   OperatorRole = "admin"
)

type Operator struct {
	Base
	Username     string       `db:"username"`
	PasswordHash string       `db:"password"`
	Role         OperatorRole `db:"role"`
	IsActive     bool         `db:"is_active"`
}
