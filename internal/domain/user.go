package entity

// Role of a directory user.
type Role string

const (
	RoleProducer Role = "producer"
	RoleBuyer    Role = "buyer"
)

// User is an entry in the static user directory. The engine never writes
// users; credentials are only read by the auth service.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}
