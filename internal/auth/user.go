package auth

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Account is an allow-listed login. Password is plain text only until the
// store hashes it at construction.
type Account struct {
	User
	Password string
}

// DefaultAccounts is the fixed allow-list the storefront ships with.
func DefaultAccounts() []Account {
	return []Account{
		{
			User:     User{ID: "1", Username: "admin", Role: RoleAdmin, Name: "Administrador"},
			Password: "admin123",
		},
		{
			User:     User{ID: "2", Username: "user", Role: RoleUser, Name: "Usuario"},
			Password: "user123",
		},
	}
}
