package model

// User is a dashboard login. Password holds a bcrypt hash; it never leaves
// the auth boundary.
type User struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"-"`
}
