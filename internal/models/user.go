package models

// RoleAdmin is the only role the service recognizes; an empty role is an ordinary user.
const RoleAdmin = "admin"

// User represents a registered diner or staff member.
type User struct {
	ID       string `json:"_id" bson:"-" gorm:"primaryKey;type:varchar(36)"`
	Name     string `json:"name" bson:"name" validate:"omitempty,max=100"`
	Email    string `json:"email" bson:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Role     string `json:"role,omitempty" bson:"role,omitempty" gorm:"type:varchar(20)" validate:"omitempty,oneof=admin"`
	Password string `json:"password,omitempty" bson:"password,omitempty" gorm:"type:varchar(255)" validate:"omitempty,min=6"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
