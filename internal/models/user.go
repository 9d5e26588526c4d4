package models

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Name         string     `gorm:"size:255" json:"name"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
}

// CanUpload reports whether the account may still act.
func (u *User) CanUpload() bool {
	return u.Status == "" || u.Status == UserStatusActive
}
