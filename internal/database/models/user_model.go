package models

// User is a login principal. Rows are seeded or migrated out-of-band, never
// created through the wizard.
type User struct {
	Model
	Email        string `json:"email" gorm:"type:text;not null;uniqueIndex:idx_users_email_role"`
	PasswordHash string `json:"-" gorm:"type:text;not null"`
	Role         string `json:"role" gorm:"type:text;not null;default:'user';check:role IN ('user','admin');uniqueIndex:idx_users_email_role"`
}

func (u User) TableName() string {
	return "users"
}
