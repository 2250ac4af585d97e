package user

import "time"

// User is a respondent. Rows are created lazily on first submission and are
// never removed by submission logic.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	Username  string    `json:"username" gorm:"size:100;not null"`
	CreatedAt time.Time `json:"created_at"`
}
