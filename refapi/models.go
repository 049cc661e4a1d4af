package refapi

// User is the stored form of a user. The JSON tags match the wire format of the API.
type User struct {
	ID     int    `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	Email  string `gorm:"uniqueIndex;not null" json:"email"`
	Gender string `gorm:"not null" json:"gender"`
	Status string `gorm:"not null" json:"status"`
}

type Post struct {
	ID     int    `gorm:"primaryKey" json:"id"`
	UserID int    `gorm:"index;not null" json:"user_id"`
	Title  string `gorm:"not null" json:"title"`
	Body   string `gorm:"not null" json:"body"`
}

type Comment struct {
	ID     int    `gorm:"primaryKey" json:"id"`
	PostID int    `gorm:"index;not null" json:"post_id"`
	Name   string `gorm:"not null" json:"name"`
	Email  string `gorm:"not null" json:"email"`
	Body   string `gorm:"not null" json:"body"`
}
