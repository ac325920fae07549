package models

// UserPost links a user to a post they author. The composite primary
// key makes duplicate (user, post) pairs impossible at the store level.
type UserPost struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PostID uint `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
}
