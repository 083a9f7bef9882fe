package model

// Like is a (video, user) relation. Only its count is surfaced on the
// video endpoints, the rows themselves never leave the API.
type Like struct {
	VideoID   string `gorm:"primaryKey" json:"videoId"`
	UserID    string `gorm:"primaryKey" json:"userId"`
	CreatedAt int64  `json:"createdAt"`
}
