package model

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	FullName     string `json:"fullName"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"-"`
	Avatar       string `json:"avatar"`
	PasswordHash string `gorm:"not null" json:"-"`
	CreatedAt    int64  `json:"createdAt"`

	Videos []Video `gorm:"foreignKey:OwnerID" json:"-"`
	Likes  []Like  `gorm:"foreignKey:UserID" json:"-"`
}
