// Package model defines database models
package model

type Video struct {
	ID      string `gorm:"primaryKey" json:"id"`
	OwnerID string `gorm:"index;not null" json:"ownerId"`

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`

	// Public URLs served to clients. The object keys are kept separately
	// so the storage objects can be removed when the video is deleted or
	// its thumbnail replaced.
	VideoFile string `gorm:"not null" json:"videoFile"`
	Thumbnail string `gorm:"not null" json:"thumbnail"`
	FileKey   string `json:"-"`
	ThumbKey  string `json:"-"`

	Duration    float64 `json:"duration"`
	Views       int64   `json:"views"`
	IsPublished bool    `gorm:"default:false" json:"isPublished"`
	CreatedAt   int64   `gorm:"not null" json:"createdAt"`
}

// OwnerSummary is the slice of a user that gets embedded into video
// responses. Nothing else about the owner is ever exposed there.
type OwnerSummary struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}
