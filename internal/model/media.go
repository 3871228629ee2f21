package model

import (
	"time"

	"gorm.io/datatypes"
)

type Media struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	Filename   string `gorm:"type:varchar(255);not null"`
	Mimetype   string `gorm:"type:varchar(100);not null;index:idx_media_mimetype"`
	Size       int64  `gorm:"not null"`
	Provider   string `gorm:"type:varchar(20);not null;index:idx_media_provider"`
	URL        string `gorm:"type:varchar(1024);not null"`
	Key        string `gorm:"type:varchar(512);not null"`
	Width      *int
	Height     *int
	Metadata   datatypes.JSONMap `gorm:"type:json"`
	UploadedBy string            `gorm:"type:varchar(36);index:idx_media_uploader"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Media) TableName() string {
	return "media"
}
