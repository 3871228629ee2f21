package dto

import "time"

type MediaDTO struct {
	ID         string         `json:"id"`
	Filename   string         `json:"filename"`
	Mimetype   string         `json:"mimetype"`
	Size       int64          `json:"size"`
	Provider   string         `json:"provider"`
	URL        string         `json:"url"`
	Key        string         `json:"key"`
	Width      *int           `json:"width"`
	Height     *int           `json:"height"`
	Metadata   map[string]any `json:"metadata"`
	UploadedBy string         `json:"uploadedBy"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// MediaFile 已读入内存的上传文件
type MediaFile struct {
	Filename     string
	DeclaredType string
	Size         int64
	Data         []byte
}

type MediaListQuery struct {
	PageQuery
	Provider string `form:"provider" binding:"omitempty,oneof=SUPABASE CLOUDINARY IMGIX LOCAL"`
	Mimetype string `form:"mimetype" binding:"omitempty,max=100"`
}

type MediaPageDTO struct {
	Media      []*MediaDTO `json:"media"`
	Pagination Pagination  `json:"pagination"`
}

// MediaURLQuery 媒体变换参数
type MediaURLQuery struct {
	Width   int    `form:"width" binding:"omitempty,min=1,max=8192"`
	Height  int    `form:"height" binding:"omitempty,min=1,max=8192"`
	Quality int    `form:"quality" binding:"omitempty,min=1,max=100"`
	Format  string `form:"format" binding:"omitempty,oneof=jpg png webp avif"`
	Fit     string `form:"fit" binding:"omitempty,oneof=cover contain fill inside outside"`
}

type MediaURLDTO struct {
	URL string `json:"url"`
}

// ProvidersDTO provider 可用性
type ProvidersDTO struct {
	Available []string        `json:"available"`
	Default   string          `json:"default"`
	Health    map[string]bool `json:"health"`
}
