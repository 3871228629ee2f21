package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

// 支持的 provider
const (
	ProviderSupabase   = "SUPABASE"
	ProviderCloudinary = "CLOUDINARY"
	ProviderImgix      = "IMGIX"
	ProviderLocal      = "LOCAL"
)

var (
	ErrProviderNotFound = errors.New("media provider not found")
	ErrFileTooLarge     = errors.New("file too large")
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrSourceMissing    = errors.New("imgix source bucket not configured")
)

// Transform URL 变换参数，零值字段忽略
type Transform struct {
	Width   int
	Height  int
	Quality int
	Format  string // jpg | png | webp | avif
	Fit     string // cover | contain | fill | inside | outside
}

func (t *Transform) empty() bool {
	return t == nil || (t.Width == 0 && t.Height == 0 && t.Quality == 0 && t.Format == "" && t.Fit == "")
}

type UploadInput struct {
	Filename string
	Mimetype string
	Size     int64
	Data     []byte
	Metadata map[string]any
}

type UploadResult struct {
	URL      string
	Key      string
	Width    *int
	Height   *int
	Size     int64
	Provider string
	Metadata map[string]any
}

// Adapter 单个存储后端
type Adapter interface {
	Name() string
	Upload(ctx context.Context, in *UploadInput) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	URL(key string, t *Transform) string
	Healthy(ctx context.Context) bool
}

// now 可在测试中替换
var now = time.Now

// objectKey 生成 <毫秒时间戳>-<文件名> 形式的对象键
func objectKey(filename string) string {
	return fmt.Sprintf("%d-%s", now().UnixMilli(), sanitizeFilename(filename))
}

func sanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "file"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		}
		return '-'
	}, base)
}

func mergeMetadata(base map[string]any, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
