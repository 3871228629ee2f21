package media

import (
	"bytes"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

// MaxUploadSize 单个文件上限 10MB
const MaxUploadSize int64 = 10 << 20

var allowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
	"video/mp4",
	"video/webm",
	"application/pdf",
}

// Validate 校验大小与类型，声明类型必须在白名单内且与内容嗅探结果一致
func Validate(data []byte, declared string, size int64) (string, error) {
	if size > MaxUploadSize || int64(len(data)) > MaxUploadSize {
		return "", ErrFileTooLarge
	}
	if !isAllowed(declared) {
		return "", ErrUnsupportedType
	}
	detected := mimetype.Detect(data)
	if !detected.Is(declared) {
		return "", ErrUnsupportedType
	}
	return declared, nil
}

func isAllowed(mime string) bool {
	for _, t := range allowedTypes {
		if t == mime {
			return true
		}
	}
	return false
}

// Dimensions 读取图片宽高，非图片或解码失败返回 nil
func Dimensions(data []byte, mime string) (*int, *int) {
	if !strings.HasPrefix(mime, "image/") {
		return nil, nil
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil
	}
	return bounds(img)
}

func bounds(img image.Image) (*int, *int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	return &w, &h
}
