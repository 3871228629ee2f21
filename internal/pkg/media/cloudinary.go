package media

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var cloudinaryCrop = map[string]string{
	"cover":   "fill",
	"contain": "fit",
	"fill":    "fill",
	"inside":  "fit",
	"outside": "fill",
}

type CloudinaryAdapter struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryAdapter(cloudName, apiKey, apiSecret, folder string) (*CloudinaryAdapter, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	cld.Config.URL.Analytics = false
	return &CloudinaryAdapter{cld: cld, folder: folder}, nil
}

func (a *CloudinaryAdapter) Name() string {
	return ProviderCloudinary
}

func (a *CloudinaryAdapter) Upload(ctx context.Context, in *UploadInput) (*UploadResult, error) {
	name := sanitizeFilename(in.Filename)
	publicID := fmt.Sprintf("%d-%s", now().UnixMilli(), strings.TrimSuffix(name, path.Ext(name)))

	res, err := a.cld.Upload.Upload(ctx, bytes.NewReader(in.Data), uploader.UploadParams{
		PublicID:     publicID,
		Folder:       a.folder,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload failed: %s", res.Error.Message)
	}

	result := &UploadResult{
		URL:      res.SecureURL,
		Key:      res.PublicID,
		Size:     int64(res.Bytes),
		Provider: ProviderCloudinary,
		Metadata: mergeMetadata(map[string]any{
			"format":       res.Format,
			"resourceType": res.ResourceType,
		}, in.Metadata),
	}
	if res.Width > 0 && res.Height > 0 {
		w, h := res.Width, res.Height
		result.Width, result.Height = &w, &h
	}
	if result.Size == 0 {
		result.Size = in.Size
	}
	return result, nil
}

// Delete 先按图片删除，未命中再按视频删除
func (a *CloudinaryAdapter) Delete(ctx context.Context, key string) error {
	for _, resourceType := range []string{"image", "video"} {
		res, err := a.cld.Upload.Destroy(ctx, uploader.DestroyParams{
			PublicID:     key,
			ResourceType: resourceType,
		})
		if err != nil {
			return fmt.Errorf("cloudinary delete failed: %w", err)
		}
		if res.Error.Message != "" {
			return fmt.Errorf("cloudinary delete failed: %s", res.Error.Message)
		}
		if res.Result == "ok" {
			return nil
		}
	}
	return nil
}

func (a *CloudinaryAdapter) URL(key string, t *Transform) string {
	img, err := a.cld.Image(key)
	if err != nil {
		return ""
	}
	img.Transformation = cloudinaryTransformation(t)
	u, err := img.String()
	if err != nil {
		return ""
	}
	return u
}

// cloudinaryTransformation 按 w h q f c 顺序生成链式变换
func cloudinaryTransformation(t *Transform) string {
	if t.empty() {
		return ""
	}
	parts := make([]string, 0, 5)
	if t.Width > 0 {
		parts = append(parts, fmt.Sprintf("w_%d", t.Width))
	}
	if t.Height > 0 {
		parts = append(parts, fmt.Sprintf("h_%d", t.Height))
	}
	if t.Quality > 0 {
		parts = append(parts, fmt.Sprintf("q_%d", t.Quality))
	}
	if t.Format != "" {
		parts = append(parts, "f_"+t.Format)
	}
	if crop, ok := cloudinaryCrop[t.Fit]; ok {
		parts = append(parts, "c_"+crop)
	}
	return strings.Join(parts, "/")
}

func (a *CloudinaryAdapter) Healthy(ctx context.Context) bool {
	res, err := a.cld.Admin.Ping(ctx)
	if err != nil {
		return false
	}
	return res.Status == "ok"
}
