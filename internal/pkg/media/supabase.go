package media

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// SupabaseAdapter Supabase Storage REST 接口
type SupabaseAdapter struct {
	baseURL string
	bucket  string
	client  *resty.Client
}

func NewSupabaseAdapter(baseURL, serviceRoleKey, bucket string) *SupabaseAdapter {
	client := resty.New().
		SetTimeout(30*time.Second).
		SetAuthToken(serviceRoleKey).
		SetHeader("apikey", serviceRoleKey)
	return &SupabaseAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
		client:  client,
	}
}

func (a *SupabaseAdapter) Name() string {
	return ProviderSupabase
}

func (a *SupabaseAdapter) Upload(ctx context.Context, in *UploadInput) (*UploadResult, error) {
	key := objectKey(in.Filename)
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", in.Mimetype).
		SetHeader("cache-control", "max-age=3600").
		SetHeader("x-upsert", "false").
		SetBody(in.Data).
		Post(a.objectURL(key))
	if err != nil {
		return nil, fmt.Errorf("supabase upload failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("supabase upload failed: %s %s", resp.Status(), resp.String())
	}

	width, height := Dimensions(in.Data, in.Mimetype)
	return &UploadResult{
		URL:      a.publicURL(key),
		Key:      key,
		Width:    width,
		Height:   height,
		Size:     in.Size,
		Provider: ProviderSupabase,
		Metadata: mergeMetadata(map[string]any{"bucket": a.bucket}, in.Metadata),
	}, nil
}

func (a *SupabaseAdapter) Delete(ctx context.Context, key string) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(map[string][]string{"prefixes": {key}}).
		Delete(fmt.Sprintf("%s/storage/v1/object/%s", a.baseURL, a.bucket))
	if err != nil {
		return fmt.Errorf("supabase delete failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("supabase delete failed: %s %s", resp.Status(), resp.String())
	}
	return nil
}

// URL 公共地址，变换参数按 width height quality format 顺序拼接
func (a *SupabaseAdapter) URL(key string, t *Transform) string {
	u := a.publicURL(key)
	if t.empty() {
		return u
	}
	params := make([]string, 0, 4)
	if t.Width > 0 {
		params = append(params, "width="+strconv.Itoa(t.Width))
	}
	if t.Height > 0 {
		params = append(params, "height="+strconv.Itoa(t.Height))
	}
	if t.Quality > 0 {
		params = append(params, "quality="+strconv.Itoa(t.Quality))
	}
	if t.Format != "" {
		params = append(params, "format="+url.QueryEscape(t.Format))
	}
	if len(params) == 0 {
		return u
	}
	return u + "?" + strings.Join(params, "&")
}

// Healthy 列举 bucket 成功即视为可用
func (a *SupabaseAdapter) Healthy(ctx context.Context) bool {
	var buckets []map[string]any
	resp, err := a.client.R().
		SetContext(ctx).
		SetResult(&buckets).
		Get(a.baseURL + "/storage/v1/bucket")
	if err != nil {
		return false
	}
	return resp.StatusCode() == http.StatusOK
}

func (a *SupabaseAdapter) objectURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", a.baseURL, a.bucket, url.PathEscape(key))
}

func (a *SupabaseAdapter) publicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", a.baseURL, a.bucket, url.PathEscape(key))
}
