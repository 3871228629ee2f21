package media

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/minio/minio-go/v7"
)

const imgixPurgeURL = "https://api.imgix.com/api/v1/purge"

var imgixFit = map[string]string{
	"cover":   "crop",
	"contain": "fit",
	"fill":    "fill",
	"inside":  "fit",
	"outside": "min",
}

// sourceBucket imgix 源站所需的对象存储能力，由 *minio.Client 实现
type sourceBucket interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// ImgixAdapter 文件写入 S3 兼容源站，由 imgix 负责分发与变换
type ImgixAdapter struct {
	baseURL     string
	apiKey      string
	secureToken string
	purgeURL    string
	source      sourceBucket
	bucket      string
	client      *resty.Client
}

func NewImgixAdapter(domain, apiKey, secureToken string, source sourceBucket, bucket string) *ImgixAdapter {
	return &ImgixAdapter{
		baseURL:     "https://" + strings.TrimRight(domain, "/"),
		apiKey:      apiKey,
		secureToken: secureToken,
		purgeURL:    imgixPurgeURL,
		source:      source,
		bucket:      bucket,
		client:      resty.New().SetTimeout(10 * time.Second),
	}
}

func (a *ImgixAdapter) Name() string {
	return ProviderImgix
}

func (a *ImgixAdapter) Upload(ctx context.Context, in *UploadInput) (*UploadResult, error) {
	if a.source == nil {
		return nil, ErrSourceMissing
	}
	key := objectKey(in.Filename)
	_, err := a.source.PutObject(ctx, a.bucket, key, bytes.NewReader(in.Data), int64(len(in.Data)), minio.PutObjectOptions{
		ContentType: in.Mimetype,
	})
	if err != nil {
		return nil, fmt.Errorf("imgix source upload failed: %w", err)
	}

	width, height := Dimensions(in.Data, in.Mimetype)
	return &UploadResult{
		URL:      a.baseURL + "/" + key,
		Key:      key,
		Width:    width,
		Height:   height,
		Size:     in.Size,
		Provider: ProviderImgix,
		Metadata: mergeMetadata(map[string]any{"domain": strings.TrimPrefix(a.baseURL, "https://")}, in.Metadata),
	}, nil
}

// Delete 删除源站对象后尽力清理 CDN 缓存
func (a *ImgixAdapter) Delete(ctx context.Context, key string) error {
	if a.source == nil {
		return ErrSourceMissing
	}
	if err := a.source.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("imgix source delete failed: %w", err)
	}
	if err := a.purge(ctx, a.baseURL+"/"+key); err != nil {
		log.WarnContext(ctx, "imgix purge failed", "key", key, "err", err)
	}
	return nil
}

func (a *ImgixAdapter) purge(ctx context.Context, target string) error {
	body := map[string]any{
		"data": map[string]any{
			"type":       "purges",
			"attributes": map[string]string{"url": target},
		},
	}
	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(a.apiKey).
		SetHeader("Content-Type", "application/vnd.api+json").
		SetBody(body).
		Post(a.purgeURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("purge returned %s", resp.Status())
	}
	return nil
}

// URL 按 w h q fm fit 顺序拼接参数，配置了 token 时追加 s 签名
func (a *ImgixAdapter) URL(key string, t *Transform) string {
	p := "/" + strings.TrimLeft(key, "/")
	params := make([]string, 0, 6)
	if !t.empty() {
		if t.Width > 0 {
			params = append(params, "w="+strconv.Itoa(t.Width))
		}
		if t.Height > 0 {
			params = append(params, "h="+strconv.Itoa(t.Height))
		}
		if t.Quality > 0 {
			params = append(params, "q="+strconv.Itoa(t.Quality))
		}
		if t.Format != "" {
			params = append(params, "fm="+url.QueryEscape(t.Format))
		}
		if fit, ok := imgixFit[t.Fit]; ok {
			params = append(params, "fit="+fit)
		}
	}
	query := strings.Join(params, "&")
	if a.secureToken != "" {
		sig := a.sign(p, query)
		if query == "" {
			query = "s=" + sig
		} else {
			query += "&s=" + sig
		}
	}
	if query == "" {
		return a.baseURL + p
	}
	return a.baseURL + p + "?" + query
}

// sign md5(token + path + "?" + query)，无参数时不含问号
func (a *ImgixAdapter) sign(p, query string) string {
	raw := a.secureToken + p
	if query != "" {
		raw += "?" + query
	}
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Healthy HEAD 探测一张测试图，200 与 404 都说明 imgix 在响应
func (a *ImgixAdapter) Healthy(ctx context.Context) bool {
	resp, err := a.client.R().SetContext(ctx).Head(a.baseURL + "/test.jpg?w=1&h=1")
	if err != nil {
		return false
	}
	return resp.IsSuccess() || resp.StatusCode() == http.StatusNotFound
}
