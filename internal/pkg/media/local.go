package media

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// LocalAdapter 本地磁盘存储，开发环境与无云存储时使用
type LocalAdapter struct {
	fs      afero.Fs
	root    string
	baseURL string
}

func NewLocalAdapter(fs afero.Fs, root, baseURL string) (*LocalAdapter, error) {
	if err := fs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &LocalAdapter{
		fs:      fs,
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (a *LocalAdapter) Name() string {
	return ProviderLocal
}

func (a *LocalAdapter) Upload(_ context.Context, in *UploadInput) (*UploadResult, error) {
	key := objectKey(in.Filename)
	if err := afero.WriteFile(a.fs, filepath.Join(a.root, key), in.Data, 0o644); err != nil {
		return nil, fmt.Errorf("local upload failed: %w", err)
	}
	width, height := Dimensions(in.Data, in.Mimetype)
	return &UploadResult{
		URL:      a.URL(key, nil),
		Key:      key,
		Width:    width,
		Height:   height,
		Size:     in.Size,
		Provider: ProviderLocal,
		Metadata: mergeMetadata(map[string]any{"root": a.root}, in.Metadata),
	}, nil
}

func (a *LocalAdapter) Delete(_ context.Context, key string) error {
	err := a.fs.Remove(filepath.Join(a.root, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("local delete failed: %w", err)
	}
	return nil
}

// URL 本地存储不支持变换，忽略参数
func (a *LocalAdapter) URL(key string, _ *Transform) string {
	return a.baseURL + "/" + key
}

func (a *LocalAdapter) Healthy(_ context.Context) bool {
	info, err := a.fs.Stat(a.root)
	return err == nil && info.IsDir()
}

// FileSystem 供路由挂载静态文件
func (a *LocalAdapter) FileSystem() http.FileSystem {
	return afero.NewHttpFs(a.fs).Dir(a.root)
}
