package media

import (
	"CommandCenter/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Manager 按名称分发到各 provider，未指定时使用默认 provider
type Manager struct {
	adapters    map[string]Adapter
	order       []string
	defaultName string
}

// NewManager defaultName 为空或未注册时取第一个 adapter
func NewManager(defaultName string, adapters ...Adapter) *Manager {
	m := &Manager{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		if a == nil {
			continue
		}
		if _, ok := m.adapters[a.Name()]; !ok {
			m.order = append(m.order, a.Name())
		}
		m.adapters[a.Name()] = a
	}
	if _, ok := m.adapters[defaultName]; ok {
		m.defaultName = defaultName
	} else if len(m.order) > 0 {
		m.defaultName = m.order[0]
	}
	return m
}

// NewManagerFromConfig 只注册凭据齐全的 provider
func NewManagerFromConfig(cfg *config.MediaConfig) (*Manager, error) {
	adapters := make([]Adapter, 0, 4)

	if cfg.Supabase.URL != "" && cfg.Supabase.ServiceRoleKey != "" {
		adapters = append(adapters, NewSupabaseAdapter(cfg.Supabase.URL, cfg.Supabase.ServiceRoleKey, cfg.Supabase.Bucket))
	}

	if cfg.Cloudinary.CloudName != "" && cfg.Cloudinary.APIKey != "" && cfg.Cloudinary.APISecret != "" {
		a, err := NewCloudinaryAdapter(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}

	if cfg.Imgix.Domain != "" && cfg.Imgix.APIKey != "" {
		var source sourceBucket
		if src := cfg.Imgix.Source; src.Endpoint != "" {
			client, err := minio.New(src.Endpoint, &minio.Options{
				Creds:  credentials.NewStaticV4(src.AccessKey, src.SecretKey, ""),
				Secure: src.UseSSL,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to initialize imgix source client: %w", err)
			}
			source = client
		} else {
			log.Warn("imgix source bucket not configured, uploads to IMGIX will fail")
		}
		adapters = append(adapters, NewImgixAdapter(cfg.Imgix.Domain, cfg.Imgix.APIKey, cfg.Imgix.SecureURLToken, source, cfg.Imgix.Source.Bucket))
	}

	if cfg.Local.Root != "" {
		a, err := NewLocalAdapter(afero.NewOsFs(), cfg.Local.Root, cfg.Local.BaseURL)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}

	if len(adapters) == 0 {
		log.Warn("No media adapters configured. Media operations will not work.")
	}
	return NewManager(cfg.DefaultProvider, adapters...), nil
}

func (m *Manager) Get(name string) (Adapter, error) {
	if name == "" {
		name = m.defaultName
	}
	a, ok := m.adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
	}
	return a, nil
}

func (m *Manager) Upload(ctx context.Context, in *UploadInput, provider string) (*UploadResult, error) {
	a, err := m.Get(provider)
	if err != nil {
		return nil, err
	}
	return a.Upload(ctx, in)
}

func (m *Manager) Delete(ctx context.Context, key, provider string) error {
	a, err := m.Get(provider)
	if err != nil {
		return err
	}
	return a.Delete(ctx, key)
}

func (m *Manager) URL(key, provider string, t *Transform) (string, error) {
	a, err := m.Get(provider)
	if err != nil {
		return "", err
	}
	return a.URL(key, t), nil
}

// HealthCheck 并发探测所有 provider
func (m *Manager) HealthCheck(ctx context.Context) map[string]bool {
	results := make(map[string]bool, len(m.order))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range m.order {
		a := m.adapters[name]
		g.Go(func() error {
			ok := a.Healthy(gctx)
			mu.Lock()
			results[a.Name()] = ok
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Available 按注册顺序返回可用 provider
func (m *Manager) Available() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m *Manager) Default() string {
	return m.defaultName
}

func (m *Manager) Has(name string) bool {
	_, ok := m.adapters[name]
	return ok
}

// Local 返回已注册的本地存储
func (m *Manager) Local() (*LocalAdapter, bool) {
	a, ok := m.adapters[ProviderLocal].(*LocalAdapter)
	return a, ok
}
