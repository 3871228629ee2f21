package source

import (
	"CommandCenter/internal/api/config"
	"CommandCenter/internal/pkg/llm"
	"context"
	"crypto/tls"
	"fmt"
	log "log/slog"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/go-resty/resty/v2"
	"github.com/go-shiori/go-readability"
	"golang.org/x/sync/errgroup"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// 少于该长度或包含 loading 的页面视为前端渲染，需要浏览器兜底
const minStaticHTML = 4000

var (
	spaceRegex       = regexp.MustCompile(`\s+`)
	duckDuckGoSearch = "https://html.duckduckgo.com/html"
)

// Fetcher 抓取事实抽取所需的参考资料，单个来源失败不影响整体
type Fetcher struct {
	client         *resty.Client
	maxChars       int
	maxSources     int
	webSearch      bool
	renderFallback bool
	timeout        time.Duration

	once       sync.Once
	browserCtx context.Context
	cancel     context.CancelFunc
}

func NewFetcher(cfg *config.SourcesConfig) *Fetcher {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetTLSClientConfig(&tls.Config{MinVersion: tls.VersionTLS12}).
		SetHeader("User-Agent", userAgent)
	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
	}

	f := &Fetcher{
		client:         client,
		maxChars:       cfg.MaxChars,
		maxSources:     cfg.MaxSources,
		webSearch:      cfg.WebSearch,
		renderFallback: cfg.RenderFallback,
		timeout:        timeout,
	}
	if f.maxChars <= 0 {
		f.maxChars = 3000
	}
	if f.maxSources <= 0 {
		f.maxSources = 5
	}
	return f
}

// Collect 抓取给定链接，未给链接且开启搜索时先按主题搜索
func (f *Fetcher) Collect(ctx context.Context, topic string, urls []string) []llm.SourceDocument {
	if len(urls) == 0 && f.webSearch && topic != "" {
		found, err := f.Search(ctx, topic)
		if err != nil {
			log.WarnContext(ctx, "WebSearch", "topic", topic, "err", err)
		}
		urls = found
	}
	if len(urls) > f.maxSources {
		urls = urls[:f.maxSources]
	}

	docs := make([]*llm.SourceDocument, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			doc, err := f.Fetch(gctx, u)
			if err != nil {
				log.WarnContext(gctx, "WebFetch", "url", u, "err", err)
				return nil
			}
			docs[i] = doc
			return nil
		})
	}
	_ = g.Wait()

	out := make([]llm.SourceDocument, 0, len(docs))
	for _, d := range docs {
		if d != nil {
			out = append(out, *d)
		}
	}
	return out
}

// Search 通过 DuckDuckGo HTML 版搜索，返回去掉广告后的结果链接
func (f *Fetcher) Search(ctx context.Context, query string) ([]string, error) {
	formData := url.Values{}
	formData.Set("q", query)

	resp, err := f.client.R().SetContext(ctx).SetFormDataFromValues(formData).Post(duckDuckGoSearch)
	if err != nil {
		return nil, fmt.Errorf("web search failed: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("parse search result: %w", err)
	}

	links := make([]string, 0, f.maxSources)
	doc.Find(".result").Each(func(i int, sel *goquery.Selection) {
		if len(links) >= f.maxSources {
			return
		}
		link, _ := sel.Find(".result__title a").Attr("href")
		if link == "" || strings.Contains(link, "y.js") || strings.Contains(link, "ad_provider") {
			return
		}
		if strings.Contains(link, "uddg=") {
			if u, err := url.Parse(link); err == nil {
				link = u.Query().Get("uddg")
			}
		}
		links = append(links, link)
	})
	return links, nil
}

// Fetch 抓取单个页面并提取正文
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*llm.SourceDocument, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
		return nil, fmt.Errorf("invalid source url: %s", rawURL)
	}

	html := ""
	resp, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err == nil && resp.IsSuccess() {
		html = resp.String()
	}

	if f.renderFallback && needsRender(html) {
		if rendered, rerr := f.render(ctx, rawURL); rerr == nil {
			html = rendered
		} else {
			log.WarnContext(ctx, "render fallback failed", "url", rawURL, "err", rerr)
		}
	}
	if html == "" {
		if err == nil {
			err = fmt.Errorf("empty response from %s", rawURL)
		}
		return nil, err
	}

	article, err := readability.FromReader(strings.NewReader(html), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("extract article: %w", err)
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = pageTitle(html)
	}
	return &llm.SourceDocument{
		URL:     rawURL,
		Title:   title,
		Excerpt: normalize(article.TextContent, f.maxChars),
	}, nil
}

func needsRender(html string) bool {
	return len(html) < minStaticHTML || strings.Contains(strings.ToLower(html), "loading")
}

// render 懒启动无头浏览器渲染页面
func (f *Fetcher) render(ctx context.Context, rawURL string) (string, error) {
	f.once.Do(func() {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("blink-settings", "imagesEnabled=false"),
			chromedp.UserAgent(userAgent),
		)
		allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
		browserCtx, browserCancel := chromedp.NewContext(allocCtx)
		f.browserCtx = browserCtx
		f.cancel = func() {
			browserCancel()
			allocCancel()
		}
	})

	tabCtx, cancel := chromedp.NewContext(f.browserCtx)
	defer cancel()
	tabCtx, timeoutCancel := context.WithTimeout(tabCtx, f.timeout)
	defer timeoutCancel()
	stop := context.AfterFunc(ctx, timeoutCancel)
	defer stop()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady(`body`),
		chromedp.OuterHTML("html", &html),
	)
	return html, err
}

// Close 关闭浏览器
func (f *Fetcher) Close() {
	if f.cancel != nil {
		f.cancel()
	}
}

func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	content, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	return strings.TrimSpace(content)
}

func normalize(text string, limit int) string {
	text = strings.TrimSpace(spaceRegex.ReplaceAllString(text, " "))
	runes := []rune(text)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return text
}
