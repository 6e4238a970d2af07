package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ErrBadStatus 下载返回非 200 状态码
var ErrBadStatus = errors.New("unexpected http status")

// HTTPClient HTTP客户端
type HTTPClient struct {
	httpClient *http.Client
	userAgent  string
}

// NewHTTPClient 创建新的HTTP客户端，timeout 为整个请求（含读取响应体）的超时
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "moviescope/1.0 (+https://github.com/user/moviescope)",
	}
}

// Get 发送GET请求
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	return c.httpClient.Do(req)
}

// Download 确保 dest 存在：不存在时从 url 下载。
// 响应体先写入同目录下的 .part 文件，完整写完并 fsync 后再重命名为 dest，
// 失败时删除 .part，不会留下被当作完整文件的半成品。
// 返回值 downloaded 表示本次是否发生了网络下载。
func (c *HTTPClient) Download(ctx context.Context, url, dest string) (downloaded bool, err error) {
	if _, err := os.Stat(dest); err == nil {
		log.Printf("[Fetcher] %s 已存在，跳过下载", dest)
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("检查文件失败: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return false, fmt.Errorf("创建下载目录失败: %w", err)
	}

	log.Printf("[Fetcher] 开始下载 %s", url)
	start := time.Now()

	resp, err := c.Get(ctx, url)
	if err != nil {
		return false, fmt.Errorf("下载请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	part := dest + ".part"
	f, err := os.OpenFile(part, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return false, fmt.Errorf("创建临时文件失败: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(part)
		}
	}()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return false, fmt.Errorf("写入文件失败: %w", err)
	}
	if err = f.Sync(); err != nil {
		return false, fmt.Errorf("同步文件失败: %w", err)
	}
	if err = f.Close(); err != nil {
		return false, fmt.Errorf("关闭文件失败: %w", err)
	}
	if err = os.Rename(part, dest); err != nil {
		return false, fmt.Errorf("重命名文件失败: %w", err)
	}

	log.Printf("[Fetcher] 下载完成: %d 字节, 耗时 %v", n, time.Since(start))
	return true, nil
}
