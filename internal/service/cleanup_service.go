package service

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// 超过该时间的临时文件视为中断遗留
const staleTempAge = time.Hour

// CleanupService 定时清理服务：过期的查询缓存、下载目录中中断遗留的临时文件
type CleanupService struct {
	queries     *QueryService
	downloadDir string
	interval    time.Duration
	now         func() time.Time
}

// NewCleanupService 创建清理服务
func NewCleanupService(queries *QueryService, downloadDir string, interval time.Duration) *CleanupService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CleanupService{
		queries:     queries,
		downloadDir: downloadDir,
		interval:    interval,
		now:         time.Now,
	}
}

// Start 启动定时清理任务，ctx 取消后退出
func (s *CleanupService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)

	// 启动时先运行一次
	go s.runCleanup()

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runCleanup()
			}
		}
	}()
}

func (s *CleanupService) runCleanup() {
	if s.queries != nil {
		if n := s.queries.PurgeExpired(); n > 0 {
			log.Printf("[CleanupService] 已清理 %d 条过期查询缓存", n)
		}
	}

	removed, err := s.removeStaleTemp()
	if err != nil {
		log.Printf("[CleanupService] 清理临时文件失败: %v", err)
	} else if removed > 0 {
		log.Printf("[CleanupService] 已清理 %d 个中断遗留的临时文件", removed)
	}
}

// removeStaleTemp 删除下载目录中过期的 .part 文件和解压临时目录
func (s *CleanupService) removeStaleTemp() (int, error) {
	entries, err := os.ReadDir(s.downloadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		name := e.Name()
		isPart := !e.IsDir() && strings.HasSuffix(name, ".part")
		isStaging := e.IsDir() && strings.HasPrefix(name, ".") && strings.Contains(name, "-")
		if !isPart && !isStaging {
			continue
		}
		info, err := e.Info()
		if err != nil || s.now().Sub(info.ModTime()) < staleTempAge {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.downloadDir, name)); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
