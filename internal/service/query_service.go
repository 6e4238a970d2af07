package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/user/moviescope/internal/model"
	"github.com/user/moviescope/internal/utils"
	"golang.org/x/sync/singleflight"
)

// QueryService 带缓存的查询服务。数据集只读，缓存结果在返回前复制一份。
type QueryService struct {
	ds    *Dataset
	cache *utils.LRUCache[any]
	sf    singleflight.Group
}

// NewQueryService 创建查询服务
func NewQueryService(ds *Dataset, cacheSize int, ttl time.Duration) *QueryService {
	return &QueryService{
		ds:    ds,
		cache: utils.NewLRUCache[any](cacheSize, ttl),
	}
}

// Dataset 底层数据集
func (s *QueryService) Dataset() *Dataset {
	return s.ds
}

// PurgeExpired 清理过期的缓存结果
func (s *QueryService) PurgeExpired() int {
	return s.cache.PurgeExpired()
}

// cached 先查缓存，未命中时用 singleflight 合并并发的相同查询
func cached[T any](s *QueryService, key string, compute func() ([]T, error)) ([]T, error) {
	if v, ok := s.cache.Get(key); ok {
		if rows, ok := v.([]T); ok {
			return cloneRows(rows), nil
		}
	}
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		start := time.Now()
		rows, err := compute()
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, rows)
		log.Printf("[Query] %s 计算完成: %d 行, 耗时 %v", key, len(rows), time.Since(start))
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneRows(v.([]T)), nil
}

func cloneRows[T any](rows []T) []T {
	return append(make([]T, 0, len(rows)), rows...)
}

// TopGenres 见 Dataset.TopGenres
func (s *QueryService) TopGenres(n int) ([]model.GenreCount, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n 必须是正整数，收到 %d", ErrInvalidParam, n)
	}
	return cached(s, fmt.Sprintf("genres:top:%d", n), func() ([]model.GenreCount, error) {
		return s.ds.TopGenres(n)
	})
}

// Genres 全部类型名
func (s *QueryService) Genres() ([]string, error) {
	return cached(s, "genres:all", func() ([]string, error) {
		return s.ds.Genres(), nil
	})
}

// ActorCountHistogram 见 Dataset.ActorCountHistogram
func (s *QueryService) ActorCountHistogram() ([]model.ActorCountBin, error) {
	return cached(s, "actors:histogram", func() ([]model.ActorCountBin, error) {
		return s.ds.ActorCountHistogram(), nil
	})
}

// ActorsByGenderAndHeight 见 Dataset.ActorsByGenderAndHeight
func (s *QueryService) ActorsByGenderAndHeight(gender string, minHeight, maxHeight float64) ([]model.ActorHeight, error) {
	if minHeight > maxHeight {
		return nil, fmt.Errorf("%w: 最小身高 %v 大于最大身高 %v", ErrInvalidParam, minHeight, maxHeight)
	}
	key := fmt.Sprintf("actors:heights:%s:%g:%g", normalizeGenderFilter(gender), minHeight, maxHeight)
	return cached(s, key, func() ([]model.ActorHeight, error) {
		return s.ds.ActorsByGenderAndHeight(gender, minHeight, maxHeight)
	})
}

// ReleasesPerYear 见 Dataset.ReleasesPerYear
func (s *QueryService) ReleasesPerYear(genre string) ([]model.PeriodCount, error) {
	key := "releases:" + strings.ToLower(strings.TrimSpace(genre))
	return cached(s, key, func() ([]model.PeriodCount, error) {
		return s.ds.ReleasesPerYear(genre), nil
	})
}

// BirthsPerPeriod 见 Dataset.BirthsPerPeriod
func (s *QueryService) BirthsPerPeriod(unit Period) ([]model.PeriodCount, error) {
	if unit != PeriodYear && unit != PeriodMonth {
		return nil, fmt.Errorf("%w: unit 必须是 year 或 month，收到 %q", ErrInvalidParam, unit)
	}
	return cached(s, "births:"+string(unit), func() ([]model.PeriodCount, error) {
		return s.ds.BirthsPerPeriod(unit)
	})
}

// Profile 列概览
func (s *QueryService) Profile() ([]model.ColumnProfile, error) {
	return cached(s, "profile", func() ([]model.ColumnProfile, error) {
		return s.ds.Profile(), nil
	})
}
