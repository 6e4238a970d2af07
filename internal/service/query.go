package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/user/moviescope/internal/model"
)

// Period 出生统计的时间粒度
type Period string

const (
	PeriodYear  Period = "year"
	PeriodMonth Period = "month"
)

// ParsePeriod 解析时间粒度，兼容 Y/M 简写
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "year", "y":
		return PeriodYear, nil
	case "month", "m":
		return PeriodMonth, nil
	default:
		return "", fmt.Errorf("%w: unit 必须是 year 或 month，收到 %q", ErrInvalidParam, s)
	}
}

// 以下查询只读 Dataset，每次返回新分配的结果

// TopGenres 出现次数最多的 n 个类型，按次数降序，次数相同按首次出现顺序
func (d *Dataset) TopGenres(n int) ([]model.GenreCount, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n 必须是正整数，收到 %d", ErrInvalidParam, n)
	}
	counts := d.genreCounts()
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts, nil
}

// Genres 全部类型名，按字母排序
func (d *Dataset) Genres() []string {
	counts := d.genreCounts()
	names := make([]string, 0, len(counts))
	for _, gc := range counts {
		names = append(names, gc.Genre)
	}
	sort.Strings(names)
	return names
}

func (d *Dataset) genreCounts() []model.GenreCount {
	index := map[string]int{}
	counts := []model.GenreCount{}
	for i := range d.Movies {
		for _, g := range d.Movies[i].GetGenres() {
			if j, ok := index[g]; ok {
				counts[j].Count++
				continue
			}
			index[g] = len(counts)
			counts = append(counts, model.GenreCount{Genre: g, Count: 1})
		}
	}
	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})
	return counts
}

// ActorCountHistogram 每部电影的演员数分布，按演员数升序。
// 角色表为空时返回空结果。
func (d *Dataset) ActorCountHistogram() []model.ActorCountBin {
	perMovie := map[int64]int{}
	for i := range d.Characters {
		perMovie[d.Characters[i].MovieID]++
	}
	hist := map[int]int{}
	for _, n := range perMovie {
		hist[n]++
	}
	bins := make([]model.ActorCountBin, 0, len(hist))
	for actors, movies := range hist {
		bins = append(bins, model.ActorCountBin{Actors: actors, Movies: movies})
	}
	sort.Slice(bins, func(a, b int) bool { return bins[a].Actors < bins[b].Actors })
	return bins
}

// ActorsByGenderAndHeight 按身高闭区间和性别筛选；gender 为 all 时不过滤性别。
// 身高缺失的行不参与。
func (d *Dataset) ActorsByGenderAndHeight(gender string, minHeight, maxHeight float64) ([]model.ActorHeight, error) {
	if !isFinite(minHeight) || !isFinite(maxHeight) {
		return nil, fmt.Errorf("%w: 身高范围无效", ErrInvalidParam)
	}
	if minHeight > maxHeight {
		return nil, fmt.Errorf("%w: 最小身高 %v 大于最大身高 %v", ErrInvalidParam, minHeight, maxHeight)
	}
	want := normalizeGenderFilter(gender)

	rows := []model.ActorHeight{}
	for i := range d.Characters {
		ch := &d.Characters[i]
		if ch.ActorHeight == nil {
			continue
		}
		h := *ch.ActorHeight
		if h < minHeight || h > maxHeight {
			continue
		}
		if want != model.GenderAll && ch.ActorGender != want {
			continue
		}
		rows = append(rows, model.ActorHeight{
			MovieID:   ch.MovieID,
			ActorName: ch.ActorName,
			Gender:    ch.ActorGender,
			Height:    h,
		})
	}
	return rows, nil
}

// normalizeGenderFilter 查询参数只做大小写与简写处理，无法识别的值原样保留（结果为空）
func normalizeGenderFilter(gender string) string {
	g := strings.ToLower(strings.TrimSpace(gender))
	switch g {
	case "", model.GenderAll:
		return model.GenderAll
	case "m":
		return model.GenderMale
	case "f":
		return model.GenderFemale
	}
	return g
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// HeightHistogram 将身高结果按 [minHeight, maxHeight] 等宽分桶
func HeightHistogram(rows []model.ActorHeight, minHeight, maxHeight float64, bins int) []model.HeightBin {
	if bins < 1 {
		bins = 1
	}
	width := (maxHeight - minHeight) / float64(bins)
	if !isFinite(width) || width <= 0 {
		return []model.HeightBin{{Lower: minHeight, Upper: maxHeight, Count: len(rows)}}
	}
	out := make([]model.HeightBin, bins)
	for i := range out {
		out[i].Lower = minHeight + float64(i)*width
		out[i].Upper = minHeight + float64(i+1)*width
	}
	for _, r := range rows {
		i := int((r.Height - minHeight) / width)
		if i >= bins {
			i = bins - 1 // 右端点归入最后一个桶
		}
		if i < 0 {
			continue
		}
		out[i].Count++
	}
	return out
}

// ReleasesPerYear 每年上映数量，按年份升序；genre 非空时只统计类型包含该词的电影（不区分大小写）
func (d *Dataset) ReleasesPerYear(genre string) []model.PeriodCount {
	needle := strings.ToLower(strings.TrimSpace(genre))
	counts := map[int]int{}
	for i := range d.Movies {
		m := &d.Movies[i]
		if m.ReleaseDate == nil {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(m.Genres), needle) {
			continue
		}
		counts[m.ReleaseDate.Year]++
	}
	return sortedPeriods(counts)
}

// BirthsPerPeriod 演员出生数量，按年或按月（1-12）分组
func (d *Dataset) BirthsPerPeriod(unit Period) ([]model.PeriodCount, error) {
	if unit != PeriodYear && unit != PeriodMonth {
		return nil, fmt.Errorf("%w: unit 必须是 year 或 month，收到 %q", ErrInvalidParam, unit)
	}
	counts := map[int]int{}
	for i := range d.Characters {
		b := d.Characters[i].ActorBirth
		if b == nil {
			continue
		}
		if unit == PeriodMonth {
			counts[int(b.Month)]++
		} else {
			counts[b.Year]++
		}
	}
	return sortedPeriods(counts), nil
}

func sortedPeriods(counts map[int]int) []model.PeriodCount {
	out := make([]model.PeriodCount, 0, len(counts))
	for p, c := range counts {
		out = append(out, model.PeriodCount{Period: p, Count: c})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Period < out[b].Period })
	return out
}
