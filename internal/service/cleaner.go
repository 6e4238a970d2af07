package service

import (
	"log"
	"sort"
	"strings"

	"github.com/user/moviescope/internal/model"
	"github.com/user/moviescope/internal/utils"
)

// 每类问题最多打印的日志条数，其余只计数
const maxCleanLogs = 10

// CleanOptions 清洗参数
type CleanOptions struct {
	// HeightMeterThreshold 低于该值的身高按米处理
	HeightMeterThreshold float64
	// FillMedian 用中位数填充缺失的票房与片长
	FillMedian bool
}

// CleanReport 清洗统计。单元格级别的问题只计数和记录日志，不中断流程。
type CleanReport struct {
	MalformedCategories int `json:"malformed_categories"`
	ReleaseDateMissing  int `json:"release_date_missing"`
	BirthDateMissing    int `json:"birth_date_missing"`
	HeightRescaled      int `json:"height_rescaled"`
	HeightMissing       int `json:"height_missing"`
	GenderUnknown       int `json:"gender_unknown"`
	BoxOfficeFilled     int `json:"box_office_filled"`
	RuntimeFilled       int `json:"runtime_filled"`
}

// Cleaner 原地规范化电影表与角色表，重复执行结果不变
type Cleaner struct {
	opt CleanOptions
}

// NewCleaner 创建清洗器
func NewCleaner(opt CleanOptions) *Cleaner {
	if opt.HeightMeterThreshold <= 0 {
		opt.HeightMeterThreshold = 10
	}
	return &Cleaner{opt: opt}
}

// Clean 清洗两张表
func (c *Cleaner) Clean(movies []model.Movie, chars []model.Character) CleanReport {
	var rep CleanReport
	c.cleanMovies(movies, &rep)
	c.cleanCharacters(chars, &rep)
	log.Printf("[Cleaner] 清洗完成: 类别解析失败 %d, 上映日期缺失 %d, 出生日期缺失 %d, 身高换算 %d, 身高缺失 %d, 性别未知 %d",
		rep.MalformedCategories, rep.ReleaseDateMissing, rep.BirthDateMissing,
		rep.HeightRescaled, rep.HeightMissing, rep.GenderUnknown)
	return rep
}

func (c *Cleaner) cleanMovies(movies []model.Movie, rep *CleanReport) {
	for i := range movies {
		m := &movies[i]
		m.Genres = c.normalizeCategory(m.WikipediaID, "genres", m.Genres, rep)
		m.Countries = c.normalizeCategory(m.WikipediaID, "countries", m.Countries, rep)
		m.Languages = c.normalizeCategory(m.WikipediaID, "languages", m.Languages, rep)

		if d, ok := utils.ParseDate(m.ReleaseDateRaw); ok {
			m.ReleaseDate = &d
		} else {
			m.ReleaseDate = nil
			rep.ReleaseDateMissing++
		}
	}

	if c.opt.FillMedian {
		rep.BoxOfficeFilled = fillMedian(movies, func(m *model.Movie) **float64 { return &m.BoxOffice })
		rep.RuntimeFilled = fillMedian(movies, func(m *model.Movie) **float64 { return &m.Runtime })
	}
}

// normalizeCategory 将序列化映射转为逗号分隔的名称；已经规范化的值原样返回
func (c *Cleaner) normalizeCategory(id int64, column, raw string, rep *CleanReport) string {
	if !utils.IsCategoryMap(raw) {
		return strings.TrimSpace(raw)
	}
	names, err := utils.ParseCategoryMap(raw)
	if err != nil {
		rep.MalformedCategories++
		if rep.MalformedCategories <= maxCleanLogs {
			log.Printf("[Cleaner] 电影 %d 的 %s 解析失败: %v", id, column, err)
		}
		return ""
	}
	return strings.Join(names, model.ListSeparator)
}

func (c *Cleaner) cleanCharacters(chars []model.Character, rep *CleanReport) {
	for i := range chars {
		ch := &chars[i]

		ch.ActorGender = utils.NormalizeGender(ch.ActorGender)
		if ch.ActorGender == model.GenderUnknown {
			rep.GenderUnknown++
		}

		ch.ActorHeight = nil
		if v := utils.ParseOptionalFloat(ch.ActorHeightRaw); v != nil {
			if h, ok := utils.NormalizeHeight(*v, c.opt.HeightMeterThreshold); ok {
				if h != *v {
					rep.HeightRescaled++
				}
				ch.ActorHeight = &h
			}
		}
		if ch.ActorHeight == nil {
			rep.HeightMissing++
		}

		if d, ok := utils.ParseDate(ch.ActorBirthRaw); ok {
			ch.ActorBirth = &d
		} else {
			ch.ActorBirth = nil
			rep.BirthDateMissing++
		}
	}
}

// fillMedian 用非缺失值的中位数填充缺失值，返回填充数量
func fillMedian(movies []model.Movie, field func(*model.Movie) **float64) int {
	var values []float64
	for i := range movies {
		if v := *field(&movies[i]); v != nil {
			values = append(values, *v)
		}
	}
	if len(values) == 0 || len(values) == len(movies) {
		return 0
	}
	median := Median(values)
	filled := 0
	for i := range movies {
		p := field(&movies[i])
		if *p == nil {
			v := median
			*p = &v
			filled++
		}
	}
	return filled
}

// Median 中位数，不修改入参
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 0 {
		return (s[mid-1] + s[mid]) / 2
	}
	return s[mid]
}
