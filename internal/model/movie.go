package model

import "strings"

// ListSeparator 规范化后的类型/国家/语言字段分隔符
const ListSeparator = ", "

// Movie 电影元数据（movie.metadata.tsv 的一行）
type Movie struct {
	WikipediaID    int64    `json:"wikipedia_id"`
	FreebaseID     string   `json:"freebase_id"`
	Name           string   `json:"name"`
	ReleaseDateRaw string   `json:"-"`
	ReleaseDate    *Date    `json:"release_date,omitempty"`
	BoxOffice      *float64 `json:"box_office,omitempty"` // 票房收入
	Runtime        *float64 `json:"runtime,omitempty"`    // 片长（分钟）
	Languages      string   `json:"languages"`
	Countries      string   `json:"countries"`
	Genres         string   `json:"genres"`
}

// GetGenres 获取类型切片
func (m *Movie) GetGenres() []string {
	return SplitList(m.Genres)
}

// GetCountries 获取国家切片
func (m *Movie) GetCountries() []string {
	return SplitList(m.Countries)
}

// GetLanguages 获取语言切片
func (m *Movie) GetLanguages() []string {
	return SplitList(m.Languages)
}

// SplitList 按 ListSeparator 切分并去除空白项，名称内部的逗号保留
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	res := []string{}
	for _, p := range strings.Split(s, ListSeparator) {
		if v := strings.TrimSpace(p); v != "" {
			res = append(res, v)
		}
	}
	return res
}
