package service

import (
	"math"

	"github.com/user/moviescope/internal/model"
)

// Profile 各列缺失值数量，数值列附带偏度
func (d *Dataset) Profile() []model.ColumnProfile {
	movies := d.Movies
	chars := d.Characters
	out := []model.ColumnProfile{
		textProfile("movies", "movie_name", len(movies), func(i int) bool { return movies[i].Name == "" }),
		textProfile("movies", "movie_release_date", len(movies), func(i int) bool { return movies[i].ReleaseDate == nil }),
		numericProfile("movies", "movie_box_office_revenue", len(movies), func(i int) *float64 { return movies[i].BoxOffice }),
		numericProfile("movies", "movie_runtime", len(movies), func(i int) *float64 { return movies[i].Runtime }),
		textProfile("movies", "movie_languages", len(movies), func(i int) bool { return movies[i].Languages == "" }),
		textProfile("movies", "movie_countries", len(movies), func(i int) bool { return movies[i].Countries == "" }),
		textProfile("movies", "movie_genres", len(movies), func(i int) bool { return movies[i].Genres == "" }),

		textProfile("characters", "character_name", len(chars), func(i int) bool { return chars[i].CharacterName == "" }),
		textProfile("characters", "actor_date_of_birth", len(chars), func(i int) bool { return chars[i].ActorBirth == nil }),
		textProfile("characters", "actor_gender", len(chars), func(i int) bool { return chars[i].ActorGender == model.GenderUnknown }),
		numericProfile("characters", "actor_height", len(chars), func(i int) *float64 { return chars[i].ActorHeight }),
		textProfile("characters", "actor_ethnicity", len(chars), func(i int) bool { return chars[i].ActorEthnicity == "" }),
		textProfile("characters", "actor_name", len(chars), func(i int) bool { return chars[i].ActorName == "" }),
		numericProfile("characters", "actor_age_at_movie_release", len(chars), func(i int) *float64 { return chars[i].ActorAge }),
	}
	return out
}

func textProfile(table, column string, n int, missing func(int) bool) model.ColumnProfile {
	p := model.ColumnProfile{Table: table, Column: column, Total: n}
	for i := 0; i < n; i++ {
		if missing(i) {
			p.Missing++
		}
	}
	return p
}

func numericProfile(table, column string, n int, value func(int) *float64) model.ColumnProfile {
	p := model.ColumnProfile{Table: table, Column: column, Total: n, Numeric: true}
	values := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if v := value(i); v != nil {
			values = append(values, *v)
		} else {
			p.Missing++
		}
	}
	if s, ok := Skewness(values); ok {
		p.Skewness = &s
	}
	return p
}

// Skewness 样本偏度（调整后的 Fisher-Pearson 系数），少于 3 个值或方差为 0 时无定义
func Skewness(values []float64) (float64, bool) {
	n := float64(len(values))
	if n < 3 {
		return 0, false
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= n
	var m2, m3 float64
	for _, v := range values {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n
	if m2 == 0 {
		return 0, false
	}
	g1 := m3 / math.Pow(m2, 1.5)
	return math.Sqrt(n*(n-1)) / (n - 2) * g1, true
}
