package service

import (
	"github.com/user/moviescope/internal/model"
)

func f64(v float64) *float64 { return &v }

// rawMovies 模拟加载后、清洗前的电影表
func rawMovies() []model.Movie {
	return []model.Movie{
		{WikipediaID: 1, Name: "First", ReleaseDateRaw: "1990-05-01", BoxOffice: f64(100),
			Languages: `{"/m/02h40lc": "English Language", "/m/06nm1": "Spanish Language"}`,
			Genres:    `{"/m/07s9rl0": "Drama", "/m/01z4y": "Comedy"}`},
		{WikipediaID: 2, Name: "Second", ReleaseDateRaw: "1990", BoxOffice: f64(300),
			Genres: `{"/m/07s9rl0": "Drama"}`},
		{WikipediaID: 3, Name: "Third", ReleaseDateRaw: "2001-07",
			Genres: `{"/m/02kdv5l": "Action", "/m/07s9rl0": "Drama"}`},
		{WikipediaID: 4, Name: "Fourth", ReleaseDateRaw: "", BoxOffice: f64(200),
			Genres: `{"/m/06cvj": "Romantic comedy"}`},
		{WikipediaID: 5, Name: "Fifth", ReleaseDateRaw: "1995-02-03",
			Genres: `{"/m/07s9rl0": "Drama"`},
	}
}

// rawCharacters 模拟加载后、清洗前的角色表
func rawCharacters() []model.Character {
	return []model.Character{
		{MovieID: 1, ActorName: "A", ActorGender: "M", ActorHeightRaw: "1.80", ActorBirthRaw: "1960-03-15"},
		{MovieID: 1, ActorName: "B", ActorGender: "F", ActorHeightRaw: "165", ActorBirthRaw: "1970-03"},
		{MovieID: 1, ActorName: "C", ActorGender: "", ActorHeightRaw: "", ActorBirthRaw: ""},
		{MovieID: 2, ActorName: "D", ActorGender: "f", ActorHeightRaw: "1.55", ActorBirthRaw: "1980"},
		{MovieID: 3, ActorName: "E", ActorGender: "m", ActorHeightRaw: "190", ActorBirthRaw: "1960-12-01"},
		{MovieID: 3, ActorName: "F", ActorGender: " M ", ActorHeightRaw: "0", ActorBirthRaw: "bad"},
		{MovieID: 99, ActorName: "G", ActorGender: "X", ActorHeightRaw: "175", ActorBirthRaw: "1975-06-20"},
	}
}

// newTestDataset 返回清洗后的测试数据集
func newTestDataset() *Dataset {
	movies := rawMovies()
	chars := rawCharacters()
	rep := NewCleaner(CleanOptions{}).Clean(movies, chars)
	ds := NewDataset(movies, chars, map[int64]string{
		1: "A story about a family.",
	})
	ds.CleanReport = rep
	return ds
}
