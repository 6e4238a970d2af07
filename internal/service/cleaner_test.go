package service

import (
	"reflect"
	"testing"

	"github.com/user/moviescope/internal/model"
)

func TestCleanerReport(t *testing.T) {
	movies := rawMovies()
	chars := rawCharacters()
	rep := NewCleaner(CleanOptions{}).Clean(movies, chars)

	want := CleanReport{
		MalformedCategories: 1,
		ReleaseDateMissing:  1,
		BirthDateMissing:    2,
		HeightRescaled:      2,
		HeightMissing:       2,
		GenderUnknown:       2,
	}
	if rep != want {
		t.Fatalf("report = %+v, want %+v", rep, want)
	}
}

func TestCleanerNormalizesColumns(t *testing.T) {
	movies := rawMovies()
	chars := rawCharacters()
	NewCleaner(CleanOptions{}).Clean(movies, chars)

	if movies[0].Genres != "Drama, Comedy" {
		t.Errorf("genres = %q, want key order kept", movies[0].Genres)
	}
	if movies[0].Languages != "English Language, Spanish Language" {
		t.Errorf("languages = %q", movies[0].Languages)
	}
	if movies[4].Genres != "" {
		t.Errorf("malformed map should become empty, got %q", movies[4].Genres)
	}
	if movies[3].ReleaseDate != nil {
		t.Error("empty release date should be missing")
	}
	if d := movies[2].ReleaseDate; d == nil || d.Year != 2001 || d.Month != 7 {
		t.Errorf("release date = %v", d)
	}

	genders := []string{}
	for _, c := range chars {
		genders = append(genders, c.ActorGender)
	}
	wantGenders := []string{
		model.GenderMale, model.GenderFemale, model.GenderUnknown, model.GenderFemale,
		model.GenderMale, model.GenderMale, model.GenderUnknown,
	}
	if !reflect.DeepEqual(genders, wantGenders) {
		t.Errorf("genders = %v, want %v", genders, wantGenders)
	}

	if h := chars[0].ActorHeight; h == nil || *h != 180 {
		t.Errorf("1.80 m should become 180 cm, got %v", h)
	}
	if h := chars[1].ActorHeight; h == nil || *h != 165 {
		t.Errorf("165 cm should stay, got %v", h)
	}
	if chars[5].ActorHeight != nil {
		t.Error("non-positive height should be missing")
	}
}

func TestCleanerIsIdempotent(t *testing.T) {
	movies := rawMovies()
	chars := rawCharacters()
	c := NewCleaner(CleanOptions{FillMedian: true})
	first := c.Clean(movies, chars)

	movies2 := append([]model.Movie(nil), movies...)
	chars2 := append([]model.Character(nil), chars...)
	second := c.Clean(movies2, chars2)

	if !reflect.DeepEqual(movies, movies2) {
		t.Fatal("second pass changed the movie table")
	}
	if !reflect.DeepEqual(chars, chars2) {
		t.Fatal("second pass changed the character table")
	}
	// 第二次没有可填充的缺失值，其余计数保持不变
	first.BoxOfficeFilled, first.RuntimeFilled = 0, 0
	if first != second {
		t.Fatalf("reports differ: %+v vs %+v", first, second)
	}
}

func TestCleanerThreshold(t *testing.T) {
	chars := []model.Character{{ActorHeightRaw: "15"}}
	NewCleaner(CleanOptions{HeightMeterThreshold: 20}).Clean(nil, chars)
	if h := chars[0].ActorHeight; h == nil || *h != 1500 {
		t.Fatalf("height below a custom threshold should be rescaled, got %v", h)
	}
}

func TestCleanerFillMedian(t *testing.T) {
	movies := rawMovies()
	rep := NewCleaner(CleanOptions{FillMedian: true}).Clean(movies, nil)
	if rep.BoxOfficeFilled != 2 {
		t.Fatalf("box office filled = %d, want 2", rep.BoxOfficeFilled)
	}
	if rep.RuntimeFilled != 0 {
		t.Fatalf("runtime has no values to take a median from, filled = %d", rep.RuntimeFilled)
	}
	if v := movies[2].BoxOffice; v == nil || *v != 200 {
		t.Fatalf("filled value = %v, want median 200", v)
	}
}

func TestMedian(t *testing.T) {
	cases := []struct {
		in   []float64
		want float64
	}{
		{nil, 0},
		{[]float64{3}, 3},
		{[]float64{3, 1, 2}, 2},
		{[]float64{4, 1, 3, 2}, 2.5},
	}
	for _, tc := range cases {
		if got := Median(tc.in); got != tc.want {
			t.Errorf("Median(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
