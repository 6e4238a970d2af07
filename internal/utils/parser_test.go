package utils

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/user/moviescope/internal/model"
)

func TestParseCategoryMapKeepsKeyOrder(t *testing.T) {
	raw := `{"/m/07s9rl0": "Drama", "/m/01jfsb": "Thriller", "/m/02kdv5l": "Action"}`
	got, err := ParseCategoryMap(raw)
	if err != nil {
		t.Fatalf("ParseCategoryMap: %v", err)
	}
	want := []string{"Drama", "Thriller", "Action"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseCategoryMapEmpty(t *testing.T) {
	got, err := ParseCategoryMap("{}")
	if err != nil {
		t.Fatalf("ParseCategoryMap: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no names, got %v", got)
	}
}

func TestParseCategoryMapMalformed(t *testing.T) {
	cases := []string{
		`{"/m/07s9rl0": "Drama"`,
		`{"/m/07s9rl0": 3}`,
		`["Drama"]`,
		`{"a": "b"} trailing`,
		``,
	}
	for _, raw := range cases {
		if _, err := ParseCategoryMap(raw); !errors.Is(err, ErrMalformedMap) {
			t.Errorf("ParseCategoryMap(%q) err = %v, want ErrMalformedMap", raw, err)
		}
	}
}

func TestIsCategoryMap(t *testing.T) {
	if !IsCategoryMap(`  {"a": "b"}`) {
		t.Error("serialized map not detected")
	}
	if IsCategoryMap("Drama, Action") {
		t.Error("joined list detected as map")
	}
}

func TestNormalizeGender(t *testing.T) {
	cases := map[string]string{
		"M":      model.GenderMale,
		"m":      model.GenderMale,
		" M ":    model.GenderMale,
		"male":   model.GenderMale,
		"F":      model.GenderFemale,
		"female": model.GenderFemale,
		"":       model.GenderUnknown,
		"X":      model.GenderUnknown,
		"nb":     model.GenderUnknown,
	}
	for in, want := range cases {
		if got := NormalizeGender(in); got != want {
			t.Errorf("NormalizeGender(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeHeight(t *testing.T) {
	cases := []struct {
		in    float64
		want  float64
		valid bool
	}{
		{1.78, 178, true},
		{1.8, 180, true},
		{178, 178, true},
		{9.99, 999, true},
		{10, 10, true},
		{0, 0, false},
		{-1.7, 0, false},
	}
	for _, tc := range cases {
		got, ok := NormalizeHeight(tc.in, 10)
		if ok != tc.valid {
			t.Errorf("NormalizeHeight(%v) ok = %v, want %v", tc.in, ok, tc.valid)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("NormalizeHeight(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeHeightIsStable(t *testing.T) {
	v, _ := NormalizeHeight(1.78, 10)
	again, _ := NormalizeHeight(v, 10)
	if again != v {
		t.Fatalf("second pass changed %v to %v", v, again)
	}
}

func TestParseOptionalFloat(t *testing.T) {
	if ParseOptionalFloat("") != nil {
		t.Error("empty string should be missing")
	}
	if ParseOptionalFloat("NaN") != nil {
		t.Error("NaN should be missing")
	}
	if ParseOptionalFloat("abc") != nil {
		t.Error("garbage should be missing")
	}
	v := ParseOptionalFloat(" 14500000 ")
	if v == nil || *v != 14500000 {
		t.Errorf("got %v, want 14500000", v)
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want model.Date
		ok   bool
	}{
		{"2001-08-24", model.Date{Year: 2001, Month: time.August, Day: 24}, true},
		{"1987-05", model.Date{Year: 1987, Month: time.May, Day: 1}, true},
		{"1938", model.Date{Year: 1938, Month: time.January, Day: 1}, true},
		{"1971-03-03T00:00:00", model.Date{Year: 1971, Month: time.March, Day: 3}, true},
		{"1010-12-02", model.Date{}, false},
		{"2300", model.Date{}, false},
		{"", model.Date{}, false},
		{"unknown", model.Date{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseDate(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseDate(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
