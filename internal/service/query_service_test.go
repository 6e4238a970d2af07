package service

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestQueryServiceReturnsCopies(t *testing.T) {
	qs := NewQueryService(newTestDataset(), 16, time.Minute)

	first, err := qs.TopGenres(3)
	if err != nil {
		t.Fatalf("TopGenres: %v", err)
	}
	first[0].Genre = "mutated"

	second, err := qs.TopGenres(3)
	if err != nil {
		t.Fatalf("TopGenres: %v", err)
	}
	if second[0].Genre != "Drama" {
		t.Fatalf("cached result was mutated through a previous caller: %v", second)
	}
	if qs.cache.Len() != 1 {
		t.Fatalf("cache len = %d, want 1", qs.cache.Len())
	}
}

func TestQueryServiceReleasesKeyIsCaseInsensitive(t *testing.T) {
	qs := NewQueryService(newTestDataset(), 16, time.Minute)
	a, _ := qs.ReleasesPerYear("Drama")
	b, _ := qs.ReleasesPerYear(" drama ")
	if len(a) != len(b) {
		t.Fatalf("results differ: %v vs %v", a, b)
	}
	if qs.cache.Len() != 1 {
		t.Fatalf("cache len = %d, want 1", qs.cache.Len())
	}
}

func TestQueryServiceValidation(t *testing.T) {
	qs := NewQueryService(newTestDataset(), 16, time.Minute)
	if _, err := qs.TopGenres(0); !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("TopGenres(0) err = %v", err)
	}
	if _, err := qs.ActorsByGenderAndHeight("all", 210, 150); !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("min > max err = %v", err)
	}
	if _, err := qs.BirthsPerPeriod(Period("decade")); !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("bad unit err = %v", err)
	}
	if qs.cache.Len() != 0 {
		t.Fatal("failed queries must not be cached")
	}
}

func TestQueryServiceConcurrent(t *testing.T) {
	qs := NewQueryService(newTestDataset(), 16, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows, err := qs.ActorsByGenderAndHeight("all", 150, 200)
			if err != nil || len(rows) != 5 {
				t.Errorf("rows = %d, err = %v", len(rows), err)
			}
		}()
	}
	wg.Wait()
}

func TestProfile(t *testing.T) {
	qs := NewQueryService(newTestDataset(), 16, time.Minute)
	cols, err := qs.Profile()
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	byName := map[string]int{}
	for i, c := range cols {
		byName[c.Table+"."+c.Column] = i
	}

	height := cols[byName["characters.actor_height"]]
	if height.Total != 7 || height.Missing != 2 || !height.Numeric {
		t.Fatalf("actor_height profile = %+v", height)
	}
	if height.Skewness == nil {
		t.Fatal("actor_height should have a skewness")
	}

	release := cols[byName["movies.movie_release_date"]]
	if release.Missing != 1 {
		t.Fatalf("release date missing = %d, want 1", release.Missing)
	}
	runtime := cols[byName["movies.movie_runtime"]]
	if runtime.Missing != 5 || runtime.Skewness != nil {
		t.Fatalf("runtime profile = %+v", runtime)
	}
}
