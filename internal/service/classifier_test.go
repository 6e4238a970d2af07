package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type fakeGenerator struct {
	calls   int32
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestClassify(t *testing.T) {
	gen := &fakeGenerator{reply: "<think>maybe Horror, Drama</think>\nDrama, Comedy, Space Opera, Drama"}
	c := NewClassifier(gen, newTestDataset(), time.Minute)

	res, err := c.Classify(context.Background(), 1)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !reflect.DeepEqual(res.Predicted, []string{"Drama", "Comedy"}) {
		t.Fatalf("predicted = %v", res.Predicted)
	}
	if !reflect.DeepEqual(res.DatabaseGenres, []string{"Drama", "Comedy"}) {
		t.Fatalf("database genres = %v", res.DatabaseGenres)
	}
	if !res.Match || len(res.Matched) != 2 {
		t.Fatalf("expected a match, got %+v", res)
	}
	if strings.Contains(res.RawResponse, "<think>") {
		t.Fatalf("think block not stripped: %q", res.RawResponse)
	}
	if res.Summary != "A story about a family." {
		t.Fatalf("summary = %q", res.Summary)
	}

	prompt := gen.prompts[0]
	for _, part := range []string{"Movie Title: First", "Database Genres for this movie: Drama, Comedy", "Available Genres: Crime Fiction"} {
		if !strings.Contains(prompt, part) {
			t.Errorf("prompt missing %q", part)
		}
	}

	// 第二次命中缓存
	if _, err := c.Classify(context.Background(), 1); err != nil {
		t.Fatalf("Classify (cached): %v", err)
	}
	if n := atomic.LoadInt32(&gen.calls); n != 1 {
		t.Fatalf("generator called %d times, want 1", n)
	}
}

func TestClassifyResultDoesNotShareCache(t *testing.T) {
	gen := &fakeGenerator{reply: "Drama, Comedy"}
	c := NewClassifier(gen, newTestDataset(), time.Minute)

	first, err := c.Classify(context.Background(), 1)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	first.Predicted[0] = "Mutated"
	first.Matched[0] = "Mutated"
	first.DatabaseGenres[0] = "Mutated"

	second, err := c.Classify(context.Background(), 1)
	if err != nil {
		t.Fatalf("Classify (cached): %v", err)
	}
	if second.Predicted[0] != "Drama" || second.Matched[0] != "Drama" || second.DatabaseGenres[0] != "Drama" {
		t.Fatalf("cached result changed by caller: %+v", second)
	}
}

func TestClassifyNoSummaryNoMatch(t *testing.T) {
	gen := &fakeGenerator{reply: "Western"}
	c := NewClassifier(gen, newTestDataset(), time.Minute)

	res, err := c.Classify(context.Background(), 3)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.Summary != noSummary {
		t.Fatalf("summary = %q, want placeholder", res.Summary)
	}
	if res.Match || len(res.Matched) != 0 {
		t.Fatalf("Western should not match Action/Drama: %+v", res)
	}
}

func TestClassifyErrors(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	c := NewClassifier(gen, newTestDataset(), time.Minute)

	if _, err := c.Classify(context.Background(), 12345); !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("unknown movie err = %v, want ErrMovieNotFound", err)
	}
	if _, err := c.Classify(context.Background(), 1); err == nil {
		t.Fatal("expected generator error")
	}
	gen.err = nil
	gen.reply = "Drama"
	if _, err := c.Classify(context.Background(), 1); err != nil {
		t.Fatalf("failure must not be cached: %v", err)
	}
}

func TestClassifyRandom(t *testing.T) {
	gen := &fakeGenerator{reply: "Drama"}
	c := NewClassifier(gen, newTestDataset(), time.Minute)
	res, err := c.ClassifyRandom(context.Background())
	if err != nil {
		t.Fatalf("ClassifyRandom: %v", err)
	}
	if res.MovieID < 1 || res.MovieID > 5 {
		t.Fatalf("unexpected movie %d", res.MovieID)
	}

	empty := NewClassifier(gen, NewDataset(nil, nil, nil), time.Minute)
	if _, err := empty.ClassifyRandom(context.Background()); !errors.Is(err, ErrDataNotLoaded) {
		t.Fatalf("empty dataset err = %v, want ErrDataNotLoaded", err)
	}
}

func TestParsePrediction(t *testing.T) {
	got := ParsePrediction(` "Drama", Comedy-drama., comedy, Thriller `)
	want := []string{"Drama", "Comedy-drama", "Thriller"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got := ParsePrediction("<think>Drama</think>"); len(got) != 0 {
		t.Fatalf("genres inside the think block must be ignored, got %v", got)
	}
}
