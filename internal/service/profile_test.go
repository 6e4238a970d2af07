package service

import (
	"math"
	"testing"
)

func TestSkewness(t *testing.T) {
	if s, ok := Skewness([]float64{1, 2, 3, 4, 5}); !ok || math.Abs(s) > 1e-12 {
		t.Fatalf("symmetric data skewness = %v, %v; want 0", s, ok)
	}
	if s, ok := Skewness([]float64{1, 1, 1, 2, 10}); !ok || s <= 0 {
		t.Fatalf("right-tailed data skewness = %v, want positive", s)
	}
	if s, ok := Skewness([]float64{-10, 1, 2, 2, 2}); !ok || s >= 0 {
		t.Fatalf("left-tailed data skewness = %v, want negative", s)
	}
	// 与 pandas Series([1, 2, 10]).skew() 一致
	if s, _ := Skewness([]float64{1, 2, 10}); math.Abs(s-1.6523) > 1e-3 {
		t.Fatalf("skewness = %v, want ~1.6523", s)
	}
	if _, ok := Skewness([]float64{1, 2}); ok {
		t.Fatal("fewer than 3 values has no skewness")
	}
	if _, ok := Skewness([]float64{4, 4, 4}); ok {
		t.Fatal("constant values have no skewness")
	}
}
