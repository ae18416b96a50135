package knowledge

import (
	"context"
	"math"
	"testing"
)

func TestWordLengthVectorize(t *testing.T) {
	v, err := WordLengthVectorizer{}.Vectorize(context.Background(), "Spider Man comics")
	if err != nil {
		t.Fatalf("Vectorize() error = %v", err)
	}
	if len(v) != 100 {
		t.Fatalf("vector length = %d, want 100", len(v))
	}
	want := []float64{0.6, 0.3, 0.6}
	for i, w := range want {
		if math.Abs(v[i]-w) > 1e-9 {
			t.Errorf("v[%d] = %f, want %f", i, v[i], w)
		}
	}
	for i := 3; i < 100; i++ {
		if v[i] != 0 {
			t.Errorf("v[%d] = %f, want 0", i, v[i])
		}
	}
}

func TestWordLengthVectorizeTruncates(t *testing.T) {
	long := ""
	for i := 0; i < 150; i++ {
		long += "word "
	}
	v, err := WordLengthVectorizer{}.Vectorize(context.Background(), long)
	if err != nil {
		t.Fatalf("Vectorize() error = %v", err)
	}
	if len(v) != 100 {
		t.Errorf("vector length = %d, want 100", len(v))
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"parallel scaled", []float64{1, 1}, []float64{3, 3}, 1},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"length mismatch", []float64{1}, []float64{1, 1}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestCosineSameTextIsOne(t *testing.T) {
	ctx := context.Background()
	a, _ := WordLengthVectorizer{}.Vectorize(ctx, "deadpool wolverine marvel")
	b, _ := WordLengthVectorizer{}.Vectorize(ctx, "deadpool wolverine marvel")
	if got := Cosine(a, b); math.Abs(got-1) > 1e-9 {
		t.Errorf("Cosine(same text) = %f, want 1", got)
	}
}
