package search

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   RawResult
		want Result
	}{
		{
			name: "brave fields",
			in: RawResult{Provider: "brave", Brave: &braveResult{
				Title: "Deadpool & Wolverine", URL: "https://marvel.com/dp3",
				Description: "Third film", Position: 1,
			}},
			want: Result{Title: "Deadpool & Wolverine", Link: "https://marvel.com/dp3",
				Snippet: "Third film", Source: "brave", Position: 1},
		},
		{
			name: "serper fields",
			in: RawResult{Provider: "serper", Serper: &serperResult{
				Title: "Fantastic Four", Link: "https://imdb.com/ff",
				Snippet: "First Steps", Position: 2,
			}},
			want: Result{Title: "Fantastic Four", Link: "https://imdb.com/ff",
				Snippet: "First Steps", Source: "serper", Position: 2},
		},
		{
			name: "missing title gets default",
			in:   RawResult{Provider: "brave", Brave: &braveResult{URL: "https://x.com/a"}},
			want: Result{Title: "No title", Link: "https://x.com/a", Source: "brave"},
		},
		{
			name: "missing provider tag gets default source",
			in:   RawResult{Serper: &serperResult{Title: "T", Link: "https://x.com/b"}},
			want: Result{Title: "T", Link: "https://x.com/b", Source: "Unknown source"},
		},
		{
			name: "empty payload keeps a slot",
			in:   RawResult{Provider: "brave"},
			want: Result{Title: "No title", Source: "brave"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize([]RawResult{tt.in})
			if len(got) != 1 {
				t.Fatalf("Normalize() returned %d results, want 1", len(got))
			}
			if got[0] != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got[0], tt.want)
			}
		})
	}
}

func TestNormalizePreservesOrder(t *testing.T) {
	raws := []RawResult{
		{Provider: "serper", Serper: &serperResult{Title: "a", Link: "https://a"}},
		{Provider: "serper", Serper: &serperResult{Title: "b", Link: "https://b"}},
		{Provider: "serper", Serper: &serperResult{Title: "c", Link: "https://c"}},
	}
	got := Normalize(raws)
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].Title != want {
			t.Errorf("result %d = %q, want %q", i, got[i].Title, want)
		}
	}
}
