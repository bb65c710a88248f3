// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pagefilter

import (
	"errors"
	"testing"
)

// fakeReader serves canned per-page text for a single document.
type fakeReader struct {
	pages []string // empty string means the page text is unreadable
}

func (f fakeReader) PageCount(string) (int, error) {
	return len(f.pages), nil
}

func (f fakeReader) PageText(_ string, page int) (string, error) {
	if page < 1 || page > len(f.pages) {
		return "", errors.New("page out of range")
	}
	if f.pages[page-1] == "" {
		return "", errors.New("no extractable text")
	}
	return f.pages[page-1], nil
}

func TestFlagPages(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  []int
	}{
		{
			name:  "standard price formats",
			pages: []string{"Unit price: $1,250.00", "Fan schedule", "Total $ 980"},
			want:  []int{1, 3},
		},
		{
			name:  "no cents",
			pages: []string{"Quote: $12,000 net 30"},
			want:  []int{1},
		},
		{
			name:  "no pricing",
			pages: []string{"Supply CFM 2000", "Static pressure 1.5 in wg"},
			want:  nil,
		},
		{
			name:  "bare dollar sign is not a price",
			pages: []string{"cost in $ to be determined"},
			want:  nil,
		},
		{
			name:  "unreadable page is kept",
			pages: []string{"", "$500.00 installation"},
			want:  []int{2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FlagPages(fakeReader{pages: tt.pages}, "doc.pdf")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("flagged %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("flagged %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestContainsDollarAmount(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"$1,250.00", true},
		{"$ 980", true},
		{"$12,000", true},
		{"total: $5", true},
		{"$", false},
		{"US dollars", false},
		{"price $1.5", true}, // matches "$1", cents group optional
	}
	for _, tt := range tests {
		if got := containsDollarAmount(tt.text); got != tt.want {
			t.Errorf("containsDollarAmount(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestFilterAllPagesPricing(t *testing.T) {
	r := fakeReader{pages: []string{"$100.00", "$200.00"}}
	var buf noopWriter
	res, err := Filter(r, "doc.pdf", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Empty {
		t.Fatal("expected Empty when every page is a pricing page")
	}
	if res.Path != "" {
		t.Errorf("empty result should carry no path, got %q", res.Path)
	}
}

func TestFilterNothingFlagged(t *testing.T) {
	r := fakeReader{pages: []string{"fan schedule", "dimensions"}}
	var buf noopWriter
	res, err := Filter(r, "doc.pdf", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Path != "doc.pdf" {
		t.Errorf("clean documents should pass through unchanged, got %q", res.Path)
	}
	if len(res.Removed) != 0 || res.Empty {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestFilteredPath(t *testing.T) {
	if got := filteredPath("/out/AHU-1_Drawing.pdf"); got != "/out/AHU-1_Drawing_filtered.pdf" {
		t.Errorf("filteredPath = %q", got)
	}
}

// noopWriter discards progress output in tests.
type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
