package publication

import "testing"

func TestSortYear(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain year", "2023", 2023},
		{"whitespace", "  2021 ", 2021},
		{"trailing text", "2019a", 2019},
		{"unknown", UnknownYear, 0},
		{"empty", "", 0},
		{"sign only", "-", 0},
		{"negative", "-5", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SortYear(tt.input); got != tt.want {
				t.Errorf("SortYear(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatYear(t *testing.T) {
	if got := FormatYear(0); got != UnknownYear {
		t.Errorf("FormatYear(0) = %q, want %q", got, UnknownYear)
	}
	if got := FormatYear(2024); got != "2024" {
		t.Errorf("FormatYear(2024) = %q, want 2024", got)
	}
}

func TestDOIURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10.1000/xyz", "https://doi.org/10.1000/xyz"},
		{"doi:10.1000/xyz", "https://doi.org/10.1000/xyz"},
		{"https://doi.org/10.1000/xyz", "https://doi.org/10.1000/xyz"},
		{"HTTP://dx.doi.org/10.1/a", "HTTP://dx.doi.org/10.1/a"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := DOIURL(tt.input); got != tt.want {
			t.Errorf("DOIURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestOr(t *testing.T) {
	if got := Or("", UnknownVenue); got != UnknownVenue {
		t.Errorf("Or(empty) = %q", got)
	}
	if got := Or(" \t", UnknownVenue); got != UnknownVenue {
		t.Errorf("Or(blank) = %q", got)
	}
	if got := Or("Nature", UnknownVenue); got != "Nature" {
		t.Errorf("Or(Nature) = %q", got)
	}
	if got := FirstNonEmpty("", " ", "b", "c"); got != "b" {
		t.Errorf("FirstNonEmpty = %q, want b", got)
	}
}

func TestSamples(t *testing.T) {
	samples := Samples()
	if len(samples) != 4 {
		t.Fatalf("len(Samples()) = %d, want 4", len(samples))
	}
	wantYears := []string{"2024", "2023", "2023", "2022"}
	for i, p := range samples {
		if p.Year != wantYears[i] {
			t.Errorf("samples[%d].Year = %s, want %s", i, p.Year, wantYears[i])
		}
		if p.URL != PlaceholderURL {
			t.Errorf("samples[%d].URL = %s, want %s", i, p.URL, PlaceholderURL)
		}
	}

	// Mutating the returned slice must not leak into later calls.
	samples[0].Title = "changed"
	if Samples()[0].Title == "changed" {
		t.Error("Samples() shares state between calls")
	}
}
