package pathfilter

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func mustNew(t *testing.T, patterns ...string) *PathFilter {
	t.Helper()
	pf, err := New(patterns)
	if err != nil {
		t.Fatalf("New(%v) error = %v", patterns, err)
	}
	return pf
}

func TestPathFilter_ExactMatch(t *testing.T) {
	filter := mustNew(t, ".DS_Store")

	tests := []struct {
		name string
		want bool
	}{
		{".DS_Store", true},
		{"DS_Store", false},
		{".ds_store", false},
		{"x.DS_Store", false},
		{".DS_Store.bak", false},
		{"other.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.Matches(tt.name); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestPathFilter_Wildcards(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		{"star suffix", "*.bak", "file.bak", true},
		{"star suffix other", "*.bak", "another.bak", true},
		{"star is anchored", "*.bak", "file.bak.txt", false},
		{"star wrong ext", "*.bak", "file.txt", false},
		{"star prefix", "~$*", "~$report.docx", true},
		{"question single", "file?.tmp", "file1.tmp", true},
		{"question not two", "file?.tmp", "file12.tmp", false},
		{"question not zero", "file?.tmp", "file.tmp", false},
		{"case sensitive", "Thumbs.db", "thumbs.db", false},
		{"dot is literal", "a.b", "axb", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := mustNew(t, tt.pattern)
			if got := filter.Matches(tt.input); got != tt.want {
				t.Errorf("Matches(%q) with %q = %v, want %v", tt.input, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestPathFilter_MultiplePatterns(t *testing.T) {
	filter := mustNew(t, ".DS_Store", "Thumbs.db", "*.bak")

	for _, name := range []string{".DS_Store", "Thumbs.db", "old.bak"} {
		if !filter.Matches(name) {
			t.Errorf("Matches(%q) = false, want true", name)
		}
	}
	if filter.Matches("readme.md") {
		t.Error("Matches(\"readme.md\") = true, want false")
	}
}

func TestPathFilter_EmptySetMatchesNothing(t *testing.T) {
	filter := mustNew(t)

	for _, name := range []string{".DS_Store", "anything", "*"} {
		if filter.Matches(name) {
			t.Errorf("Matches(%q) = true, want false", name)
		}
	}
}

func TestPathFilter_InvalidUTF8NeverMatches(t *testing.T) {
	filter := mustNew(t, "*")

	if filter.Matches("bad\xff\xfename") {
		t.Error("Matches(invalid utf-8) = true, want false")
	}
	if !filter.Matches("good") {
		t.Error("Matches(\"good\") = false, want true")
	}
}

func TestPathFilter_InvalidPattern(t *testing.T) {
	_, err := New([]string{".DS_Store", "[abc"})
	if err == nil {
		t.Fatal("New() error = nil, want error")
	}

	if !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("errors.Is(err, ErrInvalidPattern) = false, err = %v", err)
	}

	var patternErr *InvalidPatternError
	if !errors.As(err, &patternErr) {
		t.Fatalf("errors.As(err, *InvalidPatternError) = false, err = %v", err)
	}
	if patternErr.Pattern != "[abc" {
		t.Errorf("Pattern = %q, want %q", patternErr.Pattern, "[abc")
	}
	if patternErr.Err == nil {
		t.Error("Err = nil, want syntax cause")
	}
}

func TestPathFilter_PatternsPreserveOrder(t *testing.T) {
	filter := mustNew(t, ".DS_Store", "b", "a", "b")

	got := filter.Patterns()
	want := []string{".DS_Store", "b", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("Patterns() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Patterns()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPathFilter_LiteralMetacharacters(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		{"lone open brace", "{", "{", true},
		{"unclosed brace", "*.{bak", "old.{bak", true},
		{"unclosed brace not alternation", "*.{bak", "old.bak", false},
		{"braces are literal", "file{1}.txt", "file{1}.txt", true},
		{"braces do not expand", "file{1}.txt", "file1.txt", false},
		{"comma is literal", "{a,b}", "{a,b}", true},
		{"comma does not alternate", "{a,b}", "a", false},
		{"trailing backslash", `a\`, `a\`, true},
		{"backslash is not an escape", `\*`, "x", false},
		{"backslash then star", `\*`, `\x`, true},
		{"class still works", "file[12].txt", "file2.txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := mustNew(t, tt.pattern)
			if got := filter.Matches(tt.input); got != tt.want {
				t.Errorf("Matches(%q) with %q = %v, want %v", tt.input, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestPathFilter_UnclosedClassStillInvalid(t *testing.T) {
	for _, pattern := range []string{"[", "*.[bak"} {
		if _, err := New([]string{pattern}); !errors.Is(err, ErrInvalidPattern) {
			t.Errorf("New(%q) error = %v, want ErrInvalidPattern", pattern, err)
		}
	}
}
