package annotate

import (
	"reflect"
	"strings"
	"testing"
)

func TestIsAlphabetic(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"12,345.00", false},
		{"-- | --", false},
		{"@ 200", false},
		{"Total", true},
		{"x", true},
		{"Z9", true},
		{"100 kg", true},
		{"éàü", false}, // only ASCII letters count
	}

	for _, tt := range tests {
		if got := IsAlphabetic(tt.line); got != tt.want {
			t.Errorf("IsAlphabetic(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "empty",
			input: nil,
			want:  []string{},
		},
		{
			name:  "no alphabetic lines",
			input: []string{"123", "456"},
			want:  []string{"123", "@ 456"},
		},
		{
			name:  "no numeric lines",
			input: []string{"abc", "def"},
			want:  []string{"abc", "def"},
		},
		{
			name:  "total row",
			input: []string{"100", "200", "Total", "300"},
			want:  []string{"100", "@ 200", "Total", "@ 300"},
		},
		{
			name:  "header first",
			input: []string{"Header", "10", "20", "Row2", "30"},
			want:  []string{"Header", "10", "@ 20", "Row2", "@ 30"},
		},
		{
			name:  "ends alphabetic",
			input: []string{"1", "Name", "2", "3", "Other"},
			want:  []string{"@ 1", "Name", "2", "@ 3", "Other"},
		},
		{
			name:  "blank lines are numeric",
			input: []string{"5", "", "Label"},
			want:  []string{"5", "@ ", "Label"},
		},
		{
			name:  "single numeric line",
			input: []string{"42"},
			want:  []string{"@ 42"},
		},
		{
			name:  "already marked mid pass",
			input: []string{"@ 10", "Total"},
			want:  []string{"@ 10", "Total"},
		},
		{
			name:  "already marked trailing",
			input: []string{"Total", "@ 10"},
			want:  []string{"Total", "@ 10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lines(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLinesDoesNotMutateInput(t *testing.T) {
	input := []string{"1", "2", "Total"}
	Lines(input)
	if input[1] != "2" {
		t.Errorf("input was modified: %q", input)
	}
}

func TestLinesPreservesLengthAndOrder(t *testing.T) {
	input := []string{"Item", "1", "2", "", "Sub", "x1", "3.50", "**", "Grand total", "9"}
	got := Lines(input)

	if len(got) != len(input) {
		t.Fatalf("len = %d, want %d", len(got), len(input))
	}
	for i := range input {
		if strings.TrimPrefix(got[i], Marker) != input[i] {
			t.Errorf("line %d: got %q, want %q with optional marker", i, got[i], input[i])
		}
	}
}

func TestLinesIdempotentMarkers(t *testing.T) {
	input := []string{"Header", "10", "20", "Row2", "30"}
	once := Lines(input)
	twice := Lines(once)
	for i, line := range twice {
		if strings.HasPrefix(line, Marker+Marker) {
			t.Errorf("line %d double marked: %q", i, line)
		}
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed output: %q -> %q", once, twice)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", nil},
		{" \n\t\n ", nil},
		{"a", []string{"a"}},
		{"\n\n100\n200\nTotal\n\n", []string{"100", "200", "Total"}},
		{"a\n\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		if got := Split(tt.text); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Split(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestText(t *testing.T) {
	got := Text("  100\n200\nTotal\n300\n\f")
	want := "100\n@ 200\nTotal\n@ 300"
	if got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	if got := Text(""); got != "" {
		t.Errorf("Text(\"\") = %q, want empty", got)
	}
}

func TestJoinSplitRoundTrip(t *testing.T) {
	lines := Lines([]string{"Header", "10", "", "20", "Row2", "30"})
	back := strings.Split(Join(lines), "\n")
	if !reflect.DeepEqual(back, lines) {
		t.Errorf("round trip = %q, want %q", back, lines)
	}
}

func TestMarked(t *testing.T) {
	got := Marked([]string{"100", "@ 200", "Total", "@ 300"})
	want := []int{1, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Marked() = %v, want %v", got, want)
	}
	if got := Marked([]string{"abc"}); got != nil {
		t.Errorf("Marked() = %v, want nil", got)
	}
}
