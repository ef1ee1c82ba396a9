package generator

import "testing"

func TestNormalizeQuote(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello world", "Hello world"},
		{"wrapping quotes", `"Hello world"`, "Hello world"},
		{"curly quotes", "“Hello world”", "Hello world"},
		{"single quotes", "'Hello world'", "Hello world"},
		{"keeps inner quotes", `She said "no" and left`, `She said "no" and left`},
		{"first line only", "Hello world\nAnd a second thought", "Hello world"},
		{"whitespace collapsed", "Hello   world\t again", "Hello world again"},
		{"quote label", "Quote: Hello world", "Hello world"},
		{"output label", "Output - Hello world", "Hello world"},
		{"result label", "resulT: Hello world", "Hello world"},
		{"everything at once", "Quote: \"Hello   world\"\nExtra line", "Hello world"},
		{"empty", "", ""},
		{"only quotes", `"""`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeQuote(tc.in); got != tc.want {
				t.Fatalf("NormalizeQuote(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeQuoteIdempotent(t *testing.T) {
	inputs := []string{
		"Quote: \"Hello   world\"\nExtra line",
		"“Already clean”",
		"Plain sentence with, punctuation.",
	}
	for _, in := range inputs {
		once := NormalizeQuote(in)
		if twice := NormalizeQuote(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestFamilyFor(t *testing.T) {
	cases := []struct {
		model string
		want  string
	}{
		{"gpt-5-chat-latest", "chat"},
		{"gpt-5", "reasoning"},
		{"gpt-5-mini", "reasoning"},
		{"o1-preview", "reasoning"},
		{"o3-mini", "reasoning"},
		{"o4-mini", "reasoning"},
		{"gpt-4o", "standard"},
		{"claude-likeness", "standard"},
	}
	for _, tc := range cases {
		if got := familyFor(tc.model); got.name != tc.want {
			t.Fatalf("familyFor(%q) = %s, want %s", tc.model, got.name, tc.want)
		}
	}
}
