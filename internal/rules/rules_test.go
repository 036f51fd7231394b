package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/batchren/internal/instruction"
)

func TestCaseRules(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"lower", LowerCase, "MiXeD Case", "mixed case"},
		{"upper", UpperCase, "MiXeD Case", "MIXED CASE"},
		{"title", TitleCase, "a title has multiple words", "A Title Has Multiple Words"},
		{"title lowers rest", TitleCase, "hELLO wORLD", "Hello World"},
		{"title keeps spacing", TitleCase, "  two  spaces", "  Two  Spaces"},
		{"title unicode", TitleCase, "élan vital", "Élan Vital"},
		{"sentence", SentenceCase, "hELLO wORLD again", "Hello world again"},
		{"sentence empty", SentenceCase, "", ""},
		{"sanitize", Sanitize, "  hello!!world -- (2020)  ", "hello world 2020"},
		{"sanitize keeps unicode letters", Sanitize, "café_crème", "café crème"},
		{"sanitize nothing left", Sanitize, "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestUpperThenLowerEqualsLower(t *testing.T) {
	for _, in := range []string{"", "abc", "ÀÉÎ õü", "Mixed 123 Case_", "ǅ"} {
		assert.Equal(t, LowerCase(in), LowerCase(UpperCase(in)), in)
	}
}

func TestJoinSplitRules(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"join camel", JoinCamel, "Hello big WORLD", "helloBigWorld"},
		{"join camel single", JoinCamel, "Word", "word"},
		{"join snake", JoinSnake, "hello  big world", "hello_big_world"},
		{"join kebab", JoinKebab, " hello big world ", "hello-big-world"},
		{"split camel", SplitCamel, "helloBigWorld", "hello Big World"},
		{"split camel digits", SplitCamel, "track2Remix", "track2 Remix"},
		{"split camel acronym", SplitCamel, "HTTPServer", "HTTP Server"},
		{"split camel leading upper", SplitCamel, "HelloWorld", "Hello World"},
		{"split snake", SplitSnake, "a_b__c", "a b  c"},
		{"split kebab", SplitKebab, "a-b-c", "a b c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name string
		s    string
		text string
		at   instruction.Position
		want string
	}{
		{"start", "world", "hello ", instruction.At(0), "hello world"},
		{"middle", "ac", "b", instruction.At(1), "abc"},
		{"end", "abc", "!", instruction.End, "abc!"},
		{"past end appends", "abc", "!", instruction.At(99), "abc!"},
		{"at length appends", "abc", "!", instruction.At(3), "abc!"},
		{"rune offsets", "żółw", "-", instruction.At(2), "żó-łw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Insert(tt.s, tt.text, tt.at))
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name string
		s    string
		from int
		to   instruction.Position
		want string
	}{
		{"clamped to length", "aa bb cc", 0, instruction.At(42), ""},
		{"to end", "aa bb cc", 2, instruction.End, "aa"},
		{"range", "aa bb cc", 2, instruction.At(5), "aa cc"},
		{"inverted", "abc", 2, instruction.At(1), "abc"},
		{"from past end", "abc", 10, instruction.End, "abc"},
		{"rune offsets", "żółw", 1, instruction.At(3), "żw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Delete(tt.s, tt.from, tt.to))
		})
	}
}

func TestReplace(t *testing.T) {
	assert.Equal(t, "a_b_c", Replace("a b c", " ", "_"))
	assert.Equal(t, "abc", Replace("abc", "", "x"))
	assert.Equal(t, "xyz xyz", Replace("foo foo", "foo", "xyz"))
}

func TestApply(t *testing.T) {
	out, ok := Apply(instruction.Replace{
		Pattern: instruction.SepArg(instruction.SepDash),
		With:    instruction.SepArg(instruction.SepSpace),
	}, "a-b")
	assert.True(t, ok)
	assert.Equal(t, "a b", out)

	out, ok = Apply(instruction.UpperCase{}, "abc")
	assert.True(t, ok)
	assert.Equal(t, "ABC", out)

	_, ok = Apply(instruction.ExtensionRemove{}, "abc")
	assert.False(t, ok)
	_, ok = Apply(instruction.PatternMatch{Match: "{X}", Replace: "{1}"}, "abc")
	assert.False(t, ok)
}
