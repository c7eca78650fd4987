package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"only whitespace", "   \t\n ", []string{}},
		{"simple lowercase", "hello world", []string{"hello", "world"}},
		{"uppercase is lowered", "GOLANG Engineer", []string{"golang", "engineer"}},
		{"punctuation becomes space", "react,node;python!", []string{"react", "node", "python"}},
		{"short tokens dropped", "go is an ok language", []string{"language"}},
		{"three letter tokens kept", "aws gcp sql", []string{"aws", "gcp", "sql"}},
		{"duplicates kept in order", "java python java", []string{"java", "python", "java"}},
		{"underscore is a word character", "snake_case_name", []string{"snake_case_name"}},
		{"hyphen splits", "full-stack developer", []string{"full", "stack", "developer"}},
		{"dots split versions", "node.js v18.2", []string{"node", "v18"}},
		{"digits are kept", "2019 2023", []string{"2019", "2023"}},
		{"only symbols", "!@#$%^&*()", []string{}},
		{"unicode letters", "Développeur München", []string{"développeur", "münchen"}},
		{"newlines and tabs", "senior\tbackend\nengineer", []string{"senior", "backend", "engineer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizerMinLength(t *testing.T) {
	tests := []struct {
		name      string
		minLength int
		input     string
		want      []string
	}{
		{"zero keeps everything", 0, "a go c++", []string{"a", "go", "c"}},
		{"negative treated as zero", -3, "a b", []string{"a", "b"}},
		{"one drops single characters", 1, "a go rust", []string{"go", "rust"}},
		{"four keeps five and up", 4, "java rust golang kotlin", []string{"golang", "kotlin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.minLength).Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeIsDeterministic(t *testing.T) {
	text := "Senior Go engineer with Kubernetes, gRPC and PostgreSQL experience"
	first := Tokenize(text)
	for i := 0; i < 10; i++ {
		if got := Tokenize(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d returned %v, want %v", i, got, first)
		}
	}
}

func TestTermFrequencies(t *testing.T) {
	got := TermFrequencies([]string{"java", "python", "java", "sql"})
	want := map[string]int{"java": 2, "python": 1, "sql": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TermFrequencies() = %v, want %v", got, want)
	}

	if got := TermFrequencies(nil); len(got) != 0 {
		t.Errorf("TermFrequencies(nil) = %v, want empty", got)
	}
}

func TestUniqueTerms(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil input", nil, []string{}},
		{"no duplicates", []string{"aaa", "bbb"}, []string{"aaa", "bbb"}},
		{"duplicates keep first position", []string{"bbb", "aaa", "bbb", "ccc", "aaa"}, []string{"bbb", "aaa", "ccc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UniqueTerms(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("UniqueTerms(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
