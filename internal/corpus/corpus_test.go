package corpus

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenizeIsLiteral(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "the cat sat", []string{"the", "cat", "sat"}},
		{"case sensitive", "Cat cat", []string{"Cat", "cat"}},
		{"punctuation kept", "cat. cat", []string{"cat.", "cat"}},
		{"collapses whitespace", "  a \t b  ", []string{"a", "b"}},
		{"empty", "", nil},
		{"only whitespace", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNewDocumentCounts(t *testing.T) {
	doc := NewDocument(3, "to be or not to be")
	if doc.ID != 3 {
		t.Errorf("ID = %d, want 3", doc.ID)
	}
	want := map[string]int{"to": 2, "be": 2, "or": 1, "not": 1}
	if !reflect.DeepEqual(doc.Freq, want) {
		t.Errorf("Freq = %v, want %v", doc.Freq, want)
	}
	if len(doc.Tokens) != 6 {
		t.Errorf("len(Tokens) = %d, want 6", len(doc.Tokens))
	}
}

func TestContainsIsNotSubstring(t *testing.T) {
	doc := NewDocument(0, "cats and dogs")
	if doc.Contains("cat") {
		t.Error(`Contains("cat") = true for "cats and dogs"; membership must be exact, not substring`)
	}
	if !doc.Contains("cats") {
		t.Error(`Contains("cats") = false, want true`)
	}
}

func TestFromTextAssignsSequentialIDs(t *testing.T) {
	c := FromText("the cat sat\nthe dog ran\ncats and dogs\n")
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	for i, doc := range c.Docs {
		if doc.ID != i {
			t.Errorf("Docs[%d].ID = %d, want %d", i, doc.ID, i)
		}
	}
	if got, want := c.IDs(), []int{0, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
}

func TestFromTextEmpty(t *testing.T) {
	if c := FromText(""); c.Len() != 0 {
		t.Errorf("Len() = %d for empty text, want 0", c.Len())
	}
}

func TestFromReaderMatchesFromText(t *testing.T) {
	text := "alpha beta\ngamma\n"
	fromReader, err := FromReader(strings.NewReader(text))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	fromText := FromText(text)
	if !reflect.DeepEqual(fromReader, fromText) {
		t.Errorf("FromReader = %+v, FromText = %+v", fromReader, fromText)
	}
}

func TestFromTextKeepsBlankLines(t *testing.T) {
	c := FromText("one\n\ntwo\n")
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (blank line is an empty document)", c.Len())
	}
	if len(c.Docs[1].Tokens) != 0 {
		t.Errorf("blank line produced tokens %v", c.Docs[1].Tokens)
	}
}
