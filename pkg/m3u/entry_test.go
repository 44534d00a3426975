package m3u

import "testing"

func TestEntrySetAdd(t *testing.T) {
	s := make(EntrySet)
	e := Entry{Meta: "#EXTINF:-1,A", URL: "http://example.com/a"}

	if !s.Add(e) {
		t.Error("Expected first Add to report a new entry")
	}
	if s.Add(e) {
		t.Error("Expected second Add to report a duplicate")
	}
	if s.Len() != 1 {
		t.Errorf("Expected Len=1, got %d", s.Len())
	}
}

func TestEntrySetUnion(t *testing.T) {
	a := NewEntrySet(
		Entry{Meta: "#EXTINF:-1,A", URL: "http://example.com/a"},
		Entry{Meta: "#EXTINF:-1,B", URL: "http://example.com/b"},
	)
	b := NewEntrySet(
		Entry{Meta: "#EXTINF:-1,B", URL: "http://example.com/b"},
		Entry{Meta: "#EXTINF:-1,C", URL: "http://example.com/c"},
	)

	added := a.Union(b)
	if added != 1 {
		t.Errorf("Expected 1 added entry, got %d", added)
	}
	if a.Len() != 3 {
		t.Errorf("Expected Len=3, got %d", a.Len())
	}

	// union with itself adds nothing
	if added := a.Union(a); added != 0 {
		t.Errorf("Expected self-union to add 0, got %d", added)
	}
}

func TestEntrySetSorted(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    []Entry
	}{
		{
			name: "Case-insensitive order",
			entries: []Entry{
				{Meta: "B-show", URL: "http://example.com/b"},
				{Meta: "a-show", URL: "http://example.com/a"},
			},
			want: []Entry{
				{Meta: "a-show", URL: "http://example.com/a"},
				{Meta: "B-show", URL: "http://example.com/b"},
			},
		},
		{
			name: "Equal keys ordered by meta then URL",
			entries: []Entry{
				{Meta: "news", URL: "http://example.com/2"},
				{Meta: "NEWS", URL: "http://example.com/1"},
				{Meta: "news", URL: "http://example.com/1"},
			},
			want: []Entry{
				{Meta: "NEWS", URL: "http://example.com/1"},
				{Meta: "news", URL: "http://example.com/1"},
				{Meta: "news", URL: "http://example.com/2"},
			},
		},
		{
			name: "Empty set",
			want: []Entry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewEntrySet(tt.entries...).Sorted()
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d entries, got %d", len(tt.want), len(got))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Sorted()[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEntrySetSortedIsDeterministic(t *testing.T) {
	s := NewEntrySet(
		Entry{Meta: "x", URL: "http://example.com/3"},
		Entry{Meta: "X", URL: "http://example.com/2"},
		Entry{Meta: "x", URL: "http://example.com/1"},
		Entry{Meta: "a", URL: "http://example.com/9"},
	)

	first := s.Sorted()
	for i := 0; i < 20; i++ {
		again := s.Sorted()
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("Sorted order changed between calls at %d: %+v vs %+v", j, first[j], again[j])
			}
		}
	}
}
