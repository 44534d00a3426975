package m3u

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWritePlaylist(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "merged.m3u")

	set := NewEntrySet(
		Entry{Meta: "#EXTINF:-1,B-show", URL: "http://example.com/b"},
		Entry{Meta: "#EXTINF:-1,a-show", URL: "https://example.com/a"},
	)

	if err := WritePlaylist(path, set); err != nil {
		t.Fatalf("WritePlaylist failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	want := "#EXTM3U\n" +
		"#EXTINF:-1,a-show\nhttps://example.com/a\n" +
		"#EXTINF:-1,B-show\nhttp://example.com/b\n"
	if string(got) != want {
		t.Errorf("Unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestWritePlaylistOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "merged.m3u")

	os.WriteFile(path, bytes.Repeat([]byte("stale content\n"), 100), 0o644)

	if err := WritePlaylist(path, make(EntrySet)); err != nil {
		t.Fatalf("WritePlaylist failed: %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "#EXTM3U\n" {
		t.Errorf("Expected only the header, got %q", got)
	}
}

func TestWritePlaylistIsIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	first := filepath.Join(tmpDir, "first.m3u")
	second := filepath.Join(tmpDir, "second.m3u")

	set := NewEntrySet(
		Entry{Meta: "#EXTINF:-1,Same", URL: "http://example.com/2"},
		Entry{Meta: "#EXTINF:-1,same", URL: "http://example.com/1"},
		Entry{Meta: "#EXTINF:-1,Same", URL: "http://example.com/1"},
		Entry{Meta: "#EXTINF:-1,Other", URL: "http://example.com/o"},
	)

	if err := WritePlaylist(first, set); err != nil {
		t.Fatalf("WritePlaylist failed: %v", err)
	}
	if err := WritePlaylist(second, set); err != nil {
		t.Fatalf("WritePlaylist failed: %v", err)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if !bytes.Equal(a, b) {
		t.Errorf("Outputs differ:\n%s\nvs\n%s", a, b)
	}
}

func TestWritePlaylistBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "merged.m3u")

	if err := WritePlaylist(path, make(EntrySet)); err == nil {
		t.Error("Expected error writing into a nonexistent directory")
	}
}

func TestVerifyPlaylist(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name      string
		content   string
		wantLines int
		wantHead  []string
	}{
		{
			name:      "Header only",
			content:   "#EXTM3U\n",
			wantLines: 1,
			wantHead:  []string{"#EXTM3U"},
		},
		{
			name:      "Head capped at four lines",
			content:   "#EXTM3U\n#EXTINF:-1,A\nhttp://a\n#EXTINF:-1,B\nhttp://b\n",
			wantLines: 5,
			wantHead:  []string{"#EXTM3U", "#EXTINF:-1,A", "http://a", "#EXTINF:-1,B"},
		},
		{
			name:      "Empty file",
			content:   "",
			wantLines: 0,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, "verify"+string(rune('a'+i))+".m3u")
			os.WriteFile(path, []byte(tt.content), 0o644)

			v, err := VerifyPlaylist(path)
			if err != nil {
				t.Fatalf("VerifyPlaylist failed: %v", err)
			}
			if v.LineCount != tt.wantLines {
				t.Errorf("Expected LineCount=%d, got %d", tt.wantLines, v.LineCount)
			}
			if len(v.Head) != len(tt.wantHead) {
				t.Fatalf("Expected %d head lines, got %v", len(tt.wantHead), v.Head)
			}
			for j := range tt.wantHead {
				if v.Head[j] != tt.wantHead[j] {
					t.Errorf("Head[%d] = %q, want %q", j, v.Head[j], tt.wantHead[j])
				}
			}
		})
	}
}

func TestVerifyPlaylistMissing(t *testing.T) {
	if _, err := VerifyPlaylist(filepath.Join(t.TempDir(), "nope.m3u")); err == nil {
		t.Error("Expected error for missing file")
	}
}
