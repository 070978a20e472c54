package srcmap

import (
	"errors"
	"testing"
)

func TestCharOffsetASCII(t *testing.T) {
	idx := NewIndex([]byte("const x = 1;\n"))

	for _, off := range []uint32{0, 5, 12, 13} {
		if got := idx.CharOffset(off); got != int(off) {
			t.Errorf("CharOffset(%d) = %d, want identity", off, got)
		}
	}
}

func TestCharOffsetMultibyte(t *testing.T) {
	// "héllo" encodes é as two bytes; characters after it shift by one.
	source := []byte("it('héllo', fn);")
	idx := NewIndex(source)

	tests := []struct {
		byteOff uint32
		want    int
	}{
		{0, 0},
		{4, 4}, // h
		{5, 5}, // first byte of é
		{6, 5}, // continuation byte of é
		{7, 6}, // l, one character past é
		{uint32(len(source)), len(source) - 1}, // é costs one extra byte
	}
	for _, tc := range tests {
		if got := idx.CharOffset(tc.byteOff); got != tc.want {
			t.Errorf("CharOffset(%d) = %d, want %d", tc.byteOff, got, tc.want)
		}
	}
}

func TestCharOffsetEmoji(t *testing.T) {
	// A four-byte rune counts as a single character; x sits at byte 10 but
	// character 7.
	source := []byte("f('\U0001F600');x")
	idx := NewIndex(source)

	xByte := uint32(len(source) - 1)
	if got := idx.CharOffset(xByte); got != 7 {
		t.Errorf("CharOffset(%d) = %d, want 7", xByte, got)
	}
}

func TestCharOffsetOutOfRange(t *testing.T) {
	idx := NewIndex([]byte("é"))

	if got := idx.CharOffset(100); got != 1 {
		t.Errorf("CharOffset past end = %d, want 1", got)
	}
}

func TestLineCol(t *testing.T) {
	idx := NewIndex([]byte("first\nsecond\n\nfourth"))

	tests := []struct {
		off  int
		line int
		col  int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{5, 1, 6},  // the newline belongs to line 1
		{6, 2, 1},  // s of second
		{13, 3, 1}, // the empty line
		{14, 4, 1},
		{19, 4, 6},
	}
	for _, tc := range tests {
		line, col := idx.LineCol(tc.off)
		if line != tc.line || col != tc.col {
			t.Errorf("LineCol(%d) = %d:%d, want %d:%d", tc.off, line, col, tc.line, tc.col)
		}
	}
}

func TestLineColMultibyte(t *testing.T) {
	// Columns count characters, not bytes.
	idx := NewIndex([]byte("héllo\nwörld"))

	line, col := idx.LineCol(6) // w, character offset
	if line != 2 || col != 1 {
		t.Errorf("LineCol(6) = %d:%d, want 2:1", line, col)
	}
	line, col = idx.LineCol(8) // r, past ö
	if line != 2 || col != 3 {
		t.Errorf("LineCol(8) = %d:%d, want 2:3", line, col)
	}
}

func TestCacheReusesEntry(t *testing.T) {
	c := NewCache()

	loads := 0
	load := func() ([]byte, error) {
		loads++
		return []byte("abc"), nil
	}

	first, err := c.Get("a.js", load)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	second, err := c.Get("a.js", load)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if loads != 1 {
		t.Errorf("load called %d times, want 1", loads)
	}
	if first != second {
		t.Errorf("expected the cached index to be returned")
	}
}

func TestCacheEvictsOnNewPath(t *testing.T) {
	c := NewCache()

	load := func() ([]byte, error) { return []byte("x"), nil }

	a, _ := c.Get("a.js", load)
	if _, err := c.Get("b.js", load); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	loads := 0
	reloaded, err := c.Get("a.js", func() ([]byte, error) {
		loads++
		return []byte("x"), nil
	})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loads != 1 {
		t.Errorf("expected a reload after eviction")
	}
	if reloaded == a {
		t.Errorf("expected a fresh index after eviction")
	}
}

func TestCacheLoadError(t *testing.T) {
	c := NewCache()

	wantErr := errors.New("boom")
	if _, err := c.Get("a.js", func() ([]byte, error) { return nil, wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("expected load error, got %v", err)
	}

	// A failed load must not poison the cache.
	loads := 0
	if _, err := c.Get("a.js", func() ([]byte, error) {
		loads++
		return []byte("ok"), nil
	}); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loads != 1 {
		t.Errorf("expected a real load after the failure")
	}
}

func TestCachePut(t *testing.T) {
	c := NewCache()
	idx := NewIndex([]byte("abc"))
	c.Put("a.js", idx)

	got, err := c.Get("a.js", func() ([]byte, error) {
		t.Fatalf("load must not be called after Put")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != idx {
		t.Errorf("expected the stored index")
	}
}
