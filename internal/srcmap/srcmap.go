// Package srcmap translates tree-sitter byte offsets into character offsets
// and character offsets into line/column positions.
//
// Extraction records carry 0-based character offsets into the original source
// text; tree-sitter reports byte offsets. An Index is built once per file and
// performs both translations without re-reading the file.
package srcmap

import "unicode/utf8"

// Index maps byte offsets to character offsets for one source file.
type Index struct {
	ascii      bool
	byteToChar []int // byteToChar[b] = number of runes in source[:b]; len = len(source)+1
	lineStarts []int // character offset of the first character of each line
}

// NewIndex builds an index for the given source bytes.
func NewIndex(source []byte) *Index {
	idx := &Index{ascii: true}

	for _, b := range source {
		if b >= utf8.RuneSelf {
			idx.ascii = false
			break
		}
	}

	if !idx.ascii {
		idx.byteToChar = make([]int, len(source)+1)
		chars := 0
		for i := 0; i < len(source); {
			_, size := utf8.DecodeRune(source[i:])
			for j := 0; j < size; j++ {
				idx.byteToChar[i+j] = chars
			}
			i += size
			chars++
		}
		idx.byteToChar[len(source)] = chars
	}

	idx.lineStarts = []int{0}
	char := 0
	for i := 0; i < len(source); {
		r, size := utf8.DecodeRune(source[i:])
		i += size
		char++
		if r == '\n' {
			idx.lineStarts = append(idx.lineStarts, char)
		}
	}

	return idx
}

// CharOffset converts a byte offset into a 0-based character offset.
func (x *Index) CharOffset(byteOffset uint32) int {
	if x.ascii {
		return int(byteOffset)
	}
	off := int(byteOffset)
	if off < 0 {
		return 0
	}
	if off >= len(x.byteToChar) {
		return x.byteToChar[len(x.byteToChar)-1]
	}
	return x.byteToChar[off]
}

// LineCol converts a 0-based character offset into a 1-based line and column.
func (x *Index) LineCol(charOffset int) (line, col int) {
	lo, hi := 0, len(x.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if x.lineStarts[mid] <= charOffset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, charOffset - x.lineStarts[lo] + 1
}
