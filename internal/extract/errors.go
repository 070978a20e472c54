package extract

import "fmt"

// LimitationError is the fatal extraction error tier: the tree uses a shape
// the extractor refuses to guess around (for example a multi-declarator
// export statement containing a function initializer). It aborts extraction
// for the file. Offset is a 0-based character offset into the source text;
// callers translate it to a line/column before showing it to a user.
type LimitationError struct {
	Message string
	Offset  int
}

// Error implements the error interface.
func (e *LimitationError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.Message, e.Offset)
}
