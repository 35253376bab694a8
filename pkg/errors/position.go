package errors

import "github.com/tomaswrobel/scrap-native/pkg/source"

// Position represents a specific location in the source code.
// Line and column are 1-based; byte offsets are 0-based.
type Position struct {
	Line     int
	Column   int
	StartPos int
	EndPos   int // exclusive
	Source   *source.SourceFile
}

// IsZero reports whether the position carries no location.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}
