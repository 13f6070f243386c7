// Package schema checks a catalog document against its CUE definition
// before it is decoded.
package schema

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"cuelang.org/go/encoding/json"
)

// documentCUE describes the on-disk document. #Record is a definition and
// therefore closed: unknown fields are rejected.
const documentCUE = `
#Record: {
	BookID:     int & >0
	Title:      string
	Author:     string
	Genre:      string
	Year:       int | =~"^\\s*[-+]?[0-9]+\\s*$"
	BorrowedBy: [...string]
}

#Document: [...#Record]
`

// Error is a schema violation, with the document position when CUE
// reports one.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Line returns the 1-based line of the violation, or 0 when unknown.
func (e *Error) Line() int {
	if e.Pos.IsValid() {
		return e.Pos.Line()
	}
	return 0
}

// Validate checks that data is a JSON array of well-formed records.
// filename is only used in error positions.
func Validate(filename string, data []byte) error {
	ctx := cuecontext.New()

	def := ctx.CompileString(documentCUE, cue.Filename("document.cue")).
		LookupPath(cue.ParsePath("#Document"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("compile document schema: %w", err)
	}

	expr, err := json.Extract(filename, data)
	if err != nil {
		return convertError(err, filename)
	}
	doc := ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return convertError(err, filename)
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return convertError(err, filename)
	}
	return nil
}

// convertError keeps the first CUE error, preferring a position inside the
// document over one inside the schema.
func convertError(err error, filename string) *Error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Message: err.Error()}
	}
	first := errs[0]
	out := &Error{Message: first.Error()}
	for _, pos := range cueerrors.Positions(first) {
		if pos.Filename() == filename {
			out.Pos = pos
			break
		}
	}
	return out
}
