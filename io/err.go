package io

import (
	"github.com/ezrec/marie/translate"
)

var f = translate.From

// ErrInputParse is returned by the console reader for a line that is not
// an unsigned 16-bit decimal.
type ErrInputParse string

func (err ErrInputParse) Error() string {
	return f("input '%v' is not a 16-bit unsigned decimal", string(err))
}
