package diag

import (
	"errors"

	"minic/pkg/color"
)

// Render formats err for a terminal, highlighting the kind and the position
// when err carries an *Error. Other errors are returned as-is.
func Render(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	msg := color.RedText(capitalize(e.Kind.String())) + ": " + e.Msg
	if e.Pos.IsValid() {
		msg += " at " + color.Position(e.Pos.Line, e.Pos.Column)
	}
	if outer := err.Error(); outer != e.Error() {
		msg += "\n" + color.GrayText(outer)
	}
	return msg
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
