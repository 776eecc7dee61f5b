package jvm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// addHeader adds a line to the class header
func (j *jvm) addHeader(line string) {
	j.header.WriteString(line + "\n")
}

// addMethod adds a line to the method section
func (j *jvm) addMethod(line string) {
	j.methods.WriteString(line + "\n")
}

// doubleLiteral renders v so Jasmin reads it back as a double
func doubleLiteral(v float64) string {
	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-3 && abs < 1e15) {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'E', -1, 64), "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	e, _ := strconv.Atoi(exp)
	return fmt.Sprintf("%sE%d", mantissa, e)
}

// ClassName turns a file base name into a valid class name, "Main" when nothing is left.
// A name that would collide with the runtime class gets a trailing underscore.
func ClassName(base string) string {
	var b strings.Builder
	for _, r := range base {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if b.Len() == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "Main"
	}
	name := []rune(b.String())
	name[0] = unicode.ToUpper(name[0])
	if string(name) == RuntimeClass {
		return RuntimeClass + "_"
	}
	return string(name)
}
