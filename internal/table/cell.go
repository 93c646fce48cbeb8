package table

import "strconv"

// Kind identifies the variant held by a Cell.
type Kind int

const (
	KindText Kind = iota
	KindFlag
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindFlag:
		return "flag"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Cell is either a text value or a boolean flag.
type Cell struct {
	kind Kind
	text string
	flag bool
}

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{kind: KindText, text: s}
}

// Flag returns a boolean cell.
func Flag(b bool) Cell {
	return Cell{kind: KindFlag, flag: b}
}

// Kind reports which variant the cell holds.
func (c Cell) Kind() Kind {
	return c.kind
}

// Text returns the text value and whether the cell is a text cell.
func (c Cell) Text() (string, bool) {
	if c.kind != KindText {
		return "", false
	}
	return c.text, true
}

// Flag returns the boolean value and whether the cell is a flag cell.
func (c Cell) Flag() (bool, bool) {
	if c.kind != KindFlag {
		return false, false
	}
	return c.flag, true
}

func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindFlag:
		return strconv.FormatBool(c.flag)
	default:
		return ""
	}
}
