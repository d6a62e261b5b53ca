package zygo

import "strings"

// PrintState threads display options through SexpString() and Show().
// A nil *PrintState prints in read-back form with no indentation.
type PrintState struct {
	Indent int

	// Display prints strings without quotes, the way print does.
	Display bool
}

func NewPrintState() *PrintState {
	return &PrintState{}
}

func NewDisplayPrintState() *PrintState {
	return &PrintState{Display: true}
}

func (ps *PrintState) IsDisplay() bool {
	return ps != nil && ps.Display
}

func (ps *PrintState) GetIndent() int {
	if ps == nil {
		return 0
	}
	return ps.Indent
}

func (ps *PrintState) AddIndent(addme int) *PrintState {
	if ps == nil {
		return &PrintState{Indent: addme}
	}
	return &PrintState{Indent: ps.Indent + addme, Display: ps.Display}
}

// DisplayString joins the display forms of args with single spaces.
func DisplayString(args Params) string {
	ps := NewDisplayPrintState()
	parts := make([]string, 0, args.Len())
	for i := 0; i < args.Len(); i++ {
		parts = append(parts, args.At(i).SexpString(ps))
	}
	return strings.Join(parts, " ")
}
