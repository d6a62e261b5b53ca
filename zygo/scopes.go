package zygo

import (
	"fmt"
	"sort"
	"strings"
)

type BindingKind int

const (
	// BindingInvalid is only ever returned by a lookup that found nothing.
	BindingInvalid BindingKind = iota
	BindingUnbound
	BindingLiteral
	BindingBuiltin
	BindingMacro
)

// Binding is the state of a name in a scope. Val is nil for
// BindingInvalid and BindingUnbound, a *SexpBuiltin for BindingBuiltin
// and a *SexpFunction for BindingMacro.
type Binding struct {
	Kind BindingKind
	Val  Sexp
}

var (
	InvalidBinding = Binding{Kind: BindingInvalid}
	UnboundBinding = Binding{Kind: BindingUnbound}
)

func LiteralBinding(v Sexp) Binding {
	return Binding{Kind: BindingLiteral, Val: v}
}

func BuiltinBinding(b *SexpBuiltin) Binding {
	return Binding{Kind: BindingBuiltin, Val: b}
}

func MacroBinding(m *SexpFunction) Binding {
	return Binding{Kind: BindingMacro, Val: m}
}

func (b Binding) String() string {
	switch b.Kind {
	case BindingInvalid:
		return "<invalid>"
	case BindingUnbound:
		return "<unbound>"
	}
	return b.Val.SexpString(nil)
}

// Scopes map symbol numbers to bindings. Every scope but the global one
// has exactly one parent; children are created for let, for each loop
// iteration and for each function or macro invocation, and are never
// written to after construction. Only the global scope accumulates
// definitions.
type Scope struct {
	Map      map[int]Binding
	Parent   *Scope
	Name     string
	IsGlobal bool
}

func NewGlobalScope() *Scope {
	return &Scope{
		Map:      make(map[int]Binding),
		Name:     "global",
		IsGlobal: true,
	}
}

// NewChild returns a scope whose parent is s. The child takes ownership
// of bindings, which may be nil.
func (s *Scope) NewChild(name string, bindings map[int]Binding) *Scope {
	if bindings == nil {
		bindings = make(map[int]Binding)
	}
	return &Scope{
		Map:    bindings,
		Parent: s,
		Name:   name,
	}
}

// Lookup walks from s toward the root and returns the first binding of
// sym, or InvalidBinding.
func (s *Scope) Lookup(sym *SexpSymbol) Binding {
	for sc := s; sc != nil; sc = sc.Parent {
		if b, ok := sc.Map[sym.number]; ok {
			return b
		}
	}
	return InvalidBinding
}

func (s *Scope) Root() *Scope {
	for s.Parent != nil {
		s = s.Parent
	}
	return s
}

// DefineGlobal declares or assigns sym in the root scope, whatever the
// depth of s.
func (s *Scope) DefineGlobal(sym *SexpSymbol, b Binding) {
	s.Root().Map[sym.number] = b
}

func (s *Scope) IsDeclared(sym *SexpSymbol) bool {
	return s.Lookup(sym).Kind != BindingInvalid
}

func (s *Scope) IsUnbound(sym *SexpSymbol) bool {
	return s.Lookup(sym).Kind == BindingUnbound
}

func (s *Scope) Depth() int {
	d := 0
	for sc := s.Parent; sc != nil; sc = sc.Parent {
		d++
	}
	return d
}

// Show lists the local bindings of s sorted by name.
func (s *Scope) Show(env *Zlisp, ps *PrintState, label string) string {
	rep := strings.Repeat(" ", ps.GetIndent())
	str := fmt.Sprintf("%s%s scope %s (depth %d)\n", rep, label, s.Name, s.Depth())

	type row struct {
		name string
		b    Binding
	}
	rows := make([]row, 0, len(s.Map))
	for num, b := range s.Map {
		name, ok := env.SymbolName(num)
		if !ok {
			name = fmt.Sprintf("#<symbol %d>", num)
		}
		rows = append(rows, row{name, b})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })
	for _, r := range rows {
		str += fmt.Sprintf("%s    %s -> %s\n", rep, r.name, r.b)
	}
	return str
}
