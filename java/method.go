package java

import "strings"

// Contains reports whether offset falls inside the declaration, braces included.
func (d Declaration) Contains(offset int) bool {
	return offset >= d.Start && offset <= d.End
}

// IsCall reports whether d was synthesized from a call site rather than
// read from a declaration: it has no return type, access or modifiers.
func (d Declaration) IsCall() bool {
	return !d.Constructor && d.ReturnType == "" && d.Access == VisibilityPackage && len(d.Modifiers) == 0
}

func (d Declaration) HasModifier(name string) bool {
	for _, m := range d.Modifiers {
		if m == name {
			return true
		}
	}
	return false
}

// Signature renders the declaration the way it would be written in Java,
// without modifiers or body.
func (d Declaration) Signature() string {
	var sb strings.Builder
	if d.ReturnType != "" {
		sb.WriteString(d.ReturnType)
		sb.WriteByte(' ')
	}
	sb.WriteString(d.Name)
	sb.WriteByte('(')
	for i, p := range d.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// AsInherited returns a copy of d marked as inherited from owner.
func (d Declaration) AsInherited(owner string) Declaration {
	d.Owner = owner
	d.Inherited = true
	return d
}
