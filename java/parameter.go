package java

// ArgumentType is the parameter type given to arguments read from a call site.
const ArgumentType = "Expression"

type Parameter struct {
	Type string
	Name string
}

func (p Parameter) String() string {
	if p.Type == "" || p.Type == p.Name {
		return p.Name
	}
	return p.Type + " " + p.Name
}
