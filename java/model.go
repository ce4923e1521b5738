package java

// Visibility is the access modifier written on a declaration.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	// VisibilityPackage means no access modifier was written.
	VisibilityPackage Visibility = ""
)

// SourceUnit is the immutable text of one Java file and the name of the
// first type it declares.
type SourceUnit struct {
	Path        string
	Text        string
	PrimaryType string
}

// NewSourceUnit builds a SourceUnit, deriving the primary type from the
// text or, failing that, from the file name.
func NewSourceUnit(path, text string) SourceUnit {
	return SourceUnit{
		Path:        path,
		Text:        text,
		PrimaryType: PrimaryTypeName(text, path),
	}
}

// Declaration is a method or constructor signature found in source text.
//
// Start and End are byte offsets: Start is the first non-blank byte of the
// declaration (its first annotation, if any), End is the offset of the
// closing brace of its body.
type Declaration struct {
	Name        string
	ReturnType  string
	Access      Visibility
	Modifiers   []string
	Throws      string
	Parameters  []Parameter
	Start       int
	End         int
	Line        int
	Owner       string
	Constructor bool
	Inherited   bool
}

// InvocationSite is a call expression found around an offset. It carries
// the Declaration shape so it can be explained like one.
type InvocationSite struct {
	Declaration

	// OwnerToken is the raw qualifier text before the method name, if any.
	OwnerToken string
	OpenParen  int
	CloseParen int
}
