package musicxml

import "fmt"

// The decode error family. Every error carries the byte offset at which the
// decoder noticed the problem, so diagnostics can point into the document.

// MissingElementError reports a required child element that never appeared.
type MissingElementError struct {
	Element string
	Parent  string
	Offset  int64
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("missing element <%s> in <%s> at byte %d", e.Element, e.Parent, e.Offset)
}

// MissingAttributeError reports a required attribute that never appeared.
type MissingAttributeError struct {
	Attribute string
	Element   string
	Offset    int64
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("missing attribute %q on <%s> at byte %d", e.Attribute, e.Element, e.Offset)
}

// InvalidValueError reports text that could not be interpreted as the
// expected type.
type InvalidValueError struct {
	Type   string
	Value  string
	Offset int64
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s value %q at byte %d", e.Type, e.Value, e.Offset)
}

// UndefinedReferenceError reports an id reference with no matching
// declaration.
type UndefinedReferenceError struct {
	ReferenceType string
	ID            string
	Offset        int64
}

func (e *UndefinedReferenceError) Error() string {
	return fmt.Sprintf("undefined %s reference %q at byte %d", e.ReferenceType, e.ID, e.Offset)
}

// XMLError wraps every other malformation, including non-partwise roots and
// low-level tokenizer failures.
type XMLError struct {
	Msg    string
	Offset int64
}

func (e *XMLError) Error() string {
	return fmt.Sprintf("%s at byte %d", e.Msg, e.Offset)
}
