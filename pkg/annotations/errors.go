package annotations

import "fmt"

// MalformedDocumentError reports a sidecar document that is
// structurally invalid, or one that lacks an element the format
// guarantees. A malformed annotation aborts the whole parse rather
// than being skipped; silent data loss in a measurement tool is worse
// than a hard stop.
type MalformedDocumentError struct {
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("annotations: malformed document: %s", e.Reason)
}

// UnsupportedTypeError reports an annotation whose declared type is
// outside the known set.
type UnsupportedTypeError struct {
	// Type is the type string as it appeared in the document.
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("annotations: unsupported annotation type %q", e.Type)
}
