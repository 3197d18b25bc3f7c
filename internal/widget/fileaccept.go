package widget

import (
	"mime"
	"strings"
)

// MIMEXML is the declared type of an XML document.
const MIMEXML = "text/xml"

// RejectNotice is the user-facing notice for a file of the wrong type.
const RejectNotice = "Please select a valid .xml file."

// Candidate is a file offered by a drop or picker selection. Handle is an
// opaque reference the acceptor passes through untouched.
type Candidate struct {
	Name     string
	MimeType string
	Handle   string
}

// AcceptedFile is a candidate that passed validation.
type AcceptedFile struct {
	Name     string
	MimeType string
	Handle   string
}

// Rejection describes a refused candidate.
type Rejection struct {
	Candidate Candidate
	Notice    string
}

// Picker is the native file picker behind an acceptor.
type Picker interface {
	// Reset forgets the last picked file so the same name can be picked again.
	Reset()
}

// FileAcceptorProps configures a FileAcceptor.
type FileAcceptorProps struct {
	// Accept lists accepted MIME types; empty means MIMEXML only.
	Accept   []string
	OnSelect func(*AcceptedFile)
	OnReject func(Rejection)
	Picker   Picker
}

// FileAcceptor accepts a single file by drop or picker.
type FileAcceptor struct {
	accept   map[string]struct{}
	onSelect func(*AcceptedFile)
	onReject func(Rejection)
	picker   Picker

	file     *AcceptedFile
	dragOver bool
}

// NewFileAcceptor builds an empty acceptor.
func NewFileAcceptor(p FileAcceptorProps) *FileAcceptor {
	types := p.Accept
	if len(types) == 0 {
		types = []string{MIMEXML}
	}
	accept := make(map[string]struct{}, len(types))
	for _, t := range types {
		if norm := normalizeMediaType(t); norm != "" {
			accept[norm] = struct{}{}
		}
	}
	return &FileAcceptor{
		accept:   accept,
		onSelect: p.OnSelect,
		onReject: p.OnReject,
		picker:   p.Picker,
	}
}

// File returns the accepted file, or nil.
func (a *FileAcceptor) File() *AcceptedFile { return a.file }

// DragOver reports whether a drag is hovering the drop region.
func (a *FileAcceptor) DragOver() bool { return a.dragOver }

// DragEnter marks a drag hovering the drop region.
func (a *FileAcceptor) DragEnter() { a.dragOver = true }

// DragLeave clears the hover mark.
func (a *FileAcceptor) DragLeave() { a.dragOver = false }

// Accepts reports whether mimeType is in the accepted set.
func (a *FileAcceptor) Accepts(mimeType string) bool {
	_, ok := a.accept[normalizeMediaType(mimeType)]
	return ok
}

// Submit validates the first candidate. An empty submission is ignored. It
// reports whether a file was accepted.
func (a *FileAcceptor) Submit(candidates ...Candidate) bool {
	a.dragOver = false
	if len(candidates) == 0 {
		return false
	}
	c := candidates[0]
	if !a.Accepts(c.MimeType) {
		if a.onReject != nil {
			a.onReject(Rejection{Candidate: c, Notice: RejectNotice})
		}
		return false
	}
	a.file = &AcceptedFile{Name: c.Name, MimeType: c.MimeType, Handle: c.Handle}
	if a.onSelect != nil {
		a.onSelect(a.file)
	}
	return true
}

// Clear drops the accepted file, notifies the parent with nil, and resets
// the picker.
func (a *FileAcceptor) Clear() {
	a.file = nil
	a.dragOver = false
	if a.onSelect != nil {
		a.onSelect(nil)
	}
	if a.picker != nil {
		a.picker.Reset()
	}
}

func normalizeMediaType(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(value); err == nil {
		return mt
	}
	return strings.ToLower(value)
}
