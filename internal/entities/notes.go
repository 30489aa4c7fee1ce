package entities

// Highlight is a single extracted passage from an export artifact.
type Highlight struct {
	// Text is the highlighted passage with styling artifacts normalized away.
	Text string
	// Section is the section heading the passage appeared under, if any.
	Section string
	// Annotation is the trailing sub-bullet commentary attached to the
	// passage in the export. It stays part of the highlight, it is never
	// promoted to an entity of its own.
	Annotation string
}

// NoteDocument is the canonical output unit: one document per successfully
// converted export artifact, highlights in source order.
type NoteDocument struct {
	Title    string
	Source   string // site or author line from the export header
	Citation string
	// Created is the creation timestamp embedded in the export
	// (format 2006-01-02_15-04-05), not the file's own mtime. Kept verbatim
	// so re-rendering the same artifact is byte-identical.
	Created    string
	Tags       []string
	Highlights []Highlight
}
