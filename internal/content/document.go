package content

// Document is a file resolved for rendering.
type Document struct {
	Slug        string
	Path        []string
	Title       string
	Description string
	Order       int
	Params      map[string]any
	Body        string
	Fingerprint string
	// Legacy is set when the document was reached through the flat scheme.
	Legacy bool
}

// NewDocument projects f into a Document.
func NewDocument(f *File, legacy bool) *Document {
	return &Document{
		Slug:        f.Slug,
		Path:        f.FullPath,
		Title:       f.Title,
		Description: f.Description,
		Order:       f.Order,
		Params:      f.Params,
		Body:        f.Body,
		Fingerprint: f.Fingerprint,
		Legacy:      legacy,
	}
}
