// Package scaffold writes new documents into a content store.
package scaffold

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/frontmatter"
)

// KeyUID is the metadata key holding a document's stable identifier.
const KeyUID = "uid"

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Request describes the document to create.
type Request struct {
	Section     string
	Slug        string
	Title       string
	Description string
	Order       int
}

// Result reports where a document was written and how it is addressed.
type Result struct {
	Path string
	Href string
	// LegacyHref is the flat address, empty when the names cannot form one.
	LegacyHref string
	UID        string
}

// Scaffolder creates documents below a content root.
type Scaffolder struct {
	root      string
	extension string
	docsRoot  string
	newID     func() string
}

// New returns a Scaffolder writing files with extension below root and
// reporting addresses under docsRoot.
func New(root, extension, docsRoot string) *Scaffolder {
	return &Scaffolder{root: root, extension: extension, docsRoot: docsRoot, newID: uuid.NewString}
}

// Create writes the document described by req. It never replaces an
// existing file.
func (s *Scaffolder) Create(req Request) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}

	dir := filepath.Join(s.root, req.Section)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to create section directory").
			WithContext("path", dir).
			Build()
	}

	uid := s.newID()
	data, err := render(req, uid)
	if err != nil {
		return Result{}, err
	}

	target := filepath.Join(dir, req.Slug+s.extension)
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return Result{}, errors.ValidationError("document already exists").
				WithContext("path", target).
				Build()
		}
		return Result{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to create document").
			WithContext("path", target).
			Build()
	}
	_, werr := f.Write(data)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = os.Remove(target)
		return Result{}, errors.WrapError(werr, errors.CategoryFileSystem, "failed to write document").
			WithContext("path", target).
			Build()
	}

	res := Result{
		Path: target,
		Href: "/" + path.Join(s.docsRoot, req.Section, req.Slug),
		UID:  uid,
	}
	if seg, ok := content.LegacySegment(req.Section, req.Slug); ok {
		res.LegacyHref = "/" + path.Join(s.docsRoot, seg)
	}
	return res, nil
}

func validate(req Request) error {
	for _, f := range []struct{ field, value string }{{"section", req.Section}, {"slug", req.Slug}} {
		if !namePattern.MatchString(f.value) {
			return errors.ValidationError("invalid "+f.field+": use lowercase letters, digits and hyphens").
				WithContext(f.field, f.value).
				Build()
		}
	}
	if strings.TrimSpace(req.Title) == "" {
		return errors.ValidationError("title is required").Build()
	}
	return nil
}

func render(req Request, uid string) ([]byte, error) {
	fields := map[string]any{
		content.KeyTitle: req.Title,
		content.KeyOrder: req.Order,
		KeyUID:           uid,
	}
	if req.Description != "" {
		fields[content.KeyDescription] = req.Description
	}
	lead := req.Description
	if lead == "" {
		lead = "Write the introduction here."
	}
	var body strings.Builder
	body.WriteString("# " + req.Title + "\n\n")
	body.WriteString(lead + "\n\n")
	body.WriteString("## Overview\n\nDescribe the topic.\n\n")
	body.WriteString("## Next steps\n\nLink to related pages.\n")

	doc, err := frontmatter.Compose(fields, []byte(body.String()))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to serialize metadata").Build()
	}
	return doc, nil
}
