// Package updatexml parses Qt installer Updates.xml repository metadata
// into the typed model in package domain, and serializes it back. The
// document is untrusted network content: doctype declarations and other XML
// directives are rejected outright, external entities are never resolved,
// and input size and nesting are capped.
package updatexml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/qtkit/repometa/domain"
)

// Parse parses one Updates.xml document into an immutable PackageIndex.
// It fails with a MetaError (MALFORMED_XML, UNSAFE_DOCUMENT, MISSING_NAME
// or DUPLICATE_NAME) and never returns a partial index.
func Parse(data []byte, opts ...Option) (*domain.PackageIndex, error) {
	return ParseReader(bytes.NewReader(data), opts...)
}

// ParseReader is Parse over a stream. The document is consumed in a single
// pass; at most MaxDocumentSize bytes are read.
func ParseReader(r io.Reader, opts ...Option) (*domain.PackageIndex, error) {
	o := resolveOptions(opts)
	p := newParser(r, o)

	doc, err := p.parseDocument()
	if err != nil {
		return nil, err
	}

	index, err := domain.NewPackageIndex(doc)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("application", doc.ApplicationName).
		Int("packages", index.Len()).
		Msg("parsed Updates.xml document")
	return index, nil
}

type parser struct {
	dec   *xml.Decoder
	lr    *io.LimitedReader
	opts  options
	depth int
}

func newParser(r io.Reader, o options) *parser {
	// N is one past the cap so an exactly-at-limit document still parses
	lr := &io.LimitedReader{R: r, N: o.maxDocumentSize + 1}
	dec := xml.NewDecoder(lr)
	dec.Strict = true
	// No Entity map and no CharsetReader: custom entity references fail as
	// syntax errors and nothing is ever fetched to resolve them.
	return &parser{dec: dec, lr: lr, opts: o}
}

// next returns the next token, rejecting unsafe constructs and tracking
// element depth. io.EOF is passed through for the caller to interpret.
func (p *parser) next() (xml.Token, error) {
	tok, err := p.dec.Token()
	if err != nil {
		if p.lr.N <= 0 {
			// Also reached on a clean EOF: a root element that closes within
			// budget may still belong to an over-limit document when the cut
			// lands in trailing whitespace or comments.
			return nil, domain.NewMetaError(domain.ErrUnsafeDocument,
				fmt.Sprintf("document exceeds size limit of %d bytes", p.opts.maxDocumentSize), "")
		}
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, domain.NewMetaErrorWithCause(domain.ErrMalformedXML, "document is not well-formed XML", "", err)
	}
	switch tok.(type) {
	case xml.Directive:
		return nil, domain.NewMetaError(domain.ErrUnsafeDocument,
			"document contains an XML directive (doctype declarations are rejected)", "")
	case xml.StartElement:
		p.depth++
		if p.depth > p.opts.maxDepth {
			return nil, domain.NewMetaError(domain.ErrUnsafeDocument,
				fmt.Sprintf("element nesting exceeds depth limit of %d", p.opts.maxDepth), "")
		}
	case xml.EndElement:
		p.depth--
	}
	return tok, nil
}

func (p *parser) parseDocument() (*domain.Updates, error) {
	doc := &domain.Updates{}
	seenRoot := false
	for {
		tok, err := p.next()
		if err == io.EOF {
			if !seenRoot {
				return nil, domain.NewMetaError(domain.ErrMalformedXML, "document has no root element", "")
			}
			return doc, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if seenRoot {
				return nil, domain.NewMetaError(domain.ErrMalformedXML,
					fmt.Sprintf("unexpected second root element <%s>", t.Name.Local), "")
			}
			seenRoot = true
			if err := p.parseRoot(doc); err != nil {
				return nil, err
			}
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, domain.NewMetaError(domain.ErrMalformedXML, "unexpected text outside the root element", "")
			}
		}
		// ProcInst and comments outside the root are fine
	}
}

// parseRoot consumes the children of the root element. The root's own tag
// name is not checked; real-world repositories always use <Updates> but the
// format is loose everywhere else, so nothing is gained by insisting.
func (p *parser) parseRoot(doc *domain.Updates) error {
	for {
		tok, err := p.next()
		if err == io.EOF {
			return domain.NewMetaError(domain.ErrMalformedXML, "unexpected end of document inside root element", "")
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			return nil
		case xml.StartElement:
			switch t.Name.Local {
			case "ApplicationName":
				if doc.ApplicationName, err = p.readText(); err != nil {
					return err
				}
			case "ApplicationVersion":
				if doc.ApplicationVersion, err = p.readText(); err != nil {
					return err
				}
			case "PackageUpdate":
				pkg, err := p.parsePackageUpdate()
				if err != nil {
					return err
				}
				doc.PackageUpdates = append(doc.PackageUpdates, pkg)
			default:
				if err := p.skipElement(); err != nil {
					return err
				}
			}
		}
	}
}

// parsePackageUpdate consumes one <PackageUpdate> element. Absent optional
// fields keep their zero values; unknown child elements are skipped.
func (p *parser) parsePackageUpdate() (*domain.PackageUpdate, error) {
	pkg := &domain.PackageUpdate{}
	for {
		tok, err := p.next()
		if err == io.EOF {
			return nil, domain.NewMetaError(domain.ErrMalformedXML, "unexpected end of document inside package entry", "")
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if err := domain.ValidatePackageUpdate(pkg); err != nil {
				return nil, err
			}
			return pkg, nil
		case xml.StartElement:
			var text string
			switch t.Name.Local {
			case "Name", "DisplayName", "Description", "Version", "ReleaseDate",
				"Dependencies", "AutoDependOn", "DownloadableArchives",
				"Virtual", "Default", "SHA1":
				if text, err = p.readText(); err != nil {
					return nil, err
				}
			case "UpdateFile":
				pkg.UpdateFiles = append(pkg.UpdateFiles, parseUpdateFile(t))
				if err := p.skipElement(); err != nil {
					return nil, err
				}
				continue
			default:
				if err := p.skipElement(); err != nil {
					return nil, err
				}
				continue
			}
			switch t.Name.Local {
			case "Name":
				pkg.Name = text
			case "DisplayName":
				pkg.DisplayName = text
			case "Description":
				pkg.Description = text
			case "Version":
				pkg.Version = text // verbatim, no coercion
			case "ReleaseDate":
				pkg.ReleaseDate = text
			case "Dependencies":
				pkg.Dependencies = splitNameList(text)
			case "AutoDependOn":
				pkg.AutoDependOn = splitNameList(text)
			case "DownloadableArchives":
				pkg.DownloadableArchives = splitNameList(text)
			case "Virtual":
				pkg.Virtual = text == "true"
			case "Default":
				pkg.Default = text == "true"
			case "SHA1":
				pkg.SHA1 = text
			}
		}
	}
}

// readText consumes the current element and returns its trimmed character
// data. Nested markup inside a text field is skipped, not an error.
func (p *parser) readText() (string, error) {
	var sb strings.Builder
	for {
		tok, err := p.next()
		if err == io.EOF {
			return "", domain.NewMetaError(domain.ErrMalformedXML, "unexpected end of document inside element", "")
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if err := p.skipElement(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return strings.TrimSpace(sb.String()), nil
		}
	}
}

// skipElement consumes the current element and its whole subtree. Unlike
// xml.Decoder.Skip this keeps the depth guard and directive rejection
// active inside skipped content.
func (p *parser) skipElement() error {
	open := 1
	for open > 0 {
		tok, err := p.next()
		if err == io.EOF {
			return domain.NewMetaError(domain.ErrMalformedXML, "unexpected end of document inside element", "")
		}
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			open++
		case xml.EndElement:
			open--
		}
	}
	return nil
}

func parseUpdateFile(start xml.StartElement) domain.UpdateFile {
	var uf domain.UpdateFile
	// Sizes are opaque payload: a malformed value degrades to zero rather
	// than failing the document
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "OS":
			uf.OS = attr.Value
		case "CompressedSize":
			uf.CompressedSize, _ = strconv.ParseInt(attr.Value, 10, 64)
		case "UncompressedSize":
			uf.UncompressedSize, _ = strconv.ParseInt(attr.Value, 10, 64)
		}
	}
	return uf
}

// splitNameList splits a comma-separated field into trimmed, non-empty
// entries, preserving declared order. An empty field yields no entries.
func splitNameList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
