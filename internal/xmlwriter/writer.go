// =============================================================================
// Deposition Species Injector - XML Writer Module
// =============================================================================
//
// This module rewrites the four deposition list elements of geoschem.xml in
// place. Everything else in the document (comments, attributes, other
// elements, whitespace) is carried through unchanged.
//
// TARGET ELEMENTS:
//   <drydep_list>       gas species, dry deposition
//   <aer_drydep_list>   aerosol species, dry deposition
//   <gas_wetdep_list>   gas species, wet deposition
//   <aer_wetdep_list>   aerosol species, wet deposition
//
// GENERATED TEXT:
//   Each target element's text becomes
//
//   <drydep_list>
//     'O3','CO',
//   </drydep_list>
//
//   that is: newline, two spaces, 'NAME', per species, newline.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/ginjaninja78/depspec/internal/types"
	"github.com/ginjaninja78/depspec/pkg/utils"
)

// =============================================================================
// WRITE OPTIONS
// =============================================================================

const (
	// Indent is written before the first species of every list.
	Indent = "  "

	// XMLVersion is the version used when a declaration must be added.
	XMLVersion = "1.0"

	// Encoding is the encoding used when a declaration must be added.
	Encoding = "UTF-8"
)

// =============================================================================
// LIST FORMATTING
// =============================================================================

// FormatList renders a species list as element text.
//
// EXAMPLE:
//   FormatList([]string{"O3", "co"}) == "\n  'O3','CO',\n"
//   FormatList(nil)                 == "\n  \n"
func FormatList(names []string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(Indent)
	for _, name := range names {
		b.WriteString("'")
		b.WriteString(strings.ToUpper(name))
		b.WriteString("',")
	}
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is a parsed XML file whose deposition lists can be replaced.
type Document struct {
	// Path is the file the document was read from and is written back to.
	Path string

	doc *etree.Document
}

// InjectReport describes what Inject changed.
type InjectReport struct {
	// Updated counts replaced elements per category.
	Updated map[types.Category]int

	// Skipped lists target tags whose element could not take list text.
	Skipped []string

	// Missing lists categories with no matching element in the document.
	Missing []types.Category
}

// UpdatedTotal returns the number of elements whose text was replaced.
func (r InjectReport) UpdatedTotal() int {
	total := 0
	for _, n := range r.Updated {
		total += n
	}
	return total
}

// Open reads and parses an XML file. Comments, directives and processing
// instructions are kept as tokens so they survive the rewrite.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read XML file: %w", err)
	}

	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	d.Path = path
	return d, nil
}

// Parse parses an XML document from raw bytes.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true

	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("document has no root element")
	}

	// Quotes in text are written as-is so the generated lists stay readable.
	doc.WriteSettings.CanonicalText = true

	return &Document{doc: doc}, nil
}

// Inject replaces the text of every target element with its formatted list.
// Elements with any other tag are left untouched. Target elements that cannot
// take list text are reported in Skipped rather than failing the run.
func (d *Document) Inject(lists types.DepositionLists) InjectReport {
	report := InjectReport{Updated: make(map[types.Category]int)}

	for _, category := range types.Categories {
		tag := category.Tag()
		text := FormatList(lists.Get(category))

		elements := d.doc.FindElements("//" + tag)
		if len(elements) == 0 {
			report.Missing = append(report.Missing, category)
			continue
		}

		for _, elem := range elements {
			if !acceptsText(elem) {
				report.Skipped = append(report.Skipped, tag)
				continue
			}
			elem.SetText(text)
			report.Updated[category]++
		}
	}

	return report
}

// acceptsText reports whether an element can hold a species list. Only leaf
// elements qualify; replacing the text of an element with child elements
// would interleave the list with its children.
func acceptsText(elem *etree.Element) bool {
	return len(elem.ChildElements()) == 0
}

// Text returns the current text of the first element with the given tag.
// The second return value is false when no such element exists.
func (d *Document) Text(tag string) (string, bool) {
	elem := d.doc.FindElement("//" + tag)
	if elem == nil {
		return "", false
	}
	return elem.Text(), true
}

// Has reports whether the document contains an element with the given tag.
func (d *Document) Has(tag string) bool {
	return d.doc.FindElement("//"+tag) != nil
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// Bytes serializes the document, adding an XML declaration if it lacks one.
func (d *Document) Bytes() ([]byte, error) {
	d.ensureDeclaration()

	var buffer bytes.Buffer
	if _, err := d.doc.WriteTo(&buffer); err != nil {
		return nil, fmt.Errorf("failed to serialize XML: %w", err)
	}

	// etree does not terminate the last token with a newline.
	if buffer.Len() > 0 && buffer.Bytes()[buffer.Len()-1] != '\n' {
		buffer.WriteByte('\n')
	}

	return buffer.Bytes(), nil
}

// Save writes the document back to the path it was read from.
func (d *Document) Save() error {
	if d.Path == "" {
		return fmt.Errorf("document has no path")
	}
	return d.SaveAs(d.Path)
}

// SaveAs serializes the document and atomically replaces the file at path.
// The original file is untouched if serialization or writing fails. When path
// is a symlink the link target is replaced and the link itself is kept.
func (d *Document) SaveAs(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}

	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := utils.WriteFileAtomic(path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ensureDeclaration inserts <?xml ...?> at the top unless one is present.
func (d *Document) ensureDeclaration() {
	for _, token := range d.doc.Child {
		if pi, ok := token.(*etree.ProcInst); ok && pi.Target == "xml" {
			return
		}
	}

	pi := d.doc.CreateProcInst("xml", fmt.Sprintf(`version="%s" encoding="%s"`, XMLVersion, Encoding))
	d.doc.RemoveChild(pi)
	d.doc.InsertChildAt(0, pi)

	// Keep the root on its own line.
	if len(d.doc.Child) > 1 {
		if _, ok := d.doc.Child[1].(*etree.CharData); !ok {
			d.doc.InsertChildAt(1, etree.NewText("\n"))
		}
	}
}
