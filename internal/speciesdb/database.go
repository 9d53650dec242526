// =============================================================================
// Deposition Species Injector - Species Database Loader
// =============================================================================
//
// This module reads the species database (species_database.yml) and turns it
// into an ordered, in-memory mapping from species name to property record.
//
// DOCUMENT SHAPE:
//   The database is a YAML mapping of mappings:
//
//   ACET_PROP: &ACETproperties   <-- metadata entry, excluded (contains _PROP)
//     Is_Gas: true
//     Is_DryDep: true
//   ACET:
//     << : *ACETproperties        <-- merge keys are resolved per record
//     Is_WetDep: true
//   SO4_a1:
//     Is_Gas: false
//     Is_WetDep: true
//
// ORDERING:
//   Species are returned in document order. The document is walked as a
//   yaml.Node tree instead of being unmarshalled into a Go map, since Go maps
//   do not preserve insertion order.
//
// =============================================================================

package speciesdb

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// PROPERTY NAMES
// =============================================================================

const (
	// PropIsGas marks a gas-phase species.
	PropIsGas = "Is_Gas"

	// PropIsDryDep marks a species that undergoes dry deposition.
	PropIsDryDep = "Is_DryDep"

	// PropIsWetDep marks a species that undergoes wet deposition.
	PropIsWetDep = "Is_WetDep"

	// MetadataMarker identifies keys that carry shared properties rather than
	// species. Any key containing it is excluded from classification.
	MetadataMarker = "_PROP"
)

// =============================================================================
// ERRORS
// =============================================================================

// ParseError reports a malformed species database document. It is not fatal:
// callers log it and continue with whatever was parsed (usually nothing).
type ParseError struct {
	// Path is the file that failed to parse. Empty when parsing raw bytes.
	Path string

	// Err is the underlying YAML error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("species database: %v", e.Err)
	}
	return fmt.Sprintf("species database %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying YAML error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrNotMapping is returned when the document root is not a YAML mapping.
var ErrNotMapping = errors.New("document root is not a mapping")

// =============================================================================
// DATA STRUCTURES
// =============================================================================

// Record holds the properties of one species.
type Record struct {
	// Name is the species key as written in the document.
	Name string

	// Properties contains every property of the species, with merge keys
	// already resolved.
	Properties map[string]interface{}
}

// Flag reports whether a property is present and is the YAML boolean true.
// Absent properties and any other value (including 1 or "true") are false.
func (r *Record) Flag(prop string) bool {
	if r == nil {
		return false
	}
	v, ok := r.Properties[prop]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// FlagProperties lists the deposition flags read by Flag.
var FlagProperties = []string{PropIsGas, PropIsDryDep, PropIsWetDep}

// NonBoolFlags returns the deposition flags that are present but hold a value
// other than a YAML boolean, such as 1 or "yes". Flag treats them as false.
func (r *Record) NonBoolFlags() []string {
	if r == nil {
		return nil
	}
	var props []string
	for _, prop := range FlagProperties {
		v, ok := r.Properties[prop]
		if !ok {
			continue
		}
		if _, isBool := v.(bool); !isBool {
			props = append(props, prop)
		}
	}
	return props
}

// IsMetadata reports whether the record is a _PROP metadata entry.
func (r *Record) IsMetadata() bool {
	return IsMetadataKey(r.Name)
}

// IsMetadataKey reports whether a database key names a metadata entry.
func IsMetadataKey(name string) bool {
	return strings.Contains(name, MetadataMarker)
}

// Database is the ordered species mapping.
type Database struct {
	// names preserves document order.
	names []string

	// records is keyed by species name.
	records map[string]*Record

	// Skipped lists keys whose value was not a mapping.
	Skipped []string
}

// New returns an empty database.
func New() *Database {
	return &Database{records: make(map[string]*Record)}
}

// Add appends a record. A name that already exists keeps its original
// position and takes the new properties.
func (db *Database) Add(name string, props map[string]interface{}) {
	if _, exists := db.records[name]; !exists {
		db.names = append(db.names, name)
	}
	db.records[name] = &Record{Name: name, Properties: props}
}

// Names returns all keys in document order, metadata entries included.
func (db *Database) Names() []string {
	out := make([]string, len(db.names))
	copy(out, db.names)
	return out
}

// Len returns the number of entries, metadata entries included.
func (db *Database) Len() int {
	return len(db.names)
}

// Record returns the record for a key, or nil when absent.
func (db *Database) Record(name string) *Record {
	return db.records[name]
}

// Records returns all records in document order.
func (db *Database) Records() []*Record {
	out := make([]*Record, 0, len(db.names))
	for _, name := range db.names {
		out = append(out, db.records[name])
	}
	return out
}

// =============================================================================
// LOADING FUNCTIONS
// =============================================================================

// Load reads and parses a species database file.
//
// PARAMETERS:
//   - path: The path to species_database.yml.
//
// RETURNS:
//   - The parsed database. Never nil: a parse failure yields an empty database.
//   - An error wrapping the *os.PathError if the file cannot be read (fatal), or
//     a *ParseError if the document is malformed (non-fatal).
func Load(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return New(), fmt.Errorf("failed to open species database: %w", err)
	}
	defer f.Close()

	db := New()
	var root yaml.Node
	if err := yaml.NewDecoder(f).Decode(&root); err != nil {
		// An empty file holds no species.
		if errors.Is(err, io.EOF) {
			return db, nil
		}
		return db, &ParseError{Path: path, Err: err}
	}

	if err := db.fill(&root); err != nil {
		return New(), &ParseError{Path: path, Err: err}
	}

	return db, nil
}

// Parse parses a species database from raw bytes.
func Parse(data []byte) (*Database, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return New(), &ParseError{Err: err}
	}

	db := New()
	if err := db.fill(&root); err != nil {
		return New(), &ParseError{Err: err}
	}
	return db, nil
}

// fill walks the document node and adds one record per top-level key.
func (db *Database) fill(root *yaml.Node) error {
	// An empty document decodes to a zero node.
	if root.Kind == 0 {
		return nil
	}

	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return ErrNotMapping
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		// Top-level merge keys are not species.
		if key.Tag == "!!merge" || key.Value == "<<" {
			continue
		}

		props, ok := properties(value, nil)
		if !ok {
			db.Skipped = append(db.Skipped, key.Value)
			continue
		}

		db.Add(key.Value, props)
	}

	return nil
}

// properties builds the property map of one species node. Pairs are read in
// order so a repeated property keeps its last value, and merged mappings
// (<<) never override the node's own keys. ok is false when the node is not
// a mapping. seen holds the mappings being merged, so an anchor that merges
// itself ends the recursion.
func properties(node *yaml.Node, seen map[*yaml.Node]bool) (props map[string]interface{}, ok bool) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, false
	}
	if seen[node] {
		return map[string]interface{}{}, true
	}
	if seen == nil {
		seen = make(map[*yaml.Node]bool)
	}
	seen[node] = true
	defer delete(seen, node)

	merged := make(map[string]interface{})
	own := make(map[string]interface{})

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		if key.Tag == "!!merge" || key.Value == "<<" {
			mergeInto(merged, value, seen)
			continue
		}

		var v interface{}
		if err := value.Decode(&v); err != nil {
			// Nested values this loader does not understand are kept as raw text.
			v = value.Value
		}
		own[key.Value] = v
	}

	for k, v := range own {
		merged[k] = v
	}
	return merged, true
}

// mergeInto applies a merge key value: one mapping, or a sequence of
// mappings where earlier entries take precedence.
func mergeInto(dst map[string]interface{}, value *yaml.Node, seen map[*yaml.Node]bool) {
	if value.Kind == yaml.AliasNode {
		value = value.Alias
	}
	if value == nil {
		return
	}

	sources := []*yaml.Node{value}
	if value.Kind == yaml.SequenceNode {
		sources = value.Content
	}

	for i := len(sources) - 1; i >= 0; i-- {
		props, ok := properties(sources[i], seen)
		if !ok {
			continue
		}
		for k, v := range props {
			dst[k] = v
		}
	}
}
