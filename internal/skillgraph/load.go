package skillgraph

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed catalog.json
var defaultCatalogJSON []byte

//go:embed catalog.schema.json
var catalogSchemaJSON []byte

const catalogSchemaURL = "schema://catalog.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error

	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// catalogFile is the on-disk shape of a catalog data asset.
type catalogFile struct {
	Version int      `json:"version"`
	Domains []Domain `json:"domains"`
	Skills  []Skill  `json:"skills"`
}

// Default returns the embedded catalog. It panics if the embedded asset is
// invalid, so a broken catalog fails at startup rather than mid-session.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogJSON)
		if err != nil {
			panic(fmt.Sprintf("embedded skill catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// DefaultJSON returns a copy of the embedded catalog asset.
func DefaultJSON() []byte {
	return bytes.Clone(defaultCatalogJSON)
}

// Parse validates raw catalog JSON against the catalog schema, decodes it,
// runs the integrity checks and builds a Catalog.
func Parse(data []byte) (*Catalog, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalog, err)
	}
	return New(f.Version, f.Domains, f.Skills)
}

func validateSchema(data []byte) error {
	sch, err := catalogSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrInvalidCatalog, err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("%w: schema validation failed: %v", ErrInvalidCatalog, err)
	}
	return nil
}

// catalogSchema compiles the embedded schema once.
func catalogSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(catalogSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(catalogSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(catalogSchemaURL)
	})
	return compiledSchema, schemaErr
}
