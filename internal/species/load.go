package species

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hpungsan/sapling/internal/errors"
)

// catalogFile is the on-disk YAML layout:
//
//	species:
//	  - id: mango
//	    display_name: Mango Tree
//	    annual_sequestration_kg: 20.5
//	    typical_lifetime_years: 200
//	    description: National tree of Bangladesh
type catalogFile struct {
	Species []TreeSpecies `yaml:"species"`
}

// Parse builds a Catalog from YAML. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f catalogFile
	if err := dec.Decode(&f); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewInvalidCatalog("catalog file is empty")
		}
		return nil, errors.NewInvalidCatalog(fmt.Sprintf("parse catalog: %v", err))
	}

	return New(f.Species)
}

// LoadFile reads and validates a YAML catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInvalidCatalog(fmt.Sprintf("read catalog %s: %v", path, err))
	}
	return Parse(data)
}
