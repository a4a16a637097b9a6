package analyze

import (
	"strings"

	"github.com/blevesearch/bleve/mapping"
)

// lookupFieldMapping finds the field mapping for a dotted path, checking the
// default document mapping and every type mapping. Nil when the path has no
// explicit mapping; resolution then rides on the mapping's defaults.
func lookupFieldMapping(im *mapping.IndexMappingImpl, field string) *mapping.FieldMapping {
	docMappings := make([]*mapping.DocumentMapping, 0, len(im.TypeMapping)+1)
	if im.DefaultMapping != nil {
		docMappings = append(docMappings, im.DefaultMapping)
	}
	for _, dm := range im.TypeMapping {
		docMappings = append(docMappings, dm)
	}

	path := strings.Split(field, ".")
	for _, dm := range docMappings {
		if fm := fieldInDocMapping(dm, path); fm != nil {
			return fm
		}
	}
	return nil
}

func fieldInDocMapping(dm *mapping.DocumentMapping, path []string) *mapping.FieldMapping {
	if dm == nil || !dm.Enabled {
		return nil
	}
	sub, ok := dm.Properties[path[0]]
	if !ok {
		return nil
	}
	if len(path) > 1 {
		return fieldInDocMapping(sub, path[1:])
	}
	for _, fm := range sub.Fields {
		if fm.Name == "" || fm.Name == path[0] {
			return fm
		}
	}
	return nil
}
