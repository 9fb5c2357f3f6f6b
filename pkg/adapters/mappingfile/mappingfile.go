// Package mappingfile loads ordered path mapping lists for the XML assembler.
//
// Two formats are supported. The line format keeps one mapping per line:
//
//	# valueKey, xpath, processingInstruction
//	transactionId, DWPBody/DWPCATransaction, @id
//	carerSurname,  DWPBody/DWPCATransaction/DWPCAClaim/Claimant/Surname
//
// The YAML format holds one or more named lists:
//
//	claim:
//	  - value: transactionId
//	    xpath: DWPBody/DWPCATransaction
//	    pi: "@id"
package mappingfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/claimform/pkg/domain"
)

// Loader implements ports.MappingLoader over a directory of mapping files.
// A mapping named "claim" is read from claim.yaml, claim.yml, claim.csv or
// claim.mapping, first match wins.
type Loader struct {
	dir string
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

var extensions = []string{".yaml", ".yml", ".csv", ".mapping"}

// LoadMappings reads the mapping list registered under name.
func (l *Loader) LoadMappings(name string) (domain.MappingList, error) {
	for _, ext := range extensions {
		path := filepath.Join(l.dir, name+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
		}

		if ext == ".yaml" || ext == ".yml" {
			lists, err := ParseYAML(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			list, ok := lists[name]
			if !ok {
				return nil, fmt.Errorf("%s: mapping %q not declared", path, name)
			}
			return list, nil
		}

		list, err := ParseLines(strings.NewReader(string(data)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return list, nil
	}
	return nil, fmt.Errorf("mapping not found: %s", name)
}

// ParseLines parses the comma separated line format.
func ParseLines(r io.Reader) (domain.MappingList, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	var list domain.MappingList
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse mapping: %w", err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) < 2 || len(record) > 3 {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected 2 or 3 columns, got %d", line, len(record))
		}

		m := domain.PathMapping{
			ValueKey: strings.TrimSpace(record[0]),
			XPath:    strings.TrimSpace(record[1]),
		}
		if len(record) == 3 {
			m.ProcessingInstruction = strings.TrimSpace(record[2])
		}
		list = append(list, m)
	}
	return list, nil
}

// ParseYAML parses the named-list YAML format.
func ParseYAML(data []byte) (map[string]domain.MappingList, error) {
	var raw map[string][]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	result := make(map[string]domain.MappingList, len(raw))
	for name, entries := range raw {
		var list domain.MappingList
		config := &mapstructure.DecoderConfig{
			Result:           &list,
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		}
		decoder, err := mapstructure.NewDecoder(config)
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(entries); err != nil {
			return nil, fmt.Errorf("mapping %q: %w", name, err)
		}
		result[name] = list
	}
	return result, nil
}
