// Package mummytest loads the golden encode/decode vectors shared by
// mummy's own tests and by mummyfuzz's seed corpus. Vectors are kept
// in a YAML fixture rather than hardcoded in Go, the way the teacher
// pack keeps its cross-language wire vectors in a data file rather
// than a source literal, so the same fixture could in principle be
// checked against another language's mummy implementation.
package mummytest

import (
	"encoding/hex"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Vector is one named (value-description, wire-bytes) pair.
type Vector struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
	// Kind names the kind of value Hex encodes (null, bool, int,
	// float, string, specialnum, date, container); the golden tests
	// use it to choose the decoder to run.
	Kind string `yaml:"kind"`
}

// Bytes decodes the vector's hex field into raw wire bytes.
func (v Vector) Bytes() ([]byte, error) {
	b, err := hex.DecodeString(v.Hex)
	if err != nil {
		return nil, fmt.Errorf("mummytest: vector %q: bad hex: %w", v.Name, err)
	}
	return b, nil
}

// Load parses a YAML document of the form:
//
//	vectors:
//	  - name: bool-true
//	    kind: bool
//	    hex: "0101"
func Load(data []byte) ([]Vector, error) {
	var doc struct {
		Vectors []Vector `yaml:"vectors"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("mummytest: parsing vectors: %w", err)
	}
	return doc.Vectors, nil
}
