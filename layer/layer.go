// Package layer parses and represents layer identifiers of the forms
// accepted by process scripts: "l", "l/d", "name(l/d)", "name" (spec.md
// §4.2).
package layer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gdsfactory/xsection-go/perr"
)

var (
	numberOnly = regexp.MustCompile(`^(\d+)$`)
	numberDT   = regexp.MustCompile(`^(\d+)/(\d+)$`)
	namedNumDT = regexp.MustCompile(`^(.*)\s*\((\d+)/(\d+)\)$`)
)

// Spec is a parsed layer identifier. Exactly one of (Layer valid) or (Name
// non-empty without numbers) describes how it was written; Name may also be
// present alongside Layer/Datatype for the "name(l/d)" form.
type Spec struct {
	Layer     int
	Datatype  int
	Name      string
	HasLayer  bool // Layer/Datatype fields are meaningful
	HasName   bool // Name field is meaningful
}

// String renders the Spec back to its canonical script-level form.
func (s Spec) String() string {
	switch {
	case s.HasName && s.HasLayer:
		return fmt.Sprintf("%s(%d/%d)", s.Name, s.Layer, s.Datatype)
	case s.HasLayer:
		return fmt.Sprintf("%d/%d", s.Layer, s.Datatype)
	default:
		return s.Name
	}
}

// Parse parses a layer specifier string per the grammar in spec.md §4.2.
// strict, when true, rejects a string matching none of the patterns with a
// ParseError; when false, an unmatched string is returned as a bare Name.
func Parse(s string, strict bool) (Spec, error) {
	s = strings.TrimSpace(s)

	if m := numberOnly.FindStringSubmatch(s); m != nil {
		l, _ := strconv.Atoi(m[1])
		return Spec{Layer: l, Datatype: 0, HasLayer: true}, nil
	}
	if m := numberDT.FindStringSubmatch(s); m != nil {
		l, _ := strconv.Atoi(m[1])
		d, _ := strconv.Atoi(m[2])
		return Spec{Layer: l, Datatype: d, HasLayer: true}, nil
	}
	if m := namedNumDT.FindStringSubmatch(s); m != nil {
		l, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return Spec{Name: strings.TrimSpace(m[1]), Layer: l, Datatype: d, HasLayer: true, HasName: true}, nil
	}

	if strict {
		return Spec{}, perr.Newf(perr.Parse, "layer.Parse", "malformed layer specifier %q", s)
	}
	return Spec{Name: s, HasName: true}, nil
}

// MustParse parses s non-strictly, panicking on a malformed string (for
// test fixtures and script literals known good at compile time).
func MustParse(s string) Spec {
	spec, err := Parse(s, false)
	if err != nil {
		panic(err)
	}
	return spec
}

// Table resolves Specs against a layout's declared (layer, datatype, name)
// triples, supplementing spec.md's load() with the name-based lookup the
// original source's layer_parameters.py performs (SPEC_FULL.md §5.1).
type Table struct {
	byNumber map[[2]int]string
	byName   map[string][2]int
}

// NewTable builds an empty Table.
func NewTable() *Table {
	return &Table{byNumber: map[[2]int]string{}, byName: map[string][2]int{}}
}

// Declare registers a layout layer under its (layer,datatype) pair and name.
func (t *Table) Declare(layerNum, datatype int, name string) {
	t.byNumber[[2]int{layerNum, datatype}] = name
	if name != "" {
		t.byName[name] = [2]int{layerNum, datatype}
	}
}

// Resolve fills in whichever of (Layer,Datatype) or Name is missing from
// spec by looking up the declared layer table. A name-only spec whose name
// the table doesn't know is an error, as is an empty spec; a spec with
// layer numbers is always
// returned without error, with its name filled in only if that
// (layer, datatype) pair was declared.
func (t *Table) Resolve(spec Spec) (Spec, error) {
	if spec.HasLayer {
		if name, ok := t.byNumber[[2]int{spec.Layer, spec.Datatype}]; ok && !spec.HasName {
			spec.Name = name
			spec.HasName = name != ""
		}
		return spec, nil
	}
	if spec.HasName {
		if ld, ok := t.byName[spec.Name]; ok {
			spec.Layer, spec.Datatype = ld[0], ld[1]
			spec.HasLayer = true
			return spec, nil
		}
		return spec, perr.Newf(perr.Config, "layer.Resolve", "no declared layer named %q", spec.Name)
	}
	return spec, perr.Newf(perr.Config, "layer.Resolve", "empty layer spec")
}
