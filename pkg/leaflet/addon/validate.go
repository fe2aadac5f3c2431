package addon

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// ValidationError reports an AddOn document that violates the schema's
// structural minimum.
type ValidationError struct {
	// Element is the missing or malformed element.
	Element string
	// Parent is the tag of the element's container.
	Parent string
	// Reason describes the violation.
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("generated AddOn XML failed schema validation: %s", e.Reason)
	}
	return fmt.Sprintf("generated AddOn XML failed schema validation: %s %s under %s", e.Element, e.Reason, e.Parent)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// node is a generic element tree used for structural checks.
type node struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
	Nodes   []node `xml:",any"`
}

func (n *node) child(name string) *node {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			return &n.Nodes[i]
		}
	}
	return nil
}

func (n *node) children(name string) []*node {
	var out []*node
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			out = append(out, &n.Nodes[i])
		}
	}
	return out
}

// Validate checks that data is an AddOn document whose Id, AddOnRef, AssayRef
// and AnalyteRef elements are present and integer wherever the schema requires
// them. It stops at the first violation.
func Validate(data []byte) error {
	var root node
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		return &ValidationError{Reason: "document is not well-formed XML", Err: err}
	}
	if root.XMLName.Local != "AddOn" {
		return &ValidationError{Reason: "root element must be AddOn"}
	}
	if err := requireInt(&root, "Id"); err != nil {
		return err
	}

	assays := root.child("Assays")
	if assays == nil {
		return &ValidationError{Element: "Assays", Parent: "AddOn", Reason: "is missing"}
	}

	for _, assay := range assays.children("Assay") {
		if err := requireInts(assay, "Id", "AddOnRef"); err != nil {
			return err
		}
		analytes := assay.child("Analytes")
		if analytes == nil {
			continue
		}
		for _, analyte := range analytes.children("Analyte") {
			if err := requireInts(analyte, "Id", "AssayRef"); err != nil {
				return err
			}
			units := analyte.child("AnalyteUnits")
			if units == nil {
				continue
			}
			for _, unit := range units.children("AnalyteUnit") {
				if err := requireInts(unit, "Id", "AnalyteRef"); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func requireInts(parent *node, names ...string) error {
	for _, name := range names {
		if err := requireInt(parent, name); err != nil {
			return err
		}
	}
	return nil
}

func requireInt(parent *node, name string) error {
	el := parent.child(name)
	if el == nil {
		return &ValidationError{Element: name, Parent: parent.XMLName.Local, Reason: "is missing"}
	}
	if _, err := strconv.Atoi(strings.TrimSpace(el.Text)); err != nil {
		return &ValidationError{Element: name, Parent: parent.XMLName.Local, Reason: "must be an integer", Err: err}
	}
	return nil
}
