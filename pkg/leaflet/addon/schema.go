package addon

import _ "embed"

// schemaXSD is the authoritative AddOn schema, kept byte-identical to
// template/AddOn.xsd. Validate implements its structural minimum only.
//
//go:embed AddOn.xsd
var schemaXSD string

// Schema returns the embedded AddOn XSD text.
func Schema() string {
	return schemaXSD
}
