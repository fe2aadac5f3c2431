// Package addon builds, validates and writes AddOn instrument-configuration XML.
package addon

import (
	"encoding/xml"

	"github.com/ukaji3/leaflet-go/pkg/leaflet/config"
)

const (
	nsXSI = "http://www.w3.org/2001/XMLSchema-instance"
	nsXSD = "http://www.w3.org/2001/XMLSchema"
)

// Document is the AddOn root element.
type Document struct {
	XMLName              xml.Name  `xml:"AddOn"`
	XSI                  string    `xml:"xmlns:xsi,attr"`
	XSD                  string    `xml:"xmlns:xsd,attr"`
	ID                   int       `xml:"Id"`
	MethodID             string    `xml:"MethodId"`
	MethodVersion        string    `xml:"MethodVersion"`
	RunResultsExportPath string    `xml:"RunResultsExportPath,omitempty"`
	Assays               AssayList `xml:"Assays"`
}

// AssayList is the Assays container. It is always emitted, even when empty.
type AssayList struct {
	Items []Assay `xml:"Assay"`
}

// Assay groups analytes.
type Assay struct {
	ID       int         `xml:"Id"`
	Name     string      `xml:"Name"`
	AddOnRef int         `xml:"AddOnRef"`
	Analytes AnalyteList `xml:"Analytes"`
}

// AnalyteList is the Analytes container of an assay.
type AnalyteList struct {
	Items []Analyte `xml:"Analyte"`
}

// Analyte is one measured substance. AssayRef is kept as text because the
// consolidated export fills it with the analyte's sample code.
type Analyte struct {
	ID       int       `xml:"Id"`
	Name     string    `xml:"Name"`
	AssayRef string    `xml:"AssayRef"`
	Units    *UnitList `xml:"AnalyteUnits,omitempty"`
}

// UnitList is the optional AnalyteUnits container.
type UnitList struct {
	Items []Unit `xml:"AnalyteUnit"`
}

// Unit is one AnalyteUnit.
type Unit struct {
	ID         int    `xml:"Id"`
	Name       string `xml:"Name"`
	AnalyteRef string `xml:"AnalyteRef"`
}

func newDocument(id int, cfg config.XmlConfig) *Document {
	return &Document{
		XSI:                  nsXSI,
		XSD:                  nsXSD,
		ID:                   id,
		MethodID:             cfg.MethodID,
		MethodVersion:        cfg.MethodVersion,
		RunResultsExportPath: cfg.RunResultsExportPath,
	}
}

// Marshal renders doc as UTF-8 XML with a declaration and two-space indentation.
func Marshal(doc *Document) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
