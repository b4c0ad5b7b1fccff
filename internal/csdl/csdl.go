// Package csdl decodes OData CSDL metadata documents (the $metadata EDMX
// payload) into a plain struct model. Attribute values are kept as declared;
// interpretation belongs to the schema package.
package csdl

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Document is the root <edmx:Edmx> element
type Document struct {
	XMLName      xml.Name     `xml:"Edmx" json:"-"`
	Version      string       `xml:"Version,attr" json:"version,omitempty"`
	DataServices DataServices `xml:"DataServices" json:"data_services"`
}

// DataServices holds the schemas of a document
type DataServices struct {
	Schemas []Schema `xml:"Schema" json:"schemas"`
}

// Schema is a single namespaced <Schema> element
type Schema struct {
	Namespace    string        `xml:"Namespace,attr" json:"namespace"`
	Alias        string        `xml:"Alias,attr" json:"alias,omitempty"`
	EntityTypes  []EntityType  `xml:"EntityType" json:"entity_types,omitempty"`
	ComplexTypes []ComplexType `xml:"ComplexType" json:"complex_types,omitempty"`
	EnumTypes    []EnumType    `xml:"EnumType" json:"enum_types,omitempty"`
}

// EntityType is a named top-level record shape
type EntityType struct {
	Name                 string               `xml:"Name,attr" json:"name"`
	BaseType             string               `xml:"BaseType,attr" json:"base_type,omitempty"`
	Key                  *Key                 `xml:"Key" json:"key,omitempty"`
	Properties           []Property           `xml:"Property" json:"properties"`
	NavigationProperties []NavigationProperty `xml:"NavigationProperty" json:"navigation_properties,omitempty"`
}

// ComplexType is a named nested structure
type ComplexType struct {
	Name       string     `xml:"Name,attr" json:"name"`
	BaseType   string     `xml:"BaseType,attr" json:"base_type,omitempty"`
	Properties []Property `xml:"Property" json:"properties"`
}

// Key lists the key properties of an entity type
type Key struct {
	PropertyRefs []PropertyRef `xml:"PropertyRef" json:"property_refs"`
}

// PropertyRef names one key property
type PropertyRef struct {
	Name string `xml:"Name,attr" json:"name"`
}

// Property is a single structural field. Nullable and MaxLength are kept as
// the raw attribute strings; an empty string means the attribute is absent.
type Property struct {
	Name      string `xml:"Name,attr" json:"name"`
	Type      string `xml:"Type,attr" json:"type"`
	Nullable  string `xml:"Nullable,attr" json:"nullable,omitempty"`
	MaxLength string `xml:"MaxLength,attr" json:"max_length,omitempty"`
	Precision string `xml:"Precision,attr" json:"precision,omitempty"`
	Scale     string `xml:"Scale,attr" json:"scale,omitempty"`
}

// NavigationProperty links an entity type to another entity type
type NavigationProperty struct {
	Name    string `xml:"Name,attr" json:"name"`
	Type    string `xml:"Type,attr" json:"type"`
	Partner string `xml:"Partner,attr" json:"partner,omitempty"`
}

// EnumType is decoded for completeness; enum members travel as strings.
type EnumType struct {
	Name    string   `xml:"Name,attr" json:"name"`
	Members []Member `xml:"Member" json:"members,omitempty"`
}

// Member is a single enum member
type Member struct {
	Name  string `xml:"Name,attr" json:"name"`
	Value string `xml:"Value,attr" json:"value,omitempty"`
}

// Decode reads a CSDL document from r
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode metadata document: %w", err)
	}
	return &doc, nil
}

// EntityTypes returns the entity types of every schema in document order
func (d *Document) EntityTypes() []EntityType {
	var result []EntityType
	for _, s := range d.DataServices.Schemas {
		result = append(result, s.EntityTypes...)
	}
	return result
}

// ComplexTypes returns the complex types of every schema in document order
func (d *Document) ComplexTypes() []ComplexType {
	var result []ComplexType
	for _, s := range d.DataServices.Schemas {
		result = append(result, s.ComplexTypes...)
	}
	return result
}

// Namespace returns the namespace of the first schema, or "" for an empty
// document.
func (d *Document) Namespace() string {
	if len(d.DataServices.Schemas) == 0 {
		return ""
	}
	return d.DataServices.Schemas[0].Namespace
}
