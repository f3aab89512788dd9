// Copyright © 2021 One Concern

package model

import "encoding/xml"

// Record is a loosely structured data record (sObject) exchanged with the
// data API. Field order is preserved on the wire.
type Record struct {
	// Type is the record's object type, e.g. "Account"
	Type string

	// ID is set on records read back from the server and on updates
	ID string

	// Fields are the record's field values
	Fields []FieldValue
}

// FieldValue is one named field of a record
type FieldValue struct {
	Name  string
	Value string
}

// Field returns the value of a named field, or "" when absent
func (r Record) Field(name string) string {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// MarshalXML encodes the record under the element name chosen by the
// enclosing request (sObjects, records, ...)
func (r Record) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := e.EncodeElement(r.Type, xml.StartElement{Name: xml.Name{Local: "type"}}); err != nil {
		return err
	}
	if r.ID != "" {
		if err := e.EncodeElement(r.ID, xml.StartElement{Name: xml.Name{Local: "Id"}}); err != nil {
			return err
		}
	}
	for _, f := range r.Fields {
		if err := e.EncodeElement(f.Value, xml.StartElement{Name: xml.Name{Local: f.Name}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML decodes a record from any enclosing element, mapping the
// "type" and "Id" children to their fields and keeping everything else as
// ordered field values
func (r *Record) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var v string
			if err := d.DecodeElement(&v, &t); err != nil {
				return err
			}
			switch t.Name.Local {
			case "type":
				r.Type = v
			case "Id":
				r.ID = v
			default:
				r.Fields = append(r.Fields, FieldValue{Name: t.Name.Local, Value: v})
			}
		case xml.EndElement:
			return nil
		}
	}
}
