// Copyright © 2021 One Concern

// Package soap is the concrete transport adapter speaking the vendor's
// XML-over-HTTP envelope format. It is the only package aware of wire
// framing: the rest of the client exchanges typed records through
// the transport.Transport interface.
package soap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oneconcern/metasync/pkg/transport"
)

const (
	envelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

	// operation namespaces, selected from the endpoint path: metadata
	// endpoints are served under /Soap/m/, data endpoints under /Soap/u/
	metadataNamespace = "http://soap.sforce.com/2006/04/metadata"
	partnerNamespace  = "urn:partner.soap.sforce.com"
)

// Transport implements transport.Transport over HTTP
type Transport struct {
	client *http.Client
	l      *zap.Logger
}

var _ transport.Transport = &Transport{}

// Option configures the adapter
type Option func(*Transport)

// HTTPClient overrides the default HTTP client
func HTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		t.client = c
	}
}

// Logger injects a logging facility into the adapter
func Logger(l *zap.Logger) Option {
	return func(t *Transport) {
		t.l = l
	}
}

// New builds a transport adapter
func New(opts ...Option) *Transport {
	t := &Transport{
		client: &http.Client{Timeout: 2 * time.Minute},
		l:      zap.NewNop(),
	}
	for _, apply := range opts {
		apply(t)
	}
	return t
}

// Call performs one named operation, framing headers and the request record
// into an envelope and decoding the response <result> element(s) into out.
// Server faults come back as *transport.Fault.
func (t *Transport) Call(ctx context.Context, endpoint, operation string, headers []interface{}, in, out interface{}) error {
	body, err := envelope(endpoint, headers, in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/xml; charset=UTF-8")
	req.Header.Set("SOAPAction", `""`)

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	t.l.Debug("soap call",
		zap.String("operation", operation),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	// a fault body rides on HTTP 500: decode before judging the status code
	if err := decodeResponse(raw, out); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected HTTP status %d", operation, resp.StatusCode)
	}
	return nil
}

// envelope frames headers and the request record into the wire document
func envelope(endpoint string, headers []interface{}, in interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<soapenv:Envelope xmlns:soapenv="` + envelopeNamespace +
		`" xmlns="` + operationNamespace(endpoint) + `">`)
	buf.WriteString("<soapenv:Header>")
	for _, h := range headers {
		hdr, err := xml.Marshal(h)
		if err != nil {
			return nil, err
		}
		buf.Write(hdr)
	}
	buf.WriteString("</soapenv:Header><soapenv:Body>")
	if in != nil {
		body, err := xml.Marshal(in)
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	buf.WriteString("</soapenv:Body></soapenv:Envelope>")
	return buf.Bytes(), nil
}

func operationNamespace(endpoint string) string {
	if strings.Contains(endpoint, "/Soap/m/") {
		return metadataNamespace
	}
	return partnerNamespace
}

type soapFault struct {
	Code    string `xml:"faultcode"`
	Message string `xml:"faultstring"`
}

// decodeResponse scans the response document for a fault or for <result>
// elements. When out points to a slice, every result element appends one
// item; otherwise the first result is decoded into out.
func decodeResponse(raw []byte, out interface{}) error {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	decoded := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "Fault":
			var f soapFault
			if err := dec.DecodeElement(&f, &se); err != nil {
				return err
			}
			return &transport.Fault{Code: stripNamespace(f.Code), Message: f.Message}
		case "result":
			if out == nil || decoded && !appendable(out) {
				if err := dec.Skip(); err != nil {
					return err
				}
				continue
			}
			if appendable(out) {
				rv := reflect.ValueOf(out).Elem()
				item := reflect.New(rv.Type().Elem())
				if err := dec.DecodeElement(item.Interface(), &se); err != nil {
					return err
				}
				rv.Set(reflect.Append(rv, item.Elem()))
			} else {
				if err := dec.DecodeElement(out, &se); err != nil {
					return err
				}
			}
			decoded = true
		}
	}
}

// appendable is true when out points to a slice of result records
func appendable(out interface{}) bool {
	rv := reflect.ValueOf(out)
	return rv.Kind() == reflect.Ptr && rv.Elem().Kind() == reflect.Slice
}

// stripNamespace drops any "ns:" prefix from a fault code
func stripNamespace(code string) string {
	if i := strings.LastIndex(code, ":"); i >= 0 {
		return code[i+1:]
	}
	return code
}
