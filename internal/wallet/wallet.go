// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wallet reads password entries from a KDE kwalletmanager wallet
// exported as XML.
//
// An export looks like:
//
//	<wallet name="kdewallet">
//	  <folder name="Passwords">
//	    <password name="my site">secret</password>
//	  </folder>
//	</wallet>
//
// Only password elements that are direct children of a folder that is a
// direct child of the root element are considered. Maps, streams, and
// nested folders are ignored.
package wallet

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/pdiddy/kwallet-extract/pkg/types"
)

// ErrMissingName is returned when a password element has no name attribute.
var ErrMissingName = errors.New("password entry has no name attribute")

// keyReplacer maps the characters that are unsafe in a filename to "_".
var keyReplacer = strings.NewReplacer(" ", "_", "/", "_")

// SanitizeKey returns name with every space and forward slash replaced by
// an underscore. No other character is changed.
func SanitizeKey(name string) string {
	return keyReplacer.Replace(name)
}

// Wallet is a parsed wallet export.
type Wallet struct {
	folders []folder
}

// Element is a password element in document order. Its name is resolved
// lazily so that a missing attribute surfaces only when the entry is
// reached.
type Element struct {
	position int
	name     *string
	text     string
}

// Resolve returns the entry for e, or an error wrapping ErrMissingName.
func (e Element) Resolve() (types.Entry, error) {
	if e.name == nil {
		return types.Entry{}, fmt.Errorf("entry %d: %w", e.position, ErrMissingName)
	}
	return types.Entry{
		Position: e.position,
		Name:     *e.name,
		Key:      SanitizeKey(*e.name),
		Text:     e.text,
		HasText:  e.text != "",
	}, nil
}

// Wallet export XML structures.
type document struct {
	Folders []folder `xml:"folder"`
}

type folder struct {
	Name      string     `xml:"name,attr"`
	Passwords []password `xml:"password"`
}

type password struct {
	Name *string
	Text string
}

// UnmarshalXML keeps only the character data that precedes the first child
// element, the same text an ElementTree reader sees. Child elements are
// skipped.
func (p *password) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Space == "" && a.Name.Local == "name" {
			name := a.Value
			p.Name = &name
		}
	}

	var (
		text     strings.Builder
		sawChild bool
	)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if !sawChild {
				text.Write(t)
			}
		case xml.StartElement:
			sawChild = true
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			p.Text = text.String()
			return nil
		}
	}
}

// Parse decodes a wallet export from r. The whole document is read before
// returning, so a malformed file never yields a partial wallet. Documents
// that declare a non-UTF-8 encoding are transcoded.
func Parse(r io.Reader) (*Wallet, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing wallet: %w", err)
	}
	return &Wallet{folders: doc.Folders}, nil
}

// Load opens and parses the wallet export at path.
func Load(path string) (*Wallet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading wallet %s: %w", path, err)
	}
	defer f.Close()

	w, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// Folders returns the names of the top-level folders in document order.
func (w *Wallet) Folders() []string {
	names := make([]string, len(w.folders))
	for i, f := range w.folders {
		names[i] = f.Name
	}
	return names
}

// Elements returns every password element of each top-level folder named
// name, in document order. Several folders may share a name; their
// elements are concatenated.
func (w *Wallet) Elements(name string) []Element {
	var elems []Element
	for _, f := range w.folders {
		if f.Name != name {
			continue
		}
		for _, p := range f.Passwords {
			elems = append(elems, Element{
				position: len(elems),
				name:     p.Name,
				text:     p.Text,
			})
		}
	}
	return elems
}

// Entries resolves every element of folder name. It fails on the first
// element without a name attribute.
func (w *Wallet) Entries(name string) ([]types.Entry, error) {
	elems := w.Elements(name)
	entries := make([]types.Entry, 0, len(elems))
	for _, e := range elems {
		entry, err := e.Resolve()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
