// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kml

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/htmlindex"
)

// charsetReader decodes documents whose XML declaration names a charset
// other than UTF-8, such as windows-1254 or iso-8859-9 exports.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
