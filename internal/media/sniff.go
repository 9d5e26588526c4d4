package media

import (
	"bytes"
	"errors"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

const sniffLen = 3072

// ResolveMimeType trusts the declared type unless it is missing or generic,
// in which case the type is sniffed from the head of r. The returned reader
// yields the full content again.
func ResolveMimeType(declared string, r io.Reader) (string, io.Reader, error) {
	declared = normalizeMime(declared)
	if r == nil || (declared != "" && declared != "application/octet-stream") {
		return declared, r, nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, err
	}
	head = head[:n]

	detected := normalizeMime(mimetype.Detect(head).String())
	return detected, io.MultiReader(bytes.NewReader(head), r), nil
}
