package hris

import (
	"fmt"
	"io"

	"github.com/oakwood-commons/hris/pkg/loader"
)

// LoadPage reads page data from path in any format the loader detects. A path
// of "-" reads stdin.
func LoadPage(path string) (*PageData, error) {
	var p PageData
	if err := loader.DecodeFile(path, &p); err != nil {
		return nil, fmt.Errorf("load page data from %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ReadPage decodes page data from r.
func ReadPage(r io.Reader) (*PageData, error) {
	var p PageData
	if err := loader.DecodeReader(r, &p); err != nil {
		return nil, fmt.Errorf("read page data: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
