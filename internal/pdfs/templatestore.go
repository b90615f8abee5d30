package pdfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// TemplateStore holds the raw template PDFs and the base font, loaded
// once at startup and shared read-only across renders.
type TemplateStore struct {
	templates  map[string][]byte
	fontFamily string
	font       []byte
}

// LoadTemplateStore reads one template file per variant plus the base
// font from dir. The context is honored between reads so startup can be
// bounded by a timeout; a missing file fails the whole load.
func LoadTemplateStore(ctx context.Context, dir string, files map[string]string, fontFamily, fontFile string) (*TemplateStore, error) {
	s := &TemplateStore{
		templates:  make(map[string][]byte, len(files)),
		fontFamily: fontFamily,
	}

	for variant, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", variant, err)
		}
		s.templates[variant] = data
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	font, err := os.ReadFile(filepath.Join(dir, fontFile))
	if err != nil {
		return nil, fmt.Errorf("reading font %s: %w", fontFile, err)
	}
	s.font = font

	return s, nil
}

// Template returns the raw bytes for a variant.
func (s *TemplateStore) Template(variant string) ([]byte, error) {
	data, ok := s.templates[variant]
	if !ok {
		return nil, fmt.Errorf("no template registered for variant %s", variant)
	}
	return data, nil
}

// Font returns the embedded base font.
func (s *TemplateStore) Font() (family string, data []byte) {
	return s.fontFamily, s.font
}
