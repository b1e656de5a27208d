package model

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/tsawler/rostra/geom"
)

// Picture represents an embedded raster image
type Picture struct {
	Rect        geom.Rect
	Data        []byte
	Format      string // "png", "jpeg", "gif", "tiff", or "bmp"
	PixelWidth  int    // intrinsic width in pixels
	PixelHeight int    // intrinsic height in pixels
}

func (p *Picture) Type() PrimitiveType { return PrimitivePicture }
func (p *Picture) Bounds() geom.Rect   { return p.Rect }

// AddPicture places an image on the slide. The format is sniffed from the
// encoded bytes. A zero width or height in the rect is filled in from the
// intrinsic pixel size at 96 dpi, preserving the aspect ratio when only one
// dimension is given.
func (s *Slide) AddPicture(r geom.Rect, data []byte) (*Picture, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	switch {
	case r.Width == 0 && r.Height == 0:
		r.Width = geom.Pixels(float64(cfg.Width))
		r.Height = geom.Pixels(float64(cfg.Height))
	case r.Width == 0:
		r.Width = geom.EMU(int64(r.Height) * int64(cfg.Width) / int64(cfg.Height))
	case r.Height == 0:
		r.Height = geom.EMU(int64(r.Width) * int64(cfg.Height) / int64(cfg.Width))
	}

	p := &Picture{
		Rect:        r,
		Data:        data,
		Format:      format,
		PixelWidth:  cfg.Width,
		PixelHeight: cfg.Height,
	}
	s.Primitives = append(s.Primitives, p)
	return p, nil
}
