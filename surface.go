package laserflow

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
)

// Surface is the drawing target a Controller owns. Its backing store is
// sized in device pixels; the Controller installs the device pixel ratio
// as a scale transform so beams are drawn in logical pixels.
//
// *ggcanvas.Canvas from github.com/gogpu/gg/integration/ggcanvas
// satisfies Surface.
type Surface interface {
	// Resize sets the backing store size in device pixels.
	Resize(width, height int) error
	// Context returns the drawing context, or nil if none is available.
	Context() *gg.Context
}

// ErrInvalidSize is returned by ImageSurface.Resize for non-positive sizes.
var ErrInvalidSize = errors.New("laserflow: surface size must be positive")

// ImageSurface is a Surface backed by a software gg.Context. The context
// is created on the first Resize.
type ImageSurface struct {
	dc *gg.Context
}

var _ Surface = (*ImageSurface)(nil)

// NewImageSurface returns a surface without a backing store.
func NewImageSurface() *ImageSurface {
	return &ImageSurface{}
}

// Resize implements Surface.
func (s *ImageSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if s.dc == nil {
		s.dc = gg.NewContext(width, height)
		return nil
	}
	return s.dc.Resize(width, height)
}

// Context implements Surface.
func (s *ImageSurface) Context() *gg.Context {
	return s.dc
}

// Pixels returns the backing store as 8-bit RGBA rows, or nil before the
// first Resize. The slice aliases the surface and changes with every frame.
func (s *ImageSurface) Pixels() (pix []byte, width, height int) {
	if s.dc == nil {
		return nil, 0, 0
	}
	return s.dc.ResizeTarget().Data(), s.dc.Width(), s.dc.Height()
}

// SavePNG writes the current frame to path.
func (s *ImageSurface) SavePNG(path string) error {
	if s.dc == nil {
		return fmt.Errorf("laserflow: save %s: %w", path, ErrInvalidSize)
	}
	return s.dc.SavePNG(path)
}

// Close releases the drawing context.
func (s *ImageSurface) Close() error {
	if s.dc == nil {
		return nil
	}
	err := s.dc.Close()
	s.dc = nil
	return err
}
