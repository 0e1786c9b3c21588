// Package laserflow draws an animated background of flowing laser beams:
// thin line segments that drift across the surface, fading in at the
// tail and out at the head.
//
// # Overview
//
// A [Controller] owns a [Surface], the beam population and a frame loop.
// Beams spawn just outside the left or right edge, travel inward at a
// slight angle and are replaced by a fresh beam once they leave the
// viewport padded by their own length plus 100 px. Drawing goes through
// the gogpu gg 2D API, so any gg context works as a target.
//
// # Quick Start
//
//	surface := laserflow.NewImageSurface()
//	c := laserflow.New(surface,
//	    laserflow.WithConfig(laserflow.NewConfig(laserflow.WithBeamCount(30))),
//	)
//	c.Resize(800, 600)
//	c.Start()
//
//	// Once per display refresh, on the render goroutine:
//	c.Queue().Fire(time.Since(start))
//
// # Scheduling
//
// The Controller never sleeps or starts goroutines for the loop. It asks
// a [Scheduler] for one callback per frame, and the host fires those
// callbacks from its own refresh signal. [FrameQueue] is the Scheduler
// every host in this module uses. Motion is scaled by the real time
// between frames, so speed does not depend on the refresh rate.
//
// # Hosts
//
// Ready-made hosts live in sub-packages:
//   - host/gogpuhost: a gogpu window, GPU-composited via ggcanvas
//   - host/ebitenhost: an Ebitengine window
//   - host/termhost: a truecolor terminal via tcell
//
// # Coordinate System
//
// Beam coordinates are logical pixels with the origin at the top-left,
// x growing right and y growing down. The Controller scales the drawing
// context by the device pixel ratio, capped at 2 by default.
package laserflow
