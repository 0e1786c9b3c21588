package laserflow_test

import (
	"fmt"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/laserflow"
	"github.com/gogpu/laserflow/anim"
)

func ExampleNew() {
	surface := laserflow.NewImageSurface()
	defer surface.Close()

	c := laserflow.New(surface,
		laserflow.WithConfig(laserflow.NewConfig(laserflow.WithBeamCount(12))),
		laserflow.WithDevice(anim.DeviceInfo{CPUs: 8, MemoryGB: 16, PixelRatio: 1}),
	)
	c.Resize(320, 180)
	c.Start()

	// Drive three frames at 60 Hz.
	for i := range 3 {
		c.Queue().Fire(time.Duration(i) * time.Second / 60)
	}
	fmt.Println(c.State(), c.Frames(), len(c.Beams()))
	// Output: Running 3 12
}

func ExampleBeamGradient() {
	b := laserflow.Beam{Length: 100, Color: "#ff00ff", Opacity: 0.5}
	g := laserflow.BeamGradient(b).(*gg.LinearGradientBrush)
	for _, s := range g.Stops {
		fmt.Println(s.Offset, laserflow.CSSColor(s.Color))
	}
	// Output:
	// 0 rgba(255, 0, 255, 0)
	// 0.1 rgba(255, 0, 255, 0.25)
	// 0.5 rgba(255, 0, 255, 0.5)
	// 0.9 rgba(255, 0, 255, 0.25)
	// 1 rgba(255, 0, 255, 0)
}

func ExampleResolveConfig() {
	cfg := laserflow.NewConfig(laserflow.WithBeamCount(20))
	low := laserflow.ResolveConfig(cfg, anim.DeviceInfo{CPUs: 2, MemoryGB: 2})
	fmt.Println(low.BeamCount, low.GlowEnabled)
	// Output: 10 false
}
