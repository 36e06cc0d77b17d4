// Command triangle opens a window with a WebGPU triangle.
//
// Keys:
//
//	Left, Right  move the triangle one slider step
//	Space        next palette color
//	R            reset position and color
//
// Usage:
//
//	triangle -variant interactive -color "#ff8800" -offset 0.25 -v
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/triangle"
	"github.com/gogpu/triangle/render"
)

func main() {
	var (
		width   = flag.Int("width", 800, "window width")
		height  = flag.Int("height", 600, "window height")
		variant = flag.String("variant", "interactive", "program variant: plain, color or interactive")
		color   = flag.String("color", "#ff0000", "initial fill color")
		offset  = flag.Float64("offset", 0, "initial horizontal offset in clip space")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		triangle.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	v, err := triangle.ParseVariant(*variant)
	if err != nil {
		log.Fatalf("Invalid -variant: %v", err)
	}

	scene := triangle.NewScene(v)
	slider := triangle.NewSlider()
	picker := triangle.NewColorPicker(nil)

	in, err := picker.Pick(*color)
	if err != nil {
		log.Fatalf("Invalid -color: %v", err)
	}
	scene.Apply(in)
	scene.Apply(slider.Set(float32(*offset)))

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("Triangle: " + v.String()).
		WithSize(*width, *height).
		WithContinuousRender(true))

	renderer := render.NewGPURenderer(scene)
	var ready bool

	app.OnDraw(func(dc *gogpu.Context) {
		sw, sh := dc.SurfaceSize()
		if sw == 0 || sh == 0 {
			return
		}
		if !ready {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			if err := renderer.SetDeviceProvider(provider); err != nil {
				log.Fatalf("Failed to use window device: %v", err)
			}
			log.Printf("Backend: %s", dc.Backend())
			ready = true
		}

		sv := dc.SurfaceView()
		if sv == nil {
			return
		}
		if _, err := renderer.RenderToView(sv, 0, sw, sh); err != nil {
			log.Printf("Draw error: %v", err)
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		var input triangle.Input
		switch key {
		case gpucontext.KeyLeft:
			input = slider.Nudge(-1)
		case gpucontext.KeyRight:
			input = slider.Nudge(1)
		case gpucontext.KeySpace:
			input = picker.Next()
		case gpucontext.KeyR:
			scene.Apply(slider.Reset())
			input = picker.Reset()
		default:
			return
		}
		if scene.Apply(input) {
			triangle.Logger().Info("input applied", "offset", slider.Value(), "color", scene.Color().Hex())
		}
	})

	app.OnClose(func() {
		renderer.Close()
	})

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
