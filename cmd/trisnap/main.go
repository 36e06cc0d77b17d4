// Command trisnap renders one triangle frame to a PNG file.
//
// The gpu backend draws offscreen and reads the texture back. The software
// backend rasterizes the same triangle with gg and needs no GPU.
//
// Usage:
//
//	trisnap -backend gpu -offset 0.3 -color "#00ff00" -output triangle.png
//	trisnap -backend software -supersample 4
package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/triangle"
	"github.com/gogpu/triangle/render"
)

func main() {
	var (
		width       = flag.Int("width", 800, "image width")
		height      = flag.Int("height", 600, "image height")
		backend     = flag.String("backend", render.BackendGPU, "renderer backend: "+strings.Join(render.Backends(), ", "))
		variant     = flag.String("variant", "interactive", "program variant: plain, color or interactive")
		color       = flag.String("color", "#ff0000", "fill color")
		background  = flag.String("background", "#ffffff", "clear color")
		offset      = flag.Float64("offset", 0, "horizontal offset in clip space")
		supersample = flag.Int("supersample", 1, "software supersampling factor")
		spirv       = flag.Bool("spirv", false, "pass shaders to the device as SPIR-V")
		lowPower    = flag.Bool("lowpower", false, "prefer an integrated GPU")
		output      = flag.String("output", "triangle.png", "output file")
		verbose     = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		triangle.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	v, err := triangle.ParseVariant(*variant)
	if err != nil {
		log.Fatalf("Invalid -variant: %v", err)
	}
	fill, err := triangle.ParseHex(*color)
	if err != nil {
		log.Fatalf("Invalid -color: %v", err)
	}
	bg, err := triangle.ParseHex(*background)
	if err != nil {
		log.Fatalf("Invalid -background: %v", err)
	}

	scene := triangle.NewScene(v)
	slider := triangle.NewSlider()
	scene.Apply(triangle.ColorInput{Color: fill})
	scene.Apply(slider.Set(float32(*offset)))

	opts := []render.Option{
		render.WithClearColor(bg),
		render.WithSupersample(*supersample),
	}
	if *spirv {
		opts = append(opts, render.WithShaderFormat(render.ShaderSPIRV))
	}
	if *lowPower {
		opts = append(opts, render.WithPowerPreference(gputypes.PowerPreferenceLowPower))
	}

	r, err := render.NewRenderer(*backend, scene, opts...)
	if errors.Is(err, render.ErrNoGPU) {
		log.Fatalf("No GPU available: %v (try -backend software)", err)
	}
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	if g, ok := r.(*render.GPURenderer); ok {
		log.Printf("Adapter: %s", g.DeviceName())
	}

	pm, err := r.Snapshot(*width, *height)
	r.Close()
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := pm.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Triangle saved to %s (%dx%d, %s, offset %.2f, %s)\n",
		*output, *width, *height, *backend, slider.Value(), scene.Color())
}
