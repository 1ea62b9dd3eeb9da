// Command cadhost is a headless host shell: it wires a scene, a feature
// history engine, and the embedded-frame bridge together, loads a history
// JSON file if one is given, runs it, and optionally exports the
// resulting solids to 3MF. There is no window and no postMessage; the
// viewport and iframe host live in a separate frontend. This is the
// smallest program that exercises every layer of the pipeline end to end
// from a plain main().
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/lignin-cad/core/pkg/bridge"
	"github.com/lignin-cad/core/pkg/export"
	"github.com/lignin-cad/core/pkg/feature"
	"github.com/lignin-cad/core/pkg/kernel"
	manifoldkernel "github.com/lignin-cad/core/pkg/kernel/manifold"
	sdfxkernel "github.com/lignin-cad/core/pkg/kernel/sdfx"
	"github.com/lignin-cad/core/pkg/scene"
)

// newPreviewKernel resolves a cheap signed-distance preview backend by
// name. "sdfx" is always
// linked in; "manifold" is only functional when built with -tags=manifold
// against a local libmanifoldc (pkg/kernel/manifold/manifold_stub.go
// otherwise reports it unavailable).
func newPreviewKernel(name string) (kernel.Kernel, error) {
	switch name {
	case "sdfx":
		return sdfxkernel.New(), nil
	case "manifold":
		return manifoldkernel.New()
	default:
		return nil, fmt.Errorf("cadhost: unknown preview kernel %q (want sdfx or manifold)", name)
	}
}

func main() {
	historyFile := flag.String("file", "", "history JSON file to load and run")
	fileRoot := flag.String("root", ".", "root directory the file store resolves paths against")
	exportPath := flag.String("export-3mf", "", "if set, write the resulting scene's solids to this 3MF path")
	previewKernel := flag.String("preview-kernel", "", "if set (sdfx or manifold), rasterize each solid's bounding box through it and log mesh stats")
	flag.Parse()

	cfg := kernel.NewConfig()

	sc := scene.New()
	h := feature.New(sc)
	store := bridge.NewOSFileStore(*fileRoot)
	fr := bridge.NewFrame("cadhost", "local", h, store)
	tr := bridge.NewTransport()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go bridge.Serve(ctx, fr, tr)

	client := bridge.NewClient("cadhost", "local", tr, cfg.BridgeTimeout, func(e bridge.Envelope) {
		log.Printf("cadhost: event %s", e.Type)
	})
	defer client.Dispose()

	if *historyFile != "" {
		resp, err := client.Call(ctx, bridge.TypeLoadFile, map[string]string{"path": *historyFile})
		if err != nil {
			log.Fatalf("cadhost: loadFile: %v", err)
		}
		if resp.Error != nil {
			log.Fatalf("cadhost: loadFile: %s", resp.Error.Message)
		}
	}

	state, err := client.Call(ctx, bridge.TypeGetState, nil)
	if err != nil {
		log.Fatalf("cadhost: getState: %v", err)
	}
	log.Printf("cadhost: state = %s", string(state.Payload))

	if *exportPath != "" {
		f, err := os.Create(*exportPath)
		if err != nil {
			log.Fatalf("cadhost: creating %q: %v", *exportPath, err)
		}
		defer f.Close()
		if err := export.ThreeMF(f, sc.Solids()); err != nil {
			log.Fatalf("cadhost: exporting 3mf: %v", err)
		}
		log.Printf("cadhost: wrote %s", *exportPath)
	}

	if *previewKernel != "" {
		pk, err := newPreviewKernel(*previewKernel)
		if err != nil {
			log.Fatalf("cadhost: preview kernel: %v", err)
		}
		for name, solid := range sc.Solids() {
			min, max := solid.BoundingBox()
			box := pk.Box(max.X-min.X, max.Y-min.Y, max.Z-min.Z)
			mesh, err := pk.ToMesh(box)
			if err != nil {
				log.Printf("cadhost: preview kernel: %s: %v", name, err)
				continue
			}
			mesh.SolidName = name
			log.Printf("cadhost: preview[%s] %s: %d verts, %d tris",
				*previewKernel, mesh.SolidName, mesh.VertexCount(), mesh.TriangleCount())
		}
	}
}
