// strike-sandbox renders a live storm on a globe in the terminal.
//
// By default a seeded synthetic feed drives the registry; pass -url to
// consume a real websocket strike feed instead. Keys: q/esc quit,
// +/- change animation speed, b toggle bolts, c clear.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/arclight/strikefx/audio"
	"github.com/arclight/strikefx/effect"
	"github.com/arclight/strikefx/feed"
	"github.com/arclight/strikefx/geo"
	"github.com/arclight/strikefx/parameter"
	"github.com/arclight/strikefx/registry"
	"github.com/arclight/strikefx/render"
	"github.com/arclight/strikefx/scene"
	"github.com/arclight/strikefx/status"
	"github.com/arclight/strikefx/vmath"
)

const worldRadius = 100.0

var (
	colorGlow  = render.RGB{R: 255, G: 240, B: 180}
	colorGlobe = render.RGB{R: 30, G: 45, B: 60}
)

// liveConfig is the mutable configuration surface behind the registry's
// provider; changes affect only subsequently created effects
type liveConfig struct {
	mu  sync.Mutex
	cfg parameter.Config
}

func (lc *liveConfig) get() parameter.Config {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.cfg
}

func (lc *liveConfig) mutate(fn func(*parameter.Config)) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	fn(&lc.cfg)
}

func main() {
	url := flag.String("url", "", "websocket strike feed; empty runs the synthetic storm")
	rate := flag.Duration("rate", 400*time.Millisecond, "synthetic strike interval")
	seed := flag.Uint64("seed", 1, "synthetic storm seed")
	maxActive := flag.Int("max-active", parameter.DefaultMaxActiveAnimations, "concurrent animated strikes")
	maxMarkers := flag.Int("max-markers", parameter.DefaultMaxDisplayedStrikes, "displayed markers")
	silent := flag.Bool("silent", false, "disable the thunder cue")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()

	cfg := parameter.Defaults()
	cfg.MaxActiveAnimations = *maxActive
	cfg.MaxDisplayedStrikes = *maxMarkers
	live := &liveConfig{cfg: cfg}

	container := scene.NewContainer()
	reg := registry.New(registry.Options{
		Locator:   geo.NewSphereLocator(worldRadius),
		Container: container,
		Config:    live.get,
	})
	defer reg.Dispose()

	glow := effect.NewGroundGlow(reg.Sync(), container, 0.02*worldRadius, scene.Color(colorGlow), 0.5)
	defer glow.Dispose()

	var thunder *audio.Thunder
	if !*silent {
		thunder = audio.NewThunder()
	}

	var src feed.Source
	if *url != "" {
		src = feed.NewWebsocketSource(*url)
	} else {
		src = feed.NewSyntheticSource(*rate, *seed)
	}
	reg.AttachSource(&teeSource{inner: src, thunder: thunder})

	run(screen, reg, glow, container, live)
}

// teeSource forwards feed events and fires the thunder cue on each one
type teeSource struct {
	inner   feed.Source
	thunder *audio.Thunder
}

func (t *teeSource) Subscribe(fn feed.Callback) func() {
	return t.inner.Subscribe(func(ev feed.StrikeEvent) {
		if t.thunder != nil {
			t.thunder.Play(ev.Intensity)
		}
		fn(ev)
	})
}

func run(screen tcell.Screen, reg *registry.Registry, glow *effect.GroundGlow, container *scene.Container, live *liveConfig) {
	w, h := screen.Size()
	buf := render.NewBuffer(w, h)

	quit := make(chan struct{})
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
					close(quit)
					return
				case ev.Rune() == '+' || ev.Rune() == '=':
					adjustSpeed(live, reg, 1.25)
				case ev.Rune() == '-':
					adjustSpeed(live, reg, 0.8)
				case ev.Rune() == 'b':
					live.mutate(func(c *parameter.Config) { c.ShowStrike = !c.ShowStrike })
				case ev.Rune() == 'c':
					reg.Clear()
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case now := <-ticker.C:
			reg.Update(now)
			glow.Update(now)

			w, h = screen.Size()
			buf.Resize(w, h)
			buf.Clear()

			drawGlobe(buf, w, h)
			drawScene(buf, container, w, h)
			buf.Flush(screen)
			drawStatus(screen, reg, live, h)
			screen.Show()
		}
	}
}

func adjustSpeed(live *liveConfig, reg *registry.Registry, factor float64) {
	var next float64
	live.mutate(func(c *parameter.Config) {
		c.SpeedFactor *= factor
		if c.SpeedFactor < parameter.MinSpeedFactor {
			c.SpeedFactor = parameter.MinSpeedFactor
		}
		next = c.SpeedFactor
	})
	// In-flight effects rescale without losing progress
	reg.SetSpeed(next)
}

// project maps world space onto the terminal with an orthographic camera
// on the +Z axis; only the facing hemisphere is drawn
func project(p vmath.Vec3, w, h int) (x, y int, visible bool) {
	scale := float64(h) * 0.42 / worldRadius
	x = w/2 + int(p.X*scale*2)
	y = h/2 - int(p.Y*scale)
	return x, y, p.Z > 0
}

func drawGlobe(buf *render.Buffer, w, h int) {
	// Faint limb circle so the stage reads even between strikes
	steps := 180
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		p := vmath.Vec3{X: worldRadius * math.Cos(a), Y: worldRadius * math.Sin(a), Z: 0.001}
		if x, y, ok := project(p, w, h); ok {
			buf.Set(x, y, colorGlobe, 1)
		}
	}
}

func drawScene(buf *render.Buffer, container *scene.Container, w, h int) {
	for _, v := range container.Snapshot() {
		alpha := v.Alpha()
		if alpha <= 0 {
			continue
		}
		switch m := v.(type) {
		case *scene.LineMesh:
			drawPolyline(buf, m.Points(), render.RGB(m.Color()), alpha, w, h)
		case *scene.DiscMesh:
			if x, y, ok := project(m.Center(), w, h); ok {
				cells := m.Radius() / worldRadius * float64(h) * 0.42
				buf.DrawDisc(x, y, cells, render.RGB(m.Color()), alpha)
			}
		}
	}
}

func drawPolyline(buf *render.Buffer, points []vmath.Vec3, color render.RGB, alpha float64, w, h int) {
	for i := 0; i+1 < len(points); i++ {
		x0, y0, v0 := project(points[i], w, h)
		x1, y1, v1 := project(points[i+1], w, h)
		if !v0 && !v1 {
			continue
		}
		buf.DrawLine(x0, y0, x1, y1, color, alpha)
	}
}

func drawStatus(screen tcell.Screen, reg *registry.Registry, live *liveConfig, h int) {
	cfg := live.get()
	admitted := reg.Metrics().Ints.Get(status.StrikesAdmitted).Load()
	line := fmt.Sprintf(
		"strikes %d/%d  markers %d/%d  admitted %d  speed %.2fx  bolts %v  [q]uit [+/-] speed [b]olts [c]lear",
		reg.ActiveCount(), cfg.MaxActiveAnimations,
		reg.MarkerCount(), cfg.MaxDisplayedStrikes,
		admitted, cfg.SpeedFactor, cfg.ShowStrike,
	)
	render.DrawText(screen, 1, h-1, line, render.RGB{R: 160, G: 160, B: 160})
}
