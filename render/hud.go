package render

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/resonance/scene"
)

type hud struct {
	face text.Face
}

func newHUD() *hud {
	return &hud{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (h *hud) draw(screen *ebiten.Image, sc *scene.Scene) {
	for i, line := range hudLines(sc) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(6, 4+float64(i)*14)
		op.ColorScale.ScaleWithColor(colornames.Lightgoldenrodyellow)
		text.Draw(screen, line, h.face, op)
	}
}

// hudLines formats the debug readout for the scene.
func hudLines(sc *scene.Scene) []string {
	st := sc.Current()
	tr := sc.Transition()
	lines := []string{
		fmt.Sprintf("map %s  fps %.0f", st.ID(), ebiten.ActualFPS()),
		fmt.Sprintf("transition %s  %.2f", tr.Phase, tr.Progress),
		fmt.Sprintf("motes %d/%d", sc.Pool().ActiveCount, sc.Pool().Size()),
	}
	if px, py, ok := sc.PlayerCenter(); ok {
		m := st.Map
		tx := int(math.Floor(px / float64(m.TileWidth)))
		ty := int(math.Floor(py / float64(m.TileHeight)))
		area := "-"
		if a, ok := st.Vibrancy.AreaAt(tx, ty); ok {
			area = fmt.Sprintf("%s (%s)", a.ID, a.State)
		}
		lines = append(lines, fmt.Sprintf("tile %d,%d  area %s", tx, ty, area))
	}
	if n := len(sc.Returns()); n > 0 {
		lines = append(lines, fmt.Sprintf("child world depth %d", n))
	}
	return lines
}
