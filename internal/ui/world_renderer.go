// internal/ui/world_renderer.go
package ui

import (
	"image/color"
	"math"

	"go-elemental-td/internal/config"
	"go-elemental-td/internal/defs"
	"go-elemental-td/internal/entity"
	"go-elemental-td/internal/types"
	"go-elemental-td/pkg/pathgraph"
	"go-elemental-td/pkg/render"
	"go-elemental-td/pkg/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// WorldRenderer draws the level from above. The path and obstacles never
// change during a game, so they are drawn once into mapImage.
type WorldRenderer struct {
	view     render.View
	colors   render.MapColors
	mapImage *ebiten.Image
}

func NewWorldRenderer(level *defs.LevelDefinition, graph *pathgraph.Graph, colors render.MapColors) *WorldRenderer {
	lo, hi := level.Extent()
	r := &WorldRenderer{
		view:   render.FitView(lo, hi, config.ScreenWidth, config.ScreenHeight-config.HUDHeight, config.MapMargin, 1),
		colors: colors,
	}
	r.view.OffsetY += config.HUDHeight
	r.renderMapImage(level, graph)
	return r
}

// View returns the world to screen mapping.
func (r *WorldRenderer) View() render.View { return r.view }

// ScreenToWorld converts a cursor position to the ground plane.
func (r *WorldRenderer) ScreenToWorld(x, y int) utils.Vec3 {
	return r.view.ToWorld(float64(x), float64(y))
}

func (r *WorldRenderer) point(p utils.Vec3) (float32, float32) {
	x, y := r.view.ToScreen(p)
	return float32(x), float32(y)
}

func (r *WorldRenderer) length(d float64) float32 { return float32(r.view.Length(d)) }

func (r *WorldRenderer) renderMapImage(level *defs.LevelDefinition, graph *pathgraph.Graph) {
	r.mapImage = ebiten.NewImage(config.ScreenWidth, config.ScreenHeight)
	r.mapImage.Fill(r.colors.BackgroundColor)

	for _, b := range level.Obstacles {
		x0, y0 := r.point(b.Min)
		x1, y1 := r.point(b.Max)
		vector.DrawFilledRect(r.mapImage, x0, y0, x1-x0, y1-y0, r.colors.ObstacleColor, true)
		vector.StrokeRect(r.mapImage, x0, y0, x1-x0, y1-y0, r.colors.StrokeWidth, render.DarkenColor(r.colors.ObstacleColor), true)
	}

	width := r.length(config.PathClearance * 2)
	for _, e := range graph.Edges() {
		x0, y0 := r.point(e.From.Position)
		x1, y1 := r.point(e.To.Position)
		vector.StrokeLine(r.mapImage, x0, y0, x1, y1, width, r.colors.PathColor, true)
	}
	// Round joints between segments.
	for _, e := range graph.Edges() {
		x, y := r.point(e.To.Position)
		vector.DrawFilledCircle(r.mapImage, x, y, width/2, r.colors.PathColor, true)
	}

	if entry := graph.Entry(); entry != nil {
		x, y := r.point(entry.Position)
		vector.DrawFilledCircle(r.mapImage, x, y, width, r.colors.EntryColor, true)
	}
	for _, exit := range graph.Exits() {
		x, y := r.point(exit.Position)
		vector.DrawFilledCircle(r.mapImage, x, y, width, r.colors.ExitColor, true)
	}
}

// Draw renders the map and every entity. The selected buildable gets its
// range drawn.
func (r *WorldRenderer) Draw(screen *ebiten.Image, ecs *entity.ECS, selected types.EntityID) {
	screen.DrawImage(r.mapImage, nil)

	for _, id := range entity.SortedIDs(ecs.Zones) {
		zone := ecs.Zones[id]
		if pos, ok := ecs.Positions[id]; ok {
			r.drawArea(screen, pos.Vec(), zone.Radius, config.ElementColors[zone.Element])
		}
	}
	for _, id := range entity.SortedIDs(ecs.Slowers) {
		if pos, ok := ecs.Positions[id]; ok {
			r.drawArea(screen, pos.Vec(), ecs.Slowers[id].Radius, config.ZoneColor)
		}
	}

	for _, id := range entity.SortedIDs(ecs.Towers) {
		r.drawTower(screen, ecs, id, id == selected)
	}
	for _, id := range entity.SortedIDs(ecs.Enemies) {
		r.drawEnemy(screen, ecs, id)
	}
	for _, id := range entity.SortedIDs(ecs.Projectiles) {
		pos, hasPos := ecs.Positions[id]
		rend, hasRender := ecs.Renderables[id]
		if !hasPos || !hasRender {
			continue
		}
		x, y := r.point(pos.Vec())
		vector.DrawFilledCircle(screen, x, y, r.length(float64(rend.Radius)), rend.Color, true)
	}
}

func (r *WorldRenderer) drawArea(screen *ebiten.Image, center utils.Vec3, radius float64, c color.RGBA) {
	x, y := r.point(center)
	vector.DrawFilledCircle(screen, x, y, r.length(radius), render.WithAlpha(c, 40), true)
	vector.StrokeCircle(screen, x, y, r.length(radius), 1, render.WithAlpha(c, 160), true)
}

func (r *WorldRenderer) drawTower(screen *ebiten.Image, ecs *entity.ECS, id types.EntityID, selected bool) {
	pos, hasPos := ecs.Positions[id]
	rend, hasRender := ecs.Renderables[id]
	if !hasPos || !hasRender {
		return
	}
	x, y := r.point(pos.Vec())
	radius := r.length(float64(rend.Radius))
	if rend.HasStroke {
		stroke := config.TowerStrokeColor
		if selected {
			stroke = config.SelectionColor
		}
		vector.DrawFilledCircle(screen, x, y, radius+float32(config.StrokeWidth), stroke, true)
	}
	vector.DrawFilledCircle(screen, x, y, radius, rend.Color, true)

	if turret, ok := ecs.Turrets[id]; ok {
		// Yaw zero faces +Z, which is down the screen.
		dx := float32(math.Sin(turret.Heading)) * radius * 1.6
		dy := float32(math.Cos(turret.Heading)) * radius * 1.6
		vector.StrokeLine(screen, x, y, x+dx, y+dy, 3, render.DarkenColor(rend.Color), true)
		if selected {
			tower := ecs.Towers[id]
			rangeRadius := tower.Value(defs.UpgradeVisionRadius, tower.Def.VisionRadius) / 2
			vector.StrokeCircle(screen, x, y, r.length(rangeRadius), 1, config.SelectionColor, true)
		}
	}
}

func (r *WorldRenderer) drawEnemy(screen *ebiten.Image, ecs *entity.ECS, id types.EntityID) {
	pos, hasPos := ecs.Positions[id]
	rend, hasRender := ecs.Renderables[id]
	if !hasPos || !hasRender {
		return
	}
	x, y := r.point(pos.Vec())
	radius := r.length(float64(rend.Radius))

	// One ring per present element, innermost first.
	if holder, ok := ecs.Modifiers[id]; ok {
		ring := radius
		for _, e := range defs.Elements {
			if !holder.Has(e) {
				continue
			}
			ring += 2
			vector.StrokeCircle(screen, x, y, ring, 2, config.ElementColors[e], true)
		}
	}
	body := rend.Color
	if flash, ok := ecs.DamageFlashes[id]; ok {
		body = render.Blend(body, config.TextLightColor, flash.Intensity())
	}
	vector.DrawFilledCircle(screen, x, y, radius, body, true)

	if health, ok := ecs.Healths[id]; ok && health.Max > 0 && health.Value < health.Max {
		fraction := health.Value / health.Max
		w := radius * 2
		top := y - radius - config.HealthBarHeight - 3
		vector.DrawFilledRect(screen, x-radius, top, w, config.HealthBarHeight, config.BackgroundColor, false)
		vector.DrawFilledRect(screen, x-radius, top, w*float32(fraction), config.HealthBarHeight, render.HealthColor(fraction), false)
	}
}
