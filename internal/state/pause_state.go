// internal/state/pause_state.go
package state

import (
	"image/color"

	"go-elemental-td/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var _ State = (*PauseState)(nil)

// PauseState freezes the game under a dimmed overlay. The game is not
// updated, so neither simulation nor scheduler time advances.
type PauseState struct {
	stateMachine  *StateMachine
	previousState State
}

func NewPauseState(sm *StateMachine, prevState State) *PauseState {
	return &PauseState{stateMachine: sm, previousState: prevState}
}

func pausePressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9)
}

func (s *PauseState) Enter() {}

func (s *PauseState) Exit() {}

func (s *PauseState) Update(deltaTime float64) {
	if pausePressed() {
		s.stateMachine.SetState(s.previousState)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	if s.previousState != nil {
		s.previousState.Draw(screen)
	}
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{A: 128}, false)

	face := basicfont.Face7x13
	msg := "PAUSED"
	bounds := text.BoundString(face, msg)
	text.Draw(screen, msg, face, (config.ScreenWidth-bounds.Dx())/2, config.ScreenHeight/2, color.White)
}
