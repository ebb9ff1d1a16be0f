package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSink receives raw pointer samples in framebuffer pixels
type PointerSink interface {
	PointerMoved(x, y float32)
}

// InputState tracks the pointer and the few keys the backdrop reacts to
type InputState struct {
	// Pointer
	PointerX, PointerY int
	havePointer        bool
	touchIDs           []ebiten.TouchID

	// Keys pressed this frame
	ToggleFullscreen bool
	ToggleStats      bool
	Quit             bool
}

func NewInputState() *InputState {
	return &InputState{}
}

// Update should be called every frame. It forwards a pointer sample to sink
// only when the pointer actually moved, so one sample is delivered per
// movement rather than per frame.
func (s *InputState) Update(sink PointerSink) {
	x, y := ebiten.CursorPosition()

	// Touch overrides the cursor while a finger is down
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	if len(s.touchIDs) > 0 {
		x, y = ebiten.TouchPosition(s.touchIDs[0])
	}

	// The first frame only records a baseline: no movement has happened yet
	moved := s.havePointer && (x != s.PointerX || y != s.PointerY)
	s.havePointer = true
	s.PointerX, s.PointerY = x, y
	if moved && sink != nil {
		sink.PointerMoved(float32(x), float32(y))
	}

	s.ToggleFullscreen = inpututil.IsKeyJustPressed(ebiten.KeyF)
	s.ToggleStats = inpututil.IsKeyJustPressed(ebiten.KeyH)
	s.Quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}
