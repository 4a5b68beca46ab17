package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestHandleTracksButtonsAndMotion(t *testing.T) {
	in := New()

	in.handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 10, Y: 20})
	in.handle(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 13, Y: 18, XRel: 3, YRel: -2})
	in.handle(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 15, Y: 18, XRel: 2, YRel: 0})
	in.handle(&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2})
	in.handle(&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 1, Direction: sdl.MOUSEWHEEL_FLIPPED})

	if !in.IsButtonHeld(sdl.BUTTON_LEFT) {
		t.Error("left button should be held")
	}
	if dx, dy := in.Drag(); dx != 5 || dy != -2 {
		t.Errorf("Drag = (%d, %d), want (5, -2)", dx, dy)
	}
	if s := in.Scroll(); s != 1 {
		t.Errorf("Scroll = %v, want 1", s)
	}

	in.handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT})
	if in.IsButtonHeld(sdl.BUTTON_LEFT) {
		t.Error("left button should be released")
	}
}

func TestHandleKeysAndQuit(t *testing.T) {
	in := New()

	in.handle(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_R}})
	in.handle(&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_C}})

	if !in.IsKeyPressed(sdl.SCANCODE_R) {
		t.Error("R should be pressed this frame")
	}
	if in.IsKeyPressed(sdl.SCANCODE_C) {
		t.Error("a key release is not a press")
	}

	if !in.handle(&sdl.QuitEvent{Type: sdl.QUIT}) {
		t.Error("quit event should ask to quit")
	}
	if got := in.Events()[len(in.Events())-1].Type; got != EventQuit {
		t.Errorf("last event = %v, want EventQuit", got)
	}
}
