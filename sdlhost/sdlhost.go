// Package sdlhost drives the cooperative CPU-step loop behind an SDL2
// window: it scales the 32x32 RGB332 framebuffer onto a texture, polls
// keyboard state into the four input latches, and refreshes the
// pseudo-random byte once per frame.
package sdlhost

import (
	"math/rand"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/arcbyte/m6502/cpu"
	"github.com/arcbyte/m6502/hostio"
	"github.com/arcbyte/m6502/memory"
)

const windowScale = 12

// Host owns the SDL2 window/renderer/texture triple and steps a CPU
// against a Memory between presented frames.
type Host struct {
	cpu *cpu.CPU
	mem *memory.Memory

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   []byte
	running  bool
}

// New opens an SDL2 window sized to the framebuffer scaled by windowScale
// and wires it to step c against mem.
func New(c *cpu.CPU, mem *memory.Memory) (*Host, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, err
	}

	width := int32(hostio.FramebufferWidth * windowScale)
	height := int32(hostio.FramebufferHeight * windowScale)

	window, err := sdl.CreateWindow("m6502",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		width, height, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, err
	}

	texture, err := renderer.CreateTexture(
		uint32(sdl.PIXELFORMAT_ABGR8888),
		sdl.TEXTUREACCESS_STREAMING,
		hostio.FramebufferWidth, hostio.FramebufferHeight)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		return nil, err
	}

	return &Host{
		cpu:      c,
		mem:      mem,
		window:   window,
		renderer: renderer,
		texture:  texture,
		pixels:   make([]byte, hostio.FramebufferWidth*hostio.FramebufferHeight*4),
		running:  true,
	}, nil
}

// Run steps the CPU stepsPerFrame times, then renders a frame, repeating
// until the window is closed or Step returns a fault.
func (h *Host) Run(stepsPerFrame int) error {
	for h.running {
		for i := 0; i < stepsPerFrame; i++ {
			if err := h.cpu.Step(); err != nil {
				return err
			}
		}
		if err := h.renderFrame(); err != nil {
			return err
		}
	}
	return nil
}

func (h *Host) renderFrame() error {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if _, ok := event.(*sdl.QuitEvent); ok {
			h.running = false
			return nil
		}
	}

	h.pollInput()
	h.mem.WriteByte(hostio.RNGByte, byte(rand.Intn(256)))

	for y := 0; y < hostio.FramebufferHeight; y++ {
		for x := 0; x < hostio.FramebufferWidth; x++ {
			r, g, b := hostio.RGB332ToRGB24(hostio.ReadPixel(h.mem, x, y))
			off := (y*hostio.FramebufferWidth + x) * 4
			h.pixels[off+0] = r
			h.pixels[off+1] = g
			h.pixels[off+2] = b
			h.pixels[off+3] = 0xFF
		}
	}

	if err := h.texture.Update(nil, unsafe.Pointer(&h.pixels[0]), hostio.FramebufferWidth*4); err != nil {
		return err
	}
	if err := h.renderer.Clear(); err != nil {
		return err
	}
	if err := h.renderer.Copy(h.texture, nil, nil); err != nil {
		return err
	}
	h.renderer.Present()
	return nil
}

func (h *Host) pollInput() {
	keys := sdl.GetKeyboardState()
	hostio.SetInput(h.mem,
		keys[sdl.SCANCODE_UP] != 0,
		keys[sdl.SCANCODE_DOWN] != 0,
		keys[sdl.SCANCODE_LEFT] != 0,
		keys[sdl.SCANCODE_RIGHT] != 0,
	)
}

// Close tears down the texture, renderer, window, and SDL subsystem, in
// that order.
func (h *Host) Close() {
	if h.texture != nil {
		h.texture.Destroy()
	}
	if h.renderer != nil {
		h.renderer.Destroy()
	}
	if h.window != nil {
		h.window.Destroy()
	}
	sdl.Quit()
}
