package engine

// Renderer draws a frame. Renderers run on the loop goroutine and should
// not keep the Frame's board beyond the call.
type Renderer interface {
	Render(frame *Frame)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(frame *Frame)

func (f RendererFunc) Render(frame *Frame) { f(frame) }
