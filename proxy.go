// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import "go.uber.org/zap"

// ContextProxy is one GUI context: its draw subscribers, the native context
// it owns and the state of the frame being built.
type ContextProxy struct {
	index ContextIndex
	name  string

	draw DrawEvent

	backend Backend
	native  NativeContext
	hasGUI  bool

	frame     Frame
	lastFrame uint64
	ticked    bool
	inFrame   bool
	drawData  *DrawData
	capture   Capture

	log *zap.Logger
}

func newContextProxy(index ContextIndex, name string, backend Backend, textures textureNamer, log *zap.Logger) *ContextProxy {
	p := &ContextProxy{
		index:   index,
		name:    name,
		backend: backend,
		log:     log.With(zap.Int32("context", int32(index)), zap.String("name", name)),
	}

	if backend != nil {
		native, err := backend.CreateContext()
		if err != nil {
			p.log.Error("create GUI context failed, context will not draw", zap.Error(err))
		} else {
			p.native = native
			p.hasGUI = true
		}
	}

	p.frame = Frame{
		Index:    index,
		backend:  backend,
		native:   p.native,
		hasGUI:   p.hasGUI,
		textures: textures,
	}
	p.log.Debug("context created")
	return p
}

// Index returns the context's index.
func (p *ContextProxy) Index() ContextIndex {
	return p.index
}

// Name returns a readable name for logs ("editor", "standalone", "world-3").
func (p *ContextProxy) Name() string {
	return p.name
}

// OnDraw is the list of callbacks drawn into this context every frame.
func (p *ContextProxy) OnDraw() *DrawEvent {
	return &p.draw
}

// HasGUI reports whether the proxy owns a live native context.
func (p *ContextProxy) HasGUI() bool {
	return p.hasGUI
}

// DrawData returns the draw data of the last finished frame.
func (p *ContextProxy) DrawData() *DrawData {
	return p.drawData
}

// Capture reports the input captured during the last finished frame.
func (p *ContextProxy) Capture() Capture {
	return p.capture
}

// LastFrame returns the number of the last frame the proxy was ticked for.
func (p *ContextProxy) LastFrame() uint64 {
	return p.lastFrame
}

// beginFrame starts frame params.Frame. It returns false when the proxy was
// already ticked for that frame.
func (p *ContextProxy) beginFrame(params FrameParams, input *InputEvents) bool {
	if p.ticked && p.lastFrame == params.Frame {
		return false
	}
	p.ticked = true
	p.lastFrame = params.Frame

	p.frame.Number = params.Frame
	p.frame.DeltaTime = params.DeltaTime
	p.frame.Width = params.Width
	p.frame.Height = params.Height
	p.frame.InputActive = params.InputActive

	if p.hasGUI {
		if params.InputActive && input != nil {
			p.backend.FeedInput(p.native, input)
		}
		p.backend.NewFrame(p.native, params)
		p.inFrame = true
	}
	return true
}

func (p *ContextProxy) broadcastDraw() {
	p.draw.Broadcast(&p.frame)
}

func (p *ContextProxy) endFrame(params FrameParams) {
	if !p.inFrame {
		return
	}
	p.inFrame = false
	if params.ShowDemo {
		p.backend.ShowDemoWindow(p.native)
	}
	p.drawData, p.capture = p.backend.Render(p.native)
	if !params.InputActive {
		p.capture = Capture{}
	}
}

func (p *ContextProxy) destroy() {
	p.draw.Clear()
	p.drawData = nil
	if p.hasGUI {
		p.backend.DestroyContext(p.native)
		p.hasGUI = false
		p.frame.hasGUI = false
	}
	p.log.Debug("context destroyed")
}
