// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ebimgui

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// FontAtlasName is the texture name of the shared font atlas.
const FontAtlasName Name = "ImGuiFontAtlas"

// Options for creating a module. All fields are optional.
type Options struct {
	Config     *Config     // used as-is when set
	ConfigPath string      // loaded when Config is nil; watched when Config.Watch is set
	Backend    Backend     // GUI engine; defaults to the native imgui_bridge library
	Host       Host        // world lookup; without one every world delegate goes to the standalone context
	Logger     *zap.Logger // defaults to a logger built from Config.Logging
	Input      InputSource // defaults to ebiten input
}

// Module ties the GUI engine to an ebiten game. It owns the context manager
// and the texture registry; both live exactly as long as the module.
//
// A Module is used from the game loop goroutine. Only the input-mode and
// demo flags may be read from other goroutines.
type Module struct {
	cfg        *Config
	configPath string

	log     *zap.Logger
	ownsLog bool

	watcher        *configWatcher
	backend        Backend
	textures       *TextureRegistry[*ebiten.Image]
	owned          map[*ebiten.Image]struct{}
	fontAtlas      TextureHandle
	contexts       *ContextManager
	renderer       *renderer
	stopWorldWatch func()

	host   Host
	input  InputSource
	events InputEvents

	toggleKey, demoKey       ebiten.Key
	hasToggleKey, hasDemoKey bool

	handle  *ContextHandle
	frame   uint64
	width   float32
	height  float32
	capture Capture
	closed  atomic.Bool
}

// NewModule creates a module without publishing it as the process-wide
// module. Most games use Startup instead.
func NewModule(opts *Options) (*Module, error) {
	if opts == nil {
		opts = &Options{}
	}

	cfg := opts.Config
	if cfg == nil {
		if opts.ConfigPath != "" {
			var err error
			if cfg, err = LoadConfig(opts.ConfigPath); err != nil {
				return nil, err
			}
		} else {
			cfg = DefaultConfig()
		}
	}

	m := &Module{
		cfg:        cfg,
		configPath: opts.ConfigPath,
		host:       opts.Host,
		input:      opts.Input,
		owned:      make(map[*ebiten.Image]struct{}),
		width:      float32(cfg.Display.Width),
		height:     float32(cfg.Display.Height),
	}
	if m.input == nil {
		m.input = &ebitenInput{}
	}

	var err error
	if m.toggleKey, m.hasToggleKey, err = parseKey(cfg.Input.ToggleKey); err != nil {
		return nil, fmt.Errorf("input.toggle_key: %w", err)
	}
	if m.demoKey, m.hasDemoKey, err = parseKey(cfg.Input.DemoKey); err != nil {
		return nil, fmt.Errorf("input.demo_key: %w", err)
	}

	// Construction order; Close undoes it backwards.
	m.log = opts.Logger
	if m.log == nil {
		if m.log, err = newLogger(cfg.Logging); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		m.ownsLog = true
	}
	Console.SetLogger(m.log.Named("console"))

	if cfg.Watch && m.configPath != "" {
		if m.watcher, err = watchConfig(m.configPath, m.log.Named("config")); err != nil {
			m.closeLogger()
			return nil, err
		}
	}

	m.backend = opts.Backend
	if m.backend == nil {
		if m.backend, err = NewNativeBackend(cfg.Bridge); err != nil {
			m.closeWatcher()
			m.closeLogger()
			return nil, err
		}
	}

	m.applyCVars(cfg.CVars)

	m.textures = NewTextureRegistry(m.releaseImage)
	m.createFontAtlas()

	m.contexts = NewContextManager(m.backend, m.textures, m.log.Named("contexts"))
	m.renderer = newRenderer(m.textures, m.log.Named("render"))

	if n, ok := m.host.(worldDestroyNotifier); ok {
		m.stopWorldWatch = n.OnDestroy(m.contexts.WorldDestroyed)
	}

	m.handle = &ContextHandle{}
	m.handle.repoint(m)

	m.log.Info("module started",
		zap.Bool("input_mode", m.IsInputMode()),
		zap.Bool("show_demo", m.IsShowingDemo()),
		zap.Bool("watch_config", m.watcher != nil))
	return m, nil
}

// Close tears the module down in reverse construction order. Closing twice
// is a programming error.
func (m *Module) Close() {
	if !m.closed.CompareAndSwap(false, true) {
		m.log.Panic("module closed twice")
	}

	if m.stopWorldWatch != nil {
		m.stopWorldWatch()
		m.stopWorldWatch = nil
	}
	m.contexts.Close()
	m.textures.Clear()
	m.fontAtlas = TextureHandle{}
	m.backend.Shutdown()
	m.closeWatcher()

	m.log.Info("module shut down")
	Console.SetLogger(nil)
	m.closeLogger()
}

func (m *Module) closeWatcher() {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Close(); err != nil {
		m.log.Warn("close config watcher", zap.Error(err))
	}
	m.watcher = nil
}

func (m *Module) closeLogger() {
	if m.ownsLog {
		_ = m.log.Sync()
	}
}

func (m *Module) checkOpen(op string) {
	if m.closed.Load() {
		m.log.Panic("module used after shutdown", zap.String("op", op))
	}
}

// Logger returns the module's logger.
func (m *Module) Logger() *zap.Logger {
	return m.log
}

// Contexts returns the module's context manager.
func (m *Module) Contexts() *ContextManager {
	return m.contexts
}

// ContextHandle returns the handle pointing at this module.
func (m *Module) ContextHandle() *ContextHandle {
	return m.handle
}

// AddWorldDelegate subscribes fn to the current world's context. The current
// world is the one in the active game viewport, or else a world running as a
// dedicated server. With a Host configured and no such world this is a
// programming error. Without a Host fn goes to the standalone context.
func (m *Module) AddWorldDelegate(fn DrawFunc) DelegateHandle {
	m.checkOpen("AddWorldDelegate")

	var world World
	if m.host != nil {
		world = m.host.GameViewportWorld()
		if world == nil {
			world = m.host.WorldByNetMode(NetModeDedicatedServer)
		}
		if world == nil {
			m.log.Panic("couldn't find current world; AddWorldDelegate should only be called from a valid world")
		}
	}

	proxy, index := m.contexts.GetWorldContextProxy(world)
	return DelegateHandle{ID: proxy.OnDraw().Add(fn), Category: CategoryDefault, Index: index}
}

// AddMultiContextDelegate subscribes fn to every context: it runs once per
// frame after the active context's own callbacks.
func (m *Module) AddMultiContextDelegate(fn DrawFunc) DelegateHandle {
	m.checkOpen("AddMultiContextDelegate")
	return DelegateHandle{ID: m.contexts.OnDrawMultiContext().Add(fn), Category: CategoryMultiContext}
}

// RemoveDelegate unsubscribes h. It does nothing when the subscription, its
// context or the module is already gone.
func (m *Module) RemoveDelegate(h DelegateHandle) {
	if m == nil || m.closed.Load() || !h.IsValid() {
		return
	}
	if h.Category == CategoryMultiContext {
		m.contexts.OnDrawMultiContext().Remove(h.ID)
	} else if proxy := m.contexts.GetContextProxy(h.Index); proxy != nil {
		proxy.OnDraw().Remove(h.ID)
	}
}

// FindTexture returns a handle to the texture registered under name, or an
// invalid handle.
func (m *Module) FindTexture(name Name) TextureHandle {
	m.checkOpen("FindTexture")
	index := m.textures.FindTextureIndex(name)
	if index == IndexNone {
		return TextureHandle{}
	}
	return TextureHandle{Name: name, ID: ToTextureID(index)}
}

// RegisterTexture makes img drawable by the GUI under name. Registering an
// existing name returns the existing texture unless makeUnique is set. The
// module does not take ownership of img.
func (m *Module) RegisterTexture(name Name, img *ebiten.Image, makeUnique bool) TextureHandle {
	m.checkOpen("RegisterTexture")
	if img == nil {
		m.log.Panic("nil texture image", zap.Stringer("name", name))
	}
	index := m.textures.CreateTexture(name, img, makeUnique)
	m.log.Debug("texture registered", zap.Stringer("name", name), zap.Int32("index", int32(index)))
	return TextureHandle{Name: name, ID: ToTextureID(index)}
}

// ReleaseTexture unregisters the texture h refers to. Stale handles, whose
// slot was released or now holds another texture, are ignored.
func (m *Module) ReleaseTexture(h TextureHandle) {
	m.checkOpen("ReleaseTexture")
	if !m.HasValidEntry(h) {
		return
	}
	m.textures.ReleaseTexture(h.Index())
	m.log.Debug("texture released", zap.Stringer("name", h.Name), zap.Int32("index", int32(h.Index())))
}

// HasValidEntry reports whether h still refers to a live texture with the
// same name.
func (m *Module) HasValidEntry(h TextureHandle) bool {
	if m == nil || m.closed.Load() {
		return false
	}
	return handleMatches(h, m.textures)
}

// Textures returns the number of registered textures, the font atlas
// included.
func (m *Module) Textures() int {
	m.checkOpen("Textures")
	return m.textures.Len()
}

func (m *Module) releaseImage(name Name, img *ebiten.Image) {
	if _, ok := m.owned[img]; !ok {
		return
	}
	delete(m.owned, img)
	img.Deallocate()
}

func (m *Module) createFontAtlas() {
	pixels, w, h := m.backend.FontAtlas()
	if len(pixels) == 0 {
		return
	}
	img := ebiten.NewImage(w, h)
	img.WritePixels(pixels)
	m.owned[img] = struct{}{}

	index := m.textures.CreateTexture(FontAtlasName, img, true)
	m.fontAtlas = TextureHandle{Name: FontAtlasName, ID: ToTextureID(index)}
	m.backend.SetFontTexture(m.fontAtlas.ID)
	m.log.Debug("font atlas created", zap.Int("width", w), zap.Int("height", h))
}

// FontAtlas returns the handle of the shared font atlas texture.
func (m *Module) FontAtlas() TextureHandle {
	m.checkOpen("FontAtlas")
	return m.fontAtlas
}

// IsInputMode reports whether input is routed to the GUI. Safe on any
// goroutine.
func (m *Module) IsInputMode() bool {
	return InputEnabled.GetValueOnAnyThread() > 0
}

// SetInputMode turns input mode on or off with console priority, the same
// priority a console command would use.
func (m *Module) SetInputMode(enabled bool) {
	m.checkOpen("SetInputMode")
	InputEnabled.Set(boolToInt32(enabled), SetByConsole)
}

// ToggleInputMode flips input mode.
func (m *Module) ToggleInputMode() {
	m.SetInputMode(!m.IsInputMode())
}

// IsShowingDemo reports whether the demo window is shown. Safe on any
// goroutine.
func (m *Module) IsShowingDemo() bool {
	return ShowDemo.GetValueOnAnyThread() > 0
}

// SetShowDemo shows or hides the demo window with console priority.
func (m *Module) SetShowDemo(show bool) {
	m.checkOpen("SetShowDemo")
	ShowDemo.Set(boolToInt32(show), SetByConsole)
}

// ToggleShowDemo flips the demo window.
func (m *Module) ToggleShowDemo() {
	m.SetShowDemo(!m.IsShowingDemo())
}

// WantsInput reports whether the GUI captured input in the last frame. Games
// should ignore mouse and keyboard input while it is true.
func (m *Module) WantsInput() bool {
	m.checkOpen("WantsInput")
	return m.capture.Any()
}

// Capture returns the detailed capture state of the last frame.
func (m *Module) Capture() Capture {
	m.checkOpen("Capture")
	return m.capture
}

// Update builds one GUI frame for the context named by key. Call it from the
// game's Update.
func (m *Module) Update(key ContextKey) error {
	m.checkOpen("Update")

	m.drainConfigUpdates()
	m.pollHotkeys()

	m.frame++
	params := FrameParams{
		Frame:       m.frame,
		Width:       m.width,
		Height:      m.height,
		DeltaTime:   deltaTime(),
		ShowDemo:    m.IsShowingDemo(),
		InputActive: m.IsInputMode(),
	}

	var input *InputEvents
	if params.InputActive {
		m.input.Poll(&m.events)
		input = &m.events
	}

	if m.isDestroyedWorld(key) {
		m.capture = Capture{}
		return nil
	}
	proxy := m.contexts.Tick(key, params, input)
	m.capture = proxy.Capture()
	return nil
}

// isDestroyedWorld reports whether key names a world the host no longer
// knows. Such keys are ignored so a late frame cannot revive the context.
func (m *Module) isDestroyedWorld(key ContextKey) bool {
	if key.Kind != ContextWorld || key.World == nil {
		return false
	}
	live, ok := m.host.(worldLiveness)
	return ok && !live.Contains(key.World)
}

// Draw renders the last frame built for key onto screen. Call it from the
// game's Draw, after drawing the game. A key Update never ticked draws
// nothing.
func (m *Module) Draw(screen *ebiten.Image, key ContextKey) {
	m.checkOpen("Draw")

	b := screen.Bounds()
	m.width, m.height = float32(b.Dx()), float32(b.Dy())

	proxy := m.contexts.Lookup(key)
	if proxy == nil {
		return
	}
	m.renderer.draw(screen, proxy.DrawData())
}

// Exec runs a console line; see ConsoleManager.Exec.
func (m *Module) Exec(line string) (string, error) {
	m.checkOpen("Exec")
	return Console.Exec(line)
}

func (m *Module) applyCVars(values map[string]int) {
	if len(values) == 0 {
		return
	}
	for _, name := range Console.Apply(values, SetByConfigFile) {
		m.log.Warn("unknown console variable in config", zap.String("variable", name))
	}
}

func (m *Module) drainConfigUpdates() {
	if m.watcher == nil {
		return
	}
	select {
	case values := <-m.watcher.Updates():
		m.applyCVars(values)
		m.log.Info("config reloaded", zap.Int("cvars", len(values)))
	default:
	}
}

func (m *Module) pollHotkeys() {
	if m.hasToggleKey && inpututil.IsKeyJustPressed(m.toggleKey) {
		m.ToggleInputMode()
	}
	if m.hasDemoKey && inpututil.IsKeyJustPressed(m.demoKey) {
		m.ToggleShowDemo()
	}
}

func deltaTime() float32 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float32(tps)
}

// Process-wide module.
var (
	moduleMu    sync.Mutex
	current     *Module
	loadedHooks []func(*Module)
	// staleHandle is the handle of the last module shut down, kept until
	// the next Startup re-points it.
	staleHandle *ContextHandle
)

// Startup creates the process-wide module. Calling it while a module is
// running is a programming error. OnModuleLoaded hooks run after the module
// is published, so they may call the package-level functions.
func Startup(opts *Options) error {
	m, hooks, err := publish(opts)
	if err != nil {
		return err
	}
	for _, hook := range hooks {
		hook(m)
	}
	return nil
}

func publish(opts *Options) (*Module, []func(*Module), error) {
	moduleMu.Lock()
	defer moduleMu.Unlock()

	if current != nil {
		current.log.Panic("module already started; Startup must be called once")
	}
	m, err := NewModule(opts)
	if err != nil {
		return nil, nil, err
	}
	if staleHandle != nil {
		m.handle = staleHandle
		m.handle.repoint(m)
		staleHandle = nil
	}
	current = m
	return m, append(([]func(*Module))(nil), loadedHooks...), nil
}

// Shutdown destroys the process-wide module. Calling it without a running
// module is a programming error. Handles from the old module keep working:
// they are re-pointed to the next module that starts.
func Shutdown() {
	moduleMu.Lock()
	defer moduleMu.Unlock()

	m := current
	if m == nil {
		zap.L().Panic("ebimgui: Shutdown called without a running module")
	}
	m.Close()
	current = nil

	m.handle.repoint(nil)
	staleHandle = m.handle
}

// OnModuleLoaded registers fn to run each time Startup publishes a module.
func OnModuleLoaded(fn func(*Module)) {
	moduleMu.Lock()
	defer moduleMu.Unlock()
	loadedHooks = append(loadedHooks, fn)
}

// Get returns the running module. It is a programming error to call it
// without one.
func Get() *Module {
	return mustModule("Get")
}

// IsRunning reports whether a process-wide module exists.
func IsRunning() bool {
	return runningModule() != nil
}

func runningModule() *Module {
	moduleMu.Lock()
	defer moduleMu.Unlock()
	return current
}

func mustModule(op string) *Module {
	m := runningModule()
	if m == nil {
		zap.L().Panic("ebimgui: no running module; is the module started?", zap.String("op", op))
	}
	return m
}

// AddWorldDelegate subscribes fn to the current world of the running module.
func AddWorldDelegate(fn DrawFunc) DelegateHandle {
	return mustModule("AddWorldDelegate").AddWorldDelegate(fn)
}

// AddMultiContextDelegate subscribes fn to every context of the running
// module.
func AddMultiContextDelegate(fn DrawFunc) DelegateHandle {
	return mustModule("AddMultiContextDelegate").AddMultiContextDelegate(fn)
}

// RemoveDelegate unsubscribes h. Unlike the other functions it is safe to
// call without a running module.
func RemoveDelegate(h DelegateHandle) {
	runningModule().RemoveDelegate(h)
}

// FindTexture looks name up in the running module.
func FindTexture(name Name) TextureHandle {
	return mustModule("FindTexture").FindTexture(name)
}

// RegisterTexture registers img with the running module.
func RegisterTexture(name Name, img *ebiten.Image, makeUnique bool) TextureHandle {
	return mustModule("RegisterTexture").RegisterTexture(name, img, makeUnique)
}

// ReleaseTexture releases h in the running module.
func ReleaseTexture(h TextureHandle) {
	mustModule("ReleaseTexture").ReleaseTexture(h)
}

// HasValidEntry reports whether h refers to a live texture of the running
// module. It is false when no module is running.
func (h TextureHandle) HasValidEntry() bool {
	return runningModule().HasValidEntry(h)
}

// IsInputMode reports whether the running module routes input to the GUI.
func IsInputMode() bool {
	return mustModule("IsInputMode").IsInputMode()
}

// SetInputMode turns input mode on or off in the running module.
func SetInputMode(enabled bool) {
	mustModule("SetInputMode").SetInputMode(enabled)
}

// ToggleInputMode flips input mode in the running module.
func ToggleInputMode() {
	mustModule("ToggleInputMode").ToggleInputMode()
}

// IsShowingDemo reports whether the running module draws the demo window.
func IsShowingDemo() bool {
	return mustModule("IsShowingDemo").IsShowingDemo()
}

// SetShowDemo shows or hides the demo window in the running module.
func SetShowDemo(show bool) {
	mustModule("SetShowDemo").SetShowDemo(show)
}

// ToggleShowDemo flips the demo window in the running module.
func ToggleShowDemo() {
	mustModule("ToggleShowDemo").ToggleShowDemo()
}
