package gpu

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Call is one recorded context invocation.
type Call struct {
	Name string `yaml:"call"`
	Args []any  `yaml:"args,flow,omitempty"`
}

// DrawCall is a snapshot of the pipeline state taken at every DrawElements.
type DrawCall struct {
	Program Program
	Mode    DrawMode
	Count   int32
	// Attribs maps attribute names enabled at draw time to their component count.
	Attribs map[string]int32
	// Uniforms holds the last value pushed for every uniform of the program.
	Uniforms map[string][]float32
}

type recShader struct {
	stage   ShaderStage
	source  string
	deleted bool
}

type recProgram struct {
	shaders  []Shader
	linked   bool
	deleted  bool
	attribs  map[string]AttribLocation
	uniforms map[string]UniformLocation
	values   map[UniformLocation][]float32
}

type recBuffer struct {
	target  BufferTarget
	floats  []float32
	indices []uint16
	deleted bool
}

type attribPointer struct {
	buffer     Buffer
	components int32
}

// Recorder is a software Context that keeps a log of every call and enough
// state to validate it. It never touches a real GPU, which makes it the
// backend for tests and for dumping a frame's call trace.
type Recorder struct {
	Width, Height int32

	// CompileErrors makes compilation of the given stage fail with the log.
	CompileErrors map[ShaderStage]string
	// LinkError, when set, makes every link fail with this log.
	LinkError string
	// MissingSymbols lists attribute and uniform names that do not resolve.
	MissingSymbols map[string]bool

	Calls []Call
	// Errors collects misuse a real driver would flag or silently ignore.
	Errors []string
	Draws  []DrawCall

	nextID   uint32
	shaders  map[Shader]*recShader
	programs map[Program]*recProgram
	buffers  map[Buffer]*recBuffer

	current      Program
	boundArray   Buffer
	boundElement Buffer
	pointers     map[AttribLocation]attribPointer
	enabled      map[AttribLocation]bool

	viewport   [4]int32
	clearColor [4]float32
	depthTest  bool
	depthFunc  DepthFunc
}

var _ Context = (*Recorder)(nil)

func NewRecorder(width int32, height int32) *Recorder {
	return &Recorder{
		Width:          width,
		Height:         height,
		CompileErrors:  map[ShaderStage]string{},
		MissingSymbols: map[string]bool{},
		shaders:        map[Shader]*recShader{},
		programs:       map[Program]*recProgram{},
		buffers:        map[Buffer]*recBuffer{},
		pointers:       map[AttribLocation]attribPointer{},
		enabled:        map[AttribLocation]bool{},
		depthFunc:      Less,
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Recorder) id() uint32 {
	r.nextID++
	return r.nextID
}

func (r *Recorder) DrawableSize() (int32, int32) {
	return r.Width, r.Height
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
	r.viewport = [4]int32{x, y, width, height}
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
	r.clearColor = [4]float32{red, green, blue, alpha}
}

func (r *Recorder) ClearDepth(depth float64) {
	r.record("ClearDepth", depth)
}

func (r *Recorder) Enable(c Capability) {
	r.record("Enable", c.String())
	if c == DepthTest {
		r.depthTest = true
	}
}

func (r *Recorder) DepthFunc(f DepthFunc) {
	r.record("DepthFunc", f.String())
	r.depthFunc = f
}

func (r *Recorder) Clear(mask ClearMask) {
	r.record("Clear", mask.String())
}

func (r *Recorder) CreateShader(stage ShaderStage) Shader {
	s := Shader(r.id())
	r.record("CreateShader", stage.String(), uint32(s))
	r.shaders[s] = &recShader{stage: stage}
	return s
}

func (r *Recorder) shader(s Shader, call string) *recShader {
	sh, ok := r.shaders[s]
	if !ok || sh.deleted {
		r.fail("%s: unknown shader %d", call, s)
		return nil
	}
	return sh
}

func (r *Recorder) ShaderSource(s Shader, source string) {
	r.record("ShaderSource", uint32(s))
	if sh := r.shader(s, "ShaderSource"); sh != nil {
		sh.source = source
	}
}

func (r *Recorder) CompileShader(s Shader) {
	r.record("CompileShader", uint32(s))
	r.shader(s, "CompileShader")
}

func (r *Recorder) ShaderCompiled(s Shader) bool {
	sh := r.shader(s, "ShaderCompiled")
	if sh == nil {
		return false
	}
	_, failing := r.CompileErrors[sh.stage]
	return !failing && sh.source != ""
}

func (r *Recorder) ShaderInfoLog(s Shader) string {
	sh := r.shader(s, "ShaderInfoLog")
	if sh == nil {
		return ""
	}
	if sh.source == "" {
		return "empty shader source"
	}
	return r.CompileErrors[sh.stage]
}

func (r *Recorder) DeleteShader(s Shader) {
	r.record("DeleteShader", uint32(s))
	if sh := r.shader(s, "DeleteShader"); sh != nil {
		sh.deleted = true
	}
}

func (r *Recorder) CreateProgram() Program {
	p := Program(r.id())
	r.record("CreateProgram", uint32(p))
	r.programs[p] = &recProgram{
		attribs:  map[string]AttribLocation{},
		uniforms: map[string]UniformLocation{},
		values:   map[UniformLocation][]float32{},
	}
	return p
}

func (r *Recorder) program(p Program, call string) *recProgram {
	prog, ok := r.programs[p]
	if !ok || prog.deleted {
		r.fail("%s: unknown program %d", call, p)
		return nil
	}
	return prog
}

func (r *Recorder) AttachShader(p Program, s Shader) {
	r.record("AttachShader", uint32(p), uint32(s))
	prog := r.program(p, "AttachShader")
	if prog != nil && r.shader(s, "AttachShader") != nil {
		prog.shaders = append(prog.shaders, s)
	}
}

func (r *Recorder) LinkProgram(p Program) {
	r.record("LinkProgram", uint32(p))
	if prog := r.program(p, "LinkProgram"); prog != nil {
		prog.linked = r.LinkError == "" && len(prog.shaders) == 2
	}
}

func (r *Recorder) ProgramLinked(p Program) bool {
	prog := r.program(p, "ProgramLinked")
	return prog != nil && prog.linked
}

func (r *Recorder) ProgramInfoLog(p Program) string {
	prog := r.program(p, "ProgramInfoLog")
	if prog == nil || prog.linked {
		return ""
	}
	if r.LinkError != "" {
		return r.LinkError
	}
	return fmt.Sprintf("expected 2 attached shaders, got %d", len(prog.shaders))
}

func (r *Recorder) DeleteProgram(p Program) {
	r.record("DeleteProgram", uint32(p))
	if prog := r.program(p, "DeleteProgram"); prog != nil {
		prog.deleted = true
	}
	if r.current == p {
		r.current = 0
	}
}

func (r *Recorder) UseProgram(p Program) {
	r.record("UseProgram", uint32(p))
	if p == 0 {
		r.current = 0
		return
	}
	if prog := r.program(p, "UseProgram"); prog != nil && !prog.linked {
		r.fail("UseProgram: program %d is not linked", p)
	}
	r.current = p
}

// AttribLocation hands out locations in query order, per program.
func (r *Recorder) AttribLocation(p Program, name string) AttribLocation {
	prog := r.program(p, "AttribLocation")
	if prog == nil || r.MissingSymbols[name] {
		return -1
	}
	loc, ok := prog.attribs[name]
	if !ok {
		loc = AttribLocation(len(prog.attribs))
		prog.attribs[name] = loc
	}
	return loc
}

func (r *Recorder) UniformLocation(p Program, name string) UniformLocation {
	prog := r.program(p, "UniformLocation")
	if prog == nil || r.MissingSymbols[name] {
		return -1
	}
	loc, ok := prog.uniforms[name]
	if !ok {
		loc = UniformLocation(len(prog.uniforms))
		prog.uniforms[name] = loc
	}
	return loc
}

func (r *Recorder) CreateBuffer() Buffer {
	b := Buffer(r.id())
	r.record("CreateBuffer", uint32(b))
	r.buffers[b] = &recBuffer{}
	return b
}

func (r *Recorder) BindBuffer(target BufferTarget, b Buffer) {
	r.record("BindBuffer", target.String(), uint32(b))
	if b != 0 {
		buf, ok := r.buffers[b]
		if !ok || buf.deleted {
			r.fail("BindBuffer: unknown buffer %d", b)
			return
		}
		buf.target = target
	}
	switch target {
	case ArrayBuffer:
		r.boundArray = b
	case ElementArrayBuffer:
		r.boundElement = b
	}
}

func (r *Recorder) bound(target BufferTarget, call string) *recBuffer {
	b := r.boundArray
	if target == ElementArrayBuffer {
		b = r.boundElement
	}
	if b == 0 {
		r.fail("%s: no buffer bound to %s", call, target)
		return nil
	}
	return r.buffers[b]
}

func (r *Recorder) BufferFloat32(target BufferTarget, data []float32) {
	r.record("BufferFloat32", target.String(), len(data))
	if buf := r.bound(target, "BufferFloat32"); buf != nil {
		buf.floats = append([]float32(nil), data...)
		buf.indices = nil
	}
}

func (r *Recorder) BufferUint16(target BufferTarget, data []uint16) {
	r.record("BufferUint16", target.String(), len(data))
	if buf := r.bound(target, "BufferUint16"); buf != nil {
		buf.indices = append([]uint16(nil), data...)
		buf.floats = nil
	}
}

func (r *Recorder) DeleteBuffer(b Buffer) {
	r.record("DeleteBuffer", uint32(b))
	buf, ok := r.buffers[b]
	if !ok || buf.deleted {
		r.fail("DeleteBuffer: buffer %d is not live", b)
		return
	}
	buf.deleted = true
	if r.boundArray == b {
		r.boundArray = 0
	}
	if r.boundElement == b {
		r.boundElement = 0
	}
}

func (r *Recorder) VertexAttribPointer(loc AttribLocation, components int32, kind DataType, normalized bool, stride int32, offset int) {
	r.record("VertexAttribPointer", int32(loc), components, kind.String(), normalized, stride, offset)
	if !loc.Valid() {
		r.fail("VertexAttribPointer: invalid location %d", loc)
		return
	}
	if r.boundArray == 0 {
		r.fail("VertexAttribPointer: no buffer bound to %s", ArrayBuffer)
		return
	}
	r.pointers[loc] = attribPointer{buffer: r.boundArray, components: components}
}

func (r *Recorder) EnableVertexAttribArray(loc AttribLocation) {
	r.record("EnableVertexAttribArray", int32(loc))
	if !loc.Valid() {
		r.fail("EnableVertexAttribArray: invalid location %d", loc)
		return
	}
	r.enabled[loc] = true
}

func (r *Recorder) DisableVertexAttribArray(loc AttribLocation) {
	r.record("DisableVertexAttribArray", int32(loc))
	delete(r.enabled, loc)
}

func (r *Recorder) setUniform(call string, loc UniformLocation, values ...float32) {
	args := make([]any, 0, len(values)+1)
	args = append(args, int32(loc))
	for _, v := range values {
		args = append(args, v)
	}
	r.record(call, args...)

	prog := r.program(r.current, call)
	if prog == nil {
		return
	}
	if !loc.Valid() {
		r.fail("%s: invalid location %d", call, loc)
		return
	}
	prog.values[loc] = values
}

func (r *Recorder) Uniform1f(loc UniformLocation, v0 float32) {
	r.setUniform("Uniform1f", loc, v0)
}

func (r *Recorder) Uniform2f(loc UniformLocation, v0, v1 float32) {
	r.setUniform("Uniform2f", loc, v0, v1)
}

func (r *Recorder) Uniform3f(loc UniformLocation, v0, v1, v2 float32) {
	r.setUniform("Uniform3f", loc, v0, v1, v2)
}

func (r *Recorder) UniformMatrix4fv(loc UniformLocation, m mgl32.Mat4) {
	r.setUniform("UniformMatrix4fv", loc, m[:]...)
}

func (r *Recorder) DrawElements(mode DrawMode, count int32, kind DataType, offset int) {
	r.record("DrawElements", mode.String(), count, kind.String(), offset)
	prog := r.program(r.current, "DrawElements")
	if prog == nil {
		return
	}
	if r.boundElement == 0 {
		r.fail("DrawElements: no buffer bound to %s", ElementArrayBuffer)
		return
	}
	if n := int32(len(r.buffers[r.boundElement].indices)); count+int32(offset/2) > n {
		r.fail("DrawElements: %d indices requested, %d available", count, n)
	}

	draw := DrawCall{
		Program:  r.current,
		Mode:     mode,
		Count:    count,
		Attribs:  map[string]int32{},
		Uniforms: map[string][]float32{},
	}
	for name, loc := range prog.attribs {
		if !r.enabled[loc] {
			continue
		}
		ptr, ok := r.pointers[loc]
		if !ok {
			r.fail("DrawElements: attribute %q enabled without pointer", name)
			continue
		}
		draw.Attribs[name] = ptr.components
	}
	for name, loc := range prog.uniforms {
		if v, ok := prog.values[loc]; ok {
			draw.Uniforms[name] = append([]float32(nil), v...)
		}
	}
	r.Draws = append(r.Draws, draw)
}

// LiveBuffers returns the handles of buffers created and not yet deleted,
// in ascending order.
func (r *Recorder) LiveBuffers() []Buffer {
	var live []Buffer
	for b, buf := range r.buffers {
		if !buf.deleted {
			live = append(live, b)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i] < live[j] })
	return live
}

// BufferContents returns what was last uploaded into b.
func (r *Recorder) BufferContents(b Buffer) ([]float32, []uint16) {
	buf, ok := r.buffers[b]
	if !ok {
		return nil, nil
	}
	return buf.floats, buf.indices
}

// EnabledAttribs lists attribute locations currently enabled.
func (r *Recorder) EnabledAttribs() []AttribLocation {
	var locs []AttribLocation
	for loc := range r.enabled {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i] < locs[j] })
	return locs
}

// LiveProgram reports whether p was created and not deleted.
func (r *Recorder) LiveProgram(p Program) bool {
	prog, ok := r.programs[p]
	return ok && !prog.deleted
}

// LiveShaders counts shader objects that were never deleted.
func (r *Recorder) LiveShaders() int {
	n := 0
	for _, sh := range r.shaders {
		if !sh.deleted {
			n++
		}
	}
	return n
}

// Count returns how often the named call was recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Names returns the recorded call names in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

// State returns the viewport, clear color and depth configuration as last set.
func (r *Recorder) State() (viewport [4]int32, clearColor [4]float32, depthTest bool, depthFunc DepthFunc) {
	return r.viewport, r.clearColor, r.depthTest, r.depthFunc
}

// ResetLog drops recorded calls, draws and errors but keeps GPU objects alive.
func (r *Recorder) ResetLog() {
	r.Calls = nil
	r.Draws = nil
	r.Errors = nil
}

type trace struct {
	Width  int32    `yaml:"width"`
	Height int32    `yaml:"height"`
	Calls  []Call   `yaml:"calls"`
	Errors []string `yaml:"errors,omitempty"`
}

// WriteYAML dumps the call log.
func (r *Recorder) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	err := enc.Encode(trace{
		Width:  r.Width,
		Height: r.Height,
		Calls:  r.Calls,
		Errors: r.Errors,
	})
	if err != nil {
		return fmt.Errorf("encode call trace: %w", err)
	}
	return enc.Close()
}
