package surface

// OpKind identifies a recorded drawing call.
type OpKind int

const (
	OpCircle OpKind = iota
	OpLine
)

// Op is one drawing call captured by a Recorder.
type Op struct {
	Kind   OpKind
	X0, Y0 float64
	X1, Y1 float64 // line end, unused for circles
	R      float64
	Paint  Paint
}

// Recorder is a Surface that keeps the drawing calls issued since the last
// Clear. Totals survive Clear so callers can observe activity over many frames.
type Recorder struct {
	w, h    int
	ops     []Op
	discard bool

	Clears  int
	Circles int
	Lines   int
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{w: w, h: h, ops: make([]Op, 0, 256)}
}

// NewDiscard returns a Recorder that counts calls without keeping them.
func NewDiscard(w, h int) *Recorder {
	return &Recorder{w: w, h: h, discard: true}
}

func (r *Recorder) Size() (int, int) { return r.w, r.h }

func (r *Recorder) Resize(w, h int) {
	r.w, r.h = w, h
}

func (r *Recorder) Clear() {
	r.Clears++
	r.ops = r.ops[:0]
}

func (r *Recorder) FillCircle(x, y, radius float64, p Paint) {
	r.Circles++
	if !r.discard {
		r.ops = append(r.ops, Op{Kind: OpCircle, X0: x, Y0: y, R: radius, Paint: p})
	}
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1 float64, p Paint) {
	r.Lines++
	if !r.discard {
		r.ops = append(r.ops, Op{Kind: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Paint: p})
	}
}

// Ops returns the calls recorded since the last Clear.
func (r *Recorder) Ops() []Op { return r.ops }

// Calls is the total number of drawing calls, clears included.
func (r *Recorder) Calls() int { return r.Clears + r.Circles + r.Lines }
