package schedules

import (
	"math"
	"strconv"

	"github.com/joeycumines/go-utilpkg/jsonenc"
)

// UnknownN is the sentinel "unknown upper bound" step index, used as the n1
// of forward actions emitted by online schedules prior to Finalize. It means
// "as far as the driver will go", not a true infinity.
const UnknownN int64 = math.MaxInt64

type (
	// Action is one element of the schedule's output stream. The concrete
	// variants are Forward, Reverse, Copy, Move, EndForward, and EndReverse;
	// drivers are expected to switch exhaustively over them.
	Action interface {
		// String formats the action in the positional form used throughout
		// the documentation, e.g. `Forward(0, 2, true, false, RAM)`.
		String() string

		// AppendJSON appends the action, encoded as a JSON object, to dst.
		AppendJSON(dst []byte) []byte

		isAction()
	}

	// Forward advances the forward solver from the start of step N0 to the
	// start of step N1 (N1 > N0).
	Forward struct {
		// N0 is the first step of the interval.
		N0 int64

		// N1 is one past the last step of the interval. Online schedules may
		// use UnknownN, meaning the driver should advance as far as it can.
		N1 int64

		// WriteICs requests persisting the restart state of step N0 into
		// Storage.
		WriteICs bool

		// WriteAdjDeps requests persisting the adjoint-dependency data
		// produced for each step in [N0, N1) into Storage.
		WriteAdjDeps bool

		// Storage receives the persisted data. If both WriteICs and
		// WriteAdjDeps are set, both end up in the same Storage.
		Storage StorageKind
	}

	// Reverse advances the adjoint solver from step N1 back to step N0
	// (N0 < N1). The adjoint-dependency data for the consumed steps must have
	// been produced by the most recent Forward with WriteAdjDeps covering
	// [N0, N1), and is considered consumed afterwards.
	Reverse struct {
		N1 int64
		N0 int64

		// ClearAdjDeps directs the driver to release the consumed
		// adjoint-dependency data.
		ClearAdjDeps bool
	}

	// Copy duplicates the data for step N from one storage kind to another.
	// The source retains its copy. N identifies restart state by the step it
	// seeds, and adjoint-dependency data by the end of the forward advance
	// that produced it.
	Copy struct {
		N    int64
		From StorageKind
		To   StorageKind
	}

	// Move relocates the data for step N. The source no longer holds it
	// afterwards.
	Move struct {
		N    int64
		From StorageKind
		To   StorageKind
	}

	// EndForward is emitted exactly once per forward sweep, after the last
	// forward action, when the forward solver has reached max_n.
	EndForward struct{}

	// EndReverse is emitted when the adjoint has returned to step 0.
	EndReverse struct{}
)

var (
	// compile time assertions

	_ Action = Forward{}
	_ Action = Reverse{}
	_ Action = Copy{}
	_ Action = Move{}
	_ Action = EndForward{}
	_ Action = EndReverse{}
)

func (Forward) isAction()    {}
func (Reverse) isAction()    {}
func (Copy) isAction()       {}
func (Move) isAction()       {}
func (EndForward) isAction() {}
func (EndReverse) isAction() {}

func appendStep(dst []byte, n int64) []byte {
	if n == UnknownN {
		return append(dst, `UnknownN`...)
	}
	return strconv.AppendInt(dst, n, 10)
}

func (x Forward) String() string {
	b := append(make([]byte, 0, 48), `Forward(`...)
	b = appendStep(b, x.N0)
	b = append(b, `, `...)
	b = appendStep(b, x.N1)
	b = append(b, `, `...)
	b = strconv.AppendBool(b, x.WriteICs)
	b = append(b, `, `...)
	b = strconv.AppendBool(b, x.WriteAdjDeps)
	b = append(b, `, `...)
	b = append(b, x.Storage.String()...)
	b = append(b, ')')
	return string(b)
}

func (x Reverse) String() string {
	b := append(make([]byte, 0, 32), `Reverse(`...)
	b = appendStep(b, x.N1)
	b = append(b, `, `...)
	b = appendStep(b, x.N0)
	b = append(b, `, `...)
	b = strconv.AppendBool(b, x.ClearAdjDeps)
	b = append(b, ')')
	return string(b)
}

func (x Copy) String() string {
	b := append(make([]byte, 0, 32), `Copy(`...)
	b = appendStep(b, x.N)
	b = append(b, `, `...)
	b = append(b, x.From.String()...)
	b = append(b, `, `...)
	b = append(b, x.To.String()...)
	b = append(b, ')')
	return string(b)
}

func (x Move) String() string {
	b := append(make([]byte, 0, 32), `Move(`...)
	b = appendStep(b, x.N)
	b = append(b, `, `...)
	b = append(b, x.From.String()...)
	b = append(b, `, `...)
	b = append(b, x.To.String()...)
	b = append(b, ')')
	return string(b)
}

func (EndForward) String() string { return `EndForward()` }
func (EndReverse) String() string { return `EndReverse()` }

func (x Forward) AppendJSON(dst []byte) []byte {
	dst = append(dst, `{"action":"Forward","n0":`...)
	dst = strconv.AppendInt(dst, x.N0, 10)
	dst = append(dst, `,"n1":`...)
	dst = strconv.AppendInt(dst, x.N1, 10)
	dst = append(dst, `,"write_ics":`...)
	dst = strconv.AppendBool(dst, x.WriteICs)
	dst = append(dst, `,"write_adj_deps":`...)
	dst = strconv.AppendBool(dst, x.WriteAdjDeps)
	dst = append(dst, `,"storage":`...)
	dst = jsonenc.AppendString(dst, x.Storage.String())
	return append(dst, '}')
}

func (x Reverse) AppendJSON(dst []byte) []byte {
	dst = append(dst, `{"action":"Reverse","n1":`...)
	dst = strconv.AppendInt(dst, x.N1, 10)
	dst = append(dst, `,"n0":`...)
	dst = strconv.AppendInt(dst, x.N0, 10)
	dst = append(dst, `,"clear_adj_deps":`...)
	dst = strconv.AppendBool(dst, x.ClearAdjDeps)
	return append(dst, '}')
}

func (x Copy) AppendJSON(dst []byte) []byte {
	dst = append(dst, `{"action":"Copy","n":`...)
	dst = strconv.AppendInt(dst, x.N, 10)
	dst = append(dst, `,"from":`...)
	dst = jsonenc.AppendString(dst, x.From.String())
	dst = append(dst, `,"to":`...)
	dst = jsonenc.AppendString(dst, x.To.String())
	return append(dst, '}')
}

func (x Move) AppendJSON(dst []byte) []byte {
	dst = append(dst, `{"action":"Move","n":`...)
	dst = strconv.AppendInt(dst, x.N, 10)
	dst = append(dst, `,"from":`...)
	dst = jsonenc.AppendString(dst, x.From.String())
	dst = append(dst, `,"to":`...)
	dst = jsonenc.AppendString(dst, x.To.String())
	return append(dst, '}')
}

func (EndForward) AppendJSON(dst []byte) []byte {
	return append(dst, `{"action":"EndForward"}`...)
}

func (EndReverse) AppendJSON(dst []byte) []byte {
	return append(dst, `{"action":"EndReverse"}`...)
}
