package hrevolve

import (
	"fmt"
)

// Revolve returns the optimal memory-only operation sequence for an instance
// of l steps with cm memory slots.
func Revolve(l, cm int, params CostParams) (Sequence, error) {
	if l < 0 {
		return nil, fmt.Errorf(`hrevolve: negative instance size %d`, l)
	}
	if cm < 0 {
		return nil, fmt.Errorf(`hrevolve: negative memory budget %d`, cm)
	}
	if l >= 1 && cm < 1 {
		return nil, fmt.Errorf(`%w: %d steps with no memory slots`, ErrInfeasible, l)
	}
	x := newTables(params)
	x.fillOpt0(l, cm)
	return x.revolve(l, cm), nil
}

// revolve emits the sequence for a fresh memory-only instance, the initial
// state live in the buffer.
func (x *tables) revolve(l, cm int) Sequence {
	if l == 0 {
		return turn(0)
	}
	seq := Sequence{opW(LevelMemory, 0)}
	return append(seq, x.revolveAux(l, cm)...)
}

// turn emits the final forward advance of a sub-problem and the backward
// step consuming it, the buffer positioned at local step t.
func turn(t int) Sequence {
	return Sequence{opWF(LevelWork, t+1), opF1(t), opB(t + 1), opDF(LevelWork, t+1)}
}

// revolveAux emits the sequence adjoining steps l down to 0, the checkpoint
// for step 0 already in memory and the buffer positioned at step 0. The
// checkpoint is discarded on its final use.
func (x *tables) revolveAux(l, cm int) Sequence {
	if l == 0 {
		seq := Sequence{opD(LevelMemory, 0)}
		return append(seq, turn(0)...)
	}
	if l == 1 || cm == 1 {
		// quadratic: restart from step 0 for every backward step
		var seq Sequence
		seq = append(seq, forwardOps(0, l)...)
		seq = append(seq, turn(l)...)
		for k := l - 1; k >= 1; k-- {
			seq = append(seq, opR(LevelMemory, 0))
			seq = append(seq, forwardOps(0, k)...)
			seq = append(seq, turn(k)...)
		}
		seq = append(seq, opR(LevelMemory, 0), opD(LevelMemory, 0))
		return append(seq, turn(0)...)
	}
	j := x.opt0J[l][cm]
	seq := Sequence(forwardOps(0, j))
	seq = append(seq, x.revolve(l-j, cm-1).Shift(j)...)
	seq = append(seq, opR(LevelMemory, 0))
	return append(seq, x.revolveAux(j-1, cm)...)
}

// forwardOps advances from t0 to t1, as a single-step or interval operation.
func forwardOps(t0, t1 int) Sequence {
	if t1 == t0+1 {
		return Sequence{opF1(t0)}
	}
	return Sequence{opF(t0, t1)}
}
