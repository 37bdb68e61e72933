package hrevolve

import (
	"fmt"
)

// HRevolve returns the optimal operation sequence for an instance of l steps
// with cm memory slots and cd disk slots.
func HRevolve(l, cm, cd int, params CostParams) (Sequence, error) {
	if l < 0 {
		return nil, fmt.Errorf(`hrevolve: negative instance size %d`, l)
	}
	if cm < 0 || cd < 0 {
		return nil, fmt.Errorf(`hrevolve: negative storage budget (%d memory, %d disk)`, cm, cd)
	}
	x := newTables(params)
	x.fillOpt0(l, cm)
	x.fillOpt1(l, cm)
	x.fillHRev(l, cm, cd)
	if x.hrev[l][cm][cd] >= Inf {
		return nil, fmt.Errorf(`%w: %d steps with %d memory and %d disk slots`, ErrInfeasible, l, cm, cd)
	}
	return x.hRevolve(l, cm, cd), nil
}

// hRevolve emits the sequence for a fresh bounded-disk instance, the initial
// state live in the buffer.
func (x *tables) hRevolve(l, cm, cd int) Sequence {
	if l == 0 {
		return turn(0)
	}
	j := x.hrevJ[l][cm][cd]
	if j < 0 {
		return x.revolve(l, cm)
	}
	seq := Sequence{opW(LevelDisk, 0)}
	seq = append(seq, forwardOps(0, j)...)
	seq = append(seq, x.hRevolve(l-j, cm, cd-1).Shift(j)...)
	return append(seq, x.diskAux(j-1, cm)...)
}
