package hrevolve

import (
	"fmt"
)

// DiskRevolve returns the optimal operation sequence for an instance of l
// steps with cm memory slots and unbounded disk.
func DiskRevolve(l, cm int, params CostParams) (Sequence, error) {
	if l < 0 {
		return nil, fmt.Errorf(`hrevolve: negative instance size %d`, l)
	}
	if cm < 0 {
		return nil, fmt.Errorf(`hrevolve: negative memory budget %d`, cm)
	}
	x := newTables(params)
	x.fillOpt0(l, cm)
	x.fillOpt1(l, cm)
	x.fillOptV(l, cm)
	if x.optV[l][cm] >= Inf {
		return nil, fmt.Errorf(`%w: %d steps with %d memory slots`, ErrInfeasible, l, cm)
	}
	return x.diskRevolve(l, cm), nil
}

// diskRevolve emits the sequence for a fresh unbounded-disk instance, the
// initial state live in the buffer.
func (x *tables) diskRevolve(l, cm int) Sequence {
	if l == 0 {
		return turn(0)
	}
	j := x.optVJ[l][cm]
	if j < 0 {
		return x.revolve(l, cm)
	}
	seq := Sequence{opW(LevelDisk, 0)}
	seq = append(seq, forwardOps(0, j)...)
	seq = append(seq, x.diskRevolve(l-j, cm).Shift(j)...)
	return append(seq, x.diskAux(j-1, cm)...)
}

// diskAux emits the sequence adjoining steps l down to 0, the restart state
// of step 0 anchored on disk and the working buffer invalid. The anchor is
// discarded on its final use.
func (x *tables) diskAux(l, cm int) Sequence {
	if l == 0 {
		seq := Sequence{opR(LevelDisk, 0), opD(LevelDisk, 0)}
		return append(seq, turn(0)...)
	}
	j := x.opt1J[l][cm]
	seq := Sequence{opR(LevelDisk, 0)}
	seq = append(seq, forwardOps(0, j)...)
	seq = append(seq, x.revolve(l-j, cm).Shift(j)...)
	return append(seq, x.diskAux(j-1, cm)...)
}

// PeriodicDiskRevolve returns the operation sequence anchoring a disk
// checkpoint every period steps, with the period chosen to minimize the
// periodic cost criterion, alongside the chosen period.
func PeriodicDiskRevolve(l, cm int, params CostParams) (Sequence, int, error) {
	if l < 0 {
		return nil, 0, fmt.Errorf(`hrevolve: negative instance size %d`, l)
	}
	if cm < 0 {
		return nil, 0, fmt.Errorf(`hrevolve: negative memory budget %d`, cm)
	}
	x := newTables(params)
	x.fillOpt0(l, cm)
	x.fillOpt1(l, cm)
	if l == 0 {
		return turn(0), 1, nil
	}
	p, cost := x.periodicPeriod(l, cm)
	if cost >= Inf {
		return nil, 0, fmt.Errorf(`%w: %d steps with %d memory slots`, ErrInfeasible, l, cm)
	}
	var seq Sequence
	blocks := (l + p - 1) / p
	for k := 0; k < blocks; k++ {
		seq = append(seq, opW(LevelDisk, k*p))
		seq = append(seq, forwardOps(k*p, min((k+1)*p, l))...)
	}
	for k := blocks - 1; k >= 0; k-- {
		size := p - 1
		if k == blocks-1 {
			size = l - k*p
		}
		seq = append(seq, x.diskAux(size, cm).Shift(k*p)...)
	}
	return seq, p, nil
}
