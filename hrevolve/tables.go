package hrevolve

// tables holds the dynamic programming tables for one instance, dense arrays
// indexed by (steps remaining, memory slots, disk slots), each cell paired
// with the backtrack decision that achieved it.
//
// Conventions, shared by every table: an instance of l steps adjoins steps
// l down to 0, so l+1 backward steps run in total; the cost of the implicit
// one-step forward advance preceding each backward step is uniform across
// all candidate solutions and is not counted; memory reads and writes are
// free; a problem's own initial checkpoint counts against its memory budget.
//
// Tie-breaks, in order: lower cost; memory over disk; larger advance. The
// larger-advance rule reproduces the canonical revolve schedules.
type tables struct {
	params CostParams

	// opt0[l][c]: memory only, c slots including the checkpoint at step 0.
	opt0 [][]Cost
	// opt0J[l][c]: minimizing advance, for cells solved by the split
	// recurrence.
	opt0J [][]int

	// opt1[l][c]: step 0 anchored on disk (not counted in c), working buffer
	// invalid, every restart paying RD.
	opt1  [][]Cost
	opt1J [][]int

	// optV[l][c]: unbounded disk, initial state live in the buffer.
	// Decision -1 solves the instance in memory alone.
	optV  [][]Cost
	optVJ [][]int

	// hrev[l][c][d]: bounded disk, initial state live in the buffer.
	// Decision -1 solves the instance in memory alone.
	hrev  [][][]Cost
	hrevJ [][][]int
}

func newTables(params CostParams) *tables {
	return &tables{params: params.withDefaults()}
}

func grid(l, c int) ([][]Cost, [][]int) {
	costs := make([][]Cost, l+1)
	splits := make([][]int, l+1)
	for i := range costs {
		costs[i] = make([]Cost, c+1)
		splits[i] = make([]int, c+1)
	}
	return costs, splits
}

// fillOpt0 computes the classical revolve table for instances up to l steps
// and cm memory slots.
func (x *tables) fillOpt0(l, cm int) {
	uf, ub := x.params.UF, x.params.UB
	x.opt0, x.opt0J = grid(l, cm)
	for c := 0; c <= cm; c++ {
		x.opt0[0][c] = ub
	}
	for i := 1; i <= l; i++ {
		x.opt0[i][0] = Inf
	}
	if cm >= 1 {
		for i := 1; i <= l; i++ {
			// a single slot pins the checkpoint at step 0; every backward
			// step restarts from it
			x.opt0[i][1] = addCost(mulCost(i+1, ub), mulCost(i*(i+1)/2, uf))
		}
	}
	for c := 2; c <= cm; c++ {
		if l >= 1 {
			x.opt0[1][c] = addCost(uf, ub, ub)
		}
		for i := 2; i <= l; i++ {
			best, bestJ := Inf, 0
			for j := 1; j < i; j++ {
				if cost := addCost(mulCost(j, uf), x.opt0[i-j][c-1], x.opt0[j-1][c]); cost <= best {
					best, bestJ = cost, j
				}
			}
			x.opt0[i][c], x.opt0J[i][c] = best, bestJ
		}
	}
}

// fillOpt1 computes the disk-anchored table, for instances whose step 0
// resides on disk, with cm memory slots for interior checkpoints. Requires
// fillOpt0.
func (x *tables) fillOpt1(l, cm int) {
	uf, rd := x.params.UF, x.params.RD
	x.opt1, x.opt1J = grid(l, cm)
	for c := 0; c <= cm; c++ {
		x.opt1[0][c] = addCost(rd, x.params.UB)
		for i := 1; i <= l; i++ {
			best, bestJ := Inf, 0
			for j := 1; j <= i; j++ {
				if cost := addCost(rd, mulCost(j, uf), x.opt0[i-j][c], x.opt1[j-1][c]); cost <= best {
					best, bestJ = cost, j
				}
			}
			x.opt1[i][c], x.opt1J[i][c] = best, bestJ
		}
	}
}

// fillOptV computes the unbounded-disk table. Requires fillOpt0 and
// fillOpt1.
func (x *tables) fillOptV(l, cm int) {
	uf, wd := x.params.UF, x.params.WD
	x.optV, x.optVJ = grid(l, cm)
	for c := 0; c <= cm; c++ {
		x.optV[0][c], x.optVJ[0][c] = x.params.UB, -1
		for i := 1; i <= l; i++ {
			// memory wins ties, so the split recurrence must beat it
			// strictly
			best, bestJ := x.opt0[i][c], -1
			for j := 1; j <= i; j++ {
				if cost := addCost(wd, mulCost(j, uf), x.optV[i-j][c], x.opt1[j-1][c]); cost < best || (cost == best && bestJ >= 1 && j > bestJ) {
					best, bestJ = cost, j
				}
			}
			x.optV[i][c], x.optVJ[i][c] = best, bestJ
		}
	}
}

// fillHRev computes the bounded-disk table. Requires fillOpt0 and fillOpt1.
func (x *tables) fillHRev(l, cm, cd int) {
	uf, wd := x.params.UF, x.params.WD
	x.hrev = make([][][]Cost, l+1)
	x.hrevJ = make([][][]int, l+1)
	for i := range x.hrev {
		x.hrev[i], x.hrevJ[i] = grid(cm, cd)
	}
	for c := 0; c <= cm; c++ {
		for d := 0; d <= cd; d++ {
			x.hrev[0][c][d] = x.params.UB
		}
	}
	for i := 1; i <= l; i++ {
		for c := 0; c <= cm; c++ {
			x.hrev[i][c][0] = x.opt0[i][c]
			x.hrevJ[i][c][0] = -1
			for d := 1; d <= cd; d++ {
				best, bestJ := x.opt0[i][c], -1
				for j := 1; j <= i; j++ {
					if cost := addCost(wd, mulCost(j, uf), x.hrev[i-j][c][d-1], x.opt1[j-1][c]); cost < best || (cost == best && bestJ >= 1 && j > bestJ) {
						best, bestJ = cost, j
					}
				}
				x.hrev[i][c][d], x.hrevJ[i][c][d] = best, bestJ
			}
		}
	}
}

// periodicPeriod returns the period minimizing the periodic disk-revolve
// criterion for an instance of l steps with cm memory slots, preferring the
// smaller period on ties. Requires fillOpt0.
func (x *tables) periodicPeriod(l, cm int) (int, Cost) {
	uf, wd, rd := x.params.UF, x.params.WD, x.params.RD
	best, bestP := Inf, 0
	for p := 1; p <= l; p++ {
		cost := addCost(
			mulCost(l/p, addCost(mulCost(p, uf), wd)),
			x.opt0[p-1][cm],
			mulCost(l%p, uf),
			rd,
		)
		if cost < best {
			best, bestP = cost, p
		}
	}
	return bestP, best
}
