package hrevolve

import (
	"errors"
	"math"
)

// Cost is an integer computational cost. Costs saturate at Inf rather than
// overflowing.
type Cost = int64

// Inf is the infeasible-cost sentinel, kept far enough from the integer
// maximum that sums of feasible costs cannot reach it.
const Inf Cost = math.MaxInt64 / 4

// ErrInfeasible indicates an instance with no feasible operation sequence
// under the given storage budget.
var ErrInfeasible = errors.New(`hrevolve: infeasible instance`)

// CostParams are the per-operation costs driving the dynamic programs.
// Memory reads and writes are free by convention.
type CostParams struct {
	// UF is the cost of one forward step.
	// **Defaults to 1, if 0.**
	UF Cost

	// UB is the cost of one backward step.
	// **Defaults to 1, if 0.**
	UB Cost

	// WD is the cost of writing one checkpoint to disk. May be 0.
	WD Cost

	// RD is the cost of reading one checkpoint from disk. May be 0.
	RD Cost
}

// withDefaults resolves zero-valued step costs to their defaults.
func (x CostParams) withDefaults() CostParams {
	if x.UF == 0 {
		x.UF = 1
	}
	if x.UB == 0 {
		x.UB = 1
	}
	return x
}

func addCost(costs ...Cost) Cost {
	var total Cost
	for _, cost := range costs {
		if cost >= Inf {
			return Inf
		}
		total += cost
		if total >= Inf {
			return Inf
		}
	}
	return total
}

func mulCost(n int, cost Cost) Cost {
	if cost >= Inf || (cost > 0 && int64(n) > Inf/cost) {
		return Inf
	}
	return int64(n) * cost
}
