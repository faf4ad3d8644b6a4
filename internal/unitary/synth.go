package unitary

import "fmt"

// Decompose finds a gate word over {H, TDG, S, X} such that applying the
// generators left-to-right (first element first) reproduces u exactly, up
// to global phase. It works by repeatedly peeling a prefix of the form
// H, T.H, T^2.H, ..., T^7.H off the left of the remaining factor --
// the Matsumoto-Amano syllable structure -- choosing at each step whichever
// of the 8 candidates most reduces the denominator exponent N, until N
// reaches 0, then reads the residual Clifford off the BFS-built table.
func Decompose(u DOmegaUnitary) ([]string, error) {
	rem := u.Reduced()
	var prefix []string // generators consumed so far, in application order
	maxSteps := rem.N*8 + 64
	for step := 0; rem.N > 0; step++ {
		if step > maxSteps {
			return nil, fmt.Errorf("unitary: decomposition did not converge (n=%d)", rem.N)
		}
		bestK := -1
		bestN := rem.N + 1
		var bestCand DOmegaUnitary
		for k := 0; k < 8; k++ {
			cand := rem.LeftMulH()
			for i := 0; i < k; i++ {
				cand = cand.LeftMulT()
			}
			cand = cand.Reduced()
			if cand.N < bestN {
				bestN = cand.N
				bestK = k
				bestCand = cand
			}
		}
		if bestK == -1 || bestN >= rem.N {
			return nil, fmt.Errorf("unitary: no reducing generator found at n=%d", rem.N)
		}
		// (T^bestK . H) * rem = bestCand  =>  rem = H . Tdag^bestK . bestCand
		prefix = append(prefix, "H")
		for i := 0; i < bestK; i++ {
			prefix = append(prefix, "TDG")
		}
		rem = bestCand
	}
	tail, ok := cliffordWord(rem)
	if !ok {
		return nil, fmt.Errorf("unitary: residual Clifford not in closure table")
	}
	return append(prefix, tail...), nil
}
