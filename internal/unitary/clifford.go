package unitary

// cliffordWords maps the canonical key of every N=0 exact unitary reachable
// from the identity by H, S and X to the shortest generator word producing
// it, built once via breadth-first search over the (finite, 1-norm-closed)
// single-qubit Clifford group.
var cliffordWords map[string][]string

func init() {
	cliffordWords = make(map[string][]string)
	type item struct {
		u    DOmegaUnitary
		word []string
	}
	start := Identity.Reduced()
	cliffordWords[start.key()] = nil
	queue := []item{{start, nil}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if len(cur.word) >= 6 {
			continue
		}
		for _, g := range []string{"H", "S", "X"} {
			var next DOmegaUnitary
			switch g {
			case "H":
				next = cur.u.LeftMulH().Reduced()
			case "S":
				next = cur.u.LeftMulS().Reduced()
			case "X":
				next = cur.u.LeftMulX().Reduced()
			}
			k := next.key()
			if _, seen := cliffordWords[k]; seen {
				continue
			}
			word := append(append([]string(nil), cur.word...), g)
			cliffordWords[k] = word
			queue = append(queue, item{next, word})
		}
	}
}

// cliffordWord looks up the generator word for an N=0 unitary, if it was
// reached during the BFS closure (true for every Clifford this compiler
// ever constructs, since all of them arise from H/S/T/X generator chains).
func cliffordWord(u DOmegaUnitary) ([]string, bool) {
	w, ok := cliffordWords[u.Reduced().key()]
	return w, ok
}
