package gate

// CliffordPlusT is the canonical gate-name set the synthesis pipeline
// targets: every Clifford single/two-qubit generator plus T/T-dagger and
// measurement. The DAG's "is Clifford+T only" flag and
// circuit.IsCliffordPlusT both classify gates against this one table so the
// two never drift apart.
var CliffordPlusT = map[string]bool{
	"H": true, "X": true, "Y": true, "Z": true,
	"S": true, "SDG": true, "SX": true, "SXDG": true,
	"CNOT": true, "CZ": true, "SWAP": true,
	"T": true, "TDG": true,
	"MEASURE": true,
}
