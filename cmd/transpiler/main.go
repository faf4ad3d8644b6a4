// Command transpiler is the CLI front end for the circuit transpiler: it
// reads a QASM source (or generates a QFT/Shor test circuit), runs the
// requested rewrite pipeline, and writes the transpiled QASM back out. A
// `gridsynth` subcommand exposes the single-angle synthesizer standalone,
// and a `serve` subcommand starts the HTTP inspection API.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kegliz/ftcompile/internal/app"
	"github.com/kegliz/ftcompile/internal/config"
	"github.com/kegliz/ftcompile/internal/gridsynth"
	"github.com/kegliz/ftcompile/internal/numeric"
	"github.com/kegliz/ftcompile/internal/qasm"
	"github.com/kegliz/ftcompile/internal/serialize"
	"github.com/kegliz/ftcompile/internal/testgen"
	"github.com/kegliz/ftcompile/qc/circuit"
	"github.com/kegliz/ftcompile/qc/passmanager"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "gridsynth":
			if err := runGridsynth(os.Args[2:]); err != nil {
				fmt.Fprintln(os.Stderr, "gridsynth:", err)
				os.Exit(1)
			}
			return
		case "serve":
			if err := runServe(os.Args[2:]); err != nil {
				fmt.Fprintln(os.Stderr, "serve:", err)
				os.Exit(1)
			}
			return
		}
	}
	if err := runTranspile(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "transpiler:", err)
		os.Exit(1)
	}
}

func runTranspile(args []string) error {
	fs := pflag.NewFlagSet("transpiler", pflag.ContinueOnError)

	qftWidth := fs.Int("qft", 0, "generate an N-qubit QFT test circuit instead of reading a file")
	shorWidth := fs.Int("shor", 0, "generate an N-bit order-finding test circuit instead of reading a file")

	toPbc := fs.Bool("pbc", false, "rewrite into Pauli-based computation form")
	toCR := fs.Bool("cr", false, "rewrite via Clifford reduction")
	toRedPbc := fs.Bool("red-pbc", false, "Pauli-based computation form, forcing keep-ccx and keep-cx")
	tOpt := fs.Bool("t-opt", false, "fuse adjacent T-Pauli rotations (requires --pbc)")
	keepCCX := fs.Bool("keep-ccx", false, "do not decompose Toffoli gates during the decompose pass")
	keepCX := fs.Bool("keep-cx", false, "keep CNOTs in the PBC rewrite instead of absorbing them into the tableau")
	removePauli := fs.Bool("remove-pauli", false, "drop single-qubit Pauli (X/Y/Z) gates after the selected rewrite")

	output := fs.StringP("output", "o", "", "output QASM path (default: <stem>_transpiled.qasm)")
	noSave := fs.Bool("no-save", false, "run the pipeline but do not write an output file")
	precision := fs.Uint("precision", 256, "arbitrary-precision mantissa bits used by synthesis passes")
	epsilon := fs.Float64("epsilon", 0, "override gridsynth's default epsilon policy (0 = use default)")
	configPath := fs.String("config", "", "path to an optional config file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	exclusive := 0
	for _, v := range []bool{*toPbc, *toCR, *toRedPbc} {
		if v {
			exclusive++
		}
	}
	if exclusive > 1 {
		return fmt.Errorf("--pbc, --cr, and --red-pbc are mutually exclusive")
	}
	if *tOpt && !*toPbc {
		return fmt.Errorf("--t-opt requires --pbc")
	}

	c, stem, err := loadInputCircuit(fs.Args(), *qftWidth, *shorWidth)
	if err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	opts := passmanager.Options{
		ToPbc:               *toPbc || *toRedPbc,
		ToCliffordReduction: *toCR,
		KeepCX:              *keepCX || *toRedPbc,
		TPauliOpt:           *tOpt,
		RemovePauli:         *removePauli,
		KeepCCX:             *keepCCX || *toRedPbc,
		EpsilonOverride:     *epsilon,
		Precision:           *precision,
		GridsynthConfig:     gridsynth.DefaultConfig(),
	}

	mgr, err := passmanager.New(opts)
	if err != nil {
		return err
	}

	before := circuit.PrintStats(c)
	out, steps, err := mgr.Run(c)
	if err != nil {
		return err
	}
	fmt.Println("before:", before)
	for _, step := range steps {
		fmt.Printf("  %-20s modified=%-5v %s\n", step.Pass, step.Modified, step.After)
	}
	fmt.Println("after: ", circuit.PrintStats(out))

	if *noSave {
		return nil
	}

	text, err := serialize.WriteQASM(out, cfg.Precision())
	if err != nil {
		return err
	}

	path := *output
	if path == "" {
		path = stem + "_transpiled.qasm"
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}

// loadInputCircuit resolves the transpiler's three mutually-exclusive input
// modes: a positional QASM file, --qft N, or --shor N.
func loadInputCircuit(positional []string, qftWidth, shorWidth int) (circuit.Circuit, string, error) {
	modes := 0
	if len(positional) > 0 {
		modes++
	}
	if qftWidth > 0 {
		modes++
	}
	if shorWidth > 0 {
		modes++
	}
	if modes != 1 {
		return nil, "", fmt.Errorf("exactly one of an input file, --qft N, or --shor N is required")
	}

	switch {
	case qftWidth > 0:
		c, err := testgen.QFT(qftWidth)
		return c, fmt.Sprintf("qft%d", qftWidth), err
	case shorWidth > 0:
		c, err := testgen.Shor(shorWidth)
		return c, fmt.Sprintf("shor%d", shorWidth), err
	default:
		path := positional[0]
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, "", err
		}
		prog, err := qasm.Parse(string(src))
		if err != nil {
			return nil, "", err
		}
		c, err := qasm.Lower(prog, func(msg string) { fmt.Fprintln(os.Stderr, "warning:", msg) })
		if err != nil {
			return nil, "", err
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return c, stem, nil
	}
}

// runGridsynth implements the standalone `gridsynth ANGLE [EPSILON]`
// synthesizer.
func runGridsynth(args []string) error {
	fs := pflag.NewFlagSet("gridsynth", pflag.ContinueOnError)
	precision := fs.Uint("precision", 128, "mpmath-equivalent precision used by the solver")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 2 {
		return fmt.Errorf("usage: gridsynth ANGLE [EPSILON]")
	}

	angleExpr := rest[0]
	cfg := gridsynth.DefaultConfig()
	cfg.Precision = *precision

	var eps float64
	if len(rest) == 2 {
		v, err := strconv.ParseFloat(rest[1], 64)
		if err != nil {
			return fmt.Errorf("bad epsilon %q: %w", rest[1], err)
		}
		eps = v
	} else {
		theta, err := numeric.ParsePiExpr(angleExpr, cfg.Precision)
		if err != nil {
			return fmt.Errorf("bad angle %q: %w", angleExpr, err)
		}
		eps = gridsynth.DefaultEpsilon(theta)
	}

	word, err := gridsynth.SynthesizeGates(angleExpr, eps, cfg)
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(word, " "))
	return nil
}

// runServe implements the `serve` subcommand: it starts the HTTP inspection
// API and blocks until it exits.
func runServe(args []string) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	port := fs.Int("port", 8080, "HTTP port to listen on")
	localOnly := fs.Bool("local-only", true, "bind to localhost only")
	configPath := fs.String("config", "", "path to an optional config file")
	version := fs.String("version", "dev", "version string reported by the / endpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	srv, err := app.NewServer(app.ServerOptions{C: cfg, Version: *version})
	if err != nil {
		return err
	}
	defer srv.Shutdown(context.Background())
	return srv.Listen(*port, *localOnly)
}
