package qasm

import (
	"fmt"
	"strconv"
)

// Parse reads a QASM 2.0 source string (plus the t_pauli/s_pauli/z_pauli/
// m_pauli extensions) into a Program. Parser errors are *ParseError with the
// spec's "line:col: message" format.
func Parse(src string) (*Program, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	prog := &Program{GateDefs: make(map[string]*GateDef)}
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	for p.tok.kind != tokEOF {
		stmt, def, err := p.parseTopLevel(prog)
		if err != nil {
			return nil, err
		}
		if def != nil {
			prog.GateDefs[def.Name] = def
			continue
		}
		switch stmt.Kind {
		case -1: // qreg/creg handled inline, nothing to append
		default:
			prog.Statements = append(prog.Statements, *stmt)
		}
	}
	return prog, nil
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) errf(format string, args ...interface{}) error {
	return &ParseError{p.tok.line, p.tok.col, fmt.Sprintf(format, args...)}
}

func (p *parser) expect(k tokenKind, what string) (token, error) {
	if p.tok.kind != k {
		return token{}, p.errf("expected %s, got %q", what, p.tok.text)
	}
	t := p.tok
	return t, p.advance()
}

func (p *parser) expectIdent(name string) error {
	if p.tok.kind != tokIdent || p.tok.text != name {
		return p.errf("expected %q", name)
	}
	return p.advance()
}

// parseHeader consumes the optional `OPENQASM 2.0;` and `include "...";`
// preamble lines.
func (p *parser) parseHeader() error {
	for p.tok.kind == tokIdent && (p.tok.text == "OPENQASM" || p.tok.text == "include") {
		if p.tok.text == "OPENQASM" {
			if err := p.advance(); err != nil {
				return err
			}
			if p.tok.kind != tokNumber {
				return p.errf("expected version number after OPENQASM")
			}
			if err := p.advance(); err != nil {
				return err
			}
		} else {
			if err := p.advance(); err != nil {
				return err
			}
			if _, err := p.expect(tokString, "include path"); err != nil {
				return err
			}
		}
		if _, err := p.expect(tokSemi, "';'"); err != nil {
			return err
		}
	}
	return nil
}

// parseTopLevel parses one statement, returning either a Statement or (for
// `gate ... { ... }` definitions) a GateDef.
func (p *parser) parseTopLevel(prog *Program) (*Statement, *GateDef, error) {
	if p.tok.kind != tokIdent {
		return nil, nil, p.errf("expected statement, got %q", p.tok.text)
	}
	switch p.tok.text {
	case "qreg", "creg":
		isQ := p.tok.text == "qreg"
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		name, err := p.expect(tokIdent, "register name")
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(tokLBracket, "'['"); err != nil {
			return nil, nil, err
		}
		sizeTok, err := p.expect(tokNumber, "register size")
		if err != nil {
			return nil, nil, err
		}
		size, _ := strconv.Atoi(sizeTok.text)
		if _, err := p.expect(tokRBracket, "']'"); err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(tokSemi, "';'"); err != nil {
			return nil, nil, err
		}
		reg := Reg{Name: name.text, Size: size}
		if isQ {
			prog.QRegs = append(prog.QRegs, reg)
		} else {
			prog.CRegs = append(prog.CRegs, reg)
		}
		return &Statement{Kind: -1}, nil, nil
	case "gate":
		def, err := p.parseGateDef()
		return nil, def, err
	case "measure":
		return p.parseMeasure()
	case "reset":
		return p.parseReset()
	case "barrier":
		return p.parseBarrier()
	case "if":
		return p.parseIf()
	case "t_pauli", "s_pauli", "z_pauli", "m_pauli":
		return p.parsePauliStmt()
	default:
		return p.parseGateCall()
	}
}

func (p *parser) parseGateDef() (*GateDef, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expect(tokIdent, "gate name")
	if err != nil {
		return nil, err
	}
	def := &GateDef{Name: name.text}
	if p.tok.kind == tokLParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		for p.tok.kind != tokRParen {
			id, err := p.expect(tokIdent, "parameter name")
			if err != nil {
				return nil, err
			}
			def.Params = append(def.Params, id.text)
			if p.tok.kind == tokComma {
				if err := p.advance(); err != nil {
					return nil, err
				}
			}
		}
		if err := p.advance(); err != nil { // consume ')'
			return nil, err
		}
	}
	for p.tok.kind == tokIdent {
		def.Qubits = append(def.Qubits, p.tok.text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}
	for p.tok.kind != tokRBrace {
		stmt, _, err := p.parseGateCall()
		if err != nil {
			return nil, err
		}
		def.Body = append(def.Body, *stmt)
	}
	if err := p.advance(); err != nil { // consume '}'
		return nil, err
	}
	return def, nil
}

func (p *parser) parseQubitArg() (QubitArg, error) {
	id, err := p.expect(tokIdent, "qubit/register name")
	if err != nil {
		return QubitArg{}, err
	}
	arg := QubitArg{Reg: id.text, Index: -1}
	if p.tok.kind == tokLBracket {
		if err := p.advance(); err != nil {
			return QubitArg{}, err
		}
		idxTok, err := p.expect(tokNumber, "index")
		if err != nil {
			return QubitArg{}, err
		}
		arg.Index, _ = strconv.Atoi(idxTok.text)
		if _, err := p.expect(tokRBracket, "']'"); err != nil {
			return QubitArg{}, err
		}
	}
	return arg, nil
}

func (p *parser) parseQubitList() ([]QubitArg, error) {
	var args []QubitArg
	for {
		a, err := p.parseQubitArg()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.tok.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return args, nil
}

// parseParamExpr collects raw tokens of one parameter expression (e.g.
// "pi/4", "-pi/2") as a string, for later evaluation by internal/numeric.
func (p *parser) parseParamExpr() (string, error) {
	s := ""
	for p.tok.kind != tokComma && p.tok.kind != tokRParen {
		if p.tok.kind == tokEOF {
			return "", p.errf("unterminated parameter expression")
		}
		s += tokenLiteral(p.tok)
		if err := p.advance(); err != nil {
			return "", err
		}
	}
	return s, nil
}

func tokenLiteral(t token) string {
	switch t.kind {
	case tokMinus:
		return "-"
	case tokPlus:
		return "+"
	case tokSlash:
		return "/"
	case tokStar:
		return "*"
	default:
		return t.text
	}
}

func (p *parser) parseGateCall() (*Statement, *GateDef, error) {
	name, err := p.expect(tokIdent, "gate name")
	if err != nil {
		return nil, nil, err
	}
	stmt := &Statement{Kind: StmtGateCall, Name: name.text}
	if p.tok.kind == tokLParen {
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		for p.tok.kind != tokRParen {
			expr, err := p.parseParamExpr()
			if err != nil {
				return nil, nil, err
			}
			stmt.Params = append(stmt.Params, expr)
			if p.tok.kind == tokComma {
				if err := p.advance(); err != nil {
					return nil, nil, err
				}
			}
		}
		if err := p.advance(); err != nil { // consume ')'
			return nil, nil, err
		}
	}
	qubits, err := p.parseQubitList()
	if err != nil {
		return nil, nil, err
	}
	stmt.Qubits = qubits
	if _, err := p.expect(tokSemi, "';'"); err != nil {
		return nil, nil, err
	}
	return stmt, nil, nil
}

func (p *parser) parseMeasure() (*Statement, *GateDef, error) {
	if err := p.advance(); err != nil {
		return nil, nil, err
	}
	q, err := p.parseQubitArg()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(tokArrow, "'->'"); err != nil {
		return nil, nil, err
	}
	c, err := p.parseQubitArg()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(tokSemi, "';'"); err != nil {
		return nil, nil, err
	}
	return &Statement{Kind: StmtMeasure, MeasureQubit: q, MeasureCbit: c}, nil, nil
}

func (p *parser) parseReset() (*Statement, *GateDef, error) {
	if err := p.advance(); err != nil {
		return nil, nil, err
	}
	q, err := p.parseQubitArg()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(tokSemi, "';'"); err != nil {
		return nil, nil, err
	}
	return &Statement{Kind: StmtReset, Qubits: []QubitArg{q}}, nil, nil
}

func (p *parser) parseBarrier() (*Statement, *GateDef, error) {
	if err := p.advance(); err != nil {
		return nil, nil, err
	}
	qubits, err := p.parseQubitList()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(tokSemi, "';'"); err != nil {
		return nil, nil, err
	}
	return &Statement{Kind: StmtBarrier, Qubits: qubits}, nil, nil
}

// parseIf parses `if (creg==N) stmt;`. The spec calls for this to be parsed
// but not semantically supported, so Inner is kept for round-tripping but
// lowering simply executes it unconditionally is NOT done -- instead the
// statement is dropped with a logged warning by the caller, since this
// compiler has no classical-control execution model.
func (p *parser) parseIf() (*Statement, *GateDef, error) {
	if err := p.advance(); err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, nil, err
	}
	creg, err := p.expect(tokIdent, "classical register name")
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(tokEq, "'=='"); err != nil {
		return nil, nil, err
	}
	valTok, err := p.expect(tokNumber, "comparison value")
	if err != nil {
		return nil, nil, err
	}
	val, _ := strconv.Atoi(valTok.text)
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, nil, err
	}
	inner, _, err := p.parseTopLevel(&Program{GateDefs: map[string]*GateDef{}})
	if err != nil {
		return nil, nil, err
	}
	return &Statement{Kind: StmtIf, IfCreg: creg.text, IfVal: val, Inner: inner}, nil, nil
}

func (p *parser) parsePauliStmt() (*Statement, *GateDef, error) {
	name := p.tok.text
	if err := p.advance(); err != nil {
		return nil, nil, err
	}
	sign := "+"
	if p.tok.kind == tokPlus {
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
	} else if p.tok.kind == tokMinus {
		sign = "-"
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
	}
	id, err := p.expect(tokIdent, "Pauli string")
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(tokSemi, "';'"); err != nil {
		return nil, nil, err
	}
	return &Statement{Kind: StmtGateCall, Name: name, Params: []string{sign + id.text}}, nil, nil
}
