package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/ftcompile/internal/gridsynth"
	"github.com/kegliz/ftcompile/qc/passmanager"
)

var badRequestErrorMsg = "Bad Request - please contact the administrator"
var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

// RootHandler is the handler for the / endpoint
func (a *appServer) RootHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving root endpoint")
	c.JSON(http.StatusOK, gin.H{"service": "ftcompile", "version": a.version})
}

// HealthHandler is the handler for the /health endpoint
func (a *appServer) HealthHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving health endpoint")
	c.String(http.StatusOK, "OK")
}

// createCircuitRequest is the POST /circuits body: raw QASM source.
type createCircuitRequest struct {
	Source string `json:"source" binding:"required"`
}

// CreateCircuit is the handler for the POST /circuits endpoint: it parses
// the submitted QASM, stores the resulting circuit, and returns its id and
// shape.
func (a *appServer) CreateCircuit(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving circuit creation endpoint")

	var req createCircuitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": badRequestErrorMsg})
		return
	}

	id, stats, err := a.qs.Compile(req.Source)
	if err != nil {
		l.Error().Err(err).Msg("compiling circuit failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "stats": stats})
}

// runCircuitRequest is the POST /circuits/:id/run body: the pass-manager
// flag set.
type runCircuitRequest struct {
	ToPbc               bool    `json:"to_pbc"`
	ToCliffordReduction bool    `json:"to_clifford_reduction"`
	KeepCX              bool    `json:"keep_cx"`
	TPauliOpt           bool    `json:"t_pauli_opt"`
	RemovePauli         bool    `json:"remove_pauli"`
	KeepCCX             bool    `json:"keep_ccx"`
	EpsilonOverride     float64 `json:"epsilon_override"`
	Precision           uint    `json:"precision"`
}

// RunCircuit is the handler for the POST /circuits/:id/run endpoint: it
// runs the requested pass recipe against the stored circuit and reports
// before/after stats plus a per-pass trace.
func (a *appServer) RunCircuit(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving circuit run endpoint")

	id := c.Param("id")

	var req runCircuitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": badRequestErrorMsg})
		return
	}

	opts := passmanager.Options{
		ToPbc:               req.ToPbc,
		ToCliffordReduction: req.ToCliffordReduction,
		KeepCX:              req.KeepCX,
		TPauliOpt:           req.TPauliOpt,
		RemovePauli:         req.RemovePauli,
		KeepCCX:             req.KeepCCX,
		EpsilonOverride:     req.EpsilonOverride,
		Precision:           req.Precision,
		GridsynthConfig:     gridsynth.Config{},
	}

	result, err := a.qs.RunPasses(id, opts)
	if err != nil {
		l.Error().Err(err).Str("id", id).Msg("running passes failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
