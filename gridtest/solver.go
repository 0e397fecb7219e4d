package gridtest

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/katalvlaran/voltmargin/cmat"
	"github.com/katalvlaran/voltmargin/grid"
	"github.com/katalvlaran/voltmargin/gridpath"
)

var (
	// ErrDiverged indicates the load multiplier lies past the collapse
	// point: the feed quadratic has no real solution.
	ErrDiverged = errors.New("gridtest: power flow has no solution at this loading")
	// ErrUnsupportedNetwork indicates the topology is not a set of
	// edge-disjoint radial feeds, the only shape solved in closed form.
	ErrUnsupportedNetwork = errors.New("gridtest: network is not independent radial feeds")
	// ErrBadMultiplier indicates a negative or non-finite load multiplier.
	ErrBadMultiplier = errors.New("gridtest: load multiplier must be finite and non-negative")
)

// ExactSolver produces solved snapshots of its network by closed-form
// evaluation of each radial feed. Order optionally fixes the
// solver-internal bus ordering; nil means ascending bus IDs.
type ExactSolver struct {
	Net   Network
	Order []grid.BusID
}

// NewExactSolver binds a solver to a fixture network.
func NewExactSolver(net Network) *ExactSolver {
	return &ExactSolver{Net: net}
}

// feed is one radial path from the slack to a loaded bus with its solved
// series current.
type feed struct {
	path []grid.BusID // slack first
	curr complex128   // per-unit series current toward the load
}

// Solve evaluates the network at the given load multiplier and returns a
// complete snapshot. Past the collapse point it returns ErrDiverged.
// topo must be the solver's own network topology.
func (s *ExactSolver) Solve(topo *grid.Topology, loadMult float64) (*grid.SolvedState, error) {
	if topo != s.Net.Topo {
		return nil, fmt.Errorf("gridtest: solver bound to %q: %w", s.Net.Name, ErrUnsupportedNetwork)
	}
	if loadMult < 0 || math.IsInf(loadMult, 0) || math.IsNaN(loadMult) {
		return nil, fmt.Errorf("gridtest: multiplier %v: %w", loadMult, ErrBadMultiplier)
	}

	perm, err := s.permutation()
	if err != nil {
		return nil, err
	}

	state := &grid.SolvedState{
		VmPU:      make(map[grid.BusID]float64, topo.NumBuses()),
		VaDeg:     make(map[grid.BusID]float64, topo.NumBuses()),
		PMW:       make(map[grid.BusID]float64, len(s.Net.Loads)+1),
		QMvar:     make(map[grid.BusID]float64, len(s.Net.Loads)+1),
		LineFlows: make(map[int]grid.LineFlow, topo.NumLines()),
		BaseMVA:   BaseMVA,
		Perm:      perm,
	}

	// every bus starts at the slack profile, every line unloaded
	for _, b := range topo.Buses() {
		state.VmPU[b], state.VaDeg[b] = 1, 0
	}
	for i := 0; i < topo.NumLines(); i++ {
		state.LineFlows[i] = grid.LineFlow{}
	}

	feeds, err := s.resolveFeeds(topo)
	if err != nil {
		return nil, err
	}

	var slackP, slackQ float64
	for _, f := range feeds {
		fs, err := s.solveFeed(topo, state, f.path, loadMult)
		if err != nil {
			return nil, err
		}
		slackP += fs.sendP
		slackQ += fs.sendQ
	}
	// slack balances the system: generation reported consumption-negative
	state.PMW[topo.Slack()] = -slackP * BaseMVA
	state.QMvar[topo.Slack()] = -slackQ * BaseMVA

	if state.Ybus, err = AssembleYbus(topo, perm); err != nil {
		return nil, err
	}
	v, err := grid.ComplexVoltages(state)
	if err != nil {
		return nil, err
	}
	slackInternal, _ := perm.Internal(topo.Slack())
	if state.Jacobian, err = AssembleJacobian(state.Ybus, v, slackInternal); err != nil {
		return nil, err
	}

	return state, nil
}

// permutation returns the solver's internal ordering, ascending by default.
func (s *ExactSolver) permutation() (grid.Permutation, error) {
	order := s.Order
	if order == nil {
		order = s.Net.Topo.Buses()
	}
	perm, err := grid.NewPermutation(order)
	if err != nil {
		return grid.Permutation{}, fmt.Errorf("gridtest: %w", err)
	}
	if perm.N() != s.Net.Topo.NumBuses() {
		return grid.Permutation{}, fmt.Errorf("gridtest: order covers %d of %d buses: %w",
			perm.N(), s.Net.Topo.NumBuses(), ErrUnsupportedNetwork)
	}

	return perm, nil
}

// resolveFeeds maps every load onto its slack path and checks the paths
// are edge-disjoint.
func (s *ExactSolver) resolveFeeds(topo *grid.Topology) ([]feed, error) {
	loadBuses := make([]grid.BusID, 0, len(s.Net.Loads))
	for b := range s.Net.Loads {
		loadBuses = append(loadBuses, b)
	}
	sort.Slice(loadBuses, func(i, j int) bool { return loadBuses[i] < loadBuses[j] })

	usedLine := make(map[int]bool)
	feeds := make([]feed, 0, len(loadBuses))
	for _, b := range loadBuses {
		if b == topo.Slack() {
			return nil, fmt.Errorf("gridtest: load on slack bus %d: %w", b, ErrUnsupportedNetwork)
		}
		path, err := gridpath.ShortestPath(topo, topo.Slack(), b)
		if err != nil {
			return nil, fmt.Errorf("gridtest: feed to %d: %w", b, err)
		}
		for i := 0; i+1 < len(path); i++ {
			_, idx, _, err := topo.LineBetween(path[i], path[i+1])
			if err != nil {
				return nil, fmt.Errorf("gridtest: feed to %d: %w", b, err)
			}
			if usedLine[idx] {
				return nil, fmt.Errorf("gridtest: line %d feeds two loads: %w", idx, ErrUnsupportedNetwork)
			}
			usedLine[idx] = true
		}
		feeds = append(feeds, feed{path: path})
	}

	return feeds, nil
}

// feedSolution carries the slack-end per-unit injection of one feed.
type feedSolution struct {
	sendP, sendQ float64
}

// solveFeed computes the exact voltage profile and line flows along one
// radial path and writes them into state.
func (s *ExactSolver) solveFeed(topo *grid.Topology, state *grid.SolvedState, path []grid.BusID, loadMult float64) (feedSolution, error) {
	loadBus := path[len(path)-1]
	ld := s.Net.Loads[loadBus]
	sPU := complex(loadMult*ld.PMW/BaseMVA, loadMult*ld.QMvar/BaseMVA)

	rTot, xTot, err := pathImpedancePU(topo, path)
	if err != nil {
		return feedSolution{}, err
	}
	z := complex(rTot, xTot)

	// receiving-end quadratic in t = |V_end|²
	p, q := real(sPU), imag(sPU)
	b := 2*(rTot*p+xTot*q) - 1 // v_slack = 1 exactly
	c := (rTot*rTot + xTot*xTot) * (p*p + q*q)
	disc := b*b - 4*c
	if disc < 0 {
		return feedSolution{}, fmt.Errorf("gridtest: feed to %d at multiplier %v: %w", loadBus, loadMult, ErrDiverged)
	}
	t := (-b + math.Sqrt(disc)) / 2
	if t <= 0 {
		return feedSolution{}, fmt.Errorf("gridtest: feed to %d at multiplier %v: %w", loadBus, loadMult, ErrDiverged)
	}

	// V_end = v₁·t/(t + Z·conj(S)), then the series current
	vEnd := complex(t, 0) / (complex(t, 0) + z*cmplx.Conj(sPU))
	var curr complex128
	if sPU != 0 {
		curr = cmplx.Conj(sPU / vEnd)
	}

	// walk from the slack: cumulative impedance gives each bus voltage,
	// the constant series current gives both end flows of each segment
	var zAcc complex128
	vPrev := complex(1, 0)
	for i := 0; i+1 < len(path); i++ {
		nearBus, farBus := path[i], path[i+1]
		ln, idx, reversed, err := topo.LineBetween(nearBus, farBus)
		if err != nil {
			return feedSolution{}, fmt.Errorf("gridtest: feed segment %d-%d: %w", nearBus, farBus, err)
		}
		zSeg, err := segmentImpedancePU(topo, ln)
		if err != nil {
			return feedSolution{}, err
		}
		zAcc += zSeg
		vFar := complex(1, 0) - zAcc*curr

		sNear := vPrev * cmplx.Conj(curr)  // into the line at the near end
		sFar := -vFar * cmplx.Conj(curr)   // into the line at the far end
		flow := grid.LineFlow{}
		if reversed {
			flow.PFromMW, flow.QFromMvar = real(sFar)*BaseMVA, imag(sFar)*BaseMVA
			flow.PToMW, flow.QToMvar = real(sNear)*BaseMVA, imag(sNear)*BaseMVA
		} else {
			flow.PFromMW, flow.QFromMvar = real(sNear)*BaseMVA, imag(sNear)*BaseMVA
			flow.PToMW, flow.QToMvar = real(sFar)*BaseMVA, imag(sFar)*BaseMVA
		}
		state.LineFlows[idx] = flow

		state.VmPU[farBus] = cmplx.Abs(vFar)
		state.VaDeg[farBus] = cmplx.Phase(vFar) * 180 / math.Pi
		vPrev = vFar
	}

	state.PMW[loadBus] = loadMult * ld.PMW
	state.QMvar[loadBus] = loadMult * ld.QMvar

	sendS := complex(1, 0) * cmplx.Conj(curr)

	return feedSolution{sendP: real(sendS), sendQ: imag(sendS)}, nil
}

// pathImpedancePU sums per-unit segment impedances along a bus path.
func pathImpedancePU(topo *grid.Topology, path []grid.BusID) (r, x float64, err error) {
	for i := 0; i+1 < len(path); i++ {
		ln, _, _, err := topo.LineBetween(path[i], path[i+1])
		if err != nil {
			return 0, 0, fmt.Errorf("gridtest: segment %d-%d: %w", path[i], path[i+1], err)
		}
		z, err := segmentImpedancePU(topo, ln)
		if err != nil {
			return 0, 0, err
		}
		r += real(z)
		x += imag(z)
	}

	return r, x, nil
}

// segmentImpedancePU converts one line to per-unit on its from-bus zone.
func segmentImpedancePU(topo *grid.Topology, ln grid.Line) (complex128, error) {
	vn, err := topo.VnKV(ln.From)
	if err != nil {
		return 0, fmt.Errorf("gridtest: %w", err)
	}
	zBase := vn * vn / BaseMVA

	return complex(ln.ROhm()/zBase, ln.XOhm()/zBase), nil
}

// AssembleYbus stamps every line's series admittance into a sparse bus
// admittance matrix in the permutation's internal order.
func AssembleYbus(topo *grid.Topology, perm grid.Permutation) (*cmat.Sparse, error) {
	if topo == nil {
		return nil, grid.ErrNilTopology
	}
	n := topo.NumBuses()
	y, err := cmat.NewSparse(n, n)
	if err != nil {
		return nil, fmt.Errorf("gridtest: ybus: %w", err)
	}
	for _, ln := range topo.Lines() {
		z, err := segmentImpedancePU(topo, ln)
		if err != nil {
			return nil, err
		}
		adm := 1 / z
		i, okI := perm.Internal(ln.From)
		j, okJ := perm.Internal(ln.To)
		if !okI || !okJ {
			return nil, fmt.Errorf("gridtest: line %d-%d: %w", ln.From, ln.To, grid.ErrPermutationMismatch)
		}
		_ = y.Add(i, i, adm)
		_ = y.Add(j, j, adm)
		_ = y.Add(i, j, -adm)
		_ = y.Add(j, i, -adm)
	}

	return y, nil
}
