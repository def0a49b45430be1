package chaos

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
)

// Branch identifies the case of the division operator taken for a pair of
// points. It is decided by the sign of PhiBig and, when negative, by whether
// PhiBar vanishes.
type Branch int

const (
	// The line cuts the absolute in two real points.
	BranchRegular Branch = iota
	// The line is tangent to the absolute.
	BranchParabolic
	// The line misses the absolute and the points are conjugate.
	BranchHyperbolicSymmetric
	// The line misses the absolute; the boundary crossing decides.
	BranchHyperbolicGeneral

	numBranches
)

var branchNames = [numBranches]string{
	BranchRegular:             "regular",
	BranchParabolic:           "parabolic",
	BranchHyperbolicSymmetric: "hyperbolic-symmetric",
	BranchHyperbolicGeneral:   "hyperbolic-general",
}

func (b Branch) String() string {
	if b < 0 || b >= numBranches {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchNames[b]
}

// Stats counts what the divider did. It doubles as branch coverage
// instrumentation in tests.
type Stats struct {
	Branches [numBranches]int
	// Boundary crossing searches, only ever done by the general hyperbolic
	// branch.
	HarmonicSearches int
	// Retries with the negated relation.
	Fallbacks  int
	Recursions int
	// Divisions that gave up and returned the infinity sentinel.
	Discarded int
	// Restarts of Engine.Run. The divider itself never counts any; see
	// Engine.Stats.
	Restarts int
}

func (s Stats) String() string {
	parts := make([]string, 0, numBranches+5)
	for b := Branch(0); b < numBranches; b++ {
		parts = append(parts, fmt.Sprintf("%s=%d", b, aurora.Cyan(s.Branches[b])))
	}
	parts = append(parts,
		fmt.Sprintf("harmonic=%d", s.HarmonicSearches),
		fmt.Sprintf("fallbacks=%d", s.Fallbacks),
		fmt.Sprintf("recursions=%d", s.Recursions),
		aurora.Red(fmt.Sprintf("discarded=%d", s.Discarded)).String(),
		fmt.Sprintf("restarts=%d", s.Restarts),
	)
	return strings.Join(parts, " ")
}
