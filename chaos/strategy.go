package chaos

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Strategy picks the index of the next vertex to move toward. history holds
// the indices of previously chosen vertices, most recent last.
type Strategy func(r *rand.Rand, vertices []Vertex, history []int) int

// Uniform picks any vertex with equal probability.
func Uniform(r *rand.Rand, vertices []Vertex, _ []int) int {
	return r.Intn(len(vertices))
}

// NoPrevious never picks the vertex chosen last time.
func NoPrevious(r *rand.Rand, vertices []Vertex, history []int) int {
	return pickExcept(r, len(vertices), lastN(history, 1))
}

// NoTwoPrevious never picks either of the two vertices chosen last.
func NoTwoPrevious(r *rand.Rand, vertices []Vertex, history []int) int {
	return pickExcept(r, len(vertices), lastN(history, 2))
}

// OddEven alternates between vertices at even and odd positions.
func OddEven(r *rand.Rand, vertices []Vertex, history []int) int {
	if len(history) == 0 {
		return r.Intn(len(vertices))
	}
	parity := 0
	if history[len(history)-1]%2 == 0 {
		parity = 1
	}
	// Number of indices with the wanted parity below len(vertices)
	count := (len(vertices) - parity + 1) / 2
	if count == 0 {
		return r.Intn(len(vertices))
	}
	return parity + 2*r.Intn(count)
}

func lastN(history []int, n int) []int {
	if len(history) < n {
		return history
	}
	return history[len(history)-n:]
}

// pickExcept picks uniformly among 0..n-1 without the excluded indices. If
// everything is excluded, it picks among all of them.
func pickExcept(r *rand.Rand, n int, excluded []int) int {
	allowed := make([]int, 0, n)
outer:
	for i := 0; i < n; i++ {
		for _, e := range excluded {
			if i == e {
				continue outer
			}
		}
		allowed = append(allowed, i)
	}
	if len(allowed) == 0 {
		return r.Intn(n)
	}
	return allowed[r.Intn(len(allowed))]
}

var strategies = map[string]Strategy{
	"uniform":         Uniform,
	"no-previous":     NoPrevious,
	"no-two-previous": NoTwoPrevious,
	"odd-even":        OddEven,
}

// StrategyNames lists the names accepted by ParseStrategy.
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ParseStrategy(name string) (Strategy, error) {
	if s, ok := strategies[strings.ToLower(name)]; ok {
		return s, nil
	}
	return nil, errors.Wrapf(ErrStrategy, "%q", name)
}
