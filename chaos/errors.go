package chaos

import "github.com/pkg/errors"

var (
	ErrTooFewVertices = errors.New("polygon needs at least three vertices")
	ErrArity          = errors.New("vertex arity does not match dimension")
	ErrDimension      = errors.New("unsupported dimension")
	ErrFrame          = errors.New("unknown frame")
	ErrStartPoint     = errors.New("no start point found")
	ErrRecursion      = errors.New("division recursed deeper than expected")
	ErrRelation       = errors.New("invalid relation")
	ErrStrategy       = errors.New("unknown strategy")
	ErrChecker        = errors.New("unknown checker")
)
