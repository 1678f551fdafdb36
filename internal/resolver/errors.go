package resolver

import "errors"

var (
	ErrSelfPair         = errors.New("pair must name two distinct keys")
	ErrOverlappingPairs = errors.New("a key may belong to at most one pair")
)
