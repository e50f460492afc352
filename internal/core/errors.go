package core

import "errors"

// ErrConfiguration marks structural problems that make a simulation unusable:
// unknown method names, mismatched array lengths, negative ages and the like.
var ErrConfiguration = errors.New("configuration error")

// ErrInvalidInput marks per-step forcing data that falls outside its legal
// range. A step that returns it has not mutated any state.
var ErrInvalidInput = errors.New("invalid input")
