package main

import (
	"errors"

	"brilcfg/internal/bril"
	"brilcfg/internal/cfg"
)

// Exit codes form a stable contract for scripts.
const (
	exitOK        = 0
	exitFailure   = 1
	exitNotFound  = 2
	exitBadJSON   = 3
	exitMalformed = 4
)

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var loadErr *bril.LoadError
	if errors.As(err, &loadErr) {
		switch {
		case loadErr.NotFound():
			return exitNotFound
		case loadErr.Stage == bril.StageDecode:
			return exitBadJSON
		default:
			return exitFailure
		}
	}

	var (
		malformed *cfg.MalformedInstructionError
		dangling  *cfg.DanglingLabelError
		dup       *cfg.DuplicateBlockError
	)
	if errors.As(err, &malformed) || errors.As(err, &dangling) || errors.As(err, &dup) {
		return exitMalformed
	}
	return exitFailure
}
