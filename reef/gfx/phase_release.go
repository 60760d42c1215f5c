//go:build !reefdebug

package gfx

const strictPhases = false
