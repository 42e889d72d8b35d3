//go:build tools
// +build tools

// Package tools pins the code generation and dev tooling used by go:generate
// and the Makefile targets.
package tools

import (
	_ "github.com/air-verse/air"
	_ "github.com/google/wire/cmd/wire"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "go.uber.org/mock/mockgen"
)
