//go:build tools

package tools

import (
	_ "github.com/air-verse/air"
	_ "github.com/securego/gosec/v2/cmd/gosec"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "honnef.co/go/tools/cmd/staticcheck"
)
