//go:build tinygo

package main

import (
	"ozean/app"
	"ozean/hal"
	"ozean/reef/config"
)

func main() {
	app.Run(hal.New(), config.Default(), app.Options{})
}
