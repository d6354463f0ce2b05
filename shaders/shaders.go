// Package shaders embeds the WGSL programs. The binding tables in each
// program are the wire contract with the gpu package; keep them in sync.
package shaders

import (
	_ "embed"
)

//go:embed step_points.wgsl
var StepPointsWGSL string

//go:embed points.wgsl
var PointsWGSL string

//go:embed background.wgsl
var BackgroundWGSL string

//go:embed points_basic.wgsl
var PointsBasicWGSL string
