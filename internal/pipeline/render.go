package pipeline

import (
	"fmt"

	"clipforge/internal/effects"
	"clipforge/internal/ffmpeg"
)

// renderInstructions attaches a suggested foreground filter expression to each
// planned effect. The renderer owns compositing and may substitute its own
// recipes; the expressions here describe the intended treatment in ffmpeg
// terms, relative to the renderer's output frame (ow/oh via scale targets are
// left symbolic where possible).
func renderInstructions(plan []effects.Segment) []RenderInstruction {
	out := make([]RenderInstruction, 0, len(plan))
	for _, seg := range plan {
		out = append(out, RenderInstruction{
			StartSec: seg.StartSec,
			EndSec:   seg.EndSec,
			Effect:   seg.Type,
			Filter:   filterHint(seg),
			Params:   seg.Params,
		})
	}
	return out
}

func filterHint(seg effects.Segment) string {
	fb := ffmpeg.NewFilterBuilder()

	switch seg.Type {
	case effects.ZoomIn:
		scale := paramFloat(seg.Params, "scale", 1.3)
		switch seg.Params["focus"] {
		case "left":
			fb.Scale(fmt.Sprintf("iw*%g", scale), "-2").
				Crop("iw/1.5", "ih", "0", "(ih-oh)/2")
		case "right":
			fb.Scale(fmt.Sprintf("iw*%g", scale), "-2").
				Crop("iw/1.5", "ih", "iw-ow", "(ih-oh)/2")
		default:
			fb.Scale("-2", fmt.Sprintf("ih*%g", scale)).
				Crop(fmt.Sprintf("iw/%g", scale), fmt.Sprintf("ih/%g", scale), "(iw-ow)/2", "(ih-oh)/2")
		}

	case effects.ZoomOut:
		fb.Scale("-2", "ih*0.8")

	case effects.SplitScreen:
		// Top half over bottom half; the renderer stacks the two crops
		fb.Crop("iw", "ih/2", "0", "0")

	case effects.PanLeft:
		zoom := paramFloat(seg.Params, "zoom", 1.2)
		fb.Scale(fmt.Sprintf("iw*%g", zoom), "-2").
			Crop("iw/1.2", "ih", "(iw-ow)*0.8", "(ih-oh)/2")

	case effects.PanRight:
		zoom := paramFloat(seg.Params, "zoom", 1.2)
		fb.Scale(fmt.Sprintf("iw*%g", zoom), "-2").
			Crop("iw/1.2", "ih", "(iw-ow)*0.2", "(ih-oh)/2")

	default: // full_frame
		fb.Scale("-2", "ih*0.95")
	}

	return fb.Build()
}

func paramFloat(params map[string]any, key string, fallback float64) float64 {
	if v, ok := params[key].(float64); ok {
		return v
	}
	return fallback
}
