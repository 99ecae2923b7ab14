package dragsession

import (
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/geom"
)

// DefaultPreviewLayers is how many tiles the stacked preview shows.
const DefaultPreviewLayers = 3

// DefaultLayerOffset is the step between stacked preview tiles.
var DefaultLayerOffset = geom.Point{X: 6, Y: 6}

// BuildPreview stacks up to maxLayers keys with the dragged key on top and
// reports the rest as overflow.
func BuildPreview(dragged string, keys []string, maxLayers int, step geom.Point) grid.DragImage {
	if maxLayers < 1 {
		maxLayers = 1
	}
	order := make([]string, 0, len(keys))
	order = append(order, dragged)
	for _, k := range keys {
		if k != dragged {
			order = append(order, k)
		}
	}

	n := min(len(order), maxLayers)
	img := grid.DragImage{
		Layers:   make([]grid.PreviewLayer, n),
		Overflow: len(order) - n,
	}
	for i := 0; i < n; i++ {
		img.Layers[i] = grid.PreviewLayer{
			Key:    order[i],
			Offset: geom.Point{X: step.X * float64(i), Y: step.Y * float64(i)},
		}
	}
	return img
}
