package impex

import (
	"strconv"

	"github.com/ironsheep/layer-import-mcp/internal/layerstack"
)

// LayerIDFor returns the id of the layer created for frame i.
func LayerIDFor(i int) layerstack.LayerID {
	return layerstack.BaseLayerID + layerstack.LayerID(i)
}

// LayerTitleFor returns the title of the layer created for frame i.
func LayerTitleFor(i int) string {
	return "Layer " + strconv.Itoa(i+1)
}
