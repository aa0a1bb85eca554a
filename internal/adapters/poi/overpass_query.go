package poi

import (
	"fmt"
	"strconv"
	"strings"
)

// Closed allow-list of attraction categories. Extending it is a config
// change, not a runtime decision.
var taxonomy = []string{
	"tourism=attraction",
	"tourism=museum",
	"tourism=viewpoint",
	"historic=monument",
	"leisure=park",
	"heritage",
}

var elementTypes = []string{"node", "way", "relation"}

// BuildQuery produces an Overpass QL query requesting node, way and relation
// geometries within radiusMeters of the coordinate, filtered to the category
// taxonomy. Deterministic string transform with no failure mode.
func BuildQuery(lat, lon float64, radiusMeters int) string {
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")

	around := fmt.Sprintf(
		"around:%d,%s,%s",
		radiusMeters,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
	)

	for _, elem := range elementTypes {
		for _, filter := range taxonomy {
			fmt.Fprintf(&b, "  %s(%s)[%s];\n", elem, around, filter)
		}
	}

	b.WriteString(");\nout center qt;\n")
	return b.String()
}
