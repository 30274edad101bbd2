package design

import (
	"encoding/json"
	"maps"

	"github.com/matzehuels/kolam/pkg/kolam"
)

// Request builds the JSON body of a generation request: the common pattern
// parameters, "design_type", and the fields of c. A nil c selects the default
// L-system. Where a family field shares a name with a pattern parameter
// ("iterations" for the L-system families) the family value is sent.
//
// The body is deterministic for equal inputs, so its hash can key a cache.
func Request(p kolam.Params, c Config) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if c == nil {
		c = DefaultLSystem()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	body := map[string]any{
		"gridType":     p.GridType,
		"rows":         p.Rows,
		"columns":      p.Columns,
		"dotSpacing":   p.DotSpacing,
		"strokeType":   p.StrokeType,
		"symmetryType": p.Symmetry,
		"iterations":   p.Iterations,
		"design_type":  c.Family(),
	}
	maps.Copy(body, c.fields())
	return json.Marshal(body)
}
