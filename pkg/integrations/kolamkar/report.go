package kolamkar

// Report is the design service's analysis of a kolam photograph.
//
// Every field is descriptive text chosen by the service; none of it is
// interpreted locally.
type Report struct {
	SymmetryType         string         `json:"symmetryType"`         // e.g. "4-fold Rotational Symmetry"
	RotationPatterns     []string       `json:"rotationPatterns"`     // e.g. "90° rotation"
	GridSystem           string         `json:"gridSystem"`           // e.g. "Square Grid (8x8)"
	Complexity           string         `json:"complexity"`           // e.g. "Intermediate"
	Specifications       Specifications `json:"specifications"`       // Measured properties
	Algorithm            []string       `json:"algorithm"`            // Numbered drawing steps
	CulturalSignificance string         `json:"culturalSignificance"` // Free text
}

// Specifications holds the measured properties of an analyzed design.
type Specifications struct {
	Dimensions  string `json:"dimensions"`
	DotCount    int    `json:"dotCount"`
	LineLength  string `json:"lineLength"`
	StrokeWidth string `json:"strokeWidth"`
}
