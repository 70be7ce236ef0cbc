package topofile

import "errors"

var (
	// ErrInvalidSpec reports a structurally broken experiment document.
	ErrInvalidSpec = errors.New("topofile: invalid experiment")
	// ErrUnknownKind reports a layer kind other than grid or free.
	ErrUnknownKind = errors.New("topofile: unknown layer kind")
	// ErrUnknownRule reports an unrecognized connection rule name.
	ErrUnknownRule = errors.New("topofile: unknown rule")
	// ErrUnknownMask reports an unrecognized mask type name.
	ErrUnknownMask = errors.New("topofile: unknown mask type")
	// ErrUnknownField reports an unrecognized field type name.
	ErrUnknownField = errors.New("topofile: unknown field type")
	// ErrUnknownLayer reports a connection naming a layer the document
	// never declares.
	ErrUnknownLayer = errors.New("topofile: unknown layer name")
)

// File is one parsed experiment document.
type File struct {
	Layers      []LayerSpec      `yaml:"layers"`
	Connections []ConnectionSpec `yaml:"connections"`
}

// LayerSpec declares one population. Grids take cols, rows and (for
// 3-D) planes; free layers take explicit positions whose width decides
// the dimension.
type LayerSpec struct {
	Name      string      `yaml:"name"`
	Kind      string      `yaml:"kind"` // grid | free
	Cols      int         `yaml:"cols"`
	Rows      int         `yaml:"rows"`
	Planes    int         `yaml:"planes"`
	Extent    []float64   `yaml:"extent"` // per-axis size
	Center    []float64   `yaml:"center"`
	Periodic  bool        `yaml:"periodic"`
	Positions [][]float64 `yaml:"positions"`
}

// ConnectionSpec declares one generation pass between two named layers.
// Autapses and Multapses default to allowed when omitted.
type ConnectionSpec struct {
	From      string     `yaml:"from"`
	To        string     `yaml:"to"`
	Rule      string     `yaml:"rule"` // target-driven | source-driven | convergent | divergent
	Count     int        `yaml:"count"`
	Mask      *MaskSpec  `yaml:"mask"`
	Kernel    *FieldSpec `yaml:"kernel"`
	Weight    *FieldSpec `yaml:"weight"`
	Delay     *FieldSpec `yaml:"delay"`
	Autapses  *bool      `yaml:"autapses"`
	Multapses *bool      `yaml:"multapses"`
	Synapse   string     `yaml:"synapse"`
}

// MaskSpec declares a spatial region in driver-local coordinates.
type MaskSpec struct {
	Type   string    `yaml:"type"`         // box | ball | donut
	Radius float64   `yaml:"radius"`       // ball
	Inner  float64   `yaml:"inner_radius"` // donut
	Outer  float64   `yaml:"outer_radius"` // donut
	Min    []float64 `yaml:"min"`          // box corner
	Max    []float64 `yaml:"max"`          // box corner
	Anchor []float64 `yaml:"anchor"`       // shifts any mask off the driver
}

// FieldSpec declares a parameter field. The type name selects the
// variant; keys irrelevant to it are ignored. clamp_min and clamp_max
// fold the variant's value, then cutoff zeroes everything beyond its
// distance.
type FieldSpec struct {
	Type string `yaml:"type"`

	Value float64 `yaml:"value"` // constant

	A   float64 `yaml:"a"`   // linear, exponential
	C   float64 `yaml:"c"`   // linear, exponential, gaussian family
	Tau float64 `yaml:"tau"` // exponential

	P     float64 `yaml:"p_center"` // gaussian family peak
	Mean  float64 `yaml:"mean"`     // gaussian
	Sigma float64 `yaml:"sigma"`    // gaussian

	MeanX  float64 `yaml:"mean_x"`  // gaussian2d
	MeanY  float64 `yaml:"mean_y"`  // gaussian2d
	SigmaX float64 `yaml:"sigma_x"` // gaussian2d
	SigmaY float64 `yaml:"sigma_y"` // gaussian2d
	Rho    float64 `yaml:"rho"`     // gaussian2d

	Min float64 `yaml:"min"` // uniform
	Max float64 `yaml:"max"` // uniform

	Values []float64 `yaml:"values"` // discrete, indexed by pool ordinal

	Terms []TermSpec `yaml:"terms"` // combination

	Cutoff   float64  `yaml:"cutoff"`    // zero reach beyond this distance
	ClampMin *float64 `yaml:"clamp_min"` // fold values below this bound
	ClampMax *float64 `yaml:"clamp_max"` // fold values above this bound
}

// TermSpec is one weighted child of a combination field.
type TermSpec struct {
	Weight float64   `yaml:"weight"`
	Field  FieldSpec `yaml:"field"`
}
