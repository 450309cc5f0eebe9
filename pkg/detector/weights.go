package detector

// Constants for the decision stages
// Per-set scoring weights live in the scorer profiles; these apply once the
// scores are known

const (
	// HintMultiplier boosts a language that already scored when the filename
	// suffix maps to it. A hint never introduces a language on its own
	HintMultiplier = 1.5

	// FrameworkScale turns a framework score into a confidence in [0, 1]
	FrameworkScale = 5.0

	// FusionWeight is the share of framework confidence added to the language
	// confidence when a framework is detected
	FusionWeight = 0.3

	// DefaultEvidenceLimit is how many evidence lines FormatResult prints
	DefaultEvidenceLimit = 10
)
