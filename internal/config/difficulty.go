package config

// Difficulty selects a preset that scales aim and reaction chances.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyPreset holds the multipliers applied on top of an agent profile.
type DifficultyPreset struct {
	// AccuracyScale multiplies PredictionConfig.Accuracy (result clamped to [0,1]).
	AccuracyScale float64
	// ChanceScale multiplies special-ability and counter chances.
	ChanceScale float64
}

var difficultyPresets = map[Difficulty]DifficultyPreset{
	DifficultyEasy:   {AccuracyScale: 0.5, ChanceScale: 0.75},
	DifficultyNormal: {AccuracyScale: 0.8, ChanceScale: 1.0},
	DifficultyHard:   {AccuracyScale: 1.0, ChanceScale: 1.25},
}

// Preset returns the multipliers for d. Unknown values fall back to normal.
func (d Difficulty) Preset() DifficultyPreset {
	if p, ok := difficultyPresets[d]; ok {
		return p
	}
	return difficultyPresets[DifficultyNormal]
}
