package config

// ApplyTetrisPreset modifies the gravity curve based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset

	switch preset {
	case DifficultyEasy:
		cfg.Gravity.BaseMS = 1000
	case DifficultyHard:
		cfg.Gravity.BaseMS = 500
		cfg.Gravity.MinMS = 80
	case DifficultyFixed:
		cfg.Gravity.StepMS = 0
	}

	if cfg.Gravity.MinMS > cfg.Gravity.BaseMS {
		cfg.Gravity.MinMS = cfg.Gravity.BaseMS
	}
}
