package models

// GeneratorSettings is the per-generator override pair.
type GeneratorSettings struct {
	SystemPrompt string `json:"systemPrompt"`
	Model        string `json:"model"`
}

// Settings holds one profile per generator. The whole structure is
// persisted as a single JSON blob and overwritten wholesale on save.
type Settings struct {
	Quote GeneratorSettings `json:"quote"`
	Image GeneratorSettings `json:"image"`
}

// GeneratorSettingsPatch is a partial update of one profile; nil fields
// keep their current value.
type GeneratorSettingsPatch struct {
	SystemPrompt *string `json:"systemPrompt,omitempty"`
	Model        *string `json:"model,omitempty"`
}

// SettingsPatch is a merge-patch over Settings.
type SettingsPatch struct {
	Quote *GeneratorSettingsPatch `json:"quote,omitempty"`
	Image *GeneratorSettingsPatch `json:"image,omitempty"`
}
