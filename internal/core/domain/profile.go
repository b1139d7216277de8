package domain

// Backend-native sampling keys, llama-server naming.
const (
	KeyTemperature     = "temperature"
	KeyTopP            = "top_p"
	KeyTopK            = "top_k"
	KeyMinP            = "min_p"
	KeyPresencePenalty = "presence_penalty"
	KeyRepeatPenalty   = "repeat_penalty"
)

// SamplingProfile is the parameter set forced onto every request of a Mode.
// It is a value type so lookups hand out copies.
type SamplingProfile struct {
	Temperature     float64 `json:"temperature" yaml:"temperature"`
	TopP            float64 `json:"top_p" yaml:"top_p"`
	MinP            float64 `json:"min_p" yaml:"min_p"`
	PresencePenalty float64 `json:"presence_penalty" yaml:"presence_penalty"`
	RepeatPenalty   float64 `json:"repeat_penalty" yaml:"repeat_penalty"`
	TopK            int     `json:"top_k" yaml:"top_k"`
}

// SamplingParam is one key/value pair of a profile.
type SamplingParam struct {
	Value any
	Key   string
}

// Params returns the six keys in a stable order for merging and logging.
func (p SamplingProfile) Params() []SamplingParam {
	return []SamplingParam{
		{Key: KeyTemperature, Value: p.Temperature},
		{Key: KeyTopP, Value: p.TopP},
		{Key: KeyTopK, Value: p.TopK},
		{Key: KeyMinP, Value: p.MinP},
		{Key: KeyPresencePenalty, Value: p.PresencePenalty},
		{Key: KeyRepeatPenalty, Value: p.RepeatPenalty},
	}
}

// LogArgs flattens the profile into slog key/value pairs.
func (p SamplingProfile) LogArgs() []any {
	params := p.Params()
	args := make([]any, 0, len(params)*2)
	for _, param := range params {
		args = append(args, param.Key, param.Value)
	}
	return args
}
