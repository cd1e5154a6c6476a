package config

type GptConfig struct {
	ApiUrl    string
	ApiKey    string
	Model     string
	MaxTokens int
}

func GetGptConfig() (*GptConfig, error) {
	apiKey, err := requireEnv("GPT_API_KEY")
	if err != nil {
		return nil, err
	}
	maxTokens, err := getEnvInt("GPT_MAX_TOKENS", 400)
	if err != nil {
		return nil, err
	}
	return &GptConfig{
		ApiUrl:    getEnv("GPT_API_URL", "https://api.openai.com/v1/chat/completions"),
		ApiKey:    apiKey,
		Model:     getEnv("GPT_MODEL", "gpt-4o-mini"),
		MaxTokens: maxTokens,
	}, nil
}
