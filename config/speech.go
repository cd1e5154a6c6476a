package config

import "fmt"

type SpeechConfig struct {
	ApiUrl       string
	ApiKey       string
	LanguageCode string
	VoiceName    string
	SpeakingRate float64
}

func GetSpeechConfig() (*SpeechConfig, error) {
	apiKey, err := requireEnv("SPEECH_API_KEY")
	if err != nil {
		return nil, err
	}
	speakingRate, err := getEnvFloat("SPEECH_SPEAKING_RATE", 1.2)
	if err != nil {
		return nil, err
	}
	if speakingRate < 0.25 || speakingRate > 4.0 {
		return nil, fmt.Errorf("SPEECH_SPEAKING_RATE must be between 0.25 and 4.0")
	}

	return &SpeechConfig{
		ApiUrl:       getEnv("SPEECH_API_URL", "https://texttospeech.googleapis.com/v1/text:synthesize"),
		ApiKey:       apiKey,
		LanguageCode: getEnv("SPEECH_LANGUAGE_CODE", "en-US"),
		VoiceName:    getEnv("SPEECH_VOICE_NAME", "en-US-Neural2-D"),
		SpeakingRate: speakingRate,
	}, nil
}
