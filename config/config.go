package config

// AppConfig is built once at start-up and handed to every component that needs it.
type AppConfig struct {
	Server   *ServerConfig
	Pipeline *PipelineConfig
	Gpt      *GptConfig
	Speech   *SpeechConfig
	Video    *VideoConfig
	Store    *StoreConfig
	Dynamo   *DynamoConfig
}

func Load() (*AppConfig, error) {
	serverConfig, err := GetServerConfig()
	if err != nil {
		return nil, err
	}
	pipelineConfig, err := GetPipelineConfig()
	if err != nil {
		return nil, err
	}
	gptConfig, err := GetGptConfig()
	if err != nil {
		return nil, err
	}
	speechConfig, err := GetSpeechConfig()
	if err != nil {
		return nil, err
	}
	videoConfig, err := GetVideoConfig()
	if err != nil {
		return nil, err
	}
	storeConfig, err := GetStoreConfig()
	if err != nil {
		return nil, err
	}
	dynamoConfig, err := GetDynamoConfig()
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		Server:   serverConfig,
		Pipeline: pipelineConfig,
		Gpt:      gptConfig,
		Speech:   speechConfig,
		Video:    videoConfig,
		Store:    storeConfig,
		Dynamo:   dynamoConfig,
	}, nil
}
