package config

type DynamoConfig struct {
	TableName  string
	TtlMinutes int
}

// GetDynamoConfig returns nil when no table is configured; the generation index is optional.
func GetDynamoConfig() (*DynamoConfig, error) {
	tableName := getEnv("DYNAMO_TABLE_NAME", "")
	if tableName == "" {
		return nil, nil
	}
	ttlMinutes, err := getEnvInt("DYNAMO_TTL_MINUTES", 7*24*60)
	if err != nil {
		return nil, err
	}

	return &DynamoConfig{
		TableName:  tableName,
		TtlMinutes: ttlMinutes,
	}, nil
}
