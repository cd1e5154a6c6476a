package config

import "fmt"

const (
	S3StoreDriver         = "s3"
	FilesystemStoreDriver = "filesystem"
)

type S3Config struct {
	BucketName     string
	Region         string
	Endpoint       string
	ForcePathStyle bool
}

type StoreConfig struct {
	Driver        string
	PublicBaseURL string
	LocalDir      string
	S3            *S3Config
}

func GetS3Config() (*S3Config, error) {
	bucketName, err := requireEnv("BUCKET_NAME")
	if err != nil {
		return nil, err
	}
	region, err := requireEnv("REGION")
	if err != nil {
		return nil, err
	}
	forcePathStyle, err := getEnvBool("S3_FORCE_PATH_STYLE", false)
	if err != nil {
		return nil, err
	}

	return &S3Config{
		BucketName:     bucketName,
		Region:         region,
		Endpoint:       getEnv("S3_ENDPOINT", ""),
		ForcePathStyle: forcePathStyle,
	}, nil
}

func GetStoreConfig() (*StoreConfig, error) {
	driver := getEnv("ARTIFACT_STORE", S3StoreDriver)
	storeConfig := &StoreConfig{
		Driver:        driver,
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LocalDir:      getEnv("ARTIFACT_DIR", "artifacts"),
	}

	switch driver {
	case S3StoreDriver:
		s3Config, err := GetS3Config()
		if err != nil {
			return nil, err
		}
		storeConfig.S3 = s3Config
	case FilesystemStoreDriver:
		if storeConfig.PublicBaseURL == "" {
			storeConfig.PublicBaseURL = "http://localhost:8080/artifacts"
		}
	default:
		return nil, fmt.Errorf("unsupported ARTIFACT_STORE %q", driver)
	}

	return storeConfig, nil
}
