package main

import (
	"fmt"
	"sport-reel-generator/application/ports/inbound"
	"sport-reel-generator/application/ports/outbound"
	"sport-reel-generator/application/services"
	"sport-reel-generator/config"
	"sport-reel-generator/infrastructure/adapters"
	mockcatalog "sport-reel-generator/mock"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/panjf2000/ants/v2"
)

const recentVideosLimit = 20

type application struct {
	config     *config.AppConfig
	logger     outbound.LoggerPort
	workerPool *ants.Pool
	pipeline   inbound.AssetPipelinePort
	catalog    inbound.VideoCatalogPort
}

func newApplication(cfg *config.AppConfig) (*application, error) {
	zeroLogger := adapters.NewZerologWrapper(cfg.Server.LogLevel, cfg.Server.LogPretty)

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(cfg.Pipeline.WorkerPoolSize, ants.WithPanicHandler(panicHandler))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	app, err := wireApplication(cfg, zeroLogger, workerPool)
	if err != nil {
		workerPool.Release()
		return nil, err
	}
	return app, nil
}

func wireApplication(cfg *config.AppConfig, zeroLogger outbound.LoggerPort, workerPool *ants.Pool) (*application, error) {
	var sess *session.Session
	if cfg.Store.Driver == config.S3StoreDriver || cfg.Dynamo != nil {
		var err error
		sess, err = newAWSSession(cfg.Store.S3)
		if err != nil {
			return nil, fmt.Errorf("create aws session: %w", err)
		}
	}

	artifactStore, err := newArtifactStore(cfg, sess, zeroLogger)
	if err != nil {
		return nil, err
	}

	recorder := adapters.NewNoopGenerationRecorder()
	if cfg.Dynamo != nil {
		recorder = adapters.NewDynamoGenerationRecorder(zeroLogger, dynamodb.New(sess), cfg.Dynamo)
	}

	contentFetcher := adapters.NewContentFetcher(zeroLogger, cfg.Pipeline.HTTPTimeout)

	scriptGenerator := adapters.NewGptScriptGenerator(cfg.Gpt, cfg.Pipeline.HTTPTimeout, zeroLogger)
	speechSynthesizer := adapters.NewSpeechSynthesizer(contentFetcher, cfg.Speech, zeroLogger)
	videoBackend := adapters.NewRunwayVideoBackend(contentFetcher, cfg.Video, zeroLogger)

	voiceoverGenerator := services.NewVoiceoverGenerator(zeroLogger, contentFetcher, speechSynthesizer)

	videoGenerator := services.NewVideoGenerator(zeroLogger, videoBackend, contentFetcher, services.VideoSettings{
		Prompt:        cfg.Video.Prompt,
		Duration:      cfg.Video.Duration,
		AspectRatio:   cfg.Video.AspectRatio,
		PollInterval:  cfg.Video.PollInterval,
		PollTimeout:   cfg.Video.PollTimeout,
		StatusRetries: cfg.Video.StatusRetries,
	})

	assetPipeline := services.NewAssetPipeline(
		zeroLogger,
		workerPool,
		scriptGenerator,
		voiceoverGenerator,
		videoGenerator,
		artifactStore,
		recorder,
		services.PipelineSettings{
			Concurrent:     cfg.Pipeline.Concurrent,
			RequestTimeout: cfg.Pipeline.RequestTimeout,
		},
	)

	fixedVideos, err := mockcatalog.LoadVideoURLs(cfg.Server.VideoCatalogFile, zeroLogger)
	if err != nil {
		return nil, fmt.Errorf("load video catalog: %w", err)
	}
	videoCatalog := services.NewVideoCatalog(zeroLogger, fixedVideos, recorder, recentVideosLimit)

	return &application{
		config:     cfg,
		logger:     zeroLogger,
		workerPool: workerPool,
		pipeline:   assetPipeline,
		catalog:    videoCatalog,
	}, nil
}

func (a *application) Close() {
	a.workerPool.Release()
}

// newAWSSession uses the shared AWS config chain; s3Config, when present, pins region and endpoint.
func newAWSSession(s3Config *config.S3Config) (*session.Session, error) {
	awsConfig := aws.NewConfig()
	if s3Config != nil {
		awsConfig = awsConfig.WithRegion(s3Config.Region).WithS3ForcePathStyle(s3Config.ForcePathStyle)
		if s3Config.Endpoint != "" {
			awsConfig = awsConfig.WithEndpoint(s3Config.Endpoint)
		}
	}

	return session.NewSessionWithOptions(session.Options{
		Config:            *awsConfig,
		SharedConfigState: session.SharedConfigEnable,
	})
}

func newArtifactStore(cfg *config.AppConfig, sess *session.Session, logger outbound.LoggerPort) (outbound.ArtifactStorePort, error) {
	switch cfg.Store.Driver {
	case config.S3StoreDriver:
		return adapters.NewS3ArtifactStore(s3.New(sess), cfg.Store.S3, cfg.Store.PublicBaseURL, cfg.Pipeline.HTTPTimeout), nil
	case config.FilesystemStoreDriver:
		store, err := adapters.NewFilesystemArtifactStore(cfg.Store.LocalDir, cfg.Store.PublicBaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("create filesystem store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported artifact store %q", cfg.Store.Driver)
	}
}
