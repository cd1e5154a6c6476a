package adapters

import (
	"context"
	"sort"
	"sport-reel-generator/application/ports/outbound"
	"sport-reel-generator/config"
	"sport-reel-generator/domain"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

type dynamoGenerationItem struct {
	RequestID    string `dynamodbav:"request_id"`
	Sport        string `dynamodbav:"sport"`
	ScriptURL    string `dynamodbav:"script_url"`
	VoiceoverURL string `dynamodbav:"voiceover_url"`
	VideoURL     string `dynamodbav:"video_url"`
	CreatedAt    int64  `dynamodbav:"created_at"`
	TTL          int64  `dynamodbav:"ttl"`
}

type dynamoGenerationRecorder struct {
	logger       outbound.LoggerPort
	dynamoSvc    dynamodbiface.DynamoDBAPI
	dynamoConfig *config.DynamoConfig
	now          func() time.Time
}

func NewDynamoGenerationRecorder(logger outbound.LoggerPort, dynamoSvc dynamodbiface.DynamoDBAPI, dynamoConfig *config.DynamoConfig) outbound.GenerationRecorderPort {
	return &dynamoGenerationRecorder{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
		now:          time.Now,
	}
}

func (c *dynamoGenerationRecorder) Save(ctx context.Context, record domain.GenerationRecord) error {
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = c.now()
	}
	item := dynamoGenerationItem{
		RequestID:    record.RequestID,
		Sport:        record.Sport,
		ScriptURL:    record.ScriptURL,
		VoiceoverURL: record.VoiceoverURL,
		VideoURL:     record.VideoURL,
		CreatedAt:    createdAt.Unix(),
		TTL:          createdAt.Add(time.Duration(c.dynamoConfig.TtlMinutes) * time.Minute).Unix(),
	}
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to marshal generation item", map[string]interface{}{
			"request_id": item.RequestID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(c.dynamoConfig.TableName),
	}

	_, err = c.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to save generation item", map[string]interface{}{
			"request_id": item.RequestID,
		})
		return err
	}

	return nil
}

// ListRecent reads one scan page and returns its newest records first.
func (c *dynamoGenerationRecorder) ListRecent(ctx context.Context, limit int) ([]domain.GenerationRecord, error) {
	out, err := c.dynamoSvc.ScanWithContext(ctx, &dynamodb.ScanInput{
		TableName: aws.String(c.dynamoConfig.TableName),
	})
	if err != nil {
		c.logger.Error(err, "Failed to scan generation items")
		return nil, err
	}

	var items []dynamoGenerationItem
	if err := dynamodbattribute.UnmarshalListOfMaps(out.Items, &items); err != nil {
		c.logger.Error(err, "Failed to unmarshal generation items")
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	records := make([]domain.GenerationRecord, 0, len(items))
	for _, item := range items {
		records = append(records, domain.GenerationRecord{
			PipelineResult: domain.PipelineResult{
				RequestID:    item.RequestID,
				ScriptURL:    item.ScriptURL,
				VoiceoverURL: item.VoiceoverURL,
				VideoURL:     item.VideoURL,
			},
			Sport:     item.Sport,
			CreatedAt: time.Unix(item.CreatedAt, 0),
		})
	}

	return records, nil
}

type noopGenerationRecorder struct{}

// NewNoopGenerationRecorder is used when no generation index table is configured.
func NewNoopGenerationRecorder() outbound.GenerationRecorderPort {
	return noopGenerationRecorder{}
}

func (noopGenerationRecorder) Save(context.Context, domain.GenerationRecord) error {
	return nil
}

func (noopGenerationRecorder) ListRecent(context.Context, int) ([]domain.GenerationRecord, error) {
	return nil, nil
}
