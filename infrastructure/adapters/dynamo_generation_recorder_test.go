package adapters

import (
	"context"
	"sport-reel-generator/config"
	"sport-reel-generator/domain"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items []map[string]*dynamodb.AttributeValue
	table string
}

func (f *fakeDynamo) PutItemWithContext(ctx aws.Context, input *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.table = aws.StringValue(input.TableName)
	f.items = append(f.items, input.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) ScanWithContext(ctx aws.Context, input *dynamodb.ScanInput, _ ...request.Option) (*dynamodb.ScanOutput, error) {
	return &dynamodb.ScanOutput{Items: f.items}, nil
}

func TestDynamoGenerationRecorder_SaveAndListRecent(t *testing.T) {
	fake := &fakeDynamo{}
	recorder := NewDynamoGenerationRecorder(newTestLogger(), fake, &config.DynamoConfig{TableName: "generations", TtlMinutes: 60})

	base := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "new"} {
		err := recorder.Save(context.Background(), domain.GenerationRecord{
			PipelineResult: domain.PipelineResult{RequestID: id, VideoURL: "https://cdn/" + id + ".mp4"},
			Sport:          "cricket",
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	if fake.table != "generations" {
		t.Errorf("table = %q", fake.table)
	}
	ttl := fake.items[0]["ttl"]
	if ttl == nil || aws.StringValue(ttl.N) != "1792328400" {
		t.Errorf("ttl attribute = %v, want created_at + 60m", ttl)
	}

	records, err := recorder.ListRecent(context.Background(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].RequestID != "new" || records[0].VideoURL != "https://cdn/new.mp4" {
		t.Errorf("records = %+v", records)
	}
}
