package outbound

import "context"

type ContentFetcherPort interface {
	FetchURL(ctx context.Context, url string) ([]byte, error)
}
