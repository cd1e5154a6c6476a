package inbound

import "context"

type VideoCatalogPort interface {
	ListVideos(ctx context.Context) ([]string, error)
}
