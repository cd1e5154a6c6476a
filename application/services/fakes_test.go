package services

import (
	"context"
	"errors"
	"fmt"
	"sport-reel-generator/application/ports/outbound"
	"sport-reel-generator/domain"
	"sport-reel-generator/infrastructure/adapters"
	"strings"
	"sync"
)

const testStoreURL = "https://store.test"

func newTestLogger() outbound.LoggerPort {
	return adapters.NewZerologWrapper("disabled", false)
}

type goDispatcher struct{}

func (goDispatcher) Submit(task func()) error {
	go task()
	return nil
}

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	uploads []string
	// failOn rejects uploads whose name starts with it.
	failOn  string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) Upload(_ context.Context, artifact domain.Artifact) (domain.StoredAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn != "" && strings.HasPrefix(artifact.Name, s.failOn) {
		return domain.StoredAsset{}, errors.New("access denied")
	}
	url := fmt.Sprintf("%s/%s/%s", testStoreURL, artifact.Visibility.Prefix(), artifact.Name)
	s.objects[url] = artifact.Content
	s.uploads = append(s.uploads, artifact.Name)
	return domain.StoredAsset{URL: url}, nil
}

func (s *fakeStore) uploadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.uploads)
}

// fakeFetcher resolves store URLs at call time, plus any fixed remote objects.
type fakeFetcher struct {
	mu     sync.Mutex
	store  *fakeStore
	remote map[string][]byte
	calls  map[string]int
}

func newFakeFetcher(store *fakeStore) *fakeFetcher {
	return &fakeFetcher{
		store:  store,
		remote: make(map[string][]byte),
		calls:  make(map[string]int),
	}
}

func (f *fakeFetcher) FetchURL(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.calls[url]++
	body, ok := f.remote[url]
	f.mu.Unlock()
	if ok {
		return body, nil
	}
	if f.store != nil {
		f.store.mu.Lock()
		body, ok = f.store.objects[url]
		f.store.mu.Unlock()
		if ok {
			return body, nil
		}
	}
	return nil, &adapters.HTTPStatusError{StatusCode: 404, Body: "not found"}
}

func (f *fakeFetcher) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func (f *fakeFetcher) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

type fakeScriptGenerator struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
}

func (g *fakeScriptGenerator) Generate(_ context.Context, req outbound.GenerateScriptRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.text, g.err
}

type fakeSpeech struct {
	mu       sync.Mutex
	audio    []byte
	err      error
	calls    int
	lastText string
}

func (s *fakeSpeech) Synthesize(_ context.Context, req outbound.SynthesizeSpeechRequest) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastText = req.Text
	return s.audio, s.err
}

// fakeVideoBackend replays jobs in order and then repeats the last one.
type fakeVideoBackend struct {
	mu          sync.Mutex
	jobID       string
	submitErr   error
	jobs        []domain.VideoJob
	readErrs    int
	submits     []outbound.SubmitVideoJobRequest
	statusCalls int
}

func (b *fakeVideoBackend) Submit(_ context.Context, req outbound.SubmitVideoJobRequest) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.submits = append(b.submits, req)
	if b.submitErr != nil {
		return "", b.submitErr
	}
	return b.jobID, nil
}

func (b *fakeVideoBackend) GetJob(_ context.Context, jobID string) (domain.VideoJob, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statusCalls++
	if b.readErrs > 0 {
		b.readErrs--
		return domain.VideoJob{}, errors.New("connection reset")
	}
	idx := b.statusCalls - 1
	if idx >= len(b.jobs) {
		idx = len(b.jobs) - 1
	}
	job := b.jobs[idx]
	job.ID = jobID
	return job, nil
}

func (b *fakeVideoBackend) statusCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.statusCalls
}

func (b *fakeVideoBackend) submitCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.submits)
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []domain.GenerationRecord
	saveErr error
	listErr error
}

func (r *fakeRecorder) Save(_ context.Context, record domain.GenerationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.records = append(r.records, record)
	return nil
}

func (r *fakeRecorder) ListRecent(_ context.Context, limit int) ([]domain.GenerationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	if limit < len(r.records) {
		return r.records[:limit], nil
	}
	return r.records, nil
}

func runningJobs(n int, final domain.VideoJob) []domain.VideoJob {
	jobs := make([]domain.VideoJob, 0, n+1)
	for i := 0; i < n; i++ {
		jobs = append(jobs, domain.VideoJob{Status: domain.JobStatusRunning})
	}
	return append(jobs, final)
}
