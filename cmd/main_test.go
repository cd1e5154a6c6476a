package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sport-reel-generator/application/ports/inbound"
	"sport-reel-generator/config"
	"sport-reel-generator/domain"
	"sport-reel-generator/infrastructure/adapters"
	"sport-reel-generator/infrastructure/gin_interface/dto"
	"strings"
	"sync"
	"testing"
)

// newBackendServer stands in for the script, speech and video backends and serves the artifact dir.
func newBackendServer(t *testing.T, artifactDir string) *httptest.Server {
	t.Helper()

	var mu sync.Mutex
	polls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range []string{"Cricket began ", "in southern England..."} {
			payload, _ := json.Marshal(map[string]interface{}{
				"choices": []map[string]interface{}{{"index": 0, "delta": map[string]string{"content": chunk}}},
			})
			fmt.Fprintf(w, "data: %s\n\n", payload)
		}
		fmt.Fprintf(w, "data: %s\n\n", adapters.DoneSignal)
	})
	mux.HandleFunc("/tts", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"audioContent": base64.StdEncoding.EncodeToString([]byte("audio"))})
	})
	mux.HandleFunc("/v1/image_to_video", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"42"}`))
	})
	var server *httptest.Server
	mux.HandleFunc("/v1/tasks/42", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		polls++
		n := polls
		mu.Unlock()
		if n < 3 {
			_, _ = w.Write([]byte(`{"id":"42","status":"RUNNING"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "42",
			"status": "SUCCEEDED",
			"output": []string{server.URL + "/cdn/example.mp4"},
		})
	})
	mux.HandleFunc("/cdn/example.mp4", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("mp4"))
	})
	mux.Handle("/artifacts/", http.StripPrefix("/artifacts/", http.FileServer(http.Dir(artifactDir))))

	server = httptest.NewServer(mux)
	return server
}

func setTestEnv(t *testing.T, serverURL string, artifactDir string) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "disabled")
	t.Setenv("GPT_API_KEY", "gpt-key")
	t.Setenv("GPT_API_URL", serverURL+"/chat")
	t.Setenv("SPEECH_API_KEY", "speech-key")
	t.Setenv("SPEECH_API_URL", serverURL+"/tts")
	t.Setenv("VIDEO_API_KEY", "video-key")
	t.Setenv("VIDEO_API_URL", serverURL)
	t.Setenv("VIDEO_POLL_INTERVAL", "5ms")
	t.Setenv("VIDEO_POLL_TIMEOUT", "5s")
	t.Setenv("ARTIFACT_STORE", config.FilesystemStoreDriver)
	t.Setenv("ARTIFACT_DIR", artifactDir)
	t.Setenv("PUBLIC_BASE_URL", serverURL+"/artifacts")
	t.Setenv("VIDEO_CATALOG_FILE", "../mock/videos.json")
	t.Setenv("DYNAMO_TABLE_NAME", "")
}

func TestGenerateCommand(t *testing.T) {
	artifactDir := t.TempDir()
	server := newBackendServer(t, artifactDir)
	defer server.Close()
	setTestEnv(t, server.URL, artifactDir)

	photoPath := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(photoPath, append([]byte{0xff, 0xd8, 0xff, 0xe0}, make([]byte, 17*1024)...), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"generate", "--sport", "cricket", "--photo", photoPath})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("generate: %v", err)
	}

	var res dto.GenerateResponse
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	id := res.RequestID
	want := dto.GenerateResponse{
		RequestID:    id,
		ScriptURL:    server.URL + "/artifacts/temp/script-" + id + ".txt",
		VoiceoverURL: server.URL + "/artifacts/temp/audio-" + id + ".mp3",
		VideoURL:     server.URL + "/artifacts/temp/video-" + id + ".mp4",
	}
	if id == "" || res != want {
		t.Fatalf("output = %+v, want %+v", res, want)
	}

	script, err := os.ReadFile(filepath.Join(artifactDir, "temp", "script-"+id+".txt"))
	if err != nil || string(script) != "Cricket began in southern England..." {
		t.Errorf("stored script = %q, err = %v", script, err)
	}
	video, err := os.ReadFile(filepath.Join(artifactDir, "temp", "video-"+id+".mp4"))
	if err != nil || string(video) != "mp4" {
		t.Errorf("stored video = %q, err = %v", video, err)
	}
}

func TestGenerateCommand_RequiresPhoto(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"generate", "--sport", "cricket"})
	if err := cmd.ExecuteContext(context.Background()); err == nil || !strings.Contains(err.Error(), "--photo") {
		t.Fatalf("err = %v, want missing photo error", err)
	}
}

func TestEnsureConfig_MissingEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.env")
	ctx := newCommandContext(&path)
	if _, err := ctx.ensureConfig(); err == nil {
		t.Fatal("expected error for a missing --env-file")
	}
}

type stubPipeline struct{}

func (stubPipeline) Run(context.Context, inbound.RunPipelineParams) (*domain.PipelineResult, error) {
	return nil, domain.NewValidationError("sport must not be empty")
}

type stubCatalog struct{}

func (stubCatalog) ListVideos(context.Context) ([]string, error) {
	return []string{"https://cdn.test/a.mp4"}, nil
}

func TestNewRouter(t *testing.T) {
	artifactDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(artifactDir, "temp"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(artifactDir, "temp", "script-x.txt"), []byte("script"), 0o644); err != nil {
		t.Fatal(err)
	}

	app := &application{
		config: &config.AppConfig{
			Server:   &config.ServerConfig{LogLevel: "disabled", MaxPhotoBytes: 1024},
			Pipeline: &config.PipelineConfig{},
			Store:    &config.StoreConfig{Driver: config.FilesystemStoreDriver, LocalDir: artifactDir},
		},
		logger:   adapters.NewZerologWrapper("disabled", false),
		pipeline: stubPipeline{},
		catalog:  stubCatalog{},
	}
	router, err := newRouter(app)
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{method: http.MethodGet, path: "/health", status: http.StatusOK},
		{method: http.MethodGet, path: "/videos", status: http.StatusOK},
		{method: http.MethodGet, path: "/artifacts/temp/script-x.txt", status: http.StatusOK},
		{method: http.MethodPost, path: "/generate", body: `{"sport":" ","photo":"aGVsbG8="}`, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tt.status {
			t.Errorf("%s %s = %d, want %d (%s)", tt.method, tt.path, rec.Code, tt.status, rec.Body.String())
		}
	}
}
