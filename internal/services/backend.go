// HTTP implementation of [Service] for the video pipeline backend
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/duskthistle/swipereel/internal/models"
	"github.com/duskthistle/swipereel/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBackendURL = "http://localhost:8000"

// BackendService implements [Service] over the pipeline backend's REST API.
type BackendService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// BackendOpts configures a BackendService.
type BackendOpts struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	RateLimit      float64 // requests per second, 0 disables limiting
	RateLimitBurst int
}

// NewBackendService creates a backend client from the given options.
func NewBackendService(opts BackendOpts) *BackendService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBackendURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.RequestTimeout}
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &BackendService{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		limiter:    limiter,
	}
}

// Name returns the service name.
func (b *BackendService) Name() string {
	return "Pipeline Backend"
}

// uploadResponse is the backend's acknowledgement of a completed transfer.
type uploadResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Title     string `json:"title"`
	VideoURL  string `json:"video_url"`
	CreatedAt string `json:"created_at"`
}

// UploadVideo streams a media file to the backend as multipart form data and
// returns the created record. The returned video keeps a pending id if the
// backend omitted one; the reconciler confirms it later.
func (b *BackendService) UploadVideo(ctx context.Context, path string, progress ProgressFunc) (*models.Video, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		src := io.Reader(file)
		if progress != nil {
			src = &progressReader{r: file, total: info.Size(), report: progress}
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	if err := b.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/videos/upload", pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: upload: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		return nil, err
	}

	var created uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}

	id := models.NewPendingID()
	if created.ID != "" {
		id = id.Confirm(created.ID)
	}
	state, ok := models.ParseState(created.Status)
	if !ok {
		state = models.StateUploaded
	}
	title := created.Title
	if title == "" {
		title = filepath.Base(path)
	}
	sourceURL := created.VideoURL
	if sourceURL == "" {
		sourceURL = path
	}

	return &models.Video{
		ID:        id,
		Title:     title,
		SourceURL: sourceURL,
		State:     state,
		CreatedAt: time.Now(),
	}, nil
}

// DiscardVideo notifies the backend that a video was rejected.
func (b *BackendService) DiscardVideo(ctx context.Context, videoID string) error {
	return b.post(ctx, fmt.Sprintf("/api/videos/%s/discard", videoID), nil, nil)
}

// SaveVideo files a video under a category and kicks off the publish step.
func (b *BackendService) SaveVideo(ctx context.Context, videoID, categoryID string) error {
	payload := map[string]string{"category_id": categoryID}
	return b.post(ctx, fmt.Sprintf("/api/videos/%s/save", videoID), payload, nil)
}

// ListCategories retrieves the current category set.
func (b *BackendService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := b.get(ctx, "/api/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category from a trimmed non-empty name.
func (b *BackendService) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	candidate := models.Category{Name: name, Description: description}
	if err := candidate.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	payload := map[string]string{"name": candidate.NormalizedName()}
	if description != "" {
		payload["description"] = description
	}

	var created models.Category
	if err := b.post(ctx, "/api/categories", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// FetchSnapshots returns the backend's current view of all known videos.
func (b *BackendService) FetchSnapshots(ctx context.Context) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot
	if err := b.get(ctx, "/api/videos/status", &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// Health probes the backend liveness endpoint.
func (b *BackendService) Health(ctx context.Context) error {
	return b.get(ctx, "/api/health", nil)
}

func (b *BackendService) get(ctx context.Context, endpoint string, result any) error {
	return b.doRequest(ctx, http.MethodGet, endpoint, nil, result)
}

func (b *BackendService) post(ctx context.Context, endpoint string, payload, result any) error {
	return b.doRequest(ctx, http.MethodPost, endpoint, payload, result)
}

func (b *BackendService) doRequest(ctx context.Context, method, endpoint string, payload, result any) error {
	if err := b.wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", shared.ErrAPIRequest, method, endpoint, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		return err
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// wait blocks on the rate limiter when one is configured.
func (b *BackendService) wait(ctx context.Context) error {
	if b.limiter == nil {
		return nil
	}
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", shared.ErrAPIRequest, err)
	}
	return nil
}

// classifyStatus maps HTTP failure codes onto the shared error sentinels so
// callers can tell validation failures from transport ones.
func classifyStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail := decodeDetail(resp.Body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrVideoNotFound, detail)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", shared.ErrCategoryExists, detail)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, detail)
	default:
		return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, detail)
	}
}

func decodeDetail(body io.Reader) string {
	var errResp struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&errResp); err == nil && errResp.Detail != "" {
		return errResp.Detail
	}
	return "no detail"
}

// progressReader counts bytes as the upload body is consumed.
type progressReader struct {
	r      io.Reader
	sent   int64
	total  int64
	report ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.sent += int64(n)
		p.report(p.sent, p.total)
	}
	return n, err
}
