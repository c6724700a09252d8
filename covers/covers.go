package covers

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"omnihub/constants"
	"omnihub/utils"
	"omnihub/utils/fileio"
	"os"
	"path/filepath"
	"strings"

	"github.com/valyala/fasthttp"
)

const maxRedirects = 5

// ConfigProvider defines the configuration needed for cover handling.
type ConfigProvider interface {
	GetCoversPath() string
}

// UIProvider defines the logging needed for cover handling.
type UIProvider interface {
	LogInfof(format string, args ...interface{})
	LogErrorf(format string, args ...interface{})
}

// Service resolves cover art to data URIs and keeps a local cache of remote covers.
type Service struct {
	config ConfigProvider
	ui     UIProvider
	client *fasthttp.Client
}

// New creates a new covers Service.
func New(cfg ConfigProvider, ui UIProvider) *Service {
	return &Service{
		config: cfg,
		ui:     ui,
		client: &fasthttp.Client{
			ReadTimeout:         constants.CoverDownloadTimeout,
			WriteTimeout:        constants.CoverDownloadTimeout,
			MaxResponseBodySize: constants.MaxCoverBytes,
		},
	}
}

// Resolve returns the cover of a game as a data URI. Local files are read
// in place; remote covers are downloaded once and served from the cache after.
func (s *Service) Resolve(gameID, coverURL string) (string, error) {
	switch {
	case coverURL == "":
		return "", nil
	case strings.HasPrefix(coverURL, "data:"):
		return coverURL, nil
	case !isRemote(coverURL):
		data, err := os.ReadFile(coverURL)
		if err != nil {
			return "", fmt.Errorf("failed to read cover: %w", err)
		}
		return toDataURI(data, strings.ToLower(filepath.Ext(coverURL))), nil
	}

	cacheDir := s.config.GetCoversPath()
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache dir: %w", err)
	}

	ext := remoteExt(coverURL)
	cachePath, err := utils.SafeJoin(cacheDir, gameID+ext)
	if err != nil {
		return "", fmt.Errorf("invalid game id %q: %w", gameID, err)
	}

	var data []byte
	if _, err := os.Stat(cachePath); err == nil {
		data, err = os.ReadFile(cachePath)
		if err != nil {
			return "", fmt.Errorf("failed to read cached cover: %w", err)
		}
	} else {
		data, err = s.download(coverURL)
		if err != nil {
			return "", fmt.Errorf("failed to download cover: %w", err)
		}
		if err := fileio.WriteFileAtomic(cachePath, data, 0o644); err != nil {
			s.ui.LogErrorf("Resolve: failed to cache cover for %s: %v", gameID, err)
		}
	}

	return toDataURI(data, ext), nil
}

// Evict drops the cached cover of a game.
func (s *Service) Evict(gameID, coverURL string) {
	if !isRemote(coverURL) {
		return
	}
	cachePath, err := utils.SafeJoin(s.config.GetCoversPath(), gameID+remoteExt(coverURL))
	if err != nil {
		return
	}
	fileio.Remove(cachePath, s.ui.LogErrorf)
}

func (s *Service) download(coverURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(coverURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := s.client.DoRedirects(req, resp, maxRedirects); err != nil {
		return nil, err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("cover fetch failed with status %d", resp.StatusCode())
	}

	// The body belongs to the pooled response
	return append([]byte(nil), resp.Body()...), nil
}

func isRemote(coverURL string) bool {
	return strings.HasPrefix(coverURL, "http://") || strings.HasPrefix(coverURL, "https://")
}

func remoteExt(coverURL string) string {
	ext := ".jpg"
	if u, err := url.Parse(coverURL); err == nil {
		if e := strings.ToLower(filepath.Ext(u.Path)); e != "" && utils.IsImageFile("cover"+e) {
			ext = e
		}
	}
	return ext
}

func getMimeType(ext string) string {
	switch ext {
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}

func toDataURI(data []byte, ext string) string {
	mimeType := getMimeType(ext)
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
