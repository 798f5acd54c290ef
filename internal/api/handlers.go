// Package api implements the blob cache's HTTP surface: multipart upload
// and key-addressed download, matching spec section 6 exactly. It is a
// thin collaborator over internal/blobcache — the hard engineering lives
// in the lru package.
package api

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/p-blackswan/blobcache/internal/blobcache"
	apperrors "github.com/p-blackswan/blobcache/internal/errors"
	"github.com/p-blackswan/blobcache/internal/hashkey"
	"github.com/p-blackswan/blobcache/internal/health"
	"github.com/p-blackswan/blobcache/internal/metrics"
)

// Handlers holds the dependencies for the blob upload/download routes.
type Handlers struct {
	cache   *blobcache.Safe[string, []byte]
	metrics *metrics.Metrics
	checker *health.Checker
	logger  zerolog.Logger
}

// NewHandlers builds the Handlers for a given cache and metrics registry.
func NewHandlers(cache *blobcache.Safe[string, []byte], m *metrics.Metrics, checker *health.Checker, logger zerolog.Logger) *Handlers {
	return &Handlers{
		cache:   cache,
		metrics: m,
		checker: checker,
		logger:  logger.With().Str("component", "blob_handlers").Logger(),
	}
}

// Liveness handles GET /healthz.
func (h *Handlers) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Readiness handles GET /readyz.
func (h *Handlers) Readiness(c *fiber.Ctx) error {
	if !h.checker.IsReady(c.Context()) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not_ready"})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

// Upload handles POST /api/lru. It reads the single uploaded file field,
// keys it by a non-cryptographic 64-bit hash of its bytes, and stores it.
func (h *Handlers) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.metrics.RecordRequest("upload", "200")
		return c.Status(fiber.StatusOK).JSON(failure("10001", "No data uploaded"))
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to open uploaded file")
		h.metrics.RecordError("upload", "open_failed")
		return c.Status(fiber.StatusOK).JSON(failure("10001", "No data uploaded"))
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read uploaded file")
		h.metrics.RecordError("upload", "read_failed")
		return c.Status(fiber.StatusOK).JSON(failure("10001", "No data uploaded"))
	}

	if len(buf) == 0 {
		err := apperrors.NewAPIError(fiber.StatusOK, "10001", "No data uploaded", apperrors.ErrInvalidInput)
		h.logger.Debug().Err(err).Msg("rejected empty upload")
		h.metrics.RecordRequest("upload", "200")
		return c.Status(fiber.StatusOK).JSON(failure("10001", "No data uploaded"))
	}

	key := hashkey.Of(buf)
	wasAtCapacity := !h.cache.Contains(key) && h.cache.Len() >= h.cache.Cap()
	h.cache.Put(key, buf)
	if wasAtCapacity {
		h.metrics.RecordEviction()
	}
	h.metrics.SetItems(float64(h.cache.Len()))
	h.metrics.RecordRequest("upload", "200")

	return c.Status(fiber.StatusOK).JSON(success(UploadResponse{Key: key, Size: len(buf)}))
}

// Download handles GET /api/lru?key=<key>.
func (h *Handlers) Download(c *fiber.Ctx) error {
	key := c.Query("key")

	buf, ok := h.cache.Get(key)
	if !ok {
		err := apperrors.NewAPIError(fiber.StatusNotFound, "10002", "Data not found", apperrors.ErrNotFound)
		h.logger.Debug().Err(err).Str("key", key).Msg("blob cache miss")
		h.metrics.RecordMiss()
		h.metrics.RecordRequest("download", "404")
		return c.Status(fiber.StatusNotFound).SendString("Data not found")
	}

	h.metrics.RecordHit()
	h.metrics.RecordRequest("download", "200")
	c.Set(fiber.HeaderContentType, "application/octet-stream")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+key+`"`)
	return c.Send(buf)
}
