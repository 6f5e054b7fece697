package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bausano/link-crawler/internal/intake"
)

// URLReader is the read side of the URL store used by the API.
type URLReader interface {
	URLs(host string) ([]string, error)
	Count(host string) (int, error)
	Hosts() ([]string, error)
}

// Submitter accepts seed URLs for background crawling.
type Submitter interface {
	Submit(rawURL string) (intake.Request, error)
}

// Handler serves the URL store and the submission queue over HTTP.
type Handler struct {
	store  URLReader
	queue  Submitter
	logger *slog.Logger
}

// NewHandler creates a Handler. A nil logger means slog.Default().
func NewHandler(st URLReader, queue Submitter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  st,
		queue:  queue,
		logger: logger,
	}
}

// submitRequest is the JSON body for POST /.
type submitRequest struct {
	URL string `json:"url"`
}

// ListURLs handles GET /:domain/url
func (h *Handler) ListURLs(c *gin.Context) {
	urls, err := h.store.URLs(c.Param("domain"))
	if err != nil {
		h.logger.Error("listing urls failed", "host", c.Param("domain"), "error", err)
		respondInternalError(c, "failed to read urls")
		return
	}
	if urls == nil {
		urls = []string{}
	}

	c.JSON(http.StatusOK, urls)
}

// CountURLs handles GET /:domain/url/count
func (h *Handler) CountURLs(c *gin.Context) {
	n, err := h.store.Count(c.Param("domain"))
	if err != nil {
		h.logger.Error("counting urls failed", "host", c.Param("domain"), "error", err)
		respondInternalError(c, "failed to count urls")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": n})
}

// ListHosts handles GET /hosts
func (h *Handler) ListHosts(c *gin.Context) {
	hosts, err := h.store.Hosts()
	if err != nil {
		h.logger.Error("listing hosts failed", "error", err)
		respondInternalError(c, "failed to read hosts")
		return
	}
	if hosts == nil {
		hosts = []string{}
	}

	c.JSON(http.StatusOK, hosts)
}

// Submit handles POST /
//
// The URL is queued as is. Malformed URLs are accepted here and discarded
// later by the intake worker.
func (h *Handler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}

	queued, err := h.queue.Submit(req.URL)
	if err != nil {
		if errors.Is(err, intake.ErrQueueClosed) {
			respondUnavailable(c, "not accepting submissions")
			return
		}
		respondInternalError(c, "failed to queue url")
		return
	}

	h.logger.Debug("url queued", "id", queued.ID, "url", req.URL)
	c.JSON(http.StatusAccepted, gin.H{"id": queued.ID})
}
