package activitylog

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-jobmarket/internal/shared/apperror"
	"go-jobmarket/internal/shared/contextutil"
	"go-jobmarket/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("activitylog.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activitylog.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	contextutil.GetLogger(c.Request.Context(), h.logger).Warn("activity log request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	page, pageSize := response.PageParams(c)
	items, total, err := h.service.List(c.Request.Context(), q, page, pageSize)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

// Export renders the filtered log as a csv or xlsx attachment.
func (h *Handler) Export(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", FormatCSV)))

	var buf bytes.Buffer
	if err := h.service.Export(c.Request.Context(), q, format, &buf); err != nil {
		h.writeServiceError(c, err)
		return
	}

	contentType := "text/csv; charset=utf-8"
	if format == FormatXLSX {
		contentType = xlsxContentType
	}
	filename := fmt.Sprintf("activity-log-%s.%s", time.Now().UTC().Format("20060102-150405"), format)

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
