package export

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Berghsen/timeline/internal/shared/apperror"
	"github.com/Berghsen/timeline/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) WeekPDF(c *gin.Context) {
	userID := exportTarget(c)
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	fileName, data, err := h.service.WeekPDF(c.Request.Context(), userID, date)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	writePDF(c, fileName, data)
}

func (h *Handler) MonthPDF(c *gin.Context) {
	userID := exportTarget(c)
	now := time.Now()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))

	fileName, data, err := h.service.MonthPDF(c.Request.Context(), userID, year, month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	writePDF(c, fileName, data)
}

func writePDF(c *gin.Context, fileName string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func exportTarget(c *gin.Context) string {
	if target := c.Param("userId"); target != "" {
		return target
	}
	return c.GetString("user_id")
}
