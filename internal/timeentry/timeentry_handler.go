package timeentry

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Berghsen/timeline/internal/shared/apperror"
	"github.com/Berghsen/timeline/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	userID := c.GetString("user_id")

	var req CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	actorID := c.GetString("user_id")
	actorRole := c.GetString("role")

	resp, err := h.service.GetByID(c.Request.Context(), actorID, actorRole, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// List returns the caller's own entries for the from/to range, defaulting to
// the current week when no range is given.
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id")
	from, to := rangeFromQuery(c)

	resp, err := h.service.ListForUser(c.Request.Context(), userID, from, to)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// ListForEmployee is the admin view over any employee's entries.
func (h *Handler) ListForEmployee(c *gin.Context) {
	from, to := rangeFromQuery(c)

	resp, err := h.service.ListForUser(c.Request.Context(), c.Param("userId"), from, to)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	actorID := c.GetString("user_id")
	actorRole := c.GetString("role")

	var req UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actorID, actorRole, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	actorID := c.GetString("user_id")
	actorRole := c.GetString("role")

	if err := h.service.Delete(c.Request.Context(), actorID, actorRole, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) WeekSummary(c *gin.Context) {
	userID := summaryTarget(c)
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	resp, err := h.service.WeekSummary(c.Request.Context(), userID, date)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MonthSummary(c *gin.Context) {
	userID := summaryTarget(c)
	now := time.Now()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))

	resp, err := h.service.MonthSummary(c.Request.Context(), userID, year, month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// summaryTarget lets an admin request another user's summary via the userId
// route param; everyone else gets their own.
func summaryTarget(c *gin.Context) string {
	if target := c.Param("userId"); target != "" {
		return target
	}
	return c.GetString("user_id")
}

// rangeFromQuery fills in only the missing bound, so a caller supplying
// just from or just to keeps the bound they asked for. Both absent means
// the current Monday-start week.
func rangeFromQuery(c *gin.Context) (string, string) {
	from := c.Query("from")
	to := c.Query("to")
	if from != "" && to != "" {
		return from, to
	}

	now := time.Now()
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := now.AddDate(0, 0, 1-weekday)
	if from == "" {
		from = monday.Format("2006-01-02")
	}
	if to == "" {
		to = monday.AddDate(0, 0, 6).Format("2006-01-02")
	}
	return from, to
}
