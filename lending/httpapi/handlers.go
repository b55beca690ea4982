package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/loanexport"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/moderationgateway"
)

type handlers struct {
	requests   RequestGateway
	moderation ModerationGateway
}

func (h handlers) submitLoanRequest(c *gin.Context) {
	var in submitRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, core.InvalidArgumentError("bookId is required"))
		return
	}

	outcome, err := h.requests.SubmitLoanRequest(c.Request.Context(), actorFrom(c), strings.TrimSpace(in.BookID))
	if err != nil {
		abortWithError(c, err)
		return
	}

	status := http.StatusCreated
	if outcome.AlreadyRequested {
		status = http.StatusOK
	}

	resp := submitResponse{AlreadyRequested: outcome.AlreadyRequested}
	if outcome.Loan.ID != "" {
		dto := loanDTOFrom(outcome.Loan)
		resp.Loan = &dto
	}

	c.JSON(status, resp)
}

func (h handlers) requestExtension(c *gin.Context) {
	loan, err := h.requests.RequestExtension(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loanDTOFrom(loan))
}

func (h handlers) listMyLoans(c *gin.Context) {
	statuses, err := statusesFrom(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := h.requests.ListMyLoans(c.Request.Context(), actorFrom(c), statuses...)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loanListResponse{
		Loans:       loanDTOsFrom(result.Loans),
		Count:       result.Count,
		EvaluatedAt: result.EvaluatedAt,
	})
}

func (h handlers) myStats(c *gin.Context) {
	stats, err := h.requests.MyStats(c.Request.Context(), actorFrom(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, statsResponseFrom(stats))
}

func (h handlers) notificationFeed(c *gin.Context) {
	limit, err := uintQuery(c, "limit")
	if err != nil {
		abortWithError(c, err)
		return
	}

	feed, err := h.requests.NotificationFeed(c.Request.Context(), actorFrom(c), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedResponseFrom(feed))
}

func (h handlers) listAllLoans(c *gin.Context) {
	filter, err := listFilterFrom(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := h.moderation.ListAllLoans(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}

	overdueCount := result.OverdueCount
	c.JSON(http.StatusOK, loanListResponse{
		Loans:        loanDTOsFrom(result.Loans),
		Count:        result.Count,
		OverdueCount: &overdueCount,
		EvaluatedAt:  result.EvaluatedAt,
	})
}

func (h handlers) exportCSV(c *gin.Context) {
	filter, err := listFilterFrom(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	export, err := h.moderation.ExportCSV(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Data(http.StatusOK, loanexport.ContentType, export.Data)
}

func (h handlers) approve(c *gin.Context) {
	loan, err := h.moderation.ApproveRequest(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loanDTOFrom(loan))
}

func (h handlers) reject(c *gin.Context) {
	var in rejectRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			abortWithError(c, core.InvalidArgumentError("request body must be JSON"))
			return
		}
	}

	loan, err := h.moderation.RejectRequest(c.Request.Context(), actorFrom(c), c.Param("id"), strings.TrimSpace(in.Reason))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loanDTOFrom(loan))
}

func (h handlers) markReturned(c *gin.Context) {
	loan, err := h.moderation.MarkReturned(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loanDTOFrom(loan))
}

func (h handlers) adminStats(c *gin.Context) {
	stats, err := h.moderation.Stats(c.Request.Context(), actorFrom(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, statsResponseFrom(stats))
}

// statusesFrom reads ?status=pending,approved as well as repeated status parameters.
func statusesFrom(c *gin.Context) ([]core.Status, error) {
	var statuses []core.Status
	for _, raw := range c.QueryArray("status") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			status, err := core.ParseStatus(strings.ToLower(part))
			if err != nil {
				return nil, err
			}

			statuses = append(statuses, status)
		}
	}

	return statuses, nil
}

func uintQuery(c *gin.Context, name string) (uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, core.InvalidArgumentError("%s must be a non-negative integer", name)
	}

	return uint(n), nil
}

func listFilterFrom(c *gin.Context) (moderationgateway.ListFilter, error) {
	statuses, err := statusesFrom(c)
	if err != nil {
		return moderationgateway.ListFilter{}, err
	}

	limit, err := uintQuery(c, "limit")
	if err != nil {
		return moderationgateway.ListFilter{}, err
	}

	overdueOnly := false
	if raw := strings.TrimSpace(c.Query("overdueOnly")); raw != "" {
		overdueOnly, err = strconv.ParseBool(raw)
		if err != nil {
			return moderationgateway.ListFilter{}, core.InvalidArgumentError("overdueOnly must be a boolean")
		}
	}

	return moderationgateway.ListFilter{Statuses: statuses, OverdueOnly: overdueOnly, Limit: limit}, nil
}
