package httpapi

import (
	"time"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/loanstats"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/features/query/notificationfeed"
)

type loanDTO struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	BookID         string     `json:"bookId"`
	BookTitle      string     `json:"bookTitle"`
	BookAuthors    []string   `json:"bookAuthors"`
	BookImage      string     `json:"bookImage,omitempty"`
	Status         string     `json:"status"`
	RequestedAt    time.Time  `json:"requestedAt"`
	RespondedAt    *time.Time `json:"respondedAt,omitempty"`
	RespondedBy    *string    `json:"respondedBy,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	ReturnedAt     *time.Time `json:"returnedAt,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	ExtensionCount int        `json:"extensionCount"`
	Overdue        *bool      `json:"overdue,omitempty"`
	DaysOverdue    *int       `json:"daysOverdue,omitempty"`
	CanExtend      *bool      `json:"canExtend,omitempty"`
}

func loanDTOFrom(loan core.LoanRequest) loanDTO {
	return loanDTO{
		ID:             loan.ID,
		UserID:         loan.UserID,
		BookID:         loan.BookID,
		BookTitle:      loan.Book.Title,
		BookAuthors:    loan.Book.Authors,
		BookImage:      loan.Book.ImageURL,
		Status:         loan.Status.String(),
		RequestedAt:    loan.RequestedAt,
		RespondedAt:    loan.RespondedAt,
		RespondedBy:    loan.RespondedBy,
		DueDate:        loan.DueDate,
		ReturnedAt:     loan.ReturnedAt,
		Notes:          loan.Notes,
		ExtensionCount: loan.ExtensionCount,
	}
}

func loanDTOFromView(view core.LoanView) loanDTO {
	dto := loanDTOFrom(view.Loan)
	dto.Overdue = &view.Overdue
	dto.DaysOverdue = &view.DaysOverdue
	dto.CanExtend = &view.CanExtend

	return dto
}

func loanDTOsFrom(views []core.LoanView) []loanDTO {
	dtos := make([]loanDTO, 0, len(views))
	for _, view := range views {
		dtos = append(dtos, loanDTOFromView(view))
	}

	return dtos
}

type submitResponse struct {
	Loan             *loanDTO `json:"loan,omitempty"`
	AlreadyRequested bool     `json:"alreadyRequested"`
}

type loanListResponse struct {
	Loans        []loanDTO `json:"loans"`
	Count        int       `json:"count"`
	OverdueCount *int      `json:"overdueCount,omitempty"`
	EvaluatedAt  time.Time `json:"evaluatedAt"`
}

type statsResponse struct {
	Total         int       `json:"total"`
	Pending       int       `json:"pending"`
	Approved      int       `json:"approved"`
	Rejected      int       `json:"rejected"`
	Returned      int       `json:"returned"`
	Overdue       int       `json:"overdue"`
	LoansApproved int       `json:"loansApproved"`
	EvaluatedAt   time.Time `json:"evaluatedAt"`
}

func statsResponseFrom(stats loanstats.LoanStats) statsResponse {
	return statsResponse{
		Total:         stats.Total,
		Pending:       stats.Pending,
		Approved:      stats.Approved,
		Rejected:      stats.Rejected,
		Returned:      stats.Returned,
		Overdue:       stats.Overdue,
		LoansApproved: stats.LoansApproved,
		EvaluatedAt:   stats.EvaluatedAt,
	}
}

type feedItemDTO struct {
	Type      string    `json:"type"`
	LoanID    string    `json:"loanId"`
	Status    string    `json:"status"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type feedResponse struct {
	Items []feedItemDTO `json:"items"`
}

func feedResponseFrom(feed notificationfeed.Feed) feedResponse {
	items := make([]feedItemDTO, 0, len(feed.Items))
	for _, item := range feed.Items {
		items = append(items, feedItemDTO{
			Type:      item.Type,
			LoanID:    item.LoanID,
			Status:    item.Status.String(),
			Title:     item.Title,
			Message:   item.Message,
			Timestamp: item.Timestamp,
		})
	}

	return feedResponse{Items: items}
}

type submitRequest struct {
	BookID string `json:"bookId" binding:"required"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}
