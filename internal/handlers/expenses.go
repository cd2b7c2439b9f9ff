package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"condo_ledger/internal/service"
)

type expenseRequest struct {
	ExpenseDate   string        `json:"expense-date"`
	Description   string        `json:"description"`
	Amount        numericString `json:"amount"`
	Supplier      *string       `json:"supplier"`
	InvoiceNumber *string       `json:"invoice-number"`
}

func (r expenseRequest) input() service.ExpenseInput {
	return service.ExpenseInput{
		ExpenseDate:   r.ExpenseDate,
		Description:   r.Description,
		Amount:        string(r.Amount),
		Supplier:      r.Supplier,
		InvoiceNumber: r.InvoiceNumber,
	}
}

// @Summary   List expenses
// @Tags      ledger
// @Produce   json
// @Success   200  {array}   models.Expense
// @Failure   401  {object}  map[string]string
// @Failure   500  {object}  map[string]string
// @Router    /api/gastos [get]
// @Security  BearerAuth
func (h *Handler) listExpenses(c *gin.Context) {
	expenses, err := h.services.ListExpenses(c.Request.Context())
	if err != nil {
		h.abortWithError(c, "expenses_list", err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// @Summary   Record an expense
// @Tags      ledger
// @Accept    json
// @Produce   json
// @Param     input  body      expenseRequest  true  "expense"
// @Success   201    {object}  map[string]interface{}  "mensaje, id"
// @Failure   400    {object}  map[string]string
// @Failure   401    {object}  map[string]string
// @Failure   500    {object}  map[string]string
// @Router    /api/gastos [post]
// @Security  BearerAuth
func (h *Handler) createExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c, err)
		return
	}

	id, _ := identity(c)
	e, err := h.services.AddExpense(c.Request.Context(), id, req.input())
	if err != nil {
		h.abortWithError(c, "expense_create", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"mensaje": "Gasto agregado con éxito", "id": e.ID})
}
