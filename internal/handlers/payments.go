package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"condo_ledger/internal/service"
)

// paymentRequest uses the keys the condominium front end submits.
type paymentRequest struct {
	Apartment       string        `json:"apto"`
	PaymentDate     string        `json:"payment-date"`
	MonthPaid       string        `json:"month-paid"`
	AmountUSD       numericString `json:"amount-usd"`
	AmountBS        numericString `json:"amount-bs"`
	PaymentMethod   string        `json:"payment-method"`
	ReferenceNumber *string       `json:"reference-number"`
	Observations    *string       `json:"observations"`
}

func (r paymentRequest) input() service.PaymentInput {
	return service.PaymentInput{
		Apartment:     r.Apartment,
		PaymentDate:   r.PaymentDate,
		MonthCovered:  r.MonthPaid,
		AmountUSD:     string(r.AmountUSD),
		AmountBS:      string(r.AmountBS),
		PaymentMethod: r.PaymentMethod,
		Reference:     r.ReferenceNumber,
		Notes:         r.Observations,
	}
}

// @Summary   List payments
// @Tags      ledger
// @Produce   json
// @Success   200  {array}   models.Payment
// @Failure   401  {object}  map[string]string
// @Failure   500  {object}  map[string]string
// @Router    /api/pagos [get]
// @Security  BearerAuth
func (h *Handler) listPayments(c *gin.Context) {
	payments, err := h.services.ListPayments(c.Request.Context())
	if err != nil {
		h.abortWithError(c, "payments_list", err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// @Summary   Record a payment
// @Tags      ledger
// @Accept    json
// @Produce   json
// @Param     input  body      paymentRequest  true  "payment"
// @Success   201    {object}  map[string]interface{}  "mensaje, id"
// @Failure   400    {object}  map[string]string
// @Failure   401    {object}  map[string]string
// @Failure   500    {object}  map[string]string
// @Router    /api/pagos [post]
// @Security  BearerAuth
func (h *Handler) createPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badBody(c, err)
		return
	}

	id, _ := identity(c)
	p, err := h.services.AddPayment(c.Request.Context(), id, req.input())
	if err != nil {
		h.abortWithError(c, "payment_create", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"mensaje": "Pago agregado con éxito", "id": p.ID})
}
