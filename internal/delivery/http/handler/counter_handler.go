package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	entity "agrotrade/internal/domain"
	service "agrotrade/internal/service"
)

type CounterHandler struct {
	negotiation *service.NegotiationService
}

func NewCounterHandler(negotiation *service.NegotiationService) *CounterHandler {
	return &CounterHandler{negotiation: negotiation}
}

// @Summary      Send Counteroffer
// @Description  Buyer counters an open offer; the offer stays open.
// @Tags         Counters
// @Accept       json
// @Produce      json
// @Success      201  {object}  entity.OfferRecord
// @Failure      409  {object}  map[string]interface{}
// @Router       /offers/{id}/counters [post]
func (h *CounterHandler) CreateCounter(c *gin.Context) {
	var input entity.TermsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	counter, err := h.negotiation.CreateCounter(c.Param("id"), username(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Counteroffer sent to the producer.",
		"counter": counter,
	})
}

// Inbox lists the producer's open counters (GET /counters/inbox).
func (h *CounterHandler) Inbox(c *gin.Context) {
	counters := h.negotiation.ListCountersFor(username(c))
	c.JSON(http.StatusOK, gin.H{"counters": counters})
}

// MyCounters lists every counter the buyer sent, any status (GET /counters/my).
func (h *CounterHandler) MyCounters(c *gin.Context) {
	counters := h.negotiation.ListMyCounters(username(c))
	c.JSON(http.StatusOK, gin.H{"counters": counters})
}

// AcceptCounter closes the parent offer on the counter's terms
// (POST /counters/:id/accept).
func (h *CounterHandler) AcceptCounter(c *gin.Context) {
	counter, err := h.negotiation.AcceptCounter(c.Param("id"), username(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Counteroffer accepted. Deal closed.",
		"counter": counter,
	})
}

// RejectCounter declines the counter without changing the offer
// (POST /counters/:id/reject).
func (h *CounterHandler) RejectCounter(c *gin.Context) {
	counter, err := h.negotiation.RejectCounter(c.Param("id"), username(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Counteroffer rejected.",
		"counter": counter,
	})
}

// DeleteCounter lets the buyer withdraw their own open counter
// (DELETE /counters/:id).
func (h *CounterHandler) DeleteCounter(c *gin.Context) {
	if err := h.negotiation.DeleteCounter(c.Param("id"), username(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Counteroffer withdrawn."})
}
