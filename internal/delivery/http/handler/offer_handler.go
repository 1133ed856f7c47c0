package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	entity "agrotrade/internal/domain"
	service "agrotrade/internal/service"
)

type OfferHandler struct {
	negotiation *service.NegotiationService
}

func NewOfferHandler(negotiation *service.NegotiationService) *OfferHandler {
	return &OfferHandler{negotiation: negotiation}
}

// @Summary      Publish Offer
// @Description  Producer publishes a new open offer; every buyer is notified.
// @Tags         Offers
// @Accept       json
// @Produce      json
// @Success      201  {object}  entity.OfferRecord
// @Failure      400  {object}  map[string]interface{}
// @Router       /offers [post]
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	var input entity.TermsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	offer, err := h.negotiation.CreateOffer(username(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Offer published.",
		"offer":   offer,
	})
}

// Feed lists the open offers this buyer has not yet acted on (GET /offers/feed).
func (h *OfferHandler) Feed(c *gin.Context) {
	offers := h.negotiation.ListOffersFor(username(c))
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// MyOffers lists all offers the producer published, any status (GET /offers/my).
func (h *OfferHandler) MyOffers(c *gin.Context) {
	offers := h.negotiation.ListMyOffers(username(c))
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// Deals lists the offers that closed with this buyer (GET /offers/deals).
func (h *OfferHandler) Deals(c *gin.Context) {
	offers := h.negotiation.ListDealsFor(username(c))
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// AcceptOffer closes the deal on the current terms (POST /offers/:id/accept).
func (h *OfferHandler) AcceptOffer(c *gin.Context) {
	offer, err := h.negotiation.AcceptOffer(c.Param("id"), username(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Offer accepted. Deal closed.",
		"offer":   offer,
	})
}

// RejectOffer hides the offer from this buyer only (POST /offers/:id/reject).
func (h *OfferHandler) RejectOffer(c *gin.Context) {
	if err := h.negotiation.RejectOffer(c.Param("id"), username(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Offer rejected. It remains available to other buyers.",
	})
}

// MarkInterest signals interest to the producer (POST /offers/:id/interest).
func (h *OfferHandler) MarkInterest(c *gin.Context) {
	if err := h.negotiation.MarkInterest(c.Param("id"), username(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Interest recorded."})
}

// ReviseOffer answers a counter by updating the original offer's terms in
// place (POST /offers/:id/revise).
func (h *OfferHandler) ReviseOffer(c *gin.Context) {
	var input entity.ReviseOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	offer, err := h.negotiation.ReviseOffer(c.Param("id"), username(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "New proposal sent to the buyer.",
		"offer":   offer,
	})
}

// DeleteOffer withdraws a still-open offer (DELETE /offers/:id).
func (h *OfferHandler) DeleteOffer(c *gin.Context) {
	if err := h.negotiation.DeleteOffer(c.Param("id"), username(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Offer removed."})
}

// History returns the shared timeline of an offer, counters included
// (GET /offers/:id/history).
func (h *OfferHandler) History(c *gin.Context) {
	entries, err := h.negotiation.ListHistory(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}
