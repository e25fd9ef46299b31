// internal/interfaces/http/handlers/account.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/pricing"
)

var accountBenefits = map[pricing.AccountType][]string{
	pricing.AccountGovernment: {
		"Save up to 20% on all products",
		"Priority customer support",
		"Bulk order discounts",
		"Dedicated account manager",
		"Extended payment terms available",
	},
	pricing.AccountIndividual: {
		"Competitive retail pricing",
		"Fast shipping",
		"30-day returns",
		"Secure checkout",
	},
}

// UpdateAccountRequest represents the account type switch
type UpdateAccountRequest struct {
	AccountType pricing.AccountType `json:"account_type" binding:"required"`
}

// AccountHandler handles account type endpoints
type AccountHandler struct{}

// NewAccountHandler creates a new account handler
func NewAccountHandler() *AccountHandler {
	return &AccountHandler{}
}

// GetAccount handles GET /account
func (h *AccountHandler) GetAccount(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	respond(c, s, http.StatusOK, "Account retrieved successfully", accountView(s.AccountType()))
}

// UpdateAccount handles PUT /account
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	s, ok := sessionStore(c)
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := s.SetAccountType(c.Request.Context(), req.AccountType); err != nil {
		respondError(c, err)
		return
	}

	respond(c, s, http.StatusOK, "Account type updated successfully", accountView(req.AccountType))
}

func accountView(accountType pricing.AccountType) gin.H {
	return gin.H{
		"account_type":  accountType,
		"government":    accountType == pricing.AccountGovernment,
		"benefits":      accountBenefits[accountType],
		"account_types": []pricing.AccountType{pricing.AccountIndividual, pricing.AccountGovernment},
	}
}
