package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"

	"github.com/Badalsingh25/CraftConnect/services"
	"github.com/Badalsingh25/CraftConnect/utils"
)

// ContactRequest represents the public contact form
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type ContactController struct {
	contact *services.ContactService
}

func NewContactController(contact *services.ContactService) *ContactController {
	return &ContactController{contact: contact}
}

// PublicContact mails a visitor's message to the admin
func (cc *ContactController) PublicContact(c *gin.Context) {
	utils.LogInfo("PublicContact called")

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid contact request: %v", err)
		utils.BadRequest(c, "Invalid input")
		return
	}

	err := cc.contact.Send(services.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	switch {
	case err == nil:
		utils.Message(c, http.StatusOK, "Your message was sent to the admin.")
	case errors.Is(err, services.ErrContactNotDelivered):
		utils.Message(c, http.StatusInternalServerError, "Failed to send message")
	default:
		utils.RespondError(c, err)
	}
}
