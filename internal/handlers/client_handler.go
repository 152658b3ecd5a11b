package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/pagination"
	"github.com/GiaHeplBro/SEO/internal/services"
)

// ClientHandler handles client-related requests.
type ClientHandler struct {
	clientService services.ClientServicer
	auditService  services.AuditServicer
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService services.ClientServicer, auditService services.AuditServicer) *ClientHandler {
	return &ClientHandler{clientService: clientService, auditService: auditService}
}

// ClientRequest represents the create/update payload for a client.
type ClientRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=150"`
	Industry     string `json:"industry" binding:"max=100"`
	ContactName  string `json:"contactName" binding:"max=150"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email,max=255"`
	ContactPhone string `json:"contactPhone" binding:"max=50"`
	Address      string `json:"address" binding:"max=255"`
	Notes        string `json:"notes" binding:"max=2000"`
}

// InteractionRequest represents the payload for recording an interaction.
type InteractionRequest struct {
	Type            string     `json:"type" binding:"required,interaction_type"`
	Title           string     `json:"title" binding:"required,min=1,max=200"`
	Description     string     `json:"description" binding:"max=2000"`
	InteractionDate *time.Time `json:"interactionDate"`
	FollowUpTaskID  *uint      `json:"followUpTaskId"`
}

func (r ClientRequest) input() services.ClientInput {
	return services.ClientInput{
		Name:         r.Name,
		Industry:     r.Industry,
		ContactName:  r.ContactName,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		Address:      r.Address,
		Notes:        r.Notes,
	}
}

// ListClients returns a page of clients
// @Summary     List clients
// @Description List clients with search and pagination
// @Tags        clients
// @Produce     json
// @Security    BearerAuth
// @Param       query query string false "Search by name, industry, or contact"
// @Param       page query int false "Page number"
// @Param       pageSize query int false "Page size"
// @Success     200 {object} pagination.PageResponse[services.ClientSummary]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.clientService.ListClients(c.Query("query"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)

	h.auditService.Log(auditEntry(c, userID, "VIEW", "client", "", "Viewed client list"))
}

// ListClientOptions returns every client as an id/name pair
// @Summary     List client options
// @Description List all clients as id/name pairs for pickers
// @Tags        clients
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} services.ClientOption
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /clients/list [get]
func (h *ClientHandler) ListClientOptions(c *gin.Context) {
	options, err := h.clientService.ListClientOptions()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, options)
}

// GetClient returns one client with its recent history
// @Summary     Get client
// @Description Get a client with task counts and recent activities
// @Tags        clients
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Client ID"
// @Success     200 {object} services.ClientDetail
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	client, err := h.clientService.GetClient(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)

	entry := auditEntry(c, userID, "VIEW", "client", strconv.FormatUint(uint64(id), 10), "Viewed client: "+client.Name)
	entry.ClientID = &id
	h.auditService.Log(entry)
}

// CreateClient creates a client
// @Summary     Create client
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ClientRequest true "Client details"
// @Success     201 {object} models.Client
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	client, err := h.clientService.CreateClient(req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)

	entry := auditEntry(c, userID, "CREATE", "client", strconv.FormatUint(uint64(client.ID), 10), "Created client "+client.Name)
	entry.ClientID = &client.ID
	h.auditService.Log(entry)
}

// UpdateClient replaces a client's fields
// @Summary     Update client
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Client ID"
// @Param       request body ClientRequest true "Client details"
// @Success     200 {object} models.Client
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	client, err := h.clientService.UpdateClient(id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)

	entry := auditEntry(c, userID, "UPDATE", "client", strconv.FormatUint(uint64(id), 10), "Updated client "+client.Name)
	entry.ClientID = &client.ID
	h.auditService.Log(entry)
}

// DeleteClient removes a client
// @Summary     Delete client
// @Tags        clients
// @Security    BearerAuth
// @Param       id path int true "Client ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.clientService.DeleteClient(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)

	h.auditService.Log(auditEntry(c, userID, "DELETE", "client", strconv.FormatUint(uint64(id), 10), "Deleted client"))
}

// ListInteractions returns a page of a client's interactions
// @Summary     List client interactions
// @Tags        clients
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Client ID"
// @Success     200 {object} pagination.PageResponse[models.ClientInteraction]
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /clients/{id}/interactions [get]
func (h *ClientHandler) ListInteractions(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.clientService.ListInteractions(id, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateInteraction records a touchpoint against a client
// @Summary     Record client interaction
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Client ID"
// @Param       request body InteractionRequest true "Interaction details"
// @Success     201 {object} models.ClientInteraction
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /clients/{id}/interactions [post]
func (h *ClientHandler) CreateInteraction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in := services.InteractionInput{
		Type:           req.Type,
		Title:          req.Title,
		Description:    req.Description,
		FollowUpTaskID: req.FollowUpTaskID,
	}
	if req.InteractionDate != nil {
		in.InteractionDate = *req.InteractionDate
	}

	interaction, err := h.clientService.CreateInteraction(id, userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interaction)

	entry := auditEntry(c, userID, "CREATE", "interaction", strconv.FormatUint(uint64(interaction.ID), 10), "Recorded interaction: "+req.Title)
	entry.ClientID = &id
	h.auditService.Log(entry)
}
