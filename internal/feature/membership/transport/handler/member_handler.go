// Package handler provides the HTTP handlers for the membership feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"membership_backend/internal/api"
	authusecase "membership_backend/internal/feature/auth/usecase"
	"membership_backend/internal/feature/membership/domain/entity"
	"membership_backend/internal/feature/membership/transport/http/dto"
	"membership_backend/internal/feature/membership/usecase"
	jwtmw "membership_backend/internal/platform/jwt"
)

// MemberUsecase defines the usecase interface for member record operations.
// Following Go convention, the interface is defined by the consumer (handler)
// rather than the provider (usecase).
type MemberUsecase interface {
	Apply(ctx context.Context, in usecase.ApplyInput) (*entity.Member, error)
	CreateByAdmin(ctx context.Context, in usecase.AdminCreateInput) (*entity.Member, error)
	Update(ctx context.Context, id uint, in usecase.UpdateInput) (*entity.Member, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*entity.Member, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter usecase.ListFilter) ([]entity.Member, int64, error)
	PublicList(ctx context.Context, query string, page, limit int) ([]entity.Member, int64, error)
	GetByIdentifier(ctx context.Context, identifier string) (*entity.Member, error)
	ProfileByAccountID(ctx context.Context, accountID uint) (*entity.Member, error)
	Stats(ctx context.Context) (entity.Stats, error)
	Summary(ctx context.Context) (entity.Summary, error)
	ExportCSV(ctx context.Context) ([]byte, error)
}

// ImageSaver stores an uploaded image and returns its public path.
type ImageSaver interface {
	Save(file *multipart.FileHeader, folder string) (string, error)
}

// MemberHandler handles HTTP requests for member record operations.
type MemberHandler struct {
	members MemberUsecase
	images  ImageSaver
}

// NewMemberHandler creates a new instance of MemberHandler.
func NewMemberHandler(members MemberUsecase, images ImageSaver) *MemberHandler {
	return &MemberHandler{members: members, images: images}
}

// Apply handles a public membership application.
// - binds the multipart form, 400 on validation failure
// - stores the optional profileImage part before the application is recorded
// - 409 when the email already belongs to an account created elsewhere
// - 201 with the created member record on success
//
// Endpoint: POST /membership/apply
func (h *MemberHandler) Apply(c *gin.Context) {
	var req dto.ApplyReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	imagePath := ""
	if file, err := c.FormFile("profileImage"); err == nil {
		path, err := h.images.Save(file, "profiles")
		if err != nil {
			slog.Warn("profile image rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		imagePath = path
	}

	member, err := h.members.Apply(c.Request.Context(), usecase.ApplyInput{
		FullName:          req.FullName,
		FatherName:        req.FatherName,
		Mobile:            req.Mobile,
		Email:             req.Email,
		Address:           req.Address,
		Occupation:        req.Occupation,
		AnnualIncome:      req.AnnualIncome,
		MembershipPriceID: req.MembershipPriceID,
		ProfileImage:      imagePath,
	})
	if err != nil {
		h.writeMemberError(c, err, "membership application failed")
		return
	}
	slog.Info("membership application received", "member_id", member.MemberID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, toMemberResponse(member))
}

// Create handles admin member creation.
//
// Endpoint: POST /admin/members (admin)
func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.AdminCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	member, err := h.members.CreateByAdmin(c.Request.Context(), usecase.AdminCreateInput{
		ApplyInput: usecase.ApplyInput{
			FullName:          req.FullName,
			FatherName:        req.FatherName,
			Mobile:            req.Mobile,
			Email:             req.Email,
			Address:           req.Address,
			Occupation:        req.Occupation,
			AnnualIncome:      req.AnnualIncome,
			MembershipPriceID: req.MembershipPriceID,
		},
		Password: req.Password,
		Status:   req.Status,
	})
	if err != nil {
		h.writeMemberError(c, err, "member creation failed")
		return
	}
	c.JSON(http.StatusCreated, toMemberResponse(member))
}

// List handles the admin member listing with filters and pagination.
//
// Endpoint: GET /admin/members?status=&type=&q=&page=&limit= (admin)
func (h *MemberHandler) List(c *gin.Context) {
	filter := usecase.ListFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Query:  c.Query("q"),
		Page:   intQuery(c, "page"),
		Limit:  intQuery(c, "limit"),
	}
	members, total, err := h.members.List(c.Request.Context(), filter)
	if err != nil {
		slog.Error("member listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list members"})
		return
	}
	c.JSON(http.StatusOK, pagedMembers(members, total, filter.Page, filter.Limit))
}

// PublicList handles the public approved-members directory.
//
// Endpoint: GET /members?q=&page=&limit=
func (h *MemberHandler) PublicList(c *gin.Context) {
	page, limit := intQuery(c, "page"), intQuery(c, "limit")
	members, total, err := h.members.PublicList(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		slog.Error("public member listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list members"})
		return
	}
	c.JSON(http.StatusOK, pagedMembers(members, total, page, limit))
}

// Get retrieves one member by database ID, member ID or account ID.
//
// Endpoint: GET /admin/members/:id (admin)
func (h *MemberHandler) Get(c *gin.Context) {
	member, err := h.members.GetByIdentifier(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeMemberError(c, err, "member lookup failed")
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(member))
}

// Update handles an admin member edit.
//
// Endpoint: PUT /admin/members/:id (admin)
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	var req dto.UpdateMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	member, err := h.members.Update(c.Request.Context(), id, usecase.UpdateInput{
		FullName:          req.FullName,
		FatherName:        req.FatherName,
		Mobile:            req.Mobile,
		Email:             req.Email,
		Address:           req.Address,
		Occupation:        req.Occupation,
		AnnualIncome:      req.AnnualIncome,
		MembershipPriceID: req.MembershipPriceID,
		ProfileImage:      req.ProfileImage,
		Status:            req.Status,
	})
	if err != nil {
		h.writeMemberError(c, err, "member update failed")
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(member))
}

// UpdateStatus handles a member status change (approve/reject/re-pend).
//
// Endpoint: PATCH /admin/members/:id/status (admin)
func (h *MemberHandler) UpdateStatus(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	var req dto.UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	member, err := h.members.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.writeMemberError(c, err, "member status update failed")
		return
	}
	slog.Info("member status updated", "member_id", member.MemberID, "status", member.Status)
	c.JSON(http.StatusOK, toMemberResponse(member))
}

// Delete removes a member record and its paired account.
//
// Endpoint: DELETE /admin/members/:id (admin)
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	if err := h.members.Delete(c.Request.Context(), id); err != nil {
		h.writeMemberError(c, err, "member deletion failed")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "member deleted"})
}

// Profile returns the member record paired with the caller's account.
//
// Endpoint: GET /members/me (authenticated)
func (h *MemberHandler) Profile(c *gin.Context) {
	accountID := c.GetUint(jwtmw.ContextUserID)
	member, err := h.members.ProfileByAccountID(c.Request.Context(), accountID)
	if err != nil {
		h.writeMemberError(c, err, "member profile lookup failed")
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(member))
}

// Stats returns the public approved-member counters.
//
// Endpoint: GET /membership/stats
func (h *MemberHandler) Stats(c *gin.Context) {
	stats, err := h.members.Stats(c.Request.Context())
	if err != nil {
		slog.Error("membership stats failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Summary returns the admin dashboard counters.
//
// Endpoint: GET /admin/summary (admin)
func (h *MemberHandler) Summary(c *gin.Context) {
	summary, err := h.members.Summary(c.Request.Context())
	if err != nil {
		slog.Error("dashboard summary failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportCSV streams every member record as a CSV download.
//
// Endpoint: GET /admin/members/export (admin)
func (h *MemberHandler) ExportCSV(c *gin.Context) {
	data, err := h.members.ExportCSV(c.Request.Context())
	if err != nil {
		slog.Error("member export failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to export members"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="members.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// writeMemberError maps usecase errors onto HTTP statuses.
func (h *MemberHandler) writeMemberError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, usecase.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "member not found"})
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, authusecase.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "an account with this email already exists"})
	default:
		slog.Error(logMsg, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

// memberID parses the :id path parameter, writing 400 when it is not numeric.
func memberID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid member id"})
		return 0, false
	}
	return uint(id), true
}

func intQuery(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

func pagedMembers(members []entity.Member, total int64, page, limit int) api.PagedResponse[api.MemberResponse] {
	items := make([]api.MemberResponse, 0, len(members))
	for i := range members {
		items = append(items, toMemberResponse(&members[i]))
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = usecase.DefaultPageSize
	}
	return api.PagedResponse[api.MemberResponse]{Items: items, Total: total, Page: page, Limit: limit}
}

func toMemberResponse(m *entity.Member) api.MemberResponse {
	return api.MemberResponse{
		ID:                 m.ID,
		MemberID:           m.MemberID,
		FullName:           m.FullName,
		FatherName:         m.FatherName,
		Mobile:             m.Mobile,
		Email:              m.Email,
		Address:            m.Address,
		Occupation:         m.Occupation,
		AnnualIncome:       m.AnnualIncome,
		MembershipType:     m.MembershipType,
		MembershipPlanID:   m.MembershipPlanID,
		MembershipPlanName: m.MembershipPlanName,
		MembershipFee:      m.MembershipFee,
		ProfileImage:       m.ProfileImage,
		Status:             m.Status,
		CreatedAt:          m.CreatedAt,
	}
}
