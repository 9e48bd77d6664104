package handler

import (
	"bytes"
	"time"

	"github.com/fadilmartias/careers-portal/internal/dto"
	"github.com/fadilmartias/careers-portal/internal/middleware"
	"github.com/fadilmartias/careers-portal/internal/model"
	"github.com/fadilmartias/careers-portal/internal/response"
	"github.com/fadilmartias/careers-portal/internal/usecase"
	"github.com/fadilmartias/careers-portal/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	uc *usecase.ReviewUsecase
}

func NewAdminHandler(uc *usecase.ReviewUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// RegisterRoutes mounts the dashboard. The router must already resolve the
// current user.
func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/admin", middleware.RequireAdmin())
	g.Get("/stats", h.Stats)
	g.Get("/applications", h.List)
	g.Get("/applications/export", h.Export)
	g.Get("/applications/:id", h.Get)
	g.Patch("/applications/:id/status", h.UpdateStatus)
	g.Get("/applications/:id/documents/:kind", h.Document)
}

func (h *AdminHandler) List(c *fiber.Ctx) error {
	var q dto.ApplicationListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "invalid query", err)
	}
	f := q.Filter()
	apps, total, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return errorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get applications",
		Data:       dto.NewApplicationDTOs(apps),
		Pagination: response.NewPagination(f.Page, f.Limit, total),
	})
}

func (h *AdminHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid application id", err)
	}
	app, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get application",
		Data:    dto.NewApplicationDTO(app),
	})
}

func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid application id", err)
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	app, err := h.uc.UpdateStatus(c.UserContext(), id, model.ApplicationStatus(req.Status), req.Notes)
	if err != nil {
		return errorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update application status",
		Data:    dto.NewApplicationDTO(app),
	})
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get application stats",
		Data:    stats,
	})
}

func (h *AdminHandler) Export(c *fiber.Ctx) error {
	var q dto.ApplicationListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "invalid query", err)
	}
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(c.UserContext(), &buf, q.Filter()); err != nil {
		return errorResponse(c, err)
	}
	c.Attachment(usecase.ExportFileName(time.Now()))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

func (h *AdminHandler) Document(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid application id", err)
	}
	kind, err := model.ParseDocumentKind(c.Params("kind"))
	if err != nil {
		return badRequest(c, err.Error(), err)
	}
	doc, err := h.uc.Document(c.UserContext(), id, kind)
	if err != nil {
		return errorResponse(c, err)
	}
	c.Attachment(doc.Name)
	return c.Send(doc.Body)
}
