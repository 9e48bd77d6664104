package handler

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fadilmartias/careers-portal/internal/dto"
	"github.com/fadilmartias/careers-portal/internal/middleware"
	"github.com/fadilmartias/careers-portal/internal/model"
	"github.com/fadilmartias/careers-portal/internal/usecase"
	"github.com/fadilmartias/careers-portal/internal/util"
	"github.com/fadilmartias/careers-portal/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// DraftIDHeader carries the draft session ID in both directions.
const DraftIDHeader = "X-Draft-ID"

const (
	wizardKey      = "wizard"
	msgFixFields   = "Please fix the highlighted fields"
	msgStateLoaded = "Success get application draft"
)

type WizardHandler struct {
	sessions  *usecase.Sessions
	maxUpload int64
	limiter   fiber.Storage
}

// NewWizardHandler serves the application wizard. limiter backs the submit
// rate limit and may be nil.
func NewWizardHandler(sessions *usecase.Sessions, maxUpload int64, limiter fiber.Storage) *WizardHandler {
	return &WizardHandler{sessions: sessions, maxUpload: maxUpload, limiter: limiter}
}

func (h *WizardHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/wizard", h.session)
	g.Get("/", h.State)
	g.Patch("/draft", h.UpdateDraft)
	g.Get("/steps/:step", h.Step)

	g.Post("/next", h.Next)
	g.Post("/previous", h.Previous)
	g.Post("/goto/:step", h.GoTo)
	g.Post("/reset", h.Reset)
	g.Post("/submit", middleware.RateLimiter("submit", 5, time.Minute, h.limiter), h.Submit)

	g.Post("/documents/:kind", h.Attach)
	g.Delete("/documents/:kind", h.Detach)

	g.Put("/experiences/:index/current", h.SetExperienceCurrent)
	g.Put("/experiences/:index", h.SetExperience)
	g.Put("/educations/:index", h.SetEducation)
	g.Put("/languages/:index", h.SetLanguage)
	g.Post("/:sequence", h.AddEntry)
	g.Delete("/:sequence/:index", h.RemoveEntry)
}

// session resolves the wizard for the request's draft ID and echoes the ID
// back so a client without one learns it.
func (h *WizardHandler) session(c *fiber.Ctx) error {
	w := h.sessions.Open(c.Get(DraftIDHeader))
	c.Set(DraftIDHeader, w.ID())
	c.Locals(wizardKey, w)
	return c.Next()
}

func wizardFrom(c *fiber.Ctx) *usecase.Wizard {
	return c.Locals(wizardKey).(*usecase.Wizard)
}

func (h *WizardHandler) state(c *fiber.Ctx, message string) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: message,
		Data:    wizardFrom(c).State(),
	})
}

// edited answers an edit with the new state, or maps its error.
func (h *WizardHandler) edited(c *fiber.Ctx, err error, message string) error {
	if err != nil {
		return errorResponse(c, err)
	}
	return h.state(c, message)
}

func (h *WizardHandler) State(c *fiber.Ctx) error {
	return h.state(c, msgStateLoaded)
}

func (h *WizardHandler) UpdateDraft(c *fiber.Ctx) error {
	var patch model.DraftPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	return h.edited(c, wizardFrom(c).Update(patch), "Success update application draft")
}

func (h *WizardHandler) Step(c *fiber.Ctx) error {
	step, err := model.ParseStep(c.Params("step"))
	if err != nil {
		return badRequest(c, err.Error(), err)
	}
	data, err := wizardFrom(c).StepData(step)
	if err != nil {
		return errorResponse(c, err)
	}
	if docs, ok := data.(model.DocumentStep); ok {
		data = docs.Sanitized()
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get step data",
		Data:    data,
		Meta:    fiber.Map{"step": step, "name": step.String()},
	})
}

func (h *WizardHandler) Next(c *fiber.Ctx) error {
	w := wizardFrom(c)
	if !w.Next() {
		return util.FormErrorResponse(c, util.NewFormError(msgFixFields, w.Errors()))
	}
	return h.state(c, "Success go to next step")
}

func (h *WizardHandler) Previous(c *fiber.Ctx) error {
	wizardFrom(c).Previous()
	return h.state(c, "Success go to previous step")
}

func (h *WizardHandler) GoTo(c *fiber.Ctx) error {
	step, err := model.ParseStep(c.Params("step"))
	if err != nil {
		return badRequest(c, err.Error(), err)
	}
	return h.edited(c, wizardFrom(c).GoTo(step), "Success go to step")
}

func (h *WizardHandler) Reset(c *fiber.Ctx) error {
	return h.edited(c, wizardFrom(c).Reset(), "Success reset application draft")
}

func (h *WizardHandler) Submit(c *fiber.Ctx) error {
	w := wizardFrom(c)
	var userID *uuid.UUID
	if user := middleware.CurrentUser(c); user != nil {
		id := user.ID
		userID = &id
	}
	sub, err := w.SubmitAll(c.UserContext(), userID)
	if errors.Is(err, usecase.ErrValidationFailed) {
		return util.FormErrorResponse(c, util.NewFormError(msgFixFields, w.Errors()))
	}
	if err != nil {
		return errorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Application submitted",
		Data:    sub,
	})
}

func (h *WizardHandler) AddEntry(c *fiber.Ctx) error {
	seq, err := model.ParseSequence(c.Params("sequence"))
	if err != nil {
		return badRequest(c, err.Error(), err)
	}
	return h.edited(c, wizardFrom(c).AddEntry(seq), "Success add entry")
}

func (h *WizardHandler) RemoveEntry(c *fiber.Ctx) error {
	seq, err := model.ParseSequence(c.Params("sequence"))
	if err != nil {
		return badRequest(c, err.Error(), err)
	}
	i, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, "invalid entry index", err)
	}
	return h.edited(c, wizardFrom(c).RemoveEntry(seq, i), "Success remove entry")
}

func (h *WizardHandler) SetExperience(c *fiber.Ctx) error {
	var exp model.WorkExperience
	i, err := indexAndBody(c, &exp)
	if err != nil {
		return badRequest(c, err.Error(), err)
	}
	return h.edited(c, wizardFrom(c).SetExperience(i, exp), "Success update work experience")
}

func (h *WizardHandler) SetExperienceCurrent(c *fiber.Ctx) error {
	var req dto.SetCurrentRequest
	i, err := indexAndBody(c, &req)
	if err != nil {
		return badRequest(c, err.Error(), err)
	}
	return h.edited(c, wizardFrom(c).SetExperienceCurrent(i, req.Current), "Success update work experience")
}

func (h *WizardHandler) SetEducation(c *fiber.Ctx) error {
	var edu model.Education
	i, err := indexAndBody(c, &edu)
	if err != nil {
		return badRequest(c, err.Error(), err)
	}
	return h.edited(c, wizardFrom(c).SetEducation(i, edu), "Success update education")
}

func (h *WizardHandler) SetLanguage(c *fiber.Ctx) error {
	var lang model.LanguageEntry
	i, err := indexAndBody(c, &lang)
	if err != nil {
		return badRequest(c, err.Error(), err)
	}
	return h.edited(c, wizardFrom(c).SetLanguage(i, lang), "Success update language")
}

func indexAndBody(c *fiber.Ctx, out any) (int, error) {
	i, err := c.ParamsInt("index")
	if err != nil {
		return 0, errors.New("invalid entry index")
	}
	if err := c.BodyParser(out); err != nil {
		return 0, errors.New("invalid request body")
	}
	return i, nil
}

func (h *WizardHandler) Attach(c *fiber.Ctx) error {
	kind, err := model.ParseDocumentKind(c.Params("kind"))
	if err != nil {
		return badRequest(c, err.Error(), err)
	}
	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required", err)
	}
	if file.Size > h.maxUpload {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusRequestEntityTooLarge,
			Message: fmt.Sprintf("file is too large (max %dMB)", h.maxUpload>>20),
		})
	}
	contentType, ok := validation.DocumentType(file.Header.Get(fiber.HeaderContentType), file.Filename)
	if !ok {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnsupportedMediaType,
			Message: "unsupported file type, upload a PDF, Word document or text file",
		})
	}

	src, err := file.Open()
	if err != nil {
		return errorResponse(c, err)
	}
	defer src.Close()
	body, err := io.ReadAll(src)
	if err != nil {
		return errorResponse(c, err)
	}

	lastModified := time.Now().UnixMilli()
	if raw := c.FormValue("lastModified"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			lastModified = v
		}
	}
	attachment := model.FileAttachment{
		File:         body,
		Name:         file.Filename,
		Size:         int64(len(body)),
		Type:         contentType,
		LastModified: lastModified,
	}
	if err := wizardFrom(c).Attach(kind, attachment); err != nil {
		return errorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success attach document",
		Data: dto.AttachmentDTO{
			Kind:         kind,
			Name:         attachment.Name,
			Size:         attachment.Size,
			Type:         attachment.Type,
			LastModified: attachment.LastModified,
		},
	})
}

func (h *WizardHandler) Detach(c *fiber.Ctx) error {
	kind, err := model.ParseDocumentKind(c.Params("kind"))
	if err != nil {
		return badRequest(c, err.Error(), err)
	}
	return h.edited(c, wizardFrom(c).Detach(kind), "Success remove document")
}
