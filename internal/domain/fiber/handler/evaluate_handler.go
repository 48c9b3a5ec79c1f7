package handler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/backend"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/config"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/dto"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/middleware"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/usecase"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const documentField = "pitch_deck"

type EvaluateHandler struct {
	uc  *usecase.EvaluationUsecase
	cfg *config.AppConfig
}

func NewEvaluateHandler(uc *usecase.EvaluationUsecase, cfg *config.AppConfig) *EvaluateHandler {
	return &EvaluateHandler{uc: uc, cfg: cfg}
}

func (h *EvaluateHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Post("/evaluations", middleware.RateLimiter(h.cfg.SubmitRateLimit, time.Minute), h.Evaluate)
	api.Get("/evaluations", h.List)
	api.Get("/evaluations/:id", h.Result)
	api.Get("/models", h.Models)
}

func (h *EvaluateHandler) Evaluate(c *fiber.Ctx) error {
	req, err := h.parseSubmit(c)
	if err != nil {
		var formErr *util.FormError
		if errors.As(err, &formErr) {
			return util.FormErrorResponse(c, formErr)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to store pitch deck",
		}, err)
	}

	task, err := h.uc.Submit(c.UserContext(), req)
	if err != nil {
		_ = os.Remove(req.DocumentPath)
		code := fiber.StatusInternalServerError
		if errors.Is(err, usecase.ErrInvalidRequest) {
			code = fiber.StatusBadRequest
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:       code,
			Message:    "failed to submit evaluation",
			DevMessage: err.Error(),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: "Success submit evaluation",
		Data:    dto.SubmitEvaluationDTO{ID: task.ID, Status: task.Status},
	})
}

func (h *EvaluateHandler) parseSubmit(c *fiber.Ctx) (usecase.SubmitRequest, error) {
	var req usecase.SubmitRequest
	fieldErrors := map[string]string{}

	file, err := c.FormFile(documentField)
	if err != nil {
		fieldErrors[documentField] = fmt.Sprintf("%s file is required", documentField)
	} else {
		if file.Size > h.cfg.MaxUploadSize {
			fieldErrors[documentField] = fmt.Sprintf("%s file size is too large (max %dMB)", documentField, h.cfg.MaxUploadSize/(1024*1024))
		}
		if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
			fieldErrors[documentField] = fmt.Sprintf("unsupported %s file type, only PDF is accepted", documentField)
		}
	}

	req.ExtractionModel = strings.TrimSpace(c.FormValue("extraction_model"))
	req.EvaluationModel = strings.TrimSpace(c.FormValue("evaluation_model"))
	req.PromptVersion = strings.TrimSpace(c.FormValue("prompt_version"))
	for field, name := range map[string]string{"extraction_model": req.ExtractionModel, "evaluation_model": req.EvaluationModel} {
		if name == "" {
			continue
		}
		if _, err := backend.Resolve(name); err != nil {
			fieldErrors[field] = err.Error()
		}
	}

	if len(fieldErrors) > 0 {
		return req, util.NewFormError("invalid evaluation request", fieldErrors)
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		return req, err
	}
	req.DocumentName = filepath.Base(file.Filename)
	req.DocumentPath = filepath.Join(h.cfg.UploadDir, uuid.NewString()[:8]+"_"+req.DocumentName)
	if err := c.SaveFile(file, req.DocumentPath); err != nil {
		return req, err
	}
	return req, nil
}

func (h *EvaluateHandler) Result(c *fiber.Ctx) error {
	id := c.Params("id")
	task, err := h.uc.GetResult(id)
	if err != nil {
		code := fiber.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			code = fiber.StatusNotFound
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    code,
			Message: "evaluation not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get evaluation result",
		Data:    dto.NewEvaluationTaskDTO(task),
	})
}

func (h *EvaluateHandler) List(c *fiber.Ctx) error {
	tasks, pagination, err := h.uc.ListResults(c.QueryInt("page", 1), c.QueryInt("page_size", 0))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list evaluations",
		}, err)
	}

	data := make([]dto.EvaluationTaskDTO, 0, len(tasks))
	for i := range tasks {
		data = append(data, dto.NewEvaluationTaskDTO(&tasks[i]))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list evaluations",
		Data:       data,
		Pagination: pagination,
	})
}

func (h *EvaluateHandler) Models(c *fiber.Ctx) error {
	backends := h.uc.ListModels()
	data := make([]dto.ModelDTO, 0, len(backends))
	for _, b := range backends {
		data = append(data, dto.NewModelDTO(b))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success list models",
		Data:    data,
		Meta:    fiber.Map{"default": backend.DefaultName},
	})
}
