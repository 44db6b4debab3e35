package controller

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"intellinote-be/internal/dto"
	"intellinote-be/internal/pkg/serverutils"
	"intellinote-be/internal/service"
	"intellinote-be/pkg/normalizer"
)

type IStudyController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetState(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	SelectHistory(ctx *fiber.Ctx) error
	DeleteHistory(ctx *fiber.Ctx) error
	ClearHistory(ctx *fiber.Ctx) error
}

type studyController struct {
	studyService service.IStudyService
}

func NewStudyController(studyService service.IStudyService) IStudyController {
	return &studyController{
		studyService: studyService,
	}
}

func (c *studyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/study/v1")
	h.Post("session", c.CreateSession)
	h.Get("session/:sid", c.GetState)
	h.Post("session/:sid/generate", c.Generate)
	h.Get("history", c.GetHistory)
	h.Post("session/:sid/history/:id/select", c.SelectHistory)
	h.Delete("session/:sid/history/:id", c.DeleteHistory)
	h.Delete("session/:sid/history", c.ClearHistory)
}

func (c *studyController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.studyService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *studyController) GetState(ctx *fiber.Ctx) error {
	res, err := c.studyService.GetState(ctx.Context(), ctx.Params("sid"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

// Generate accepts either a multipart upload (field "file") or a JSON body
// with raw text, normalizes it and runs one generation.
func (c *studyController) Generate(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sid")

	payload, err := c.buildPayload(ctx)
	if err != nil {
		return err
	}

	res, err := c.studyService.Generate(ctx.Context(), sessionID, payload)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate content", res))
}

func (c *studyController) buildPayload(ctx *fiber.Ctx) (*normalizer.InputPayload, error) {
	if strings.HasPrefix(ctx.Get("Content-Type"), "multipart/form-data") {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "multipart request is missing the 'file' field")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, err
		}

		return normalizer.NormalizeFile(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	}

	var req dto.GenerateTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	return normalizer.NormalizeText(req.Text)
}

func (c *studyController) GetHistory(ctx *fiber.Ctx) error {
	res := c.studyService.GetHistory(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success list history", res))
}

func (c *studyController) SelectHistory(ctx *fiber.Ctx) error {
	res, err := c.studyService.SelectHistory(ctx.Context(), ctx.Params("sid"), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success select history entry", res))
}

func (c *studyController) DeleteHistory(ctx *fiber.Ctx) error {
	err := c.studyService.DeleteHistory(ctx.Context(), ctx.Params("sid"), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete history entry", nil))
}

func (c *studyController) ClearHistory(ctx *fiber.Ctx) error {
	err := c.studyService.ClearHistory(ctx.Context(), ctx.Params("sid"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear history", nil))
}
