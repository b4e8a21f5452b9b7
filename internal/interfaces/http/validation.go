package http

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
)

var validate = validator.New()

func init() {
	// decimal.Decimal se valida como número para que tags como min=0 no fallen.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate parsea el body JSON y aplica los tags de validator.
// Devuelve nil si todo es válido; si no, el cuerpo de error 400 que debe responder el handler.
func bindAndValidate(c *fiber.Ctx, req any) *dto.ErrorResponse {
	if err := c.BodyParser(req); err != nil {
		return &dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido: " + err.Error()}
	}
	return validateStruct(req)
}

// bindPage lee limit/offset del query string.
func bindPage(c *fiber.Ctx) (dto.PageRequest, *dto.ErrorResponse) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, &dto.ErrorResponse{Code: CodeValidation, Message: "parámetros de paginación inválidos"}
	}
	if e := validateStruct(&page); e != nil {
		return page, e
	}
	return page, nil
}

func validateStruct(req any) *dto.ErrorResponse {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &dto.ErrorResponse{Code: CodeValidation, Message: err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Namespace()] = fe.Tag()
	}
	return &dto.ErrorResponse{Code: CodeValidation, Message: "datos inválidos", Fields: fields}
}

func badRequest(c *fiber.Ctx, body *dto.ErrorResponse) error {
	return c.Status(fiber.StatusBadRequest).JSON(body)
}
