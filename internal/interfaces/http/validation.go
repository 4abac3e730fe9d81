package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
)

var validate = newValidator()

// newValidator usa el nombre json de cada campo en los mensajes.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// bindBody parsea el body JSON en dst y lo valida. Si falla ya escribió la respuesta 400
// y devuelve ok=false.
func bindBody(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	return checkStruct(c, dst)
}

// bindQuery igual que bindBody pero con los parámetros de la query string.
func bindQuery(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.QueryParser(dst); err != nil {
		return false, fail(c, fiber.StatusBadRequest, "INVALID_QUERY", "parámetros inválidos")
	}
	return checkStruct(c, dst)
}

func checkStruct(c *fiber.Ctx, dst any) (bool, error) {
	err := validate.Struct(dst)
	if err == nil {
		return true, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false, fail(c, fiber.StatusBadRequest, "VALIDATION", "datos inválidos")
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = validationMessage(fe)
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "datos inválidos",
		Fields:  fields,
	})
}

// fieldPath quita el nombre del struct raíz: "CreateInvoiceRequest.items[0].product_id"
// queda "items[0].product_id".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "debe ser un email válido"
	case "uuid":
		return "debe ser un UUID"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser al menos %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener como máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser como máximo %s", fe.Param())
	case "len":
		return fmt.Sprintf("debe tener exactamente %s caracteres", fe.Param())
	case "numeric":
		return "debe contener solo dígitos"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "datetime":
		return "fecha inválida, formato " + fe.Param()
	case "url":
		return "debe ser una URL válida"
	}
	return "es inválido"
}

// pathID lee el parámetro :id y exige un UUID. Un id mal formado no puede existir:
// responde 404 con notFound y devuelve ok=false.
func pathID(c *fiber.Ctx, notFound error) (string, bool, error) {
	id := c.Params("id")
	if err := validate.Var(id, "required,uuid"); err != nil {
		return "", false, respondError(c, fmt.Errorf("id %q: %w", id, notFound))
	}
	return id, true, nil
}

// queryUUID lee un filtro opcional que, si viene, debe ser un UUID.
func queryUUID(c *fiber.Ctx, name string) (string, bool, error) {
	v := c.Query(name)
	if v == "" {
		return "", true, nil
	}
	if err := validate.Var(v, "uuid"); err != nil {
		return "", false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Fields:  map[string]string{name: "debe ser un UUID válido"},
		})
	}
	return v, true, nil
}
