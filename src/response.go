package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"bookingapi/src/boot"
	"bookingapi/src/controllers"
	"bookingapi/src/types"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func respond(ctx *gin.Context, status int, message string, data any) {
	ctx.JSON(status, types.APIResponse{Status: true, Message: message, Data: data})
}

// respondError writes the failure envelope. Client errors carry their message
// and validation details; server errors never expose the underlying text.
func respondError(ctx *gin.Context, app *boot.App, operation string, status int, err error) {
	res := types.APIResponse{Status: false}
	switch {
	case status == http.StatusBadGateway:
		res.Message = gatewayMessage(err)
	case status >= http.StatusInternalServerError:
		res.Message = http.StatusText(status)
	default:
		res.Message, res.Error = clientError(err)
	}

	if status >= http.StatusInternalServerError {
		app.Metrics.ErrorsCount.WithLabelValues(operation).Inc()
		app.Log.Error("request failed", "operation", operation, "status", status, "error", err)
	} else {
		app.Log.Debug("request rejected", "operation", operation, "status", status, "error", err)
	}
	ctx.AbortWithStatusJSON(status, res)
}

func gatewayMessage(err error) string {
	for _, sentinel := range []error{controllers.ErrMailDelivery, controllers.ErrPlaceLookup} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return http.StatusText(http.StatusBadGateway)
}

func clientError(err error) (string, any) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldMessage(fe))
		}
		return "invalid request", details
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.EOF) {
		return "invalid request body", nil
	}
	if err == nil {
		return "", nil
	}
	return err.Error(), nil
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min", "max":
		return fmt.Sprintf("%s must have %s length %s", field, fe.Tag(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "currencycode":
		return fmt.Sprintf("%s must be a three-letter currency code", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}
