package req

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/res"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Decode decodes JSON from an io.ReadCloser into a struct of type T.
func Decode[T any](body io.ReadCloser) (T, error) {
	var payload T
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return payload, err
	}
	return payload, nil
}

// IsValid validates a struct of type T against its validate tags.
func IsValid[T any](payload T) error {
	validate := validator.New()
	return validate.Struct(payload)
}

// HandleBody decodes and validates a request body in one step.
func HandleBody[T any](w http.ResponseWriter, r *http.Request, log *zap.Logger) (*T, error) {
	body, err := Decode[T](r.Body)
	if err != nil {
		log.Error("failed to decode request body", zap.Error(err))
		res.JsonResponse(w, res.ErrorResponse{Error: "Formato de requisição inválido"}, http.StatusBadRequest)
		return nil, err
	}

	if err := IsValid(body); err != nil {
		log.Error("request body validation failed", zap.Error(err))
		res.JsonResponse(w, res.ErrorResponse{Error: "Dados de requisição inválidos", Details: err.Error()}, http.StatusBadRequest)
		return nil, err
	}
	return &body, nil
}
