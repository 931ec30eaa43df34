package server

import (
	"net/http"
	"strconv"

	"gamegen/internal/apispec"
)

// Contract describes the routes and payloads the server implements, for
// comparison with the published OpenAPI document.
func Contract() apispec.Contract {
	status := func(codes ...int) []string {
		out := make([]string, 0, len(codes))
		for _, c := range codes {
			out = append(out, strconv.Itoa(c))
		}
		return out
	}
	str := func(name string) apispec.Field { return apispec.Field{Name: name, Type: "string"} }
	return apispec.Contract{
		Routes: []apispec.Route{
			{
				Path:     "/generate-game",
				Method:   http.MethodPost,
				Statuses: status(http.StatusOK, http.StatusBadRequest, http.StatusMethodNotAllowed,
					http.StatusRequestEntityTooLarge, http.StatusInternalServerError),
			},
			{Path: "/healthz", Method: http.MethodGet, Statuses: status(http.StatusOK)},
		},
		Schemas: []apispec.SchemaRule{
			{Name: "GenerateGameRequest", Required: []apispec.Field{str("prompt")}},
			{Name: "GenerateGameResponse", Required: []apispec.Field{str("gameCode")}},
			{Name: "ErrorResponse", Required: []apispec.Field{str("error")}},
			{Name: "HealthResponse", Required: []apispec.Field{str("status")}},
		},
	}
}
