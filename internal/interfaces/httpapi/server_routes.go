package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/positions", handler.ListPositions)
	mux.HandleFunc("GET /v1/lineup", handler.GetLineup)
	mux.HandleFunc("PATCH /v1/lineup", handler.RenameLineup)
	mux.HandleFunc("GET /v1/lineup/stats", handler.GetLineupStats)
	mux.HandleFunc("PUT /v1/lineup/positions/{position}", handler.AssignPosition)
	mux.HandleFunc("DELETE /v1/lineup/positions/{position}", handler.ClearPosition)
	mux.HandleFunc("POST /v1/lineup/swap", handler.SwapPositions)
	mux.HandleFunc("POST /v1/lineup/move", handler.MovePop)
	mux.HandleFunc("POST /v1/lineup/clear", handler.ClearLineup)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/pops", handler.ListPops)
	mux.HandleFunc("GET /v1/pops/{popID}", handler.GetPop)
	mux.HandleFunc("GET /v1/brands", handler.ListBrands)
	mux.HandleFunc("POST /v1/pops/custom", handler.CreateCustomPop)
	mux.HandleFunc("DELETE /v1/pops/custom/{popID}", handler.DeleteCustomPop)
}

func registerSettingsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/settings", handler.GetSettings)
	mux.HandleFunc("PATCH /v1/settings", handler.UpdateSettings)
}

func registerDataRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/data/export", handler.ExportData)
	mux.HandleFunc("POST /v1/data/import", handler.ImportData)
	mux.HandleFunc("DELETE /v1/data", handler.ClearData)
	mux.HandleFunc("GET /v1/data/storage", handler.GetStorageInfo)
}
