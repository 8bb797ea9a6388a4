package handlers

import (
	"encoding/json"
	"net/http"
)

// OpenAPISpec returns the OpenAPI 3.0 specification for the QC archive API
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	spec := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "AWS QC Archive API",
			"description": "Read API over archived quality-control runs of the station's minute-resolution weather data",
			"version":     "1.0.0",
		},
		"servers": []map[string]string{
			{"url": "http://localhost:8080", "description": "Local development server"},
		},
		"paths": map[string]interface{}{
			"/api/runs": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "List quality-control runs",
					"description": "Retrieve archived QC runs, newest first, with pagination",
					"parameters": []map[string]interface{}{
						{
							"name":        "page",
							"in":          "query",
							"description": "Page number (default 1)",
							"required":    false,
							"schema":      map[string]string{"type": "integer"},
						},
						{
							"name":        "limit",
							"in":          "query",
							"description": "Page size (default 100, max 1000)",
							"required":    false,
							"schema":      map[string]string{"type": "integer"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "List of runs",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "array",
										"items": map[string]interface{}{
											"type": "object",
											"properties": map[string]interface{}{
												"id":                 map[string]string{"type": "integer"},
												"station_id":         map[string]string{"type": "string"},
												"label":              map[string]string{"type": "string"},
												"source_file":        map[string]string{"type": "string"},
												"step_seconds":       map[string]string{"type": "integer"},
												"total_rows":         map[string]string{"type": "integer"},
												"missing_count":      map[string]string{"type": "integer"},
												"out_of_range_count": map[string]string{"type": "integer"},
												"gradient_count":     map[string]string{"type": "integer"},
											},
										},
									},
								},
							},
						},
					},
				},
			},
			"/api/runs/{id}": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get one quality-control run",
					"description": "Retrieve a single archived QC run by ID",
					"parameters": []map[string]interface{}{
						{
							"name":     "id",
							"in":       "path",
							"required": true,
							"schema":   map[string]string{"type": "integer"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "The run record"},
						"404": map[string]interface{}{"description": "Run not found"},
					},
				},
			},
			"/api/runs/{id}/observations": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get cleaned observations of a run",
					"description": "Retrieve the cleaned series rows of a run with optional time window and pagination",
					"parameters": []map[string]interface{}{
						{
							"name":        "id",
							"in":          "path",
							"required":    true,
							"schema":      map[string]string{"type": "integer"},
							"description": "Run ID",
						},
						{
							"name":        "start",
							"in":          "query",
							"description": "Window start (RFC 3339)",
							"required":    false,
							"schema":      map[string]string{"type": "string", "format": "date-time"},
						},
						{
							"name":        "end",
							"in":          "query",
							"description": "Window end (RFC 3339)",
							"required":    false,
							"schema":      map[string]string{"type": "string", "format": "date-time"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Paginated observations",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"data": map[string]interface{}{
												"type": "array",
												"items": map[string]interface{}{
													"type": "object",
													"properties": map[string]interface{}{
														"timestamp":      map[string]string{"type": "string", "format": "date-time"},
														"temperature":    map[string]interface{}{"type": "number", "nullable": true},
														"humidity":       map[string]interface{}{"type": "number", "nullable": true},
														"wind_speed":     map[string]interface{}{"type": "number", "nullable": true},
														"wind_direction": map[string]interface{}{"type": "number", "nullable": true},
														"wind_gust":      map[string]interface{}{"type": "number", "nullable": true},
														"precipitation":  map[string]interface{}{"type": "number", "nullable": true},
														"pressure":       map[string]interface{}{"type": "number", "nullable": true},
														"battery":        map[string]interface{}{"type": "number", "nullable": true},
													},
												},
											},
											"total":       map[string]string{"type": "integer"},
											"page":        map[string]string{"type": "integer"},
											"limit":       map[string]string{"type": "integer"},
											"total_pages": map[string]string{"type": "integer"},
										},
									},
								},
							},
						},
					},
				},
			},
			"/api/runs/{id}/findings": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get quality-control findings of a run",
					"description": "Retrieve the findings of a run, filterable by kind and channel",
					"parameters": []map[string]interface{}{
						{
							"name":     "id",
							"in":       "path",
							"required": true,
							"schema":   map[string]string{"type": "integer"},
						},
						{
							"name":        "kind",
							"in":          "query",
							"description": "Finding kind: missing_value, out_of_range, steep_gradient",
							"required":    false,
							"schema":      map[string]string{"type": "string"},
						},
						{
							"name":        "channel",
							"in":          "query",
							"description": "Channel symbol, e.g. T, phi, ws",
							"required":    false,
							"schema":      map[string]string{"type": "string"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Paginated findings"},
					},
				},
			},
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Health check",
					"description": "Check if the API and its archive database are reachable",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "API is healthy",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"status": map[string]string{"type": "string"},
										},
									},
								},
							},
						},
					},
				},
			},
			"/metrics": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Prometheus metrics",
					"description": "Prometheus metrics endpoint for monitoring",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Prometheus metrics in text format",
							"content": map[string]interface{}{
								"text/plain": map[string]interface{}{
									"schema": map[string]string{"type": "string"},
								},
							},
						},
					},
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spec)
}
