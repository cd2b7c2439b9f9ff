// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{
                    "in": "body",
                    "name": "input",
                    "required": true,
                    "schema": {"$ref": "#/definitions/loginRequest"}
                }],
                "responses": {
                    "200": {"description": "status, username, role, token"},
                    "400": {"description": "malformed body"},
                    "401": {"description": "Usuario o contraseña incorrectos"}
                }
            }
        },
        "/api/logout": {
            "get": {
                "tags": ["auth"],
                "summary": "Log out",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Se requiere autenticación"}}
            }
        },
        "/api/check_session": {
            "get": {
                "tags": ["auth"],
                "summary": "Session status",
                "responses": {"200": {"description": "logged_in, username, role"}}
            }
        },
        "/api/pagos": {
            "get": {
                "tags": ["ledger"],
                "summary": "List payments, newest first",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Payment"}}},
                    "401": {"description": "Unauthorized"}
                }
            },
            "post": {
                "tags": ["ledger"],
                "summary": "Record a payment",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "parameters": [{
                    "in": "body",
                    "name": "input",
                    "required": true,
                    "schema": {"$ref": "#/definitions/paymentRequest"}
                }],
                "responses": {
                    "201": {"description": "mensaje, id"},
                    "400": {"description": "status, message, field"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/gastos": {
            "get": {
                "tags": ["ledger"],
                "summary": "List expenses, newest first",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Expense"}}},
                    "401": {"description": "Unauthorized"}
                }
            },
            "post": {
                "tags": ["ledger"],
                "summary": "Record an expense",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "parameters": [{
                    "in": "body",
                    "name": "input",
                    "required": true,
                    "schema": {"$ref": "#/definitions/expenseRequest"}
                }],
                "responses": {
                    "201": {"description": "mensaje, id"},
                    "400": {"description": "status, message, field"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/reporte-excel": {
            "get": {
                "tags": ["ledger"],
                "summary": "Download spreadsheet report",
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "responses": {
                    "200": {"description": "Reporte_Condominio_YYYY-MM-DD.xlsx", "schema": {"type": "file"}},
                    "401": {"description": "Unauthorized"},
                    "500": {"description": "no se pudo generar el reporte"}
                }
            }
        },
        "/api/eventos": {
            "get": {
                "tags": ["events"],
                "summary": "List audit events",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "from", "type": "string"},
                    {"in": "query", "name": "to", "type": "string"},
                    {"in": "query", "name": "type", "type": "string"}
                ],
                "responses": {"200": {"description": "count, events"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/resumen": {
            "get": {
                "tags": ["ledger"],
                "summary": "Ledger totals",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Summary"}}}
            }
        },
        "/api/ws": {
            "get": {
                "tags": ["ledger"],
                "summary": "WebSocket stream of ledger totals",
                "security": [{"BearerAuth": []}],
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        }
    },
    "definitions": {
        "loginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "paymentRequest": {
            "type": "object",
            "required": ["apto", "payment-date", "month-paid", "payment-method"],
            "properties": {
                "apto": {"type": "string"},
                "payment-date": {"type": "string", "example": "2024-03-15"},
                "month-paid": {"type": "string"},
                "amount-usd": {"type": "number"},
                "amount-bs": {"type": "number"},
                "payment-method": {"type": "string"},
                "reference-number": {"type": "string"},
                "observations": {"type": "string"}
            }
        },
        "expenseRequest": {
            "type": "object",
            "required": ["expense-date", "description", "amount"],
            "properties": {
                "expense-date": {"type": "string", "example": "2024-03-20"},
                "description": {"type": "string"},
                "amount": {"type": "number"},
                "supplier": {"type": "string"},
                "invoice-number": {"type": "string"}
            }
        },
        "models.Payment": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "apartamento": {"type": "string"},
                "fecha_pago": {"type": "string"},
                "mes_cancelado": {"type": "string"},
                "monto_usd": {"type": "number"},
                "monto_bs": {"type": "number"},
                "forma_pago": {"type": "string"},
                "referencia": {"type": "string"},
                "observaciones": {"type": "string"},
                "registrado_por": {"type": "string"}
            }
        },
        "models.Expense": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "fecha_gasto": {"type": "string"},
                "descripcion": {"type": "string"},
                "monto": {"type": "number"},
                "proveedor": {"type": "string"},
                "factura": {"type": "string"},
                "registrado_por": {"type": "string"}
            }
        },
        "models.Summary": {
            "type": "object",
            "properties": {
                "pagos": {"type": "integer"},
                "gastos": {"type": "integer"},
                "total_usd": {"type": "number"},
                "total_bs": {"type": "number"},
                "total_gastos": {"type": "number"},
                "actualizado": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Condominium Ledger API",
	Description:      "Payments, expenses and spreadsheet reports for a residential condominium.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
