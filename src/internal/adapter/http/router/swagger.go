package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("GET /swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>msaccount API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "msaccount API",
    "version": "1.0.0",
    "description": "Customer accounts, deposits and withdrawals with tiered commissions, commission rules and reports."
  },
  "security": [{"BasicAuth": []}],
  "paths": {
    "/accounts": {
      "get": {"tags": ["accounts"], "summary": "List accounts", "responses": {"200": {"description": "Accounts"}}},
      "post": {
        "tags": ["accounts"],
        "summary": "Create account",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AccountRequest"}}}},
        "responses": {
          "201": {"description": "Account created"},
          "400": {"description": "Validation or business rule failure"},
          "503": {"description": "Credit card service unavailable"}
        }
      }
    },
    "/accounts/{id}": {
      "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
      "get": {"tags": ["accounts"], "summary": "Get account", "responses": {"200": {"description": "Account"}, "404": {"description": "Not found"}}},
      "put": {
        "tags": ["accounts"],
        "summary": "Update account",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AccountRequest"}}}},
        "responses": {"200": {"description": "Account updated"}, "400": {"description": "Business rule failure"}, "404": {"description": "Not found"}}
      },
      "delete": {"tags": ["accounts"], "summary": "Delete account", "responses": {"200": {"description": "Deleted"}, "404": {"description": "Not found"}}}
    },
    "/accounts/{id}/deposit": {
      "parameters": [{"name": "id", "in": "path", "required": true, "description": "Destination account id", "schema": {"type": "string"}}],
      "post": {
        "tags": ["transactions"],
        "summary": "Deposit from the first account of customerId into the account",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/DepositRequest"}}}},
        "responses": {"200": {"description": "Destination account after deposit"}, "400": {"description": "Business rule failure"}, "404": {"description": "Not found"}}
      }
    },
    "/accounts/customer/{customerId}/withdraw": {
      "parameters": [{"name": "customerId", "in": "path", "required": true, "schema": {"type": "string"}}],
      "post": {
        "tags": ["transactions"],
        "summary": "Withdraw from the first account of the customer",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/WithdrawRequest"}}}},
        "responses": {"200": {"description": "Account after withdrawal"}, "400": {"description": "Business rule failure"}, "404": {"description": "Not found"}}
      }
    },
    "/commissions": {
      "get": {"tags": ["commissions"], "summary": "List commission rules", "responses": {"200": {"description": "Rules"}}},
      "post": {
        "tags": ["commissions"],
        "summary": "Create commission rule",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CommissionRequest"}}}},
        "responses": {"201": {"description": "Rule created"}, "400": {"description": "Rule already exists for the account type"}}
      }
    },
    "/commissions/{accountType}": {
      "parameters": [{"name": "accountType", "in": "path", "required": true, "schema": {"$ref": "#/components/schemas/AccountType"}}],
      "get": {"tags": ["commissions"], "summary": "Get commission rule by account type", "responses": {"200": {"description": "Rule"}, "404": {"description": "Not found"}}},
      "put": {
        "tags": ["commissions"],
        "summary": "Update commission amount",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"type": "object", "properties": {"monto": {"type": "number"}}}}}},
        "responses": {"200": {"description": "Rule updated"}, "404": {"description": "Not found"}}
      }
    },
    "/commissions/{id}": {
      "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
      "delete": {"tags": ["commissions"], "summary": "Delete commission rule", "responses": {"200": {"description": "Deleted"}, "404": {"description": "Not found"}}}
    },
    "/reports/operations": {
      "post": {
        "tags": ["reports"],
        "summary": "Average daily amount moved under a dni this month",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"type": "object", "required": ["dni"], "properties": {"dni": {"type": "string"}}}}}},
        "responses": {"200": {"description": "Report"}, "400": {"description": "No transactions this month"}}
      }
    },
    "/reports/products": {
      "post": {
        "tags": ["reports"],
        "summary": "Commissions charged per account between two dates",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"type": "object", "required": ["startDate", "endDate"], "properties": {"startDate": {"type": "string", "format": "date"}, "endDate": {"type": "string", "format": "date"}}}}}},
        "responses": {"200": {"description": "Report rows, possibly empty"}}
      }
    },
    "/healthz": {"get": {"tags": ["ops"], "summary": "Liveness", "security": [], "responses": {"200": {"description": "OK"}}}},
    "/metrics": {"get": {"tags": ["ops"], "summary": "Prometheus metrics", "security": [], "responses": {"200": {"description": "Metrics"}}}}
  },
  "components": {
    "securitySchemes": {"BasicAuth": {"type": "http", "scheme": "basic"}},
    "schemas": {
      "AccountType": {"type": "string", "enum": ["AHORRO", "CORRIENTE", "PLAZO_FIJO"]},
      "AccountRequest": {
        "type": "object",
        "required": ["customerId", "customerType", "accountType"],
        "properties": {
          "customerId": {"type": "string"},
          "dni": {"type": "string"},
          "customerType": {"type": "string", "enum": ["PERSONAL", "EMPRESARIAL"]},
          "clientType": {"type": "string", "enum": ["VIP", "PYME"]},
          "accountType": {"$ref": "#/components/schemas/AccountType"},
          "balance": {"type": "number"},
          "monthlyLimit": {"type": "integer"},
          "lastDepositDate": {"type": "string", "format": "date"},
          "holders": {"type": "array", "items": {"type": "string"}}
        }
      },
      "DepositRequest": {
        "type": "object",
        "required": ["customerId", "amount"],
        "properties": {"customerId": {"type": "string"}, "amount": {"type": "number"}}
      },
      "WithdrawRequest": {
        "type": "object",
        "required": ["amount"],
        "properties": {"amount": {"type": "number"}}
      },
      "CommissionRequest": {
        "type": "object",
        "required": ["accountType", "monto"],
        "properties": {"accountType": {"$ref": "#/components/schemas/AccountType"}, "monto": {"type": "number"}, "customerId": {"type": "string"}}
      }
    }
  }
}`
