package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SpendChat Engine API",
        "description": "Report derivation and optimistic mutation service",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Reports", "description": "Derived report surfaces"},
        {"name": "Mutations", "description": "Optimistic write commands"},
        {"name": "Exports", "description": "Rendered spend summaries"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/reports": {
            "get": {
                "tags": ["Reports"],
                "summary": "List navigable reports for the viewer",
                "parameters": [
                    {"name": "focusMode", "in": "query", "type": "boolean"},
                    {"name": "currentReportID", "in": "query", "type": "string"},
                    {"name": "includeSelfDM", "in": "query", "type": "boolean"},
                    {"name": "restrictedDomain", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/reports/{id}/name": {
            "get": {
                "tags": ["Reports"],
                "summary": "Derive a report's display title",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/reports/{id}/status": {
            "get": {
                "tags": ["Reports"],
                "summary": "Derive a report's workflow state",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/reports/{id}/spend": {
            "get": {
                "tags": ["Reports"],
                "summary": "Derive a money report's spend breakdown",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/reports/{id}/approval-chain": {
            "get": {
                "tags": ["Reports"],
                "summary": "Derive the approver route of an expense report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/mutations/comment": {
            "post": {
                "tags": ["Mutations"],
                "summary": "Post a comment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddCommentRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/mutations/money-request": {
            "post": {
                "tags": ["Mutations"],
                "summary": "Record a new expense or IOU",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateMoneyRequestRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/mutations/submit": {
            "post": {
                "tags": ["Mutations"],
                "summary": "Submit a draft report for approval",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WorkflowRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/mutations/approve": {
            "post": {
                "tags": ["Mutations"],
                "summary": "Approve an outstanding report",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WorkflowRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/mutations/pay": {
            "post": {
                "tags": ["Mutations"],
                "summary": "Settle a money report",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PayRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/exports/spend-summary": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export the viewer's spend summary",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "AddCommentRequest": {
            "type": "object",
            "required": ["reportID", "text"],
            "properties": {
                "reportID": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "CreateMoneyRequestRequest": {
            "type": "object",
            "required": ["chatReportID", "amount", "currency"],
            "properties": {
                "chatReportID": {"type": "string"},
                "payerAccountID": {"type": "integer"},
                "amount": {"type": "integer"},
                "currency": {"type": "string"},
                "merchant": {"type": "string"},
                "comment": {"type": "string"},
                "reimbursable": {"type": "boolean"},
                "billable": {"type": "boolean"},
                "track": {"type": "boolean"}
            }
        },
        "WorkflowRequest": {
            "type": "object",
            "required": ["reportID"],
            "properties": {
                "reportID": {"type": "string"}
            }
        },
        "PayRequest": {
            "type": "object",
            "required": ["reportID", "paymentMethod"],
            "properties": {
                "reportID": {"type": "string"},
                "paymentMethod": {"type": "string", "enum": ["Elsewhere", "Spendchat", "ACH"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
