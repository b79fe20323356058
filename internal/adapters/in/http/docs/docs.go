// Package docs registers the OpenAPI document served under /swagger.
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
        "UserID": {"type": "apiKey", "name": "X-User-ID", "in": "header"},
        "UserRole": {"type": "apiKey", "name": "X-User-Role", "in": "header"}
    },
    "security": [{"UserID": [], "UserRole": []}],
    "consumes": ["application/json"],
    "produces": ["application/json"],
    "paths": {
        "/orders": {
            "post": {"summary": "Confirm checkout and create an order", "tags": ["orders"],
                "parameters": [{"name": "body", "in": "body", "schema": {"type": "object", "properties": {
                    "trackingNumber": {"type": "string"},
                    "customerId": {"type": "string", "format": "uuid"},
                    "sellerId": {"type": "string", "format": "uuid"},
                    "items": {"type": "array", "items": {"type": "object", "properties": {
                        "productId": {"type": "string", "format": "uuid"},
                        "name": {"type": "string"},
                        "quantity": {"type": "integer", "minimum": 1},
                        "unitPrice": {"type": "string"}}}},
                    "deliveryFee": {"type": "string"},
                    "shippingAddress": {"type": "object", "properties": {
                        "street": {"type": "string"}, "city": {"type": "string"}, "postalCode": {"type": "string"}}},
                    "deliveryMethod": {"type": "string", "enum": ["pickup", "home-delivery"]},
                    "pickupPointId": {"type": "string", "format": "uuid"}}}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input"}, "403": {"description": "Forbidden"}}}
        },
        "/orders/{orderId}": {
            "get": {"summary": "Get an order with its ledgers", "tags": ["orders"],
                "parameters": [{"name": "orderId", "in": "path", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}}
        },
        "/orders/tracking/{trackingNumber}": {
            "get": {"summary": "Get an order by tracking number", "tags": ["orders"],
                "parameters": [{"name": "trackingNumber", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/orders/{orderId}/transitions": {
            "post": {"summary": "Move an order to another status", "tags": ["lifecycle"],
                "description": "Moves that need an agent, a depot or a shelf go through check-in, check-out, assign, scans, discrepancies, delivery-failures, reroute or refund-requests.",
                "parameters": [{"name": "orderId", "in": "path", "required": true, "type": "string", "format": "uuid"}, {"name": "body", "in": "body", "schema": {"type": "object", "properties": {
                    "status": {"type": "string", "enum": ["confirmed", "ready-for-pickup", "picked-up", "at-depot", "out-for-delivery", "delivered", "cancelled", "refund-requested", "refunded", "returned", "depot-issue", "delivery-failed"]},
                    "expectedStatus": {"type": "string", "enum": ["confirmed", "ready-for-pickup", "picked-up", "at-depot", "out-for-delivery", "delivered", "cancelled", "refund-requested", "refunded", "returned", "depot-issue", "delivery-failed"]},
                    "recipientName": {"type": "string"},
                    "location": {"type": "string"},
                    "detail": {"type": "string"}}}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid input"}, "403": {"description": "Forbidden"}, "409": {"description": "Illegal transition or already handled by someone else"}, "422": {"description": "Transition has a dedicated endpoint"}}}
        },
        "/orders/{orderId}/check-in": {
            "post": {"summary": "Check a picked-up parcel into the depot", "tags": ["depot"],
                "parameters": [{"name": "orderId", "in": "path", "required": true, "type": "string", "format": "uuid"}, {"name": "body", "in": "body", "schema": {"type": "object", "properties": {"storageLocationId": {"type": "string"}}}}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/orders/{orderId}/check-out": {
            "post": {"summary": "Send an at-depot parcel out for delivery", "tags": ["depot"],
                "parameters": [{"name": "orderId", "in": "path", "required": true, "type": "string", "format": "uuid"}, {"name": "body", "in": "body", "schema": {"type": "object", "properties": {"agentId": {"type": "string", "format": "uuid"}}}}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "No agent available"}, "422": {"description": "Agent not eligible"}}}
        },
        "/orders/{orderId}/discrepancies": {
            "post": {"summary": "Report a discrepancy found at the depot", "tags": ["depot"],
                "parameters": [{"name": "orderId", "in": "path", "required": true, "type": "string", "format": "uuid"}, {"name": "body", "in": "body", "schema": {"type": "object", "properties": {
                    "kind": {"type": "string", "enum": ["item-count-mismatch", "damaged-seal", "damaged-item", "label-unreadable", "packaging-worn", "other"]},
                    "reason": {"type": "string"}}}}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/orders/{orderId}/assign": {
            "post": {"summary": "Assign a delivery agent (superadmin)", "tags": ["dispatch"],
                "parameters": [{"name": "orderId", "in": "path", "required": true, "type": "string", "format": "uuid"}, {"name": "body", "in": "body", "schema": {"type": "object", "properties": {"agentId": {"type": "string", "format": "uuid"}}}}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Agent not eligible"}}}
        },
        "/orders/{orderId}/candidates": {
            "get": {"summary": "List delivery agents a check-out could pick", "tags": ["dispatch"],
                "parameters": [
                    {"name": "orderId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "zoneId", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"}
                ],
                "responses": {"200": {"description": "OK"}}}
        },
        "/scans": {
            "post": {"summary": "Self-assign a parcel by scanning its label", "tags": ["dispatch"],
                "parameters": [{"name": "body", "in": "body", "schema": {"type": "object", "properties": {"trackingNumber": {"type": "string"}}}}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Already handled by someone else"}}}
        },
        "/orders/{orderId}/delivery-failures": {
            "post": {"summary": "Report a failed delivery attempt", "tags": ["failures"],
                "parameters": [{"name": "orderId", "in": "path", "required": true, "type": "string", "format": "uuid"}, {"name": "body", "in": "body", "schema": {"type": "object", "properties": {
                    "reason": {"type": "string", "enum": ["client-absent", "adresse-erronee", "colis-refuse"]},
                    "details": {"type": "string"}}}}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/orders/{orderId}/reroute": {
            "post": {"summary": "Send a failed delivery back to the depot", "tags": ["failures"],
                "parameters": [{"name": "orderId", "in": "path", "required": true, "type": "string", "format": "uuid"}, {"name": "body", "in": "body", "schema": {"type": "object", "properties": {"storageLocationId": {"type": "string"}}}}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/orders/{orderId}/refund-requests": {
            "post": {"summary": "Request a refund for a delivered order", "tags": ["failures"],
                "parameters": [{"name": "orderId", "in": "path", "required": true, "type": "string", "format": "uuid"}, {"name": "body", "in": "body", "schema": {"type": "object", "properties": {
                    "reason": {"type": "string"},
                    "evidenceUrls": {"type": "array", "items": {"type": "string"}}}}}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Not the order's customer"}}}
        },
        "/orders/{orderId}/disputes": {
            "post": {"summary": "Append a dispute message", "tags": ["failures"],
                "parameters": [{"name": "orderId", "in": "path", "required": true, "type": "string", "format": "uuid"}, {"name": "body", "in": "body", "schema": {"type": "object", "properties": {"message": {"type": "string"}}}}],
                "responses": {"201": {"description": "Created"}}}
        },
        "/agents": {
            "post": {"summary": "Register an agent (superadmin)", "tags": ["agents"],
                "parameters": [{"name": "body", "in": "body", "schema": {"type": "object", "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "name": {"type": "string"},
                    "role": {"type": "string", "enum": ["delivery_agent", "depot_agent", "depot_manager", "seller", "customer", "superadmin"]},
                    "zoneId": {"type": "string", "format": "uuid"},
                    "depotId": {"type": "string", "format": "uuid"}}}}],
                "responses": {"201": {"description": "Created"}}}
        },
        "/agents/me/availability": {
            "put": {"summary": "Toggle own availability", "tags": ["agents"],
                "parameters": [{"name": "body", "in": "body", "schema": {"type": "object", "properties": {"availability": {"type": "string", "enum": ["available", "unavailable"]}}}}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/depots": {
            "post": {"summary": "Register a depot (superadmin)", "tags": ["depots"],
                "parameters": [{"name": "body", "in": "body", "schema": {"type": "object", "properties": {
                    "id": {"type": "string", "format": "uuid"},
                    "name": {"type": "string"},
                    "zoneId": {"type": "string", "format": "uuid"},
                    "managerId": {"type": "string", "format": "uuid"},
                    "layout": {"type": "array", "items": {"type": "string"}}}}}],
                "responses": {"201": {"description": "Created"}}}
        },
        "/depots/{depotId}/orders": {
            "get": {"summary": "List the depot's orders in a status", "tags": ["depots"],
                "parameters": [
                    {"name": "depotId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "status", "in": "query", "required": true, "type": "string", "enum": ["confirmed", "ready-for-pickup", "picked-up", "at-depot", "out-for-delivery", "delivered", "cancelled", "refund-requested", "refunded", "returned", "depot-issue", "delivery-failed"]}
                ],
                "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Fulfillment API",
	Description:      "Order fulfillment lifecycle: depot workflow, dispatch, failures and disputes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
