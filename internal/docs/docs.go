// Package docs holds the OpenAPI description served under /swagger. It mirrors
// the @Router annotations on the handlers; keep both in step when routes change.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/animals": {
            "post": {
                "summary": "Register an animal",
                "description": "Add an animal to the herd. Tag numbers are unique per farm.",
                "tags": [
                    "animals"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Animal details",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.CreateAnimalRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Animal created"
                    },
                    "400": {
                        "description": "Invalid input"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "409": {
                        "description": "Duplicate tag number"
                    }
                }
            },
            "get": {
                "summary": "List animals",
                "tags": [
                    "animals"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Page number (default 1)",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Items per page (default 20, max 100)",
                        "name": "page_size",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by status (active, sold, deceased)",
                        "name": "status",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Paginated animals"
                    },
                    "400": {
                        "description": "Invalid input"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/animals/{id}": {
            "get": {
                "summary": "Get animal by ID",
                "tags": [
                    "animals"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Animal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Animal details"
                    },
                    "404": {
                        "description": "Animal not found"
                    }
                }
            },
            "put": {
                "summary": "Update animal",
                "tags": [
                    "animals"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Animal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to update",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.UpdateAnimalRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated animal"
                    },
                    "400": {
                        "description": "Invalid input"
                    },
                    "404": {
                        "description": "Animal not found"
                    },
                    "409": {
                        "description": "Duplicate tag number"
                    }
                }
            },
            "delete": {
                "summary": "Delete animal",
                "tags": [
                    "animals"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Animal ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Animal deleted"
                    },
                    "404": {
                        "description": "Animal not found"
                    }
                }
            }
        },
        "/auth/register": {
            "post": {
                "summary": "Register a new user",
                "description": "Register a new farm account with email and password",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "User registration data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.RegisterRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "User registered and token generated"
                    },
                    "400": {
                        "description": "Invalid input"
                    },
                    "409": {
                        "description": "Email already registered"
                    },
                    "500": {
                        "description": "Server error"
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "summary": "Login user",
                "description": "Authenticate a user and get a token",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "User login credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "User authenticated and token generated"
                    },
                    "400": {
                        "description": "Invalid input"
                    },
                    "401": {
                        "description": "Invalid credentials"
                    },
                    "423": {
                        "description": "Account locked"
                    },
                    "500": {
                        "description": "Server error"
                    }
                }
            }
        },
        "/profile": {
            "get": {
                "summary": "Get user profile",
                "description": "Get the authenticated user's profile information",
                "tags": [
                    "user"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "User profile"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Server error"
                    }
                }
            }
        },
        "/breeding-records": {
            "post": {
                "summary": "Record breeding",
                "description": "Save a breeding. The expected calving date defaults to 283 days after breeding; a positive cost is posted as a Breeding expense.",
                "tags": [
                    "breeding"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Breeding details",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.CreateBreedingRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Record saved"
                    },
                    "400": {
                        "description": "Invalid input"
                    },
                    "404": {
                        "description": "Animal not found"
                    }
                }
            },
            "get": {
                "summary": "List breeding records",
                "tags": [
                    "breeding"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Page number (default 1)",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Items per page (default 20, max 100)",
                        "name": "page_size",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by animal",
                        "name": "animal_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by start date (RFC3339 or YYYY-MM-DD)",
                        "name": "from_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by end date (RFC3339 or YYYY-MM-DD)",
                        "name": "to_date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Paginated records"
                    }
                }
            }
        },
        "/breeding-records/{id}": {
            "get": {
                "summary": "Get breeding record",
                "tags": [
                    "breeding"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Record ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Record"
                    },
                    "404": {
                        "description": "Record not found"
                    }
                }
            },
            "put": {
                "summary": "Update breeding record",
                "description": "Change a breeding record and re-sync its ledger entry. Sending cost 0 retracts the expense.",
                "tags": [
                    "breeding"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Record ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to update",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.UpdateBreedingRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Record saved"
                    },
                    "400": {
                        "description": "Invalid input"
                    },
                    "404": {
                        "description": "Record not found"
                    }
                }
            },
            "delete": {
                "summary": "Delete breeding record",
                "tags": [
                    "breeding"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Record ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Record deleted"
                    },
                    "404": {
                        "description": "Record not found"
                    }
                }
            }
        },
        "/feeding-records": {
            "post": {
                "summary": "Record feeding",
                "description": "Save a feeding. A positive cost is posted to the ledger as a Feed expense.",
                "tags": [
                    "feeding"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Feeding details",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.CreateFeedingRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Record saved"
                    },
                    "400": {
                        "description": "Invalid input"
                    },
                    "404": {
                        "description": "Animal not found"
                    }
                }
            },
            "get": {
                "summary": "List feeding records",
                "tags": [
                    "feeding"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Page number (default 1)",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Items per page (default 20, max 100)",
                        "name": "page_size",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by animal",
                        "name": "animal_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by start date (RFC3339 or YYYY-MM-DD)",
                        "name": "from_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by end date (RFC3339 or YYYY-MM-DD)",
                        "name": "to_date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Paginated records"
                    }
                }
            }
        },
        "/feeding-records/{id}": {
            "get": {
                "summary": "Get feeding record",
                "tags": [
                    "feeding"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Record ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Record"
                    },
                    "404": {
                        "description": "Record not found"
                    }
                }
            },
            "put": {
                "summary": "Update feeding record",
                "description": "Change a feeding record and re-sync its ledger entry. Sending cost 0 retracts the expense.",
                "tags": [
                    "feeding"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Record ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to update",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.UpdateFeedingRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Record saved"
                    },
                    "400": {
                        "description": "Invalid input"
                    },
                    "404": {
                        "description": "Record not found"
                    }
                }
            },
            "delete": {
                "summary": "Delete feeding record",
                "tags": [
                    "feeding"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Record ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Record deleted"
                    },
                    "404": {
                        "description": "Record not found"
                    }
                }
            }
        },
        "/internal/reconcile": {
            "post": {
                "summary": "Reconcile all ledgers",
                "description": "Run the reconciliation pass for every active user (operations endpoint).",
                "tags": [
                    "internal"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Internal API key",
                        "name": "X-API-Key",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Combined report"
                    },
                    "401": {
                        "description": "Invalid API key"
                    },
                    "503": {
                        "description": "Internal endpoints not configured or backend unavailable"
                    }
                }
            }
        },
        "/health": {
            "get": {
                "summary": "Health check",
                "tags": [
                    "health"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Service healthy"
                    },
                    "503": {
                        "description": "Database unreachable"
                    }
                }
            }
        },
        "/ledger": {
            "post": {
                "summary": "Create a ledger entry",
                "description": "Record a manual income or expense. Entries derived from production, feeding and breeding records are created by those records.",
                "tags": [
                    "ledger"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Entry details",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.CreateLedgerEntryRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Entry created"
                    },
                    "400": {
                        "description": "Invalid input"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "503": {
                        "description": "Backend unavailable"
                    }
                }
            },
            "get": {
                "summary": "List ledger entries",
                "tags": [
                    "ledger"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Page number (default 1)",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Items per page (default 20, max 100)",
                        "name": "page_size",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by start date (RFC3339 or YYYY-MM-DD)",
                        "name": "from_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by end date (RFC3339 or YYYY-MM-DD)",
                        "name": "to_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by type (Income, Expense)",
                        "name": "type",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by category",
                        "name": "category",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by animal",
                        "name": "animal_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by source record type (ProductionRecord, FeedingRecord, BreedingRecord)",
                        "name": "source_type",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Paginated entries"
                    },
                    "400": {
                        "description": "Invalid input"
                    }
                }
            }
        },
        "/ledger/{id}": {
            "get": {
                "summary": "Get ledger entry",
                "tags": [
                    "ledger"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Entry ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Entry"
                    },
                    "404": {
                        "description": "Entry not found"
                    }
                }
            },
            "put": {
                "summary": "Update ledger entry",
                "description": "Update a manual entry. Entries linked to a production, feeding or breeding record cannot be edited here.",
                "tags": [
                    "ledger"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Entry ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to update",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.UpdateLedgerEntryRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated entry"
                    },
                    "400": {
                        "description": "Invalid input or linked entry"
                    },
                    "404": {
                        "description": "Entry not found"
                    }
                }
            },
            "delete": {
                "summary": "Delete ledger entry",
                "description": "Delete a manual entry. Linked entries are removed by deleting or zeroing their source record.",
                "tags": [
                    "ledger"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Entry ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Entry deleted"
                    },
                    "400": {
                        "description": "Linked entry"
                    },
                    "404": {
                        "description": "Entry not found"
                    }
                }
            }
        },
        "/ledger/summary": {
            "get": {
                "summary": "Ledger summary",
                "tags": [
                    "ledger"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Start date (RFC3339 or YYYY-MM-DD)",
                        "name": "from_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "End date (RFC3339 or YYYY-MM-DD)",
                        "name": "to_date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Summary"
                    },
                    "400": {
                        "description": "Invalid input"
                    }
                }
            }
        },
        "/ledger/export": {
            "get": {
                "summary": "Export ledger",
                "tags": [
                    "ledger"
                ],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Start date (RFC3339 or YYYY-MM-DD)",
                        "name": "from_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "End date (RFC3339 or YYYY-MM-DD)",
                        "name": "to_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by type (Income, Expense)",
                        "name": "type",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by category",
                        "name": "category",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by animal",
                        "name": "animal_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by source record type",
                        "name": "source_type",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Ledger workbook"
                    },
                    "400": {
                        "description": "Invalid input"
                    }
                }
            }
        },
        "/ledger/reconcile": {
            "post": {
                "summary": "Reconcile ledger",
                "description": "Repair drift between production, feeding and breeding records and their ledger entries.",
                "tags": [
                    "ledger"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "What the pass changed"
                    },
                    "503": {
                        "description": "Backend unavailable"
                    }
                }
            }
        },
        "/production-records": {
            "post": {
                "summary": "Record milk production",
                "description": "Save a milk yield. Sold milk with a price is posted to the ledger as Milk Sales income.",
                "tags": [
                    "production"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Production details",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.CreateProductionRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Record saved"
                    },
                    "400": {
                        "description": "Invalid input"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "404": {
                        "description": "Animal not found"
                    }
                }
            },
            "get": {
                "summary": "List production records",
                "tags": [
                    "production"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Page number (default 1)",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Items per page (default 20, max 100)",
                        "name": "page_size",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by animal",
                        "name": "animal_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by start date (RFC3339 or YYYY-MM-DD)",
                        "name": "from_date",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by end date (RFC3339 or YYYY-MM-DD)",
                        "name": "to_date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Paginated records"
                    },
                    "400": {
                        "description": "Invalid input"
                    }
                }
            }
        },
        "/production-records/{id}": {
            "get": {
                "summary": "Get production record",
                "tags": [
                    "production"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Record ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Record"
                    },
                    "404": {
                        "description": "Record not found"
                    }
                }
            },
            "put": {
                "summary": "Update production record",
                "description": "Change a production record and re-sync its ledger entry. Changing use_type away from Sold retracts the income.",
                "tags": [
                    "production"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Record ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to update",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.UpdateProductionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Record saved"
                    },
                    "400": {
                        "description": "Invalid input"
                    },
                    "404": {
                        "description": "Record not found"
                    }
                }
            },
            "delete": {
                "summary": "Delete production record",
                "tags": [
                    "production"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Record ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Record deleted"
                    },
                    "404": {
                        "description": "Record not found"
                    }
                }
            }
        }
    },
    "definitions": {
        "handlers.CreateAnimalRequest": {
            "type": "object",
            "properties": {
                "tag_number": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "breed": {
                    "type": "string"
                },
                "sex": {
                    "type": "string"
                },
                "birth_date": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                }
            },
            "required": [
                "tag_number",
                "sex"
            ]
        },
        "handlers.CreateBreedingRequest": {
            "type": "object",
            "properties": {
                "animal_id": {
                    "type": "string"
                },
                "breeding_date": {
                    "type": "string"
                },
                "method": {
                    "type": "string"
                },
                "sire_name": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "expected_calving_date": {
                    "type": "string"
                },
                "cost": {
                    "type": "number"
                },
                "notes": {
                    "type": "string"
                }
            },
            "required": [
                "animal_id",
                "method"
            ]
        },
        "handlers.CreateFeedingRequest": {
            "type": "object",
            "properties": {
                "animal_id": {
                    "type": "string"
                },
                "record_date": {
                    "type": "string"
                },
                "feed_type": {
                    "type": "string"
                },
                "quantity_kg": {
                    "type": "number"
                },
                "cost": {
                    "type": "number"
                },
                "supplier_name": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                }
            },
            "required": [
                "animal_id",
                "feed_type",
                "quantity_kg"
            ]
        },
        "handlers.CreateLedgerEntryRequest": {
            "type": "object",
            "properties": {
                "transaction_type": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "amount": {
                    "type": "integer"
                },
                "transaction_date": {
                    "type": "string"
                },
                "animal_id": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "buyer_name": {
                    "type": "string"
                },
                "supplier_name": {
                    "type": "string"
                },
                "receipt_photo_url": {
                    "type": "string"
                }
            },
            "required": [
                "transaction_type",
                "category",
                "amount"
            ]
        },
        "handlers.CreateProductionRequest": {
            "type": "object",
            "properties": {
                "animal_id": {
                    "type": "string"
                },
                "record_date": {
                    "type": "string"
                },
                "quantity": {
                    "type": "number"
                },
                "use_type": {
                    "type": "string"
                },
                "price_per_unit": {
                    "type": "number"
                },
                "buyer_name": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                }
            },
            "required": [
                "animal_id",
                "quantity",
                "use_type"
            ]
        },
        "handlers.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            },
            "required": [
                "email",
                "password"
            ]
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "farm_name": {
                    "type": "string"
                }
            },
            "required": [
                "email",
                "password"
            ]
        },
        "handlers.UpdateAnimalRequest": {
            "type": "object",
            "properties": {
                "tag_number": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "breed": {
                    "type": "string"
                },
                "sex": {
                    "type": "string"
                },
                "birth_date": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                }
            }
        },
        "handlers.UpdateBreedingRequest": {
            "type": "object",
            "properties": {
                "animal_id": {
                    "type": "string"
                },
                "breeding_date": {
                    "type": "string"
                },
                "method": {
                    "type": "string"
                },
                "sire_name": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "expected_calving_date": {
                    "type": "string"
                },
                "cost": {
                    "type": "number"
                },
                "notes": {
                    "type": "string"
                }
            }
        },
        "handlers.UpdateFeedingRequest": {
            "type": "object",
            "properties": {
                "animal_id": {
                    "type": "string"
                },
                "record_date": {
                    "type": "string"
                },
                "feed_type": {
                    "type": "string"
                },
                "quantity_kg": {
                    "type": "number"
                },
                "cost": {
                    "type": "number"
                },
                "supplier_name": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                }
            }
        },
        "handlers.UpdateLedgerEntryRequest": {
            "type": "object",
            "properties": {
                "transaction_type": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "amount": {
                    "type": "integer"
                },
                "transaction_date": {
                    "type": "string"
                },
                "animal_id": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "buyer_name": {
                    "type": "string"
                },
                "supplier_name": {
                    "type": "string"
                },
                "receipt_photo_url": {
                    "type": "string"
                }
            }
        },
        "handlers.UpdateProductionRequest": {
            "type": "object",
            "properties": {
                "animal_id": {
                    "type": "string"
                },
                "record_date": {
                    "type": "string"
                },
                "quantity": {
                    "type": "number"
                },
                "use_type": {
                    "type": "string"
                },
                "price_per_unit": {
                    "type": "number"
                },
                "buyer_name": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Herdbook API",
	Description:      "Herdbook keeps dairy herd records and a farm ledger that stays in step with them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
