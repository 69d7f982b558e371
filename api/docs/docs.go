// Package docs registers the Swagger document served under /swagger/.
// Regenerate with: swag init -g internal/auth/http/router.go -o api/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {
			"name": "cwsite",
			"url": "https://github.com/cubicworld/cwsite"
		},
		"license": {
			"name": "MIT",
			"url": "https://opensource.org/licenses/MIT"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/livez": {
			"get": {
				"description": "Liveness probe returning uptime and version. Always 200 while the process serves requests.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Health"
				],
				"summary": "Health Check Endpoint",
				"responses": {
					"200": {
						"description": "status, uptime, version",
						"schema": {
							"$ref": "#/definitions/authsdk.HealthResponse"
						}
					}
				}
			}
		},
		"/readyz": {
			"get": {
				"description": "Readiness probe: 200 when the database answers a ping, 503 otherwise.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Health"
				],
				"summary": "Readiness Check Endpoint",
				"responses": {
					"200": {
						"description": "status, uptime, version, checks",
						"schema": {
							"$ref": "#/definitions/authsdk.HealthResponse"
						}
					},
					"503": {
						"description": "status, uptime, version, checks - service not ready",
						"schema": {
							"$ref": "#/definitions/authsdk.HealthResponse"
						}
					}
				}
			}
		},
		"/v1/oauth2/login": {
			"get": {
				"description": "Starts a login attempt and redirects to the Discord consent screen.",
				"tags": [
					"OAuth2"
				],
				"summary": "Begin login",
				"responses": {
					"302": {
						"description": "Redirect to Discord",
						"schema": {
							"type": "string"
						}
					},
					"429": {
						"description": "Rate limited",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/v1/oauth2/callback": {
			"get": {
				"description": "Consumes the login attempt named by state, exchanges code with Discord and returns a fresh credential.",
				"produces": [
					"application/json"
				],
				"tags": [
					"OAuth2"
				],
				"summary": "Complete login",
				"parameters": [
					{
						"type": "string",
						"description": "Authorization code from Discord",
						"name": "code",
						"in": "query",
						"required": true
					},
					{
						"type": "string",
						"description": "State issued by /v1/oauth2/login",
						"name": "state",
						"in": "query",
						"required": true
					},
					{
						"type": "string",
						"description": "Set by Discord when the user declined",
						"name": "error",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "access_token, token_type, created, player",
						"schema": {
							"$ref": "#/definitions/authsdk.SessionResponse"
						}
					},
					"400": {
						"description": "Missing parameters, declined consent, or unknown or expired state",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					},
					"429": {
						"description": "Rate limited",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					},
					"502": {
						"description": "Discord failed",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/v1/logout": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Revokes every credential of the authenticated player, the presented one included.",
				"tags": [
					"OAuth2"
				],
				"summary": "Log out",
				"responses": {
					"204": {
						"description": "Credentials revoked"
					},
					"401": {
						"description": "Invalid or missing access token",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/v1/me": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Returns the player the bearer credential belongs to, email included.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Players"
				],
				"summary": "Current player",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/authsdk.PlayerResponse"
						}
					},
					"401": {
						"description": "Invalid or missing access token",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/v1/players": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Creates a player bound to a Discord account before their first login. Requires moderator.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Players"
				],
				"summary": "Provision a player",
				"parameters": [
					{
						"description": "Player to create",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/authsdk.CreatePlayerRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/authsdk.PlayerResponse"
						}
					},
					"400": {
						"description": "error, error_description, fields",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					},
					"401": {
						"description": "Invalid or missing access token",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					},
					"403": {
						"description": "Tier too low",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "Id, name or Discord account taken; fields name both id and name",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/v1/players/{id}": {
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Renames a player and/or changes their tier. Requires main moderator.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Players"
				],
				"summary": "Update a player",
				"parameters": [
					{
						"type": "string",
						"description": "Player id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Fields to change",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/authsdk.UpdatePlayerRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/authsdk.PlayerResponse"
						}
					},
					"400": {
						"description": "error, error_description, fields",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					},
					"401": {
						"description": "Invalid or missing access token",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					},
					"403": {
						"description": "Tier too low",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "No such player",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "Name taken",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal server error",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/v1/players/id/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Players"
				],
				"summary": "Find player by id",
				"parameters": [
					{
						"type": "string",
						"description": "Player id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/authsdk.PlayerResponse"
						}
					},
					"404": {
						"description": "No such player",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/v1/players/name/{name}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Players"
				],
				"summary": "Find player by name",
				"parameters": [
					{
						"type": "string",
						"description": "Player name",
						"name": "name",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/authsdk.PlayerResponse"
						}
					},
					"404": {
						"description": "No such player",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/v1/players/discord/{discordID}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Players"
				],
				"summary": "Find player by Discord account",
				"parameters": [
					{
						"type": "string",
						"description": "Discord account id (decimal)",
						"name": "discordID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/authsdk.PlayerResponse"
						}
					},
					"400": {
						"description": "Malformed id",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "No such player",
						"schema": {
							"$ref": "#/definitions/authsdk.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"authsdk.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"error_description": {
					"type": "string"
				},
				"fields": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				}
			}
		},
		"authsdk.PlayerResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"discord_id": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"tier": {
					"type": "string"
				},
				"tier_code": {
					"type": "integer"
				},
				"is_moderator": {
					"type": "boolean"
				},
				"is_developer": {
					"type": "boolean"
				},
				"is_premium": {
					"type": "boolean"
				},
				"created_at": {
					"type": "string"
				},
				"updated_at": {
					"type": "string"
				}
			}
		},
		"authsdk.SessionResponse": {
			"type": "object",
			"properties": {
				"access_token": {
					"type": "string"
				},
				"token_type": {
					"type": "string"
				},
				"created": {
					"type": "boolean"
				},
				"player": {
					"$ref": "#/definitions/authsdk.PlayerResponse"
				}
			}
		},
		"authsdk.CreatePlayerRequest": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"discord_id": {
					"type": "string"
				},
				"tier": {
					"type": "string"
				}
			}
		},
		"authsdk.UpdatePlayerRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"tier": {
					"type": "string"
				}
			}
		},
		"authsdk.HealthChecks": {
			"type": "object",
			"properties": {
				"database": {
					"type": "string"
				}
			}
		},
		"authsdk.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"uptime": {
					"type": "string"
				},
				"version": {
					"type": "string"
				},
				"checks": {
					"$ref": "#/definitions/authsdk.HealthChecks"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Credential from the login callback. Format: \"Bearer {token}\".",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "cwsite Authentication Service API",
	Description:      "Player login through Discord OAuth2 and player lookup for the cwsite game servers.\n\nLogging in yields an opaque bearer credential. It does not expire; logging in again or logging out revokes it.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
