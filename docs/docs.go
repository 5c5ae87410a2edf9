// Package docs registers the OpenAPI description served by gin-swagger.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "servers": [{"url": "/api"}],
    "paths": {
        "/clients": {
            "get": {
                "tags": ["clients"],
                "summary": "Liste des clients",
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Client"}}}}}
                }
            },
            "post": {
                "tags": ["clients"],
                "summary": "Créer un client",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CreateClient"}}}},
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"$ref": "#/components/responses/Error"},
                    "409": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/clients/{id}": {
            "get": {
                "tags": ["clients"],
                "summary": "Détail d'un client",
                "parameters": [{"$ref": "#/components/parameters/ID"}],
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Client"}}}},
                    "404": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/produits": {
            "get": {
                "tags": ["produits"],
                "summary": "Liste des produits",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["produits"],
                "summary": "Créer un produit",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CreateProduct"}}}},
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"$ref": "#/components/responses/Error"},
                    "409": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/produits/{id}": {
            "get": {
                "tags": ["produits"],
                "summary": "Détail d'un produit",
                "parameters": [{"$ref": "#/components/parameters/ID"}],
                "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/components/responses/Error"}}
            }
        },
        "/catalogue": {
            "get": {
                "tags": ["catalogue"],
                "summary": "Catalogue actuel",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/catalogue/produit/{id}/historique": {
            "get": {
                "tags": ["catalogue"],
                "summary": "Historique des prix d'un produit",
                "parameters": [{"$ref": "#/components/parameters/ID"}],
                "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/components/responses/Error"}}
            }
        },
        "/factures": {
            "get": {
                "tags": ["factures"],
                "summary": "Liste des factures",
                "parameters": [
                    {"name": "page", "in": "query", "schema": {"type": "integer", "minimum": 1}},
                    {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1}},
                    {"name": "client_id", "in": "query", "schema": {"type": "integer", "minimum": 1}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"$ref": "#/components/responses/Error"}}
            },
            "post": {
                "tags": ["factures"],
                "summary": "Créer une facture",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CreateInvoice"}}}},
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"$ref": "#/components/responses/Error"},
                    "404": {"$ref": "#/components/responses/Error"},
                    "409": {"$ref": "#/components/responses/Error"},
                    "422": {"$ref": "#/components/responses/Error"},
                    "500": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/factures/{id}": {
            "get": {
                "tags": ["factures"],
                "summary": "Détail d'une facture",
                "parameters": [{"$ref": "#/components/parameters/ID"}],
                "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/components/responses/Error"}}
            }
        },
        "/factures/{id}/html": {
            "get": {
                "tags": ["factures"],
                "summary": "Facture imprimable (HTML)",
                "parameters": [{"$ref": "#/components/parameters/ID"}],
                "responses": {"200": {"description": "OK", "content": {"text/html": {}}}, "404": {"$ref": "#/components/responses/Error"}}
            }
        },
        "/factures/{id}/pdf": {
            "get": {
                "tags": ["factures"],
                "summary": "Facture au format PDF",
                "parameters": [{"$ref": "#/components/parameters/ID"}],
                "responses": {
                    "200": {"description": "OK", "content": {"application/pdf": {}}},
                    "404": {"$ref": "#/components/responses/Error"},
                    "429": {"$ref": "#/components/responses/Error"},
                    "503": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/factures/{id}/archive": {
            "post": {
                "tags": ["factures"],
                "summary": "Archiver le PDF d'une facture",
                "parameters": [{"$ref": "#/components/parameters/ID"}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"$ref": "#/components/responses/Error"},
                    "429": {"$ref": "#/components/responses/Error"},
                    "503": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/statistiques/factures": {
            "get": {
                "tags": ["statistiques"],
                "summary": "Statistiques des factures",
                "parameters": [
                    {"name": "annee", "in": "query", "schema": {"type": "integer"}},
                    {"name": "mois", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 12}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"$ref": "#/components/responses/Error"}}
            }
        },
        "/statistiques/factures/export": {
            "get": {
                "tags": ["statistiques"],
                "summary": "Export Excel des factures",
                "responses": {"200": {"description": "OK", "content": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {}}}}
            }
        },
        "/statistiques/top-clients": {
            "get": {
                "tags": ["statistiques"],
                "summary": "Top clients par CA",
                "parameters": [{"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1}}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "components": {
        "parameters": {
            "ID": {"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "minimum": 1}}
        },
        "responses": {
            "Error": {"description": "Error", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}}
        },
        "schemas": {
            "Error": {
                "type": "object",
                "required": ["error", "details"],
                "properties": {
                    "error": {"type": "string"},
                    "details": {"oneOf": [{"type": "string"}, {"type": "array", "items": {"$ref": "#/components/schemas/FieldError"}}]},
                    "code": {"type": "string"},
                    "request_id": {"type": "string"}
                }
            },
            "FieldError": {
                "type": "object",
                "properties": {"field": {"type": "string"}, "message": {"type": "string"}}
            },
            "Client": {
                "type": "object",
                "properties": {
                    "id_client": {"type": "integer"},
                    "code_client": {"type": "string"},
                    "nom": {"type": "string"},
                    "email": {"type": "string"}
                }
            },
            "CreateClient": {
                "type": "object",
                "required": ["code_client", "nom", "adresse", "ville", "code_postal"],
                "properties": {
                    "code_client": {"type": "string"},
                    "nom": {"type": "string"},
                    "adresse": {"type": "string"},
                    "ville": {"type": "string"},
                    "code_postal": {"type": "string"},
                    "telephone": {"type": "string"},
                    "email": {"type": "string", "format": "email"},
                    "forme_juridique": {"type": "string"}
                }
            },
            "CreateProduct": {
                "type": "object",
                "required": ["nom_produit", "prix_unitaire_ht", "taux_tva"],
                "properties": {
                    "nom_produit": {"type": "string"},
                    "description": {"type": "string"},
                    "prix_unitaire_ht": {"type": "number"},
                    "taux_tva": {"type": "number", "minimum": 0, "maximum": 100}
                }
            },
            "CreateInvoice": {
                "type": "object",
                "required": ["reference", "date_facturation", "date_echeance", "id_client", "lignes"],
                "properties": {
                    "reference": {"type": "string", "maxLength": 50},
                    "date_facturation": {"type": "string", "format": "date"},
                    "date_echeance": {"type": "string", "format": "date"},
                    "id_client": {"type": "integer", "minimum": 1},
                    "lignes": {
                        "type": "array",
                        "minItems": 1,
                        "items": {
                            "type": "object",
                            "required": ["id_produit", "quantite"],
                            "properties": {
                                "id_produit": {"type": "integer", "minimum": 1},
                                "quantite": {"type": "number", "exclusiveMinimum": true, "minimum": 0}
                            }
                        }
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Title:            "API Gestion Factures Okayo",
	Description:      "API pour la gestion des factures, clients, produits et statistiques",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
