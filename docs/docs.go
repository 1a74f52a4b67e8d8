// Package docs registra la especificación OpenAPI de los servicios con swag.
// swagger.json se mantiene junto a las anotaciones godoc de los handlers y lo sirve también /docs.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var swaggerJSON string

// SwaggerInfo información de la especificación expuesta por /docs.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "CIMS Equipment & Project API",
	Description:      "Registro de stock de equipos y conciliación de cantidades por movimientos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  swaggerJSON,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
