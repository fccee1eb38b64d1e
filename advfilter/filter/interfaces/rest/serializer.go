package rest

import (
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type serializer struct{}

func (serializer) Serialize(c echo.Context, v interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(v)
}

func (serializer) Deserialize(c echo.Context, v interface{}) error {
	return json.NewDecoder(c.Request().Body).Decode(v)
}

type requestValidator struct {
	validate *validator.Validate
}

func (v requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
