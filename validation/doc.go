// Package validation validates configuration structs with
// go-playground/validator.
//
// Besides the built-in tags it registers base_url, used by
// httpclient.Config:
//
//	type Config struct {
//	    BaseURL string `mapstructure:"base_url" validate:"base_url"`
//	}
//	err := validation.Validate(cfg)
package validation
