// Package service implements the business rules of the Inkwell server.
// Services validate input, enforce ownership and visibility, and delegate
// persistence to the store layer.
package service

import (
	"github.com/inkwellapp/inkwell-server/internal/validation"
)

// validate is the shared request validator for all services.
var validate = validation.New()
