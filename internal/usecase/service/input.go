package service

import (
	"strings"

	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/validators"
)

type Input struct {
	Name        string `form:"name" json:"name" validate:"required,max=120"`
	Description string `form:"description" json:"description"`
}

func (in *Input) validate() *httperr.ValidationError {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return validators.Struct(in)
}

func duplicateName() error {
	v := httperr.NewValidation()
	v.Add("name", "A service with this name already exists.")
	return v
}
