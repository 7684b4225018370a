package handlers

import (
	"errors"
	"io"
	"strconv"
	"sync"

	"spacecrew/internal/domain"
	"spacecrew/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the crew rules on gin's binding engine.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := validation.Register(v); err != nil {
				panic(err)
			}
			v.RegisterStructValidation(func(sl validator.StructLevel) {
				if r := sl.Current().Interface().(crewMemberRequest); r.Salary != nil {
					validation.ReportSalary(sl, *r.Salary)
				}
			}, crewMemberRequest{})
		}
	})
}

// BindJSONOrError ensures body is present and parsable, reporting failures
// through RespondDomainError.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondDomainError(c, domain.ValidationError{Msg: "request body is empty"})
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondDomainError(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	if domain.IsValidation(err) {
		return err
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return validation.ToDomain(err)
	}
	if errors.Is(err, io.EOF) {
		return domain.ValidationError{Msg: "request body is empty", Err: err}
	}
	return domain.ValidationError{Msg: "malformed JSON body", Err: err}
}

// pathID parses the :id path parameter as a positive integer.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError{Field: "id", Msg: "must be a positive integer", Err: err}
	}
	return id, nil
}
