package rest

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrValidatorEngine = errors.New("binding validator is not go-playground/validator")

var (
	registerOnce sync.Once
	registerErr  error
)

// registerValidators - adds the "mark" tag to gin's validator engine.
func registerValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = ErrValidatorEngine
			return
		}

		if err := v.RegisterValidation("mark", validateMark); err != nil {
			registerErr = fmt.Errorf("failed to register mark validation: %w", err)
		}
	})

	return registerErr
}

func validateMark(fl validator.FieldLevel) bool {
	return parseMark(fl.Field().String()).IsPlayer()
}

func parseMark(value string) entity.Mark {
	return entity.Mark(strings.ToUpper(strings.TrimSpace(value)))
}
