package session

import (
	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/pkg/formatter"
)

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}
