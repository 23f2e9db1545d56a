package generator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/BerylCAtieno/ad-copy-agent/internal/models"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

// Keys must match the struct tags exactly; "HEADLINE" is not "headline".
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	CaseSensitive:          true,
}.Froze()

var validate = newValidator()

const (
	jsonFence = "```json"
	fence     = "```"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ExtractAdContent pulls a complete AdContent out of an assistant reply.
// A ```json fence wins over a plain fence; without fences the whole reply
// must be a bare object. Nothing is repaired: malformed or partial output is
// an error.
func ExtractAdContent(reply string) (*models.AdContent, error) {
	raw := unfence(reply)
	if !strings.HasPrefix(raw, "{") || !strings.HasSuffix(raw, "}") {
		return nil, ErrNotJSON
	}

	var ad models.AdContent
	if err := json.Unmarshal([]byte(raw), &ad); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	if err := validate.Struct(ad); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("validate ad content: %w", err)
		}
		missing := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
		return nil, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	return &ad, nil
}

func unfence(reply string) string {
	if _, after, ok := strings.Cut(reply, jsonFence); ok {
		body, _, _ := strings.Cut(after, fence)
		return strings.TrimSpace(body)
	}
	if _, after, ok := strings.Cut(reply, fence); ok {
		body, _, _ := strings.Cut(after, fence)
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(reply)
}
