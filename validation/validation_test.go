package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/amalfi/errors"
)

type tracing struct {
	Enabled    bool    `mapstructure:"enabled"`
	Endpoint   string  `mapstructure:"endpoint" validate:"required_if=Enabled true"`
	SampleRate float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

type sample struct {
	Name    string  `mapstructure:"name" validate:"required"`
	Format  string  `mapstructure:"format" validate:"oneof=json console"`
	Tracing tracing `mapstructure:"tracing"`
	Retries int     `validate:"max=3"`
}

func TestValidate_Valid(t *testing.T) {
	s := sample{Name: "svc", Format: "json", Tracing: tracing{SampleRate: 0.5}}
	if err := Validate(s); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	s := sample{
		Format:  "xml",
		Tracing: tracing{Enabled: true, SampleRate: 2},
		Retries: 5,
	}
	err := Validate(s)
	if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}
	for _, want := range []string{
		"name: is required",
		"format: must be one of: json console",
		"tracing.endpoint: is required",
		"tracing.sample_rate: must be at most 1",
		"retries: must be at most 3",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}

	appErr, _ := errors.As(err)
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 5 {
		t.Errorf("expected 5 field errors in details, got %v", appErr.Details["fields"])
	}
}

func TestValidate_NotAStruct(t *testing.T) {
	err := Validate(42)
	if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG for a non-struct, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Name":       "name",
		"SampleRate": "sample_rate",
		"OTLP":       "o_t_l_p",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
