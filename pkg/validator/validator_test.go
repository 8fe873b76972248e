package validator

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

type payload struct {
	Name     string    `validate:"required"`
	Quantity int       `validate:"gte=0"`
	RefID    uuid.UUID `validate:"uuid_required"`
}

func TestValidateStruct(t *testing.T) {
	valid := payload{Name: "ok", Quantity: 1, RefID: uuid.New()}
	if err := ValidateStruct(&valid); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	invalid := payload{Quantity: -2}
	err := ValidateStruct(&invalid)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Fields) != 3 {
		t.Errorf("expected 3 failing fields, got %d: %v", len(verr.Fields), verr.Fields)
	}

	rules := map[string]string{}
	for _, f := range verr.Fields {
		rules[f.Field] = f.Rule
	}
	if rules["payload.Name"] != "required" {
		t.Errorf("expected Name to fail 'required', got %q", rules["payload.Name"])
	}
	if rules["payload.RefID"] != "uuid_required" {
		t.Errorf("expected RefID to fail 'uuid_required', got %q", rules["payload.RefID"])
	}
}
