package validation

import (
	"strings"
	"testing"
)

type sampleQuery struct {
	MinRating float64 `query:"min_rating" validate:"gte=0,lte=10"`
	Sort      string  `query:"sort" validate:"oneof=rating votes duration title"`
	Name      string  `validate:"required"`
}

func TestValidateStructOK(t *testing.T) {
	if err := ValidateStruct(sampleQuery{MinRating: 7.5, Sort: "votes", Name: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateStructCollectsFields(t *testing.T) {
	err := ValidateStruct(sampleQuery{MinRating: 11, Sort: "popularity"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if len(err.Fields) != 3 {
		t.Fatalf("got %d field errors: %+v", len(err.Fields), err.Fields)
	}
	want := map[string]string{"min_rating": "lte", "sort": "oneof", "Name": "required"}
	for _, f := range err.Fields {
		if want[f.Field] != f.Tag {
			t.Errorf("field %s failed %s, want %s", f.Field, f.Tag, want[f.Field])
		}
	}
	if !strings.Contains(err.Error(), "min_rating must be less than or equal to 10") {
		t.Fatalf("message = %q", err.Error())
	}
	fields, ok := err.Details()["fields"].([]map[string]string)
	if !ok || len(fields) != 3 {
		t.Fatalf("details = %#v", err.Details())
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Fatalf("expected a shared validator")
	}
}
