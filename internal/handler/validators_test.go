package handler

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type validated struct {
	Gender string `validate:"gender"`
	Unit   string `validate:"period"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	if err := v.RegisterValidation("gender", validateGender); err != nil {
		t.Fatal(err)
	}
	if err := v.RegisterValidation("period", validatePeriod); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestCustomValidators(t *testing.T) {
	v := newValidator(t)
	ok := []validated{
		{Gender: "all", Unit: "year"},
		{Gender: "M", Unit: "Month"},
		{Gender: " female ", Unit: "y"},
		{Gender: "unknown", Unit: "m"},
	}
	for _, in := range ok {
		if err := v.Struct(in); err != nil {
			t.Errorf("%+v: unexpected error %v", in, err)
		}
	}
	bad := []validated{
		{Gender: "robot", Unit: "year"},
		{Gender: "all", Unit: "week"},
		{Gender: "", Unit: ""},
	}
	for _, in := range bad {
		if err := v.Struct(in); err == nil {
			t.Errorf("%+v: expected validation error", in)
		}
	}
}

func TestBindingMessage(t *testing.T) {
	v := newValidator(t)
	err := v.Struct(validated{Gender: "robot", Unit: "year"})
	msg := bindingMessage(err)
	if !strings.Contains(msg, "gender") {
		t.Fatalf("message should name the field, got %q", msg)
	}

	if msg := bindingMessage(errors.New("strconv.ParseInt: parsing \"abc\"")); !strings.HasPrefix(msg, "参数格式错误") {
		t.Fatalf("non-validation error message = %q", msg)
	}
}

func TestApplyForm(t *testing.T) {
	p := DefaultPrefs()
	n := 5
	unit := "month"
	applyForm(&p, dashboardForm{TopN: &n, Unit: &unit})
	if p.TopN != 5 || p.Unit != "month" || p.Gender != "all" || p.MinHeight != 150 {
		t.Fatalf("prefs = %+v", p)
	}
}
