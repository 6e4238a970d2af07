package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators 注册 gender / period 自定义校验规则
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("binding validator is not go-playground/validator")
	}
	if err := v.RegisterValidation("gender", validateGender); err != nil {
		return err
	}
	return v.RegisterValidation("period", validatePeriod)
}

func validateGender(fl validator.FieldLevel) bool {
	switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
	case "all", "male", "female", "unknown", "m", "f":
		return true
	}
	return false
}

func validatePeriod(fl validator.FieldLevel) bool {
	switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
	case "year", "month", "y", "m":
		return true
	}
	return false
}

// bindingMessage 把校验错误转成可读提示
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "参数格式错误: " + err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s 不满足 %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s 不满足 %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return "参数校验失败: " + strings.Join(parts, "; ")
}
