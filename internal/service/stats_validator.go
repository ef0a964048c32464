package service

import (
	"errors"
	"math"
	"progress_charts/internal/model"
	"progress_charts/internal/util"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StatsValidator 边界校验，图表构建本身不依赖它
type StatsValidator struct {
	validate *validator.Validate
}

func NewStatsValidator() *StatsValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		s := sl.Current().Interface().(model.SeriesInput)
		if len(s.Labels) > 0 && s.Data != nil && len(s.Labels) != len(s.Data) {
			sl.ReportError(s.Data, "data", "Data", "samelen", "labels")
		}
	}, model.SeriesInput{})

	return &StatsValidator{validate: v}
}

// Validate 返回 *util.ValidationError；nil 输入合法
func (v *StatsValidator) Validate(stats *model.StatsInput) error {
	if stats == nil {
		return nil
	}

	err := v.validate.Struct(stats)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	return &util.ValidationError{
		Field:  fieldPath(fe.Namespace()),
		Reason: reason(fe.Tag()),
	}
}

var defaultStatsValidator = NewStatsValidator()

// ValidateStats 使用包级校验器
func ValidateStats(stats *model.StatsInput) error {
	return defaultStatsValidator.Validate(stats)
}

// fieldPath 去掉根结构体名，StatsInput.daily_words.data[2] -> daily_words.data[2]
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reason(tag string) string {
	switch tag {
	case "finite":
		return "must be a finite number"
	case "gte":
		return "must not be negative"
	case "samelen":
		return "labels and data must have the same length"
	default:
		return "failed " + tag + " check"
	}
}
