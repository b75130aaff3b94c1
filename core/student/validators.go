package student

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/eduwatch/eduwatch/core"
)

var (
	validate *validator.Validate

	scoreBoundTag  = "score_lte_max"
	scoreBoundText = "score cannot exceed max_score"
)

// InitValidators registers this package's custom validations.
func InitValidators(v *validator.Validate, translator ut.Translator) {
	validate = v
	validate.RegisterStructValidation(assessmentStructValidation, AssessmentScore{})
	core.RegisterCustomTranslation(validate, translator, scoreBoundTag, scoreBoundText)
}

// assessmentStructValidation does AssessmentScore's struct level validation
func assessmentStructValidation(sl validator.StructLevel) {
	if a, ok := sl.Current().Interface().(AssessmentScore); ok {
		if a.Score > a.MaxScore {
			sl.ReportError(a.Score, "score", "Score", scoreBoundTag, "")
		}
	}
}

func (s Student) Validate() error          { return validate.Struct(s) }
func (r AttendanceRecord) Validate() error { return validate.Struct(r) }
func (a AssessmentScore) Validate() error  { return validate.Struct(a) }
func (p PaymentRecord) Validate() error    { return validate.Struct(p) }
